package config

const (
	defaultOutputDir      = "~/Music/tracksplit"
	defaultStagingDir     = "~/.local/share/tracksplit/staging"
	defaultLogDir         = "~/.local/share/tracksplit/logs"
	defaultBitrate        = 192
	defaultMaxConcurrency = 2
	defaultSpanTimeout    = 600
	defaultNamingTemplate = "{index}. {title}"
	defaultFetchRetries   = 2
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir:  defaultOutputDir,
			StagingDir: defaultStagingDir,
			LogDir:     defaultLogDir,
		},
		Export: Export{
			Bitrate:                defaultBitrate,
			Overwrite:              false,
			MaxConcurrency:         defaultMaxConcurrency,
			PerSpanTimeoutSeconds:  defaultSpanTimeout,
			NamingTemplate:         defaultNamingTemplate,
		},
		Fetch: Fetch{
			Retries:           defaultFetchRetries,
			RestrictFilenames: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
