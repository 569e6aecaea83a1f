package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateExport(); err != nil {
		return err
	}
	if err := c.validateFetch(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateExport() error {
	if c.Export.Bitrate < 32 || c.Export.Bitrate > 320 {
		return fmt.Errorf("export.bitrate must be between 32 and 320 kbps, got %d", c.Export.Bitrate)
	}
	if c.Export.MaxConcurrency < 1 {
		return errors.New("export.max_concurrency must be at least 1")
	}
	if c.Export.PerSpanTimeoutSeconds < 0 {
		return errors.New("export.per_span_timeout_seconds must not be negative")
	}
	if !strings.Contains(c.Export.NamingTemplate, "{index}") && !strings.Contains(c.Export.NamingTemplate, "{title}") {
		return fmt.Errorf("export.naming_template must use at least one of {index} or {title}, got %q", c.Export.NamingTemplate)
	}
	return nil
}

func (c *Config) validateFetch() error {
	if c.Fetch.Retries < 0 {
		return errors.New("fetch.retries must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
