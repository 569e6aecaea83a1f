package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"tracksplit/internal/logging"
	"tracksplit/internal/services"
)

const retryBackoff = 2 * time.Second

// Result describes one fetched source file.
type Result struct {
	// Path is the local file written by the downloader.
	Path string
	// Title is the source's own title, used as the default album name.
	Title string
	// Description is the source's description text; uploads frequently
	// carry their tracklist here.
	Description string
	// URL is the requested source URL.
	URL string
}

// Config carries downloader settings.
type Config struct {
	// OutputDir receives the downloaded file.
	OutputDir string
	// Retries is the number of re-attempts after the first failure.
	Retries int
	// RestrictFilenames limits downloaded names to ASCII when set.
	RestrictFilenames bool
}

// Downloader performs one download attempt. The yt-dlp backed
// implementation is the default; tests substitute doubles.
type Downloader interface {
	Download(ctx context.Context, url string) (Result, error)
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithDownloader overrides the yt-dlp backed downloader.
func WithDownloader(d Downloader) Option {
	return func(f *Fetcher) {
		if d != nil {
			f.downloader = d
		}
	}
}

// WithBackoff overrides the delay between retry attempts.
func WithBackoff(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.backoff = d
		}
	}
}

// Fetcher downloads sources with bounded retries.
type Fetcher struct {
	cfg        Config
	downloader Downloader
	backoff    time.Duration
	logger     *slog.Logger
}

// New constructs a Fetcher. The output directory is required.
func New(cfg Config, logger *slog.Logger, opts ...Option) (*Fetcher, error) {
	if cfg.OutputDir == "" {
		return nil, services.Wrap(services.ErrConfiguration, "fetch", "configure", "output directory is required", nil)
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	f := &Fetcher{
		cfg:     cfg,
		backoff: retryBackoff,
		logger:  logger.With(slog.String(logging.FieldComponent, "fetch")),
	}
	f.downloader = &ytdlpDownloader{cfg: cfg, logger: f.logger}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch downloads the source at url into the configured directory,
// retrying transient failures. Cancellation stops the attempt loop.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Result, error) {
	if url == "" {
		return Result{}, services.Wrap(services.ErrConfiguration, "fetch", "download", "source URL is required", nil)
	}
	if err := os.MkdirAll(f.cfg.OutputDir, 0o755); err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "fetch", "prepare", f.cfg.OutputDir, err)
	}

	attempts := f.cfg.Retries + 1
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-time.After(f.backoff):
			case <-ctx.Done():
				return Result{}, services.Wrap(services.ErrExternalTool, "fetch", "download", url, ctx.Err())
			}
			f.logger.Info("retrying download",
				slog.String(logging.FieldSource, url),
				slog.Int("attempt", attempt),
			)
		}

		result, err := f.downloader.Download(ctx, url)
		if err == nil {
			f.logger.Info("download complete",
				slog.String(logging.FieldSource, url),
				slog.String("path", result.Path),
				slog.String(logging.FieldTitle, result.Title),
			)
			return result, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return Result{}, services.Wrap(services.ErrExternalTool, "fetch", "download", url, ctx.Err())
		}
		f.logger.Warn("download attempt failed",
			slog.String(logging.FieldSource, url),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
	}
	return Result{}, services.Wrap(services.ErrExternalTool, "fetch", "download", url, lastErr)
}

type ytdlpDownloader struct {
	cfg    Config
	logger *slog.Logger
}

func (d *ytdlpDownloader) Download(ctx context.Context, url string) (Result, error) {
	dl := ytdlp.New().
		Format("bestaudio/best").
		NoPlaylist().
		Output(filepath.Join(d.cfg.OutputDir, "%(title)s.%(ext)s"))
	if d.cfg.RestrictFilenames {
		dl = dl.RestrictFilenames()
	}

	dl.ProgressFunc(time.Second, func(update ytdlp.ProgressUpdate) {
		if update.TotalBytes <= 0 {
			return
		}
		percent := float64(update.DownloadedBytes) / float64(update.TotalBytes) * 100
		d.logger.Debug("download progress",
			slog.String(logging.FieldSource, url),
			slog.Int("percent", int(percent)),
		)
	})

	res, err := dl.Run(ctx, url)
	if err != nil {
		return Result{}, err
	}
	info, err := res.GetExtractedInfo()
	if err != nil {
		return Result{}, fmt.Errorf("read extracted info: %w", err)
	}
	if len(info) == 0 {
		return Result{}, fmt.Errorf("downloader reported no files for %s", url)
	}

	out := Result{URL: url}
	entry := info[0]
	if entry.Filename != nil {
		out.Path = *entry.Filename
	}
	if entry.Title != nil {
		out.Title = *entry.Title
	}
	if entry.Description != nil {
		out.Description = *entry.Description
	}
	if out.Path == "" {
		return Result{}, fmt.Errorf("downloader reported no output path for %s", url)
	}
	return out, nil
}
