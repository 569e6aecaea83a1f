package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tracksplit/internal/asset"
	"tracksplit/internal/logging"
	"tracksplit/internal/services"
	"tracksplit/internal/services/ffmpeg"
)

// Transcoder is the capability the executor needs from the external
// transcoding process. ffmpeg.Client satisfies it; tests use doubles.
type Transcoder interface {
	Extract(ctx context.Context, req ffmpeg.Request) error
}

// ExecutorConfig carries the per-run export settings.
type ExecutorConfig struct {
	OutputDir      string
	NamingTemplate string
	Bitrate        int
	Overwrite      bool
}

// Executor exports a single span to one output file.
type Executor struct {
	transcoder Transcoder
	cfg        ExecutorConfig
	logger     *slog.Logger
}

// NewExecutor constructs an executor around a transcoder.
func NewExecutor(transcoder Transcoder, cfg ExecutorConfig, logger *slog.Logger) (*Executor, error) {
	if transcoder == nil {
		return nil, errors.New("export executor requires a transcoder")
	}
	if cfg.OutputDir == "" {
		return nil, errors.New("export executor requires an output directory")
	}
	if cfg.Bitrate <= 0 {
		return nil, fmt.Errorf("export executor requires a positive bitrate, got %d", cfg.Bitrate)
	}
	if cfg.NamingTemplate == "" {
		cfg.NamingTemplate = "{index}. {title}"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Executor{
		transcoder: transcoder,
		cfg:        cfg,
		logger:     logger.With(slog.String(logging.FieldComponent, "export")),
	}, nil
}

// Export transcodes one span into its destination file. The destination is
// refused up front when it already exists and overwriting is disabled; no
// process is spawned in that case. Failures are recorded on the returned
// Result and never abort sibling spans. On any failure the destination path
// looks as if the span was never attempted.
func (e *Executor) Export(ctx context.Context, src asset.Asset, span Span, trackCount int) Result {
	started := time.Now()
	outputPath := OutputPath(e.cfg.OutputDir, e.cfg.NamingTemplate, span, trackCount)

	logger := e.logger.With(
		slog.Int(logging.FieldTrack, span.Index),
		slog.String(logging.FieldTitle, span.Title),
	)

	if !e.cfg.Overwrite {
		if _, err := os.Stat(outputPath); err == nil {
			failure := services.Wrap(services.ErrFileExists, "export", "prepare", outputPath, nil)
			logger.Warn("skipping track, destination exists", slog.String("path", outputPath))
			return e.failed(span, failure, started)
		} else if !errors.Is(err, os.ErrNotExist) {
			return e.failed(span, services.Wrap(services.ErrTranscode, "export", "prepare", outputPath, err), started)
		}
	}

	logger.Info("exporting track",
		slog.String("range", fmt.Sprintf("%.3f-%.3f", span.Start, span.End)),
		slog.String("path", outputPath),
	)

	err := e.transcoder.Extract(ctx, ffmpeg.Request{
		InputPath:       src.Path,
		OutputPath:      outputPath,
		StartSeconds:    span.Start,
		DurationSeconds: span.Duration(),
		BitrateKbps:     e.cfg.Bitrate,
	})
	if err != nil {
		logger.Error("track export failed", slog.Any("error", err))
		return e.failed(span, err, started)
	}

	logger.Info("track exported", slog.Duration("elapsed", time.Since(started)))
	return Result{
		Index:      span.Index,
		Title:      span.Title,
		OutputPath: outputPath,
		Status:     StatusSuccess,
		Elapsed:    time.Since(started),
	}
}

func (e *Executor) failed(span Span, err error, started time.Time) Result {
	return Result{
		Index:        span.Index,
		Title:        span.Title,
		Status:       StatusFailed,
		ErrorKind:    services.ErrorKind(err),
		ErrorMessage: err.Error(),
		Elapsed:      time.Since(started),
	}
}
