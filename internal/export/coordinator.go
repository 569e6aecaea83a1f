package export

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"tracksplit/internal/asset"
	"tracksplit/internal/logging"
	"tracksplit/internal/marker"
	"tracksplit/internal/services"
	"tracksplit/internal/tags"
)

// TagFunc applies metadata to one exported file. tags.Apply satisfies it.
type TagFunc func(path string, track tags.Track) error

// CoordinatorConfig carries run-level orchestration settings.
type CoordinatorConfig struct {
	// MaxConcurrency bounds simultaneous transcodes; minimum 1.
	MaxConcurrency int
	// PerSpanTimeout bounds each span's transcode; 0 disables it.
	PerSpanTimeout time.Duration
	// Album overrides the album tag; empty derives it from the source name.
	Album string
	// Artist is optional and written through to tags when set.
	Artist string
}

// Coordinator orchestrates validation, span resolution, per-span export,
// and tagging for one asset, aggregating the run report.
type Coordinator struct {
	executor *Executor
	tag      TagFunc
	cfg      CoordinatorConfig
	logger   *slog.Logger
}

// NewCoordinator constructs a coordinator. A nil tag function disables
// metadata writing (results are then plain successes).
func NewCoordinator(executor *Executor, tag TagFunc, cfg CoordinatorConfig, logger *slog.Logger) (*Coordinator, error) {
	if executor == nil {
		return nil, errors.New("coordinator requires an executor")
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		executor: executor,
		tag:      tag,
		cfg:      cfg,
		logger:   logger.With(slog.String(logging.FieldComponent, "export")),
	}, nil
}

// Run validates the marker snapshot against the asset, then exports every
// resolved span. Pre-flight validation failures reject the run before any
// file is written. Per-span failures are recorded in the report and do not
// stop sibling spans. The report's results are always in span-index order,
// independent of completion order. On cancellation the report covers every
// span (unattempted spans are marked canceled) and the context error is
// returned alongside it.
func (c *Coordinator) Run(ctx context.Context, src asset.Asset, markers []marker.Marker) (Report, error) {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	logger := c.logger.With(slog.String(logging.FieldRunID, runID))
	started := time.Now()

	validated, err := marker.Validate(markers, src.DurationSeconds)
	if err != nil {
		logger.Error("marker validation failed", slog.Any("error", err))
		return Report{}, err
	}

	spans := Resolve(validated)
	if err := distinctOutputPaths(c.executor.cfg.OutputDir, c.executor.cfg.NamingTemplate, spans); err != nil {
		logger.Error("output path collision", slog.Any("error", err))
		return Report{}, err
	}

	album := c.cfg.Album
	if album == "" {
		album = src.DisplayTitle()
	}

	logger.Info("starting export run",
		slog.String(logging.FieldSource, src.Path),
		slog.String("album", album),
		slog.Int("tracks", len(spans)),
		slog.Int("concurrency", c.cfg.MaxConcurrency),
	)

	results := make([]Result, len(spans))
	jobs := make(chan Span)
	var wg sync.WaitGroup

	workers := c.cfg.MaxConcurrency
	if workers > len(spans) {
		workers = len(spans)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for span := range jobs {
				// Distinct index per span; no locking needed.
				results[span.Index-1] = c.processSpan(ctx, src, span, len(spans), album)
			}
		}()
	}

feed:
	for _, span := range spans {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- span:
		}
	}
	close(jobs)
	wg.Wait()

	for i := range results {
		if results[i].Index == 0 {
			results[i] = canceledResult(spans[i])
		}
	}

	report := Report{
		RunID:      runID,
		SourcePath: src.Path,
		Album:      album,
		Results:    results,
		StartedAt:  started,
		Elapsed:    time.Since(started),
	}
	_, _, failed := report.Counts()
	report.Success = failed == 0

	logger.Info("export run finished",
		slog.Bool("success", report.Success),
		slog.Int("failed", failed),
		slog.Duration("elapsed", report.Elapsed),
	)

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (c *Coordinator) processSpan(ctx context.Context, src asset.Asset, span Span, trackCount int, album string) Result {
	// Cooperative cancellation check before committing to a transcode.
	if ctx.Err() != nil {
		return canceledResult(span)
	}

	trackCtx := services.WithTrack(ctx, span.Index)
	if c.cfg.PerSpanTimeout > 0 {
		var cancel context.CancelFunc
		trackCtx, cancel = context.WithTimeout(trackCtx, c.cfg.PerSpanTimeout)
		defer cancel()
	}

	result := c.executor.Export(trackCtx, src, span, trackCount)
	if result.Status != StatusSuccess || c.tag == nil {
		return result
	}

	tagErr := c.tag(result.OutputPath, tags.Track{
		Title:  span.Title,
		Index:  span.Index,
		Total:  trackCount,
		Album:  album,
		Artist: c.cfg.Artist,
	})
	if tagErr != nil {
		c.logger.Warn("tagging failed, keeping exported audio",
			slog.Int(logging.FieldTrack, span.Index),
			slog.Any("error", tagErr),
		)
		result.Status = StatusDegraded
		result.ErrorKind = services.ErrorKind(tagErr)
		result.ErrorMessage = tagErr.Error()
	}
	return result
}

func canceledResult(span Span) Result {
	return Result{
		Index:        span.Index,
		Title:        span.Title,
		Status:       StatusFailed,
		ErrorKind:    services.ErrorKind(context.Canceled),
		ErrorMessage: context.Canceled.Error(),
	}
}
