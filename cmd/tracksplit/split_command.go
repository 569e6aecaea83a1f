package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"tracksplit/internal/asset"
	"tracksplit/internal/config"
	"tracksplit/internal/deps"
	"tracksplit/internal/export"
	"tracksplit/internal/fetch"
	"tracksplit/internal/marker"
	"tracksplit/internal/services/ffmpeg"
	"tracksplit/internal/tags"
)

type splitOptions struct {
	input       string
	url         string
	markersPath string
	album       string
	artist      string
	bitrate     int
	overwrite   bool
	concurrency int
	timeoutSec  int
	jsonOutput  bool
}

func newSplitCommand(ctx *commandContext) *cobra.Command {
	opts := &splitOptions{}

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split one audio file into per-track MP3s at time markers",
		Long: `Split validates the given time markers against the source audio, then
exports one MP3 per track with ID3 tags. Markers come from a tracklist file
(--markers, "-" for stdin) or, when fetching by URL, from the source's own
description. Per-track failures are reported individually and never abort
sibling tracks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Local audio file to split")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "Remote source URL to fetch and split")
	cmd.Flags().StringVarP(&opts.markersPath, "markers", "m", "", "Tracklist file with one track per line (\"-\" reads stdin)")
	cmd.Flags().StringVar(&opts.album, "album", "", "Album tag for exported tracks (default: source title)")
	cmd.Flags().StringVar(&opts.artist, "artist", "", "Artist tag for exported tracks")
	cmd.Flags().IntVar(&opts.bitrate, "bitrate", 0, "MP3 bitrate in kbps (default: configuration value)")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Replace existing output files")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Simultaneous transcodes (default: configuration value)")
	cmd.Flags().IntVar(&opts.timeoutSec, "timeout", -1, "Per-track timeout in seconds, 0 disables (default: configuration value)")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Emit the run report as JSON")

	return cmd
}

func runSplit(cmd *cobra.Command, ctx *commandContext, opts *splitOptions) error {
	if (opts.input == "") == (opts.url == "") {
		return errors.New("exactly one of --input or --url is required")
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	if err := deps.MissingRequired(deps.CheckBinaries(deps.Requirements(cfg))); err != nil {
		return err
	}

	lock := flock.New(filepath.Join(cfg.Paths.LogDir, "tracksplit.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire split lock: %w", err)
	}
	if !locked {
		return errors.New("another split run is already in progress")
	}
	defer func() { _ = lock.Unlock() }()

	inputPath := opts.input
	description := ""
	album := opts.album
	if opts.url != "" {
		fetched, err := fetchSource(cmd, cfg, logger, opts.url)
		if err != nil {
			return err
		}
		inputPath = fetched.Path
		description = fetched.Description
		if album == "" {
			album = fetched.Title
		}
	}

	markers, err := resolveMarkers(opts.markersPath, description)
	if err != nil {
		return err
	}

	src, err := asset.Load(cmd.Context(), cfg.FFprobeBinary(), inputPath)
	if err != nil {
		return err
	}

	client, err := ffmpeg.New(cfg.FFmpegBinary())
	if err != nil {
		return err
	}

	executor, err := export.NewExecutor(client, export.ExecutorConfig{
		OutputDir:      cfg.Paths.OutputDir,
		NamingTemplate: cfg.Export.NamingTemplate,
		Bitrate:        effectiveBitrate(cfg, opts),
		Overwrite:      opts.overwrite || cfg.Export.Overwrite,
	}, logger)
	if err != nil {
		return err
	}

	coordinator, err := export.NewCoordinator(executor, tags.Apply, export.CoordinatorConfig{
		MaxConcurrency: effectiveConcurrency(cfg, opts),
		PerSpanTimeout: effectiveTimeout(cfg, opts),
		Album:          album,
		Artist:         opts.artist,
	}, logger)
	if err != nil {
		return err
	}

	report, runErr := coordinator.Run(cmd.Context(), src, markers)
	if runErr != nil && report.RunID == "" {
		return runErr
	}

	recordHistory(cmd, ctx, logger, report)

	if opts.jsonOutput {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else {
		renderReport(cmd.OutOrStdout(), report)
	}

	if runErr != nil {
		return runErr
	}
	if !report.Success {
		_, _, failed := report.Counts()
		return fmt.Errorf("%d of %d tracks failed", failed, len(report.Results))
	}
	return nil
}

func fetchSource(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, url string) (fetch.Result, error) {
	fetcher, err := fetch.New(fetch.Config{
		OutputDir:         cfg.Paths.StagingDir,
		Retries:           cfg.Fetch.Retries,
		RestrictFilenames: cfg.Fetch.RestrictFilenames,
	}, logger)
	if err != nil {
		return fetch.Result{}, err
	}
	return fetcher.Fetch(cmd.Context(), url)
}

// resolveMarkers prefers an explicit tracklist file and falls back to the
// fetched source's description text.
func resolveMarkers(markersPath, description string) ([]marker.Marker, error) {
	if markersPath != "" {
		text, err := readMarkersInput(markersPath)
		if err != nil {
			return nil, err
		}
		return marker.ParseTracklist(text), nil
	}
	if strings.TrimSpace(description) != "" {
		return marker.ParseTracklist(description), nil
	}
	return nil, nil
}

func readMarkersInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read markers from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read markers file: %w", err)
	}
	return string(data), nil
}

func effectiveBitrate(cfg *config.Config, opts *splitOptions) int {
	if opts.bitrate > 0 {
		return opts.bitrate
	}
	return cfg.Export.Bitrate
}

func effectiveConcurrency(cfg *config.Config, opts *splitOptions) int {
	if opts.concurrency > 0 {
		return opts.concurrency
	}
	return cfg.Export.MaxConcurrency
}

func effectiveTimeout(cfg *config.Config, opts *splitOptions) time.Duration {
	seconds := cfg.Export.PerSpanTimeoutSeconds
	if opts.timeoutSec >= 0 {
		seconds = opts.timeoutSec
	}
	return time.Duration(seconds) * time.Second
}

func recordHistory(cmd *cobra.Command, ctx *commandContext, logger *slog.Logger, report export.Report) {
	if report.RunID == "" {
		return
	}
	store, err := ctx.openHistory()
	if err != nil {
		logger.Warn("history unavailable", slog.Any("error", err))
		return
	}
	defer store.Close()
	if err := store.RecordRun(cmd.Context(), report); err != nil {
		logger.Warn("failed to record run history", slog.Any("error", err))
	}
}

func renderReport(out io.Writer, report export.Report) {
	rows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		detail := result.OutputPath
		if result.Status != export.StatusSuccess && result.ErrorKind != "" {
			detail = result.ErrorKind
			if result.ErrorMessage != "" {
				detail += ": " + result.ErrorMessage
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", result.Index),
			result.Title,
			string(result.Status),
			result.Elapsed.Round(100 * time.Millisecond).String(),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Title", "Status", "Time", "Output / Error"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	))

	exported, degraded, failed := report.Counts()
	fmt.Fprintf(out, "Album: %s\n", report.Album)
	fmt.Fprintf(out, "Exported %d/%d tracks", exported+degraded, len(report.Results))
	if degraded > 0 {
		fmt.Fprintf(out, " (%d without tags)", degraded)
	}
	if failed > 0 {
		fmt.Fprintf(out, ", %d failed", failed)
	}
	fmt.Fprintf(out, " in %s\n", report.Elapsed.Round(100*time.Millisecond))
}
