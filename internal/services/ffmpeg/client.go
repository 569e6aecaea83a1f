package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"tracksplit/internal/services"
)

// partialSuffix marks in-flight output files. The mp3 muxer is forced
// explicitly because the suffix hides the real extension from ffmpeg.
const partialSuffix = ".partial"

// Request describes one seek-bounded extraction.
type Request struct {
	InputPath       string
	OutputPath      string
	StartSeconds    float64
	DurationSeconds float64
	BitrateKbps     int
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) (output string, err error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps ffmpeg CLI interactions.
type Client struct {
	binary string
	exec   Executor
}

// New constructs an ffmpeg client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("ffmpeg binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Extract re-encodes the [start, start+duration) slice of the input into an
// MP3 file at the requested path. On any failure the partial output is
// removed and the destination is left untouched, as if the track was never
// attempted. Context deadline expiry is classified as a timeout; all other
// process failures as transcode errors carrying ffmpeg's diagnostic text.
func (c *Client) Extract(ctx context.Context, req Request) error {
	if err := validateRequest(req); err != nil {
		return services.Wrap(services.ErrConfiguration, "ffmpeg", "extract", "", err)
	}

	partialPath := req.OutputPath + partialSuffix
	args := buildArgs(req, partialPath)

	output, err := c.exec.Run(ctx, c.binary, args)
	if err != nil {
		removePartial(partialPath)
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			return services.Wrap(services.ErrTimeout, "ffmpeg", "extract", req.OutputPath, ctx.Err())
		case errors.Is(ctx.Err(), context.Canceled):
			return fmt.Errorf("ffmpeg: extract %s: %w", req.OutputPath, context.Canceled)
		default:
			detail := strings.TrimSpace(output)
			if detail == "" {
				detail = err.Error()
			}
			return services.Wrap(services.ErrTranscode, "ffmpeg", "extract", detail, err)
		}
	}

	if err := os.Rename(partialPath, req.OutputPath); err != nil {
		removePartial(partialPath)
		return services.Wrap(services.ErrTranscode, "ffmpeg", "finalize", req.OutputPath, err)
	}
	return nil
}

func validateRequest(req Request) error {
	if strings.TrimSpace(req.InputPath) == "" {
		return errors.New("input path required")
	}
	if strings.TrimSpace(req.OutputPath) == "" {
		return errors.New("output path required")
	}
	if req.StartSeconds < 0 {
		return fmt.Errorf("start offset must not be negative, got %v", req.StartSeconds)
	}
	if req.DurationSeconds <= 0 {
		return fmt.Errorf("duration must be positive, got %v", req.DurationSeconds)
	}
	if req.BitrateKbps <= 0 {
		return fmt.Errorf("bitrate must be positive, got %d", req.BitrateKbps)
	}
	return nil
}

func buildArgs(req Request, partialPath string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-v", "error",
		"-ss", formatSeconds(req.StartSeconds),
		"-t", formatSeconds(req.DurationSeconds),
		"-i", req.InputPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-b:a", strconv.Itoa(req.BitrateKbps) + "k",
		"-f", "mp3",
		"-y",
		partialPath,
	}
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64)
}

func removePartial(path string) {
	// Leave a stale partial rather than masking the original failure.
	_ = os.Remove(path)
}

// PartialPath returns the in-flight file name used for a destination, so
// callers can sweep stale partials from interrupted runs.
func PartialPath(outputPath string) string {
	return outputPath + partialSuffix
}

// IsPartial reports whether a directory entry is an in-flight output file.
func IsPartial(name string) bool {
	return strings.HasSuffix(filepath.Base(name), partialSuffix)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	return string(output), err
}
