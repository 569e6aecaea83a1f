package ffmpeg_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tracksplit/internal/services"
	"tracksplit/internal/services/ffmpeg"
)

type stubExecutor struct {
	output  string
	err     error
	calls   int
	args    [][]string
	onRun   func(ctx context.Context, args []string) error
	written bool
}

func (s *stubExecutor) Run(ctx context.Context, binary string, args []string) (string, error) {
	s.calls++
	s.args = append(s.args, append([]string(nil), args...))
	if s.onRun != nil {
		if err := s.onRun(ctx, args); err != nil {
			return s.output, err
		}
	}
	if s.err != nil {
		return s.output, s.err
	}
	// Simulate ffmpeg writing the requested output file.
	if err := os.WriteFile(args[len(args)-1], []byte("mp3-bytes"), 0o644); err != nil {
		return "", err
	}
	s.written = true
	return s.output, nil
}

func request(dir string) ffmpeg.Request {
	return ffmpeg.Request{
		InputPath:       filepath.Join(dir, "source.webm"),
		OutputPath:      filepath.Join(dir, "01. Intro.mp3"),
		StartSeconds:    30,
		DurationSeconds: 120.5,
		BitrateKbps:     192,
	}
}

func TestExtractBuildsSeekBoundedCommand(t *testing.T) {
	tmp := t.TempDir()
	exec := &stubExecutor{}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	req := request(tmp)
	if err := client.Extract(context.Background(), req); err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}

	args := strings.Join(exec.args[0], " ")
	for _, fragment := range []string{
		"-ss 30.000",
		"-t 120.500",
		"-i " + req.InputPath,
		"-acodec libmp3lame",
		"-b:a 192k",
		"-f mp3",
	} {
		if !strings.Contains(args, fragment) {
			t.Fatalf("expected %q in args: %s", fragment, args)
		}
	}
	if !strings.HasSuffix(exec.args[0][len(exec.args[0])-1], ".partial") {
		t.Fatalf("expected partial output target, got %q", exec.args[0][len(exec.args[0])-1])
	}
	if strings.Index(args, "-ss") > strings.Index(args, "-i") {
		t.Fatalf("seek must precede input for bounded work: %s", args)
	}
	if _, err := os.Stat(req.OutputPath); err != nil {
		t.Fatalf("expected finalized output file: %v", err)
	}
	if _, err := os.Stat(ffmpeg.PartialPath(req.OutputPath)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected partial to be renamed away, got err=%v", err)
	}
}

func TestExtractClassifiesProcessFailure(t *testing.T) {
	tmp := t.TempDir()
	exec := &stubExecutor{
		err:    errors.New("exit status 1"),
		output: "Invalid data found when processing input",
		onRun: func(_ context.Context, args []string) error {
			// Simulate a partial file left behind by a failed encode.
			return os.WriteFile(args[len(args)-1], []byte("junk"), 0o644)
		},
	}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	req := request(tmp)
	extractErr := client.Extract(context.Background(), req)
	if !errors.Is(extractErr, services.ErrTranscode) {
		t.Fatalf("expected transcode error, got %v", extractErr)
	}
	if !strings.Contains(extractErr.Error(), "Invalid data found") {
		t.Fatalf("expected diagnostic text in error, got %v", extractErr)
	}
	if _, err := os.Stat(ffmpeg.PartialPath(req.OutputPath)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected partial cleanup, got err=%v", err)
	}
	if _, err := os.Stat(req.OutputPath); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("destination must be untouched on failure, got err=%v", err)
	}
}

func TestExtractClassifiesTimeout(t *testing.T) {
	tmp := t.TempDir()
	exec := &stubExecutor{
		onRun: func(ctx context.Context, _ []string) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	extractErr := client.Extract(ctx, request(tmp))
	if !errors.Is(extractErr, services.ErrTimeout) {
		t.Fatalf("expected timeout error, got %v", extractErr)
	}
}

func TestExtractClassifiesCancellation(t *testing.T) {
	tmp := t.TempDir()
	exec := &stubExecutor{
		onRun: func(ctx context.Context, _ []string) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(exec))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	extractErr := client.Extract(ctx, request(tmp))
	if !errors.Is(extractErr, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", extractErr)
	}
}

func TestExtractRejectsInvalidRequests(t *testing.T) {
	client, err := ffmpeg.New("ffmpeg", ffmpeg.WithExecutor(&stubExecutor{}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	cases := []ffmpeg.Request{
		{OutputPath: "out.mp3", StartSeconds: 0, DurationSeconds: 10, BitrateKbps: 192},
		{InputPath: "in", StartSeconds: 0, DurationSeconds: 10, BitrateKbps: 192},
		{InputPath: "in", OutputPath: "out.mp3", StartSeconds: -1, DurationSeconds: 10, BitrateKbps: 192},
		{InputPath: "in", OutputPath: "out.mp3", StartSeconds: 0, DurationSeconds: 0, BitrateKbps: 192},
		{InputPath: "in", OutputPath: "out.mp3", StartSeconds: 0, DurationSeconds: 10, BitrateKbps: 0},
	}
	for i, req := range cases {
		if err := client.Extract(context.Background(), req); !errors.Is(err, services.ErrConfiguration) {
			t.Fatalf("case %d: expected configuration error, got %v", i, err)
		}
	}
}

func TestNewRequiresBinary(t *testing.T) {
	if _, err := ffmpeg.New("  "); err == nil {
		t.Fatal("expected error for empty binary")
	}
}
