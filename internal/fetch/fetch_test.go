package fetch_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"tracksplit/internal/fetch"
	"tracksplit/internal/services"
)

type stubDownloader struct {
	mu       sync.Mutex
	attempts int
	failures int
	result   fetch.Result
	err      error
}

func (s *stubDownloader) Download(ctx context.Context, url string) (fetch.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.attempts <= s.failures {
		return fetch.Result{}, s.err
	}
	result := s.result
	result.URL = url
	return result, nil
}

func newFetcher(t *testing.T, cfg fetch.Config, dl fetch.Downloader) *fetch.Fetcher {
	t.Helper()
	fetcher, err := fetch.New(cfg, nil, fetch.WithDownloader(dl), fetch.WithBackoff(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return fetcher
}

func TestFetchReturnsDownloadedResult(t *testing.T) {
	stub := &stubDownloader{result: fetch.Result{
		Path:        "/tmp/audio/Album.webm",
		Title:       "Album",
		Description: "1. Intro 0:00",
	}}
	fetcher := newFetcher(t, fetch.Config{OutputDir: t.TempDir()}, stub)

	result, err := fetcher.Fetch(context.Background(), "https://example.com/v")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if result.Path != "/tmp/audio/Album.webm" || result.Title != "Album" {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.URL != "https://example.com/v" {
		t.Fatalf("expected URL echoed back, got %q", result.URL)
	}
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	stub := &stubDownloader{
		failures: 2,
		err:      errors.New("network reset"),
		result:   fetch.Result{Path: "/tmp/a.webm", Title: "A"},
	}
	fetcher := newFetcher(t, fetch.Config{OutputDir: t.TempDir(), Retries: 2}, stub)

	result, err := fetcher.Fetch(context.Background(), "https://example.com/v")
	if err != nil {
		t.Fatalf("Fetch returned error after retries: %v", err)
	}
	if stub.attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", stub.attempts)
	}
	if result.Path != "/tmp/a.webm" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestFetchGivesUpAfterRetryBudget(t *testing.T) {
	stub := &stubDownloader{failures: 10, err: errors.New("HTTP 403")}
	fetcher := newFetcher(t, fetch.Config{OutputDir: t.TempDir(), Retries: 1}, stub)

	_, err := fetcher.Fetch(context.Background(), "https://example.com/v")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if stub.attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", stub.attempts)
	}
}

func TestFetchStopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubDownloader{failures: 10, err: context.Canceled}
	fetcher := newFetcher(t, fetch.Config{OutputDir: t.TempDir(), Retries: 5}, stub)

	_, err := fetcher.Fetch(ctx, "https://example.com/v")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled error, got %v", err)
	}
	if stub.attempts != 1 {
		t.Fatalf("cancellation must stop the attempt loop, got %d attempts", stub.attempts)
	}
}

func TestFetchRejectsEmptyURL(t *testing.T) {
	fetcher := newFetcher(t, fetch.Config{OutputDir: t.TempDir()}, &stubDownloader{})
	if _, err := fetcher.Fetch(context.Background(), ""); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestNewRequiresOutputDir(t *testing.T) {
	if _, err := fetch.New(fetch.Config{}, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}
