// Package staging manages the directory holding fetched source files
// between download and split, including reclaiming disk space from old
// downloads and abandoned partial transcodes.
package staging

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"tracksplit/internal/logging"
	"tracksplit/internal/services/ffmpeg"
)

// CleanResult contains the outcome of a cleanup operation.
type CleanResult struct {
	Removed []string
	Errors  []CleanupError
}

// CleanupError pairs a file path with its cleanup error.
type CleanupError struct {
	Path  string
	Error error
}

// FileInfo describes one staged file.
type FileInfo struct {
	Name    string
	Path    string
	ModTime time.Time
	Size    int64
}

// CleanStale removes staged files older than maxAge. Partial leftovers
// (interrupted downloads and transcodes) are removed regardless of age; an
// orphaned partial always belongs to a run that no longer exists.
func CleanStale(stagingDir string, maxAge time.Duration, logger *slog.Logger) CleanResult {
	result := CleanResult{}
	if logger == nil {
		logger = logging.NewNop()
	}

	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return result
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if !os.IsNotExist(err) {
			result.Errors = append(result.Errors, CleanupError{Path: stagingDir, Error: err})
		}
		return result
	}

	cutoff := time.Now().Add(-maxAge)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(stagingDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			continue
		}

		stale := info.ModTime().Before(cutoff)
		if !stale && !isPartialLeftover(entry.Name()) {
			continue
		}

		if err := os.Remove(path); err != nil {
			result.Errors = append(result.Errors, CleanupError{Path: path, Error: err})
			logger.Warn("failed to remove staged file",
				slog.String("path", path),
				slog.Any("error", err),
			)
			continue
		}
		result.Removed = append(result.Removed, path)
		logger.Info("removed staged file",
			slog.String("path", path),
			slog.Duration("age", time.Since(info.ModTime())),
		)
	}

	return result
}

// isPartialLeftover matches ffmpeg's .partial outputs and yt-dlp's .part
// download fragments.
func isPartialLeftover(name string) bool {
	return ffmpeg.IsPartial(name) || strings.HasSuffix(name, ".part")
}

// ListFiles returns the staged files with their metadata, newest first.
func ListFiles(stagingDir string) ([]FileInfo, error) {
	stagingDir = strings.TrimSpace(stagingDir)
	if stagingDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Name:    entry.Name(),
			Path:    filepath.Join(stagingDir, entry.Name()),
			ModTime: info.ModTime(),
			Size:    info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.After(files[j].ModTime)
	})
	return files, nil
}
