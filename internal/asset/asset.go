// Package asset describes the probed source audio file an export run
// consumes. An Asset is immutable once loaded; the export engine only ever
// borrows it read-only.
package asset

import (
	"context"
	"fmt"
	"math"
	"os"

	"tracksplit/internal/media/ffprobe"
	"tracksplit/internal/services"
	"tracksplit/internal/textutil"
)

// Asset is one continuous audio file on local storage, described by probing.
type Asset struct {
	Path            string
	DurationSeconds float64
	Codec           string
	SampleRate      int
	Channels        int
	SizeBytes       int64
}

// Load stats and probes an audio file. It fails when the file is missing,
// carries no audio stream, or reports no usable duration.
func Load(ctx context.Context, ffprobeBinary, path string) (Asset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Asset{}, services.Wrap(services.ErrConfiguration, "asset", "load", "source file", err)
	}
	if info.IsDir() {
		return Asset{}, services.Wrap(services.ErrConfiguration, "asset", "load",
			fmt.Sprintf("%s is a directory", path), nil)
	}

	probed, err := ffprobe.Inspect(ctx, ffprobeBinary, path)
	if err != nil {
		return Asset{}, services.Wrap(services.ErrExternalTool, "asset", "probe", path, err)
	}
	stream, ok := probed.FirstAudioStream()
	if !ok {
		return Asset{}, services.Wrap(services.ErrConfiguration, "asset", "probe",
			fmt.Sprintf("%s has no audio stream", path), nil)
	}
	duration := probed.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		return Asset{}, services.Wrap(services.ErrConfiguration, "asset", "probe",
			fmt.Sprintf("%s reports no usable duration", path), nil)
	}

	return Asset{
		Path:            path,
		DurationSeconds: duration,
		Codec:           stream.CodecName,
		SampleRate:      probed.SampleRate(),
		Channels:        stream.Channels,
		SizeBytes:       probed.SizeBytes(),
	}, nil
}

// DisplayTitle derives a human-readable album title from the asset's file name.
func (a Asset) DisplayTitle() string {
	return textutil.DeriveAlbumTitle(a.Path)
}
