package ffprobe

import (
	"math"
	"testing"
)

func TestParseAndHelpers(t *testing.T) {
	payload := []byte(`{
  "streams": [
    {"index": 0, "codec_type": "audio", "codec_name": "opus", "sample_rate": "48000", "channels": 2}
  ],
  "format": {"filename": "in.webm", "nb_streams": 1, "duration": "2931.40", "size": "48100200", "format_name": "matroska,webm"}
}`)
	result, err := Parse(payload)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("expected 1 audio stream, got %d", result.AudioStreamCount())
	}
	stream, ok := result.FirstAudioStream()
	if !ok || stream.CodecName != "opus" || stream.Channels != 2 {
		t.Fatalf("unexpected audio stream: %+v", stream)
	}
	if result.DurationSeconds() != 2931.40 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 48100200 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if result.SampleRate() != 48000 {
		t.Fatalf("unexpected sample rate: %d", result.SampleRate())
	}
}

func TestHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Streams: []Stream{{CodecType: "audio", SampleRate: "nope"}},
		Format:  Format{Duration: "bad", Size: "-1"},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.SampleRate() != 0 {
		t.Fatalf("expected sample rate 0, got %d", result.SampleRate())
	}
}

func TestParseRejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte("{")); err == nil {
		t.Fatal("expected parse error")
	}
}
