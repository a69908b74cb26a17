package audio

import (
	"context"
	"testing"
	"time"
)

func TestFileTypePredicates(t *testing.T) {
	tests := []struct {
		path  string
		video bool
		audio bool
	}{
		{"movie.mp4", true, false},
		{"movie.MKV", true, false},
		{"song.mp3", false, true},
		{"song.FLAC", false, true},
		{"notes.txt", false, false},
		{"noext", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsVideoFile(tt.path); got != tt.video {
				t.Errorf("IsVideoFile = %v, want %v", got, tt.video)
			}
			if got := IsAudioFile(tt.path); got != tt.audio {
				t.Errorf("IsAudioFile = %v, want %v", got, tt.audio)
			}
			if got := IsMediaFile(tt.path); got != (tt.video || tt.audio) {
				t.Errorf("IsMediaFile = %v", got)
			}
		})
	}
}

func TestChunkAudioRejectsBadDuration(t *testing.T) {
	if _, err := ChunkAudio(context.Background(), "in.mp3", 0, t.TempDir()); err == nil {
		t.Error("expected error for zero chunk duration")
	}
	if _, err := ChunkAudio(context.Background(), "in.mp3", -time.Second, t.TempDir()); err == nil {
		t.Error("expected error for negative chunk duration")
	}
}

func TestGetDurationMissingFile(t *testing.T) {
	if _, err := GetDuration("does-not-exist.mp3"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestTranscodeMissingInput(t *testing.T) {
	err := Transcode(context.Background(), "does-not-exist.mp4", "out.mp3", DefaultTranscodeOptions())
	if err == nil {
		t.Error("expected error for missing input")
	}
}
