// Package ffmpeg resolves the ffmpeg and ffprobe executables used by
// the audio package.
package ffmpeg

import (
	"errors"
	"os"
	"os/exec"
	"sync"
)

// BinaryPaths holds the resolved executable locations.
type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	resolveOnce sync.Once
	resolveErr  error
	resolved    BinaryPaths
)

// Resolve locates ffmpeg and ffprobe, preferring the LEKHA_FFMPEG_PATH
// and LEKHA_FFPROBE_PATH overrides and falling back to PATH lookup.
// Resolution runs once per process.
func Resolve() (BinaryPaths, error) {
	resolveOnce.Do(func() {
		resolved, resolveErr = resolve()
	})
	return resolved, resolveErr
}

// FFmpegPath returns the resolved ffmpeg executable.
func FFmpegPath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

// FFprobePath returns the resolved ffprobe executable.
func FFprobePath() (string, error) {
	paths, err := Resolve()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func resolve() (BinaryPaths, error) {
	ffmpegPath := os.Getenv("LEKHA_FFMPEG_PATH")
	ffprobePath := os.Getenv("LEKHA_FFPROBE_PATH")

	if ffmpegPath == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			ffmpegPath = found
		}
	}
	if ffprobePath == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			ffprobePath = found
		}
	}

	if ffmpegPath == "" || ffprobePath == "" {
		return BinaryPaths{}, errors.New(
			"ffmpeg and ffprobe are required: install them or set LEKHA_FFMPEG_PATH/LEKHA_FFPROBE_PATH")
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}
