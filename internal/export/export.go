// Package export renders a normalized segment sequence into caption
// and lyric text formats. Every renderer is a pure function of its
// inputs; file placement belongs to the caller.
package export

import (
	"fmt"
	"strings"

	"github.com/askhade/lekha/internal/cue"
	"github.com/askhade/lekha/internal/segment"
)

// Format identifies a target text format.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatJSON Format = "json"
	FormatLRC  Format = "lrc"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatTTML Format = "ttml"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatTXT, FormatJSON, FormatLRC, FormatSRT, FormatVTT, FormatTTML:
		return Format(strings.ToLower(strings.TrimSpace(name))), nil
	default:
		return "", fmt.Errorf("unsupported format %q: use txt, json, lrc, srt, vtt, or ttml", name)
	}
}

// Extension returns the file extension for a format.
func Extension(f Format) string {
	return "." + string(f)
}

// Options select the text track and tune the cue-oriented renderers.
type Options struct {
	Kind segment.TextKind
	// Granularity only affects the VTT renderer, which tags per-word
	// timecodes in word mode.
	Granularity segment.Granularity
	Thresholds  cue.Thresholds
}

// DefaultOptions renders the original text track at line granularity.
func DefaultOptions() Options {
	return Options{
		Kind:        segment.Original,
		Granularity: segment.Line,
		Thresholds:  cue.DefaultThresholds(),
	}
}

// Render dispatches to the renderer for f.
func Render(f Format, segs []segment.Segment, opts Options) (string, error) {
	switch f {
	case FormatTXT:
		return Text(segs, opts.Kind), nil
	case FormatJSON:
		return JSON(segs, opts.Kind)
	case FormatLRC:
		return LRC(segs, opts.Kind), nil
	case FormatSRT:
		return SRT(segs, opts), nil
	case FormatVTT:
		return VTT(segs, opts), nil
	case FormatTTML:
		return TTML(segs, opts), nil
	default:
		return "", fmt.Errorf("unsupported format %q", f)
	}
}

// Text joins the selected texts with a blank line between segments.
func Text(segs []segment.Segment, kind segment.TextKind) string {
	parts := make([]string, 0, len(segs))
	for _, s := range segs {
		parts = append(parts, s.TextFor(kind))
	}
	return strings.Join(parts, "\n\n")
}
