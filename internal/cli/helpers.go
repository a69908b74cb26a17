package cli

import (
	"fmt"
	"strings"

	"github.com/askhade/lekha/internal/config"
	"github.com/askhade/lekha/internal/export"
	"github.com/askhade/lekha/internal/segment"
)

// parseGranularity maps the --granularity flag value.
func parseGranularity(s string) (segment.Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "line":
		return segment.Line, nil
	case "word":
		return segment.Word, nil
	default:
		return segment.Line, fmt.Errorf("unsupported granularity %q: use line or word", s)
	}
}

// parseTextKind maps the --text flag value.
func parseTextKind(s string) (segment.TextKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "original":
		return segment.Original, nil
	case "translated":
		return segment.Translated, nil
	default:
		return segment.Original, fmt.Errorf("unsupported text track %q: use original or translated", s)
	}
}

// exportOptions assembles renderer options from the shared config.
func exportOptions(cfg config.Config, kind segment.TextKind, g segment.Granularity) export.Options {
	return export.Options{
		Kind:        kind,
		Granularity: g,
		Thresholds:  cfg.Thresholds(),
	}
}
