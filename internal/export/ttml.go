package export

import (
	"fmt"
	"strings"

	"github.com/askhade/lekha/internal/cue"
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/textutil"
	"github.com/askhade/lekha/internal/timecode"
)

// TTML renders a timed-text markup document: one <p> per caption group
// carrying the group span, one <span> per member carrying its own span.
// Timestamps are always the fixed HH:MM:SS.mmm form regardless of how
// the input clock looked.
func TTML(segs []segment.Segment, opts Options) string {
	kind := opts.Kind
	groups := cue.BuildWithThresholds(segs, kind, opts.Thresholds)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="utf-8"?>` + "\n")
	sb.WriteString(`<tt xmlns="http://www.w3.org/ns/ttml">` + "\n")
	sb.WriteString("  <body>\n    <div>\n")

	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("      <p begin=%q end=%q>",
			timecode.Clock(g.Start()),
			timecode.Clock(g.End())))

		for i, m := range g.Members {
			text := textutil.CollapseNewlines(m.TextFor(kind))
			if i > 0 {
				prev := textutil.CollapseNewlines(g.Members[i-1].TextFor(kind))
				if needsSpace(prev, text) {
					sb.WriteString(" ")
				}
			}
			sb.WriteString(fmt.Sprintf("<span begin=%q end=%q>%s</span>",
				timecode.Clock(m.Start),
				timecode.Clock(m.End),
				escapeXML(text)))
		}
		sb.WriteString("</p>\n")
	}

	sb.WriteString("    </div>\n  </body>\n</tt>\n")
	return sb.String()
}

// needsSpace applies the same seam rule as textutil.JoinAdjacent but
// for text split across markup spans.
func needsSpace(left, right string) bool {
	return textutil.JoinAdjacent(left, right) != left+right
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}
