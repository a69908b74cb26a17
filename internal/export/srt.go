package export

import (
	"fmt"
	"strings"

	"github.com/askhade/lekha/internal/cue"
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/textutil"
	"github.com/askhade/lekha/internal/timecode"
)

// SRT renders numbered cues with comma-millisecond timecodes, one cue
// per caption group.
func SRT(segs []segment.Segment, opts Options) string {
	groups := cue.BuildWithThresholds(segs, opts.Kind, opts.Thresholds)

	var sb strings.Builder
	for i, g := range groups {
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			timecode.ClockSRT(g.Start()),
			timecode.ClockSRT(g.End())))
		sb.WriteString(joinMembers(g, opts.Kind))
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// joinMembers concatenates a group's member texts with CJK-aware
// spacing at each seam.
func joinMembers(g cue.Group, kind segment.TextKind) string {
	var text string
	for _, m := range g.Members {
		text = textutil.JoinAdjacent(text, textutil.CollapseNewlines(m.TextFor(kind)))
	}
	return text
}
