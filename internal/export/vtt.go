package export

import (
	"fmt"
	"strings"

	"github.com/askhade/lekha/internal/cue"
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/textutil"
	"github.com/askhade/lekha/internal/timecode"
)

// VTT renders WebVTT cues, one per caption group, with hour-folding
// dot-millisecond timecodes. In word mode the original-language track
// carries an inline timecode tag before each token so players can
// highlight words as they are spoken. Word mode comes from the caller's
// granularity flag, not from the segment count.
func VTT(segs []segment.Segment, opts Options) string {
	groups := cue.BuildWithThresholds(segs, opts.Kind, opts.Thresholds)
	tagWords := opts.Granularity == segment.Word && opts.Kind == segment.Original

	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for _, g := range groups {
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			timecode.ClockFolded(g.Start()),
			timecode.ClockFolded(g.End())))

		var text string
		for _, m := range g.Members {
			part := textutil.CollapseNewlines(m.TextFor(opts.Kind))
			if tagWords {
				part = fmt.Sprintf("<%s>%s", timecode.ClockFolded(m.Start), part)
			}
			text = textutil.JoinAdjacent(text, part)
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
