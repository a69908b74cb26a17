package export

import (
	"strings"

	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/textutil"
	"github.com/askhade/lekha/internal/timecode"
)

// LRC renders one lyric line per segment: a [MM:SS.CC] tag followed
// immediately by the newline-collapsed text.
func LRC(segs []segment.Segment, kind segment.TextKind) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString("[")
		sb.WriteString(timecode.ClockLRC(s.Start))
		sb.WriteString("]")
		sb.WriteString(textutil.CollapseNewlines(s.TextFor(kind)))
		sb.WriteString("\n")
	}
	return sb.String()
}
