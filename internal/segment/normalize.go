package segment

import (
	"strings"

	"github.com/askhade/lekha/internal/timecode"
)

// Limits are the per-granularity repair constants applied by Normalize.
type Limits struct {
	// BackTolerance is how far a start may precede the previous end
	// before it is clamped forward.
	BackTolerance float64
	// MinDuration replaces zero or negative spans.
	MinDuration float64
	// MaxDuration caps a single span; anything longer shrinks to
	// ClampedDuration.
	MaxDuration     float64
	ClampedDuration float64
}

// DefaultLimits returns the repair constants for a granularity. Word
// tolerances are wider because token timestamps are noisier.
func DefaultLimits(g Granularity) Limits {
	if g == Word {
		return Limits{
			BackTolerance:   0.2,
			MinDuration:     0.1,
			MaxDuration:     3.0,
			ClampedDuration: 1.5,
		}
	}
	return Limits{
		BackTolerance:   0.1,
		MinDuration:     1.0,
		MaxDuration:     12.0,
		ClampedDuration: 8.0,
	}
}

// Flatten expands nested word records into the top-level sequence when
// word granularity is requested: a record with a non-empty words array
// is replaced by its children, otherwise it is kept as-is.
func Flatten(recs []RawRecord, g Granularity) []RawRecord {
	if g != Word {
		return recs
	}
	out := make([]RawRecord, 0, len(recs))
	for _, rec := range recs {
		if len(rec.Words) > 0 {
			out = append(out, rec.Words...)
		} else {
			out = append(out, rec)
		}
	}
	return out
}

// Normalize repairs a raw record sequence into validated Segments using
// DefaultLimits for the granularity.
func Normalize(recs []RawRecord, g Granularity) []Segment {
	return NormalizeWithLimits(recs, DefaultLimits(g))
}

// NormalizeWithLimits is a single forward pass: each start may only be
// clamped forward, so output times never regress. Once a value is
// repaired it is final; the pass never backtracks.
func NormalizeWithLimits(recs []RawRecord, lim Limits) []Segment {
	segs := make([]Segment, 0, len(recs))
	lastStart := -1.0
	lastEnd := 0.0

	for _, rec := range recs {
		start := timecode.Parse(rec.StartTime.String())
		end := timecode.Parse(rec.EndTime.String())

		// backward jump against the previous end
		if start < lastEnd-lim.BackTolerance {
			start = lastEnd
		}
		// causal ordering against the previous start
		if start < lastStart {
			start = lastStart
		}
		// zero or negative span
		if end <= start {
			end = start + lim.MinDuration
		}
		// runaway span absorbing the tail
		if lim.MaxDuration > 0 && end-start > lim.MaxDuration {
			end = start + lim.ClampedDuration
		}

		lastStart = start
		lastEnd = end

		segs = append(segs, Segment{
			Start: start,
			End:   end,
			Text:  strings.TrimSpace(rec.Text),
		})
	}

	return segs
}
