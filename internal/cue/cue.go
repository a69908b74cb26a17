// Package cue partitions a normalized segment sequence into caption
// groups: short, complete lines that a player can show as one cue.
package cue

import (
	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/textutil"
)

// Group is an ordered, non-empty run of consecutive segments rendered
// as one caption or paragraph. Groups borrow the segments they were
// built from and live only for a single export call.
type Group struct {
	Members []segment.Segment
}

// Start returns the group's span start.
func (g Group) Start() float64 { return g.Members[0].Start }

// End returns the group's span end.
func (g Group) End() float64 { return g.Members[len(g.Members)-1].End }

// Thresholds are the grouping heuristics. They are tunable constants,
// not derived values.
type Thresholds struct {
	// PauseGap starts a new group when the silence between segments
	// exceeds it.
	PauseGap float64
	// MaxChars is the accumulated character budget of a group.
	MaxChars int
	// SoftGap is the smaller silence that, combined with an exceeded
	// character budget, still justifies a cut.
	SoftGap float64
}

// DefaultThresholds balances readability against over-fragmentation.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PauseGap: 0.8,
		MaxChars: 45,
		SoftGap:  0.3,
	}
}

// Build groups segments with DefaultThresholds.
func Build(segs []segment.Segment, kind segment.TextKind) []Group {
	return BuildWithThresholds(segs, kind, DefaultThresholds())
}

// BuildWithThresholds runs the greedy single-pass grouping. Segments
// are never reordered or dropped: concatenating all group members in
// order reproduces the input exactly.
func BuildWithThresholds(segs []segment.Segment, kind segment.TextKind, th Thresholds) []Group {
	if len(segs) == 0 {
		return nil
	}

	var groups []Group
	current := Group{Members: []segment.Segment{segs[0]}}
	chars := len([]rune(segs[0].TextFor(kind)))

	for _, s := range segs[1:] {
		prev := current.Members[len(current.Members)-1]
		if cutBefore(prev, s, chars, kind, th) {
			groups = append(groups, current)
			current = Group{Members: []segment.Segment{s}}
			chars = 0
		} else {
			current.Members = append(current.Members, s)
		}
		chars += len([]rune(s.TextFor(kind)))
	}

	return append(groups, current)
}

// cutBefore decides whether s opens a new group after prev.
func cutBefore(prev, s segment.Segment, groupChars int, kind segment.TextKind, th Thresholds) bool {
	if textutil.EndsSentence(prev.TextFor(kind)) {
		return true
	}
	gap := s.Start - prev.End
	if gap > th.PauseGap {
		return true
	}
	if groupChars > th.MaxChars &&
		(gap > th.SoftGap || textutil.EndsSoftPause(prev.TextFor(kind))) {
		return true
	}
	return false
}
