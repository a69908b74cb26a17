package cue

import (
	"strings"
	"testing"

	"github.com/askhade/lekha/internal/segment"
)

func seg(start, end float64, text string) segment.Segment {
	return segment.Segment{Start: start, End: end, Text: text}
}

func TestBuildSingleGroup(t *testing.T) {
	// small gaps, no sentence ends, under the character budget
	segs := []segment.Segment{
		seg(0.0, 1.0, "never"),
		seg(1.2, 2.0, "gonna"),
		seg(2.2, 3.0, "give"),
	}

	groups := Build(segs, segment.Original)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Members) != 3 {
		t.Errorf("expected 3 members, got %d", len(groups[0].Members))
	}
	if groups[0].Start() != 0.0 || groups[0].End() != 3.0 {
		t.Errorf("span = [%v, %v], want [0, 3]", groups[0].Start(), groups[0].End())
	}
}

func TestBuildCutsOnSentenceEnd(t *testing.T) {
	segs := []segment.Segment{
		seg(0, 1, "First sentence."),
		seg(1.1, 2, "Second"),
		seg(2.1, 3, "sentence."),
	}

	groups := Build(segs, segment.Original)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0].Members) != 1 || len(groups[1].Members) != 2 {
		t.Errorf("member counts = %d, %d", len(groups[0].Members), len(groups[1].Members))
	}
}

func TestBuildCutsOnPause(t *testing.T) {
	segs := []segment.Segment{
		seg(0, 1, "before"),
		seg(2.5, 3, "after"),
	}

	groups := Build(segs, segment.Original)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups across the pause, got %d", len(groups))
	}
}

func TestBuildCharacterBudget(t *testing.T) {
	// budget exceeded but the seam has no gap and no soft pause: keep going
	tight := []segment.Segment{
		seg(0, 1, strings.Repeat("a", 50)),
		seg(1.0, 2, "more"),
	}
	if groups := Build(tight, segment.Original); len(groups) != 1 {
		t.Errorf("seamless: expected 1 group, got %d", len(groups))
	}

	// budget exceeded and a soft gap at the seam: cut
	gapped := []segment.Segment{
		seg(0, 1, strings.Repeat("a", 50)),
		seg(1.5, 2, "more"),
	}
	if groups := Build(gapped, segment.Original); len(groups) != 2 {
		t.Errorf("gapped: expected 2 groups, got %d", len(groups))
	}

	// budget exceeded and a trailing comma: cut even without a gap
	comma := []segment.Segment{
		seg(0, 1, strings.Repeat("a", 50)+","),
		seg(1.0, 2, "more"),
	}
	if groups := Build(comma, segment.Original); len(groups) != 2 {
		t.Errorf("comma: expected 2 groups, got %d", len(groups))
	}
}

func TestBuildPreservesOrderAndCompleteness(t *testing.T) {
	segs := []segment.Segment{
		seg(0, 1, "a."),
		seg(1.1, 2, "b"),
		seg(3.5, 4, "c,"),
		seg(4.1, 5, "d"),
	}

	groups := Build(segs, segment.Original)

	var flat []segment.Segment
	for _, g := range groups {
		flat = append(flat, g.Members...)
	}
	if len(flat) != len(segs) {
		t.Fatalf("flattened %d members, want %d", len(flat), len(segs))
	}
	for i := range segs {
		if flat[i].Text != segs[i].Text {
			t.Errorf("member %d = %q, want %q", i, flat[i].Text, segs[i].Text)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	if groups := Build(nil, segment.Original); groups != nil {
		t.Errorf("expected nil groups, got %v", groups)
	}
}

func TestBuildTranslatedTrack(t *testing.T) {
	// the cut decision reads the rendered track, not the original
	segs := []segment.Segment{
		{Start: 0, End: 1, Text: "no punctuation", TranslatedText: "Oración."},
		{Start: 1.1, End: 2, Text: "here either", TranslatedText: "Sigue"},
	}

	if groups := Build(segs, segment.Translated); len(groups) != 2 {
		t.Errorf("expected cut after translated sentence end, got %d groups", len(groups))
	}
	if groups := Build(segs, segment.Original); len(groups) != 1 {
		t.Errorf("original track has no cut, got %d groups", len(groups))
	}
}
