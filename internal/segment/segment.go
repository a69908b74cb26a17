// Package segment defines the canonical timed-text unit and the
// normalization pass that makes an unreliable model transcript safe for
// downstream renderers.
package segment

import (
	"encoding/json"
	"strings"
)

// Segment is a validated timed text span. Start and End are seconds on
// a canonical non-negative time base; instances are produced only by
// Normalize and are never mutated afterwards.
type Segment struct {
	Start          float64
	End            float64
	Text           string
	TranslatedText string
	Words          []Segment
}

// TextKind selects which text track an exporter renders.
type TextKind int

const (
	Original TextKind = iota
	Translated
)

// TextFor returns the selected text track, empty when absent.
func (s Segment) TextFor(kind TextKind) string {
	if kind == Translated {
		return s.TranslatedText
	}
	return s.Text
}

// Granularity states whether records carry whole phrases or single
// tokens; it picks the duration constants used during normalization.
type Granularity int

const (
	Line Granularity = iota
	Word
)

func (g Granularity) String() string {
	if g == Word {
		return "word"
	}
	return "line"
}

// RawRecord is the loose shape recovered from a model response. Every
// field may be absent or garbage; RawRecord values never flow past
// Normalize.
type RawRecord struct {
	StartTime Token       `json:"startTime"`
	EndTime   Token       `json:"endTime"`
	Text      string      `json:"text"`
	Words     []RawRecord `json:"words,omitempty"`
}

// Token holds a timestamp field as the literal string the model
// produced, whether it arrived as a JSON string or a bare number.
type Token string

func (t *Token) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Token(s)
		return nil
	}
	// numbers, null, anything else: keep the raw text
	*t = Token(strings.Trim(string(data), `"`))
	if *t == "null" {
		*t = ""
	}
	return nil
}

func (t Token) String() string { return string(t) }
