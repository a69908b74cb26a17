package export

import (
	"encoding/json"
	"fmt"

	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/timecode"
)

type jsonSegment struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Text      string `json:"text"`
}

// JSON serializes segments as an indented array of records with
// canonical clock-string timestamps.
func JSON(segs []segment.Segment, kind segment.TextKind) (string, error) {
	records := make([]jsonSegment, 0, len(segs))
	for _, s := range segs {
		records = append(records, jsonSegment{
			StartTime: timecode.Clock(s.Start),
			EndTime:   timecode.Clock(s.End),
			Text:      s.TextFor(kind),
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize segments: %w", err)
	}
	return string(data), nil
}
