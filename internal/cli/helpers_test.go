package cli

import (
	"testing"

	"github.com/askhade/lekha/internal/segment"
)

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in      string
		want    segment.Granularity
		wantErr bool
	}{
		{"line", segment.Line, false},
		{"LINE", segment.Line, false},
		{" word ", segment.Word, false},
		{"", segment.Line, false},
		{"sentence", segment.Line, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseGranularity(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseGranularity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseGranularity(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTextKind(t *testing.T) {
	tests := []struct {
		in      string
		want    segment.TextKind
		wantErr bool
	}{
		{"original", segment.Original, false},
		{"Translated", segment.Translated, false},
		{"", segment.Original, false},
		{"bilingual", segment.Original, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTextKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseTextKind(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseTextKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
