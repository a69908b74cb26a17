// Package timecode converts between the clock strings produced by
// generative models and a canonical time base of seconds.
//
// Model output is unreliable: runs switch between MM:SS and HH:MM:SS,
// emit comma decimals, full-width digits, or bare numbers. Parse accepts
// all of it and never fails; an unreadable token is worth more as zero
// than as an aborted batch.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// Parse converts a single timestamp token to seconds. Unparseable
// input yields 0, never an error.
func Parse(token string) float64 {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0
	}

	// full-width digits and colons to ASCII
	s = width.Narrow.String(s)

	// subtitle-style comma milliseconds: "01:02,500" -> "01:02.500"
	s = normalizeCommaDecimal(s)

	// keep only digits, colons, and dots
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ':' || r == '.' {
			b.WriteRune(r)
		}
	}
	s = b.String()

	if !strings.Contains(s, ":") {
		return parseFloat(s)
	}

	parts := strings.Split(s, ":")
	vals := make([]float64, len(parts))
	for i, p := range parts {
		vals[i] = parseFloat(p)
	}

	switch len(parts) {
	case 4:
		// hallucinated H:M:S:ms form
		return vals[0]*3600 + vals[1]*60 + vals[2] + vals[3]/1000
	case 3:
		return vals[0]*3600 + vals[1]*60 + vals[2]
	case 2:
		return vals[0]*60 + vals[1]
	default:
		// 5+ colon-separated parts has no clock reading; parseFloat
		// rejects the colons and yields 0
		return parseFloat(s)
	}
}

// ParseValue handles the string-or-number shape of raw model fields.
func ParseValue(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		if t < 0 || math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return t
	case int:
		if t < 0 {
			return 0
		}
		return float64(t)
	case string:
		return Parse(t)
	default:
		return Parse(fmt.Sprint(v))
	}
}

func normalizeCommaDecimal(s string) string {
	// a comma directly followed by a digit acts as a decimal point
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == ',' && i+1 < len(runes) && runes[i+1] >= '0' && runes[i+1] <= '9' {
			b.WriteRune('.')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Clock renders seconds in the fixed-hours HH:MM:SS.mmm form.
func Clock(sec float64) string {
	h, m, s, ms := split(sec)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// ClockFolded renders seconds in the hour-folding MM:SS.mmm form, with
// hours carried into the minutes field.
func ClockFolded(sec float64) string {
	h, m, s, ms := split(sec)
	return fmt.Sprintf("%02d:%02d.%03d", h*60+m, s, ms)
}

// ClockSRT renders seconds in the SRT comma-millisecond form.
func ClockSRT(sec float64) string {
	h, m, s, ms := split(sec)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ClockLRC renders seconds as an LRC tag body, MM:SS.CC with
// hundredths rather than milliseconds.
func ClockLRC(sec float64) string {
	h, m, s, ms := split(sec)
	return fmt.Sprintf("%02d:%02d.%02d", h*60+m, s, ms/10)
}

func split(sec float64) (h, m, s, ms int) {
	if sec < 0 {
		sec = 0
	}
	total := int(math.Round(sec * 1000))
	ms = total % 1000
	rest := total / 1000
	h = rest / 3600
	m = rest % 3600 / 60
	s = rest % 60
	return h, m, s, ms
}
