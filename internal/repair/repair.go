// Package repair recovers segment records from the raw text a
// generative model returned, however mangled. Responses arrive fenced,
// truncated mid-array, or with unescaped quotes; each strategy here is
// cheaper to trust than a retry against the model.
package repair

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/askhade/lekha/internal/segment"
)

// Error is returned only when every recovery strategy produced zero
// records. RawLength identifies the offending response in logs without
// reproducing its content.
type Error struct {
	RawLength int
}

func (e *Error) Error() string {
	return fmt.Sprintf("no segment records recoverable from response (%d bytes)", e.RawLength)
}

// Records extracts segment records from a raw model response, trying
// strategies in order and stopping at the first that yields records.
func Records(raw string) ([]segment.RawRecord, error) {
	text := StripFences(raw)

	if recs := parseStructured(text); len(recs) > 0 {
		return recs, nil
	}
	if recs := parseTruncated(text); len(recs) > 0 {
		return recs, nil
	}
	if recs := extractPatterns(raw); len(recs) > 0 {
		return recs, nil
	}
	return nil, &Error{RawLength: len(raw)}
}

var fenceRegex = regexp.MustCompile("^```[a-zA-Z]*\\s*")

// StripFences removes a markdown code-block wrapper when the response
// begins with a fence marker.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = fenceRegex.ReplaceAllString(s, "")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseStructured accepts a well-formed response: either a top-level
// array of records or an object carrying one under a "segments"-style
// key.
func parseStructured(text string) []segment.RawRecord {
	if !gjson.Valid(text) {
		return nil
	}
	root := gjson.Parse(text)
	arr := findRecordArray(root)
	if !arr.Exists() {
		return nil
	}
	return decodeRecords(arr)
}

func findRecordArray(root gjson.Result) gjson.Result {
	if root.IsArray() {
		return root
	}
	if !root.IsObject() {
		return gjson.Result{}
	}
	if segs := root.Get("segments"); segs.IsArray() {
		return segs
	}
	// any object field holding an array of record-shaped objects
	var found gjson.Result
	root.ForEach(func(_, value gjson.Result) bool {
		if value.IsArray() && looksLikeRecords(value) {
			found = value
			return false
		}
		return true
	})
	return found
}

func looksLikeRecords(arr gjson.Result) bool {
	first := arr.Get("0")
	return first.IsObject() && (first.Get("startTime").Exists() ||
		first.Get("start").Exists() || first.Get("text").Exists())
}

func decodeRecords(arr gjson.Result) []segment.RawRecord {
	var recs []segment.RawRecord
	arr.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}
		recs = append(recs, decodeRecord(item))
		return true
	})
	return recs
}

func decodeRecord(item gjson.Result) segment.RawRecord {
	rec := segment.RawRecord{
		StartTime: segment.Token(firstOf(item, "startTime", "start").String()),
		EndTime:   segment.Token(firstOf(item, "endTime", "end").String()),
		Text:      item.Get("text").String(),
	}
	if words := item.Get("words"); words.IsArray() {
		words.ForEach(func(_, w gjson.Result) bool {
			if w.IsObject() {
				rec.Words = append(rec.Words, decodeRecord(w))
			}
			return true
		})
	}
	return rec
}

func firstOf(item gjson.Result, keys ...string) gjson.Result {
	for _, k := range keys {
		if v := item.Get(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

// parseTruncated repairs a response cut off mid-stream: truncate at the
// last complete record and re-balance one open array and one open
// object.
func parseTruncated(text string) []segment.RawRecord {
	idx := strings.LastIndex(text, "}")
	if idx < 0 {
		return nil
	}
	repaired := text[:idx+1]
	for _, closer := range []string{"]", "]}", "}"} {
		if recs := parseStructured(repaired + closer); len(recs) > 0 {
			return recs
		}
	}
	return nil
}

// timesFirstRegex matches startTime/endTime/text triples with the time
// fields leading; textFirstRegex covers the reversed key order. Both
// tolerate single or double quotes around keys and values, so a
// python-flavored response is still recoverable. The text value captures
// into one of two groups depending on which quote style matched.
var (
	timesFirstRegex = regexp.MustCompile(
		`["']startTime["']\s*:\s*["']?([^"',}]+)["']?\s*,\s*["']endTime["']\s*:\s*["']?([^"',}]+)["']?\s*,\s*["']text["']\s*:\s*(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)')`)
	textFirstRegex = regexp.MustCompile(
		`["']text["']\s*:\s*(?:"((?:[^"\\]|\\.)*)"|'((?:[^'\\]|\\.)*)')\s*,\s*["']startTime["']\s*:\s*["']?([^"',}]+)["']?\s*,\s*["']endTime["']\s*:\s*["']?([^"',}]+)["']?`)
)

// extractPatterns is the last resort: scan the raw text for key-value
// triples and rebuild records one match at a time.
func extractPatterns(raw string) []segment.RawRecord {
	var recs []segment.RawRecord
	for _, m := range timesFirstRegex.FindAllStringSubmatch(raw, -1) {
		recs = append(recs, segment.RawRecord{
			StartTime: segment.Token(strings.TrimSpace(m[1])),
			EndTime:   segment.Token(strings.TrimSpace(m[2])),
			Text:      unescape(quotedAlternative(m[3], m[4])),
		})
	}
	if len(recs) > 0 {
		return recs
	}
	for _, m := range textFirstRegex.FindAllStringSubmatch(raw, -1) {
		recs = append(recs, segment.RawRecord{
			StartTime: segment.Token(strings.TrimSpace(m[3])),
			EndTime:   segment.Token(strings.TrimSpace(m[4])),
			Text:      unescape(quotedAlternative(m[1], m[2])),
		})
	}
	return recs
}

// quotedAlternative selects whichever capture group the quote-style
// alternation filled.
func quotedAlternative(dq, sq string) string {
	if dq != "" {
		return dq
	}
	return sq
}

// unescape resolves backslash sequences in an extracted text value,
// falling back to literal replacement when the value is not a valid
// quoted string.
func unescape(s string) string {
	if u, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return u
	}
	r := strings.NewReplacer(`\"`, `"`, `\n`, "\n", `\t`, "\t", `\\`, `\`)
	return r.Replace(s)
}
