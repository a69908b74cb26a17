package export

import (
	"strings"
	"testing"

	"github.com/askhade/lekha/internal/segment"
)

func lines(start, end float64, text string) segment.Segment {
	return segment.Segment{Start: start, End: end, Text: text}
}

// two sentences far enough apart to become two cues everywhere
var twoCues = []segment.Segment{
	lines(5, 9, "Hello world."),
	lines(10, 14, "Second line."),
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"txt", "JSON", " srt ", "vtt", "ttml", "lrc"} {
		if _, err := ParseFormat(name); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", name, err)
		}
	}
	if _, err := ParseFormat("ass"); err == nil {
		t.Error("ParseFormat accepted an unsupported format")
	}
}

func TestExtension(t *testing.T) {
	if got := Extension(FormatVTT); got != ".vtt" {
		t.Errorf("Extension = %q, want .vtt", got)
	}
}

func TestRenderDispatch(t *testing.T) {
	for _, f := range []Format{FormatTXT, FormatJSON, FormatLRC, FormatSRT, FormatVTT, FormatTTML} {
		out, err := Render(f, twoCues, DefaultOptions())
		if err != nil {
			t.Errorf("Render(%s) failed: %v", f, err)
		}
		if !strings.Contains(out, "Hello world.") {
			t.Errorf("Render(%s) lost the text: %q", f, out)
		}
	}
}

func TestText(t *testing.T) {
	got := Text(twoCues, segment.Original)
	want := "Hello world.\n\nSecond line."
	if got != want {
		t.Errorf("Text = %q, want %q", got, want)
	}
}

func TestJSON(t *testing.T) {
	got, err := JSON(twoCues[:1], segment.Original)
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	for _, frag := range []string{`"startTime": "00:00:05.000"`, `"endTime": "00:00:09.000"`, `"text": "Hello world."`} {
		if !strings.Contains(got, frag) {
			t.Errorf("JSON output missing %q:\n%s", frag, got)
		}
	}
}

func TestLRC(t *testing.T) {
	segs := []segment.Segment{
		lines(90.5, 92, "line one"),
		lines(95.25, 96, "line\ntwo"),
	}
	got := LRC(segs, segment.Original)
	want := "[01:30.50]line one\n[01:35.25]line two\n"
	if got != want {
		t.Errorf("LRC = %q, want %q", got, want)
	}
}

func TestSRT(t *testing.T) {
	got := SRT(twoCues, DefaultOptions())
	want := "1\n" +
		"00:00:05,000 --> 00:00:09,000\n" +
		"Hello world.\n\n" +
		"2\n" +
		"00:00:10,000 --> 00:00:14,000\n" +
		"Second line.\n\n"
	if got != want {
		t.Errorf("SRT =\n%q\nwant\n%q", got, want)
	}
}

func TestVTT(t *testing.T) {
	got := VTT(twoCues[:1], DefaultOptions())
	want := "WEBVTT\n\n" +
		"00:05.000 --> 00:09.000\n" +
		"Hello world.\n\n"
	if got != want {
		t.Errorf("VTT =\n%q\nwant\n%q", got, want)
	}
}

func TestVTTGroupsAcrossSmallGap(t *testing.T) {
	// 0.2s gap with no sentence end stays one cue spanning both segments
	segs := []segment.Segment{
		lines(5, 7, "Hello"),
		lines(7.2, 9, "World"),
	}
	got := VTT(segs, DefaultOptions())
	want := "WEBVTT\n\n" +
		"00:05.000 --> 00:09.000\n" +
		"Hello World\n\n"
	if got != want {
		t.Errorf("VTT =\n%q\nwant\n%q", got, want)
	}
}

func TestVTTWordTags(t *testing.T) {
	segs := []segment.Segment{
		lines(0.0, 0.4, "never"),
		lines(0.5, 0.9, "gonna"),
	}
	opts := DefaultOptions()
	opts.Granularity = segment.Word

	got := VTT(segs, opts)
	if !strings.Contains(got, "<00:00.000>never <00:00.500>gonna") {
		t.Errorf("missing inline word tags:\n%s", got)
	}

	// the translated track never carries word tags
	opts.Kind = segment.Translated
	if out := VTT(segs, opts); strings.Contains(out, "<00:") {
		t.Errorf("translated track should not be tagged:\n%s", out)
	}
}

func TestTTML(t *testing.T) {
	got := TTML(twoCues[:1], DefaultOptions())
	for _, frag := range []string{
		`<tt xmlns="http://www.w3.org/ns/ttml">`,
		`<p begin="00:00:05.000" end="00:00:09.000">`,
		`<span begin="00:00:05.000" end="00:00:09.000">Hello world.</span>`,
	} {
		if !strings.Contains(got, frag) {
			t.Errorf("TTML missing %q:\n%s", frag, got)
		}
	}
}

func TestTTMLEscapes(t *testing.T) {
	segs := []segment.Segment{lines(0, 2, `a < b & "c"`)}
	got := TTML(segs, DefaultOptions())
	if !strings.Contains(got, "a &lt; b &amp; &quot;c&quot;") {
		t.Errorf("markup not escaped:\n%s", got)
	}
	if strings.Contains(got, `>a < b`) {
		t.Errorf("raw markup leaked:\n%s", got)
	}
}

func TestTTMLSpanSeams(t *testing.T) {
	segs := []segment.Segment{
		lines(0, 0.4, "hello"),
		lines(0.5, 0.9, "world"),
	}
	got := TTML(segs, DefaultOptions())
	if !strings.Contains(got, "</span> <span") {
		t.Errorf("missing seam space between latin spans:\n%s", got)
	}

	cjk := []segment.Segment{
		lines(0, 0.4, "日本"),
		lines(0.5, 0.9, "語"),
	}
	got = TTML(cjk, DefaultOptions())
	if strings.Contains(got, "</span> <span") {
		t.Errorf("unwanted seam space between cjk spans:\n%s", got)
	}
}

func TestSRTCJKSpacing(t *testing.T) {
	segs := []segment.Segment{
		lines(0, 0.4, "日本"),
		lines(0.5, 0.9, "語で"),
	}
	got := SRT(segs, DefaultOptions())
	if !strings.Contains(got, "日本語で") {
		t.Errorf("cjk seam picked up a space:\n%s", got)
	}
}

func TestTranslatedTrack(t *testing.T) {
	segs := []segment.Segment{
		{Start: 0, End: 2, Text: "hola", TranslatedText: "hello"},
	}
	opts := DefaultOptions()
	opts.Kind = segment.Translated

	got, err := Render(FormatSRT, segs, opts)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(got, "hello") || strings.Contains(got, "hola") {
		t.Errorf("wrong track rendered:\n%s", got)
	}
}
