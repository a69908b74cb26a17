package subfile

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/timecode"
)

var (
	vttTimingRegex = regexp.MustCompile(
		`((?:\d{2}:)?\d{2}:\d{2}\.\d{3})\s*-->\s*((?:\d{2}:)?\d{2}:\d{2}\.\d{3})`,
	)
	// inline word timecode tags like <00:05.120>
	vttInlineTagRegex = regexp.MustCompile(`<[^>]*>`)
)

func parseVTT(path string) ([]segment.Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	var segs []segment.Segment
	var current *segment.Segment
	var textLines []string
	scanner := bufio.NewScanner(file)
	lineNum := 0

	flush := func() {
		if current != nil && len(textLines) > 0 {
			text := vttInlineTagRegex.ReplaceAllString(strings.Join(textLines, "\n"), "")
			current.Text = strings.TrimSpace(text)
			segs = append(segs, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "﻿")
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "WEBVTT") {
			continue
		}
		if strings.HasPrefix(trimmed, "NOTE") || strings.HasPrefix(trimmed, "STYLE") {
			for scanner.Scan() {
				if strings.TrimSpace(scanner.Text()) == "" {
					break
				}
			}
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}

		if m := vttTimingRegex.FindStringSubmatch(line); len(m) == 3 {
			flush()
			current = &segment.Segment{
				Start: timecode.Parse(m[1]),
				End:   timecode.Parse(m[2]),
			}
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT file: %w", err)
	}
	return segs, nil
}
