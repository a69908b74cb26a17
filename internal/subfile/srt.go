package subfile

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/askhade/lekha/internal/segment"
	"github.com/askhade/lekha/internal/timecode"
)

var srtTimingRegex = regexp.MustCompile(
	`(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})`,
)

func parseSRT(path string) ([]segment.Segment, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
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
			current.Text = strings.Join(textLines, "\n")
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

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		// cue index line
		if current == nil {
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				continue
			}
		}

		if m := srtTimingRegex.FindStringSubmatch(line); len(m) == 3 {
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
		return nil, fmt.Errorf("error reading SRT file: %w", err)
	}
	return segs, nil
}
