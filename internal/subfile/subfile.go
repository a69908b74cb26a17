// Package subfile reads existing subtitle files back into segments so
// they can be translated or re-exported.
package subfile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/askhade/lekha/internal/segment"
)

// Open parses a subtitle file by extension.
func Open(path string) ([]segment.Segment, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return parseSRT(path)
	case ".vtt":
		return parseVTT(path)
	default:
		return nil, fmt.Errorf("unsupported subtitle format %q: use .srt or .vtt", ext)
	}
}
