// Package corpus loads and searches the local hymn library. Lyric
// files arrive in several formats; each format gets a Parser that
// produces a hymn.Record.
package corpus

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tzlin/deckgen/internal/hymn"
)

// Parser converts raw lyric bytes into a hymn record.
type Parser interface {
	Parse(r io.Reader, filename string) (*hymn.Record, error)
}

// SupportedExtensions lists lyric file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".docx":     true,
	".pdf":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

var (
	titleNumberPrefix  = regexp.MustCompile(`^#?\d+[_\s]*`)
	stanzaMarkerSuffix = regexp.MustCompile(`\s*\(\d+\)\s*$`)
	fileNumberPrefix   = regexp.MustCompile(`^(\d+)[_\s]+(.+)$`)
)

// CleanTitle strips the hymnal-number prefix and trailing stanza
// marker that lyric sources carry in their title lines, e.g.
// "114_主曾離寶座 (1)" becomes "主曾離寶座".
func CleanTitle(title string) string {
	title = titleNumberPrefix.ReplaceAllString(title, "")
	title = stanzaMarkerSuffix.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// splitFilename derives the hymnal number and title from a filename
// like "114_主曾離寶座.md".
func splitFilename(filename string) (number, title string) {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if m := fileNumberPrefix.FindStringSubmatch(stem); m != nil {
		return m[1], strings.TrimSpace(m[2])
	}
	return "", stem
}

// fillFromFilename backfills number and title that the lyric body did
// not provide.
func fillFromFilename(rec *hymn.Record, filename string) {
	number, title := splitFilename(filename)
	if rec.Number == "" {
		rec.Number = number
	}
	if rec.Title == "" {
		rec.Title = CleanTitle(title)
	}
}
