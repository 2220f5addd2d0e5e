package corpus

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/tzlin/deckgen/internal/hymn"
)

// DOCXParser handles .docx lyric files: the first non-empty paragraph
// is the title, empty paragraphs separate stanzas.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*hymn.Record, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "deckgen-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	rec := &hymn.Record{}
	var stanza []string
	flush := func() {
		if len(stanza) > 0 {
			rec.Stanzas = append(rec.Stanzas, stanza)
			stanza = nil
		}
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			flush()
			continue
		}
		if rec.Title == "" && len(rec.Stanzas) == 0 && len(stanza) == 0 {
			rec.Title = CleanTitle(text)
			continue
		}
		stanza = append(stanza, text)
	}
	flush()

	fillFromFilename(rec, filename)
	return rec, nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
