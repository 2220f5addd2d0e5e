package corpus

import (
	"bufio"
	"io"
	"strings"

	"github.com/tzlin/deckgen/internal/hymn"
)

// TextParser handles plain text lyric files: the first non-blank line
// is the title, blank lines separate stanzas.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*hymn.Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	rec := &hymn.Record{}
	var stanza []string
	flush := func() {
		if len(stanza) > 0 {
			rec.Stanzas = append(rec.Stanzas, stanza)
			stanza = nil
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		if rec.Title == "" && len(rec.Stanzas) == 0 && len(stanza) == 0 {
			rec.Title = CleanTitle(line)
			continue
		}
		stanza = append(stanza, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	fillFromFilename(rec, filename)
	return rec, nil
}
