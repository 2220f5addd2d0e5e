package corpus

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
	"github.com/tzlin/deckgen/internal/hymn"
)

// Library is the in-memory hymn corpus, loaded from a directory of
// lyric files. Records keep the lexical walk order of the directory;
// that order is the corpus order searches preserve.
type Library struct {
	fs  afero.Fs
	dir string

	mu      sync.RWMutex
	records []hymn.Record
}

// Open walks dir and parses every supported lyric file. Files that
// fail to parse are logged and skipped so one bad sheet does not take
// the corpus down. pdfFallback enables the pdftotext fallback for PDF
// sheets the Go library cannot read.
func Open(fsys afero.Fs, dir string, pdfFallback bool, log *slog.Logger) (*Library, error) {
	lib := &Library{fs: fsys, dir: dir}

	err := afero.Walk(fsys, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !IsSupportedExtension(path) {
			return nil
		}

		p, err := ForFile(path)
		if err != nil {
			return nil
		}
		if pdf, ok := p.(*PDFParser); ok {
			pdf.FallbackPdftotext = pdfFallback
		}
		f, err := fsys.Open(path)
		if err != nil {
			log.Warn("open lyric file failed", "path", path, "error", err)
			return nil
		}
		rec, err := p.Parse(f, filepath.Base(path))
		f.Close()
		if err != nil {
			log.Warn("parse lyric file failed", "path", path, "error", err)
			return nil
		}
		if rec.Title == "" {
			log.Warn("lyric file has no title", "path", path)
			return nil
		}

		lib.records = append(lib.records, *rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus dir %s: %w", dir, err)
	}

	log.Info("hymn corpus loaded", "dir", dir, "hymns", len(lib.records))
	return lib, nil
}

// Records returns a copy of the corpus in corpus order.
func (l *Library) Records() []hymn.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]hymn.Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of hymns in the corpus.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// Search finds every hymn whose title fuzzily matches the query, in
// corpus order. Empty result means nothing matched.
func (l *Library) Search(query string) []hymn.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return hymn.Search(l.records, query)
}

// Resolve locates a hymn by specifier ("114_主曾離寳座", "114" or a
// title). It fails with *hymn.NotFoundError when nothing resolves.
func (l *Library) Resolve(spec string) (hymn.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return hymn.Resolve(l.records, spec)
}

// Add appends a record to the corpus and persists it as a markdown
// lyric file so the next startup sees it.
func (l *Library) Add(rec hymn.Record) error {
	if rec.Title == "" {
		return fmt.Errorf("hymn record has no title")
	}

	path := filepath.Join(l.dir, MarkdownFilename(rec))
	if err := afero.WriteFile(l.fs, path, []byte(FormatMarkdown(rec)), 0o644); err != nil {
		return fmt.Errorf("write lyric file %s: %w", path, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
	return nil
}
