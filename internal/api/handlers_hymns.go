package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tzlin/deckgen/internal/corpus"
	"github.com/tzlin/deckgen/internal/hymn"
	"github.com/tzlin/deckgen/internal/scrape"
)

func (s *Server) handleSearchHymns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	var records []hymn.Record
	if query == "" {
		records = s.library.Records()
	} else {
		records = s.library.Search(query)
	}

	type summary struct {
		Number  string `json:"number,omitempty"`
		Title   string `json:"title"`
		Stanzas int    `json:"stanzas"`
	}
	results := make([]summary, 0, len(records))
	for _, rec := range records {
		results = append(results, summary{Number: rec.Number, Title: rec.Title, Stanzas: len(rec.Stanzas)})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"query":   query,
		"results": results,
	})
}

// handleImportHymn adds a hymn to the corpus from an uploaded lyric
// file or, given a url field instead, from a hymn web page.
func (s *Server) handleImportHymn(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	var (
		rec *hymn.Record
		err error
	)
	if rawURL := r.FormValue("url"); rawURL != "" {
		rec, err = s.importFromURL(r, rawURL)
	} else {
		rec, err = s.importFromUpload(r)
	}
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if number := r.FormValue("number"); number != "" {
		rec.Number = number
	}
	if title := r.FormValue("title"); title != "" {
		rec.Title = corpus.CleanTitle(title)
	}
	if rec.Title == "" {
		jsonError(w, "could not determine a hymn title", http.StatusUnprocessableEntity)
		return
	}

	if err := s.library.Add(*rec); err != nil {
		jsonError(w, "save hymn: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.log.Info("hymn imported", "number", rec.Number, "title", rec.Title, "stanzas", len(rec.Stanzas))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"number":  rec.Number,
		"title":   rec.Title,
		"stanzas": len(rec.Stanzas),
	})
}

func (s *Server) importFromUpload(r *http.Request) (*hymn.Record, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("file or url is required: %w", err)
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !corpus.IsSupportedExtension(filename) {
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Ext(filename))
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes)
	}

	p, err := corpus.ForFile(filename)
	if err != nil {
		return nil, err
	}
	if pdf, ok := p.(*corpus.PDFParser); ok {
		pdf.FallbackPdftotext = s.cfg.PDFFallbackPdftotext
	}
	rec, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, fmt.Errorf("parse lyrics: %w", err)
	}
	return rec, nil
}

func (s *Server) importFromURL(r *http.Request, rawURL string) (*hymn.Record, error) {
	body, err := s.fetcher.Fetch(r.Context(), rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	rec, err := scrape.ParseLyrics(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("extract lyrics from %s: %w", rawURL, err)
	}
	return rec, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
