package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tzlin/deckgen/internal/bible"
)

// handleParseCitation parses a citation string into verse ranges
// without fetching any text, so a client can validate a plan before
// submitting it.
func (s *Server) handleParseCitation(w http.ResponseWriter, r *http.Request) {
	cite := r.URL.Query().Get("cite")
	if cite == "" {
		jsonError(w, "cite query parameter is required", http.StatusBadRequest)
		return
	}

	ranges, err := bible.Parse(s.registry, cite)
	if err != nil {
		var malformed *bible.MalformedCitationError
		var unknown *bible.UnknownBookError
		switch {
		case errors.As(err, &malformed):
			jsonError(w, malformed.Error(), http.StatusUnprocessableEntity)
		case errors.As(err, &unknown):
			jsonError(w, unknown.Error(), http.StatusUnprocessableEntity)
		default:
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	type labeled struct {
		bible.VerseRange
		Label string `json:"label"`
	}
	results := make([]labeled, 0, len(ranges))
	for _, vr := range ranges {
		results = append(results, labeled{VerseRange: vr, Label: vr.Label()})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"citation": cite,
		"ranges":   results,
	})
}
