package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tzlin/deckgen/internal/bible"
	"github.com/tzlin/deckgen/internal/config"
	"github.com/tzlin/deckgen/internal/corpus"
	"github.com/tzlin/deckgen/internal/pipeline"
	"github.com/tzlin/deckgen/internal/scrape"
)

// Server is the HTTP API server for deckgen.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	library      *corpus.Library
	registry     *bible.Registry
	fetcher      *scrape.Fetcher
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(orch *pipeline.Orchestrator, library *corpus.Library, registry *bible.Registry, fetcher *scrape.Fetcher, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		library:      library,
		registry:     registry,
		fetcher:      fetcher,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DeckgenAPIKey, s.log))

		r.Post("/api/decks", s.handleSubmitDeck)
		r.Get("/api/decks/{jobID}", s.handleDeckStatus)

		r.Get("/api/hymns", s.handleSearchHymns)
		r.Post("/api/hymns/import", s.handleImportHymn)

		r.Get("/api/citations", s.handleParseCitation)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
