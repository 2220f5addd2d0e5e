package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/tzlin/deckgen/internal/api"
	"github.com/tzlin/deckgen/internal/bible"
	"github.com/tzlin/deckgen/internal/bibleapi"
	"github.com/tzlin/deckgen/internal/config"
	"github.com/tzlin/deckgen/internal/corpus"
	"github.com/tzlin/deckgen/internal/pipeline"
	"github.com/tzlin/deckgen/internal/scrape"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fsys := afero.NewOsFs()

	// Load the hymn corpus and the order of service.
	library, err := corpus.Open(fsys, cfg.CorpusDir, cfg.PDFFallbackPdftotext, log)
	if err != nil {
		log.Error("load hymn corpus", "error", err)
		os.Exit(1)
	}
	template, err := config.LoadTemplate(fsys, cfg.LiturgyPath)
	if err != nil {
		log.Error("load liturgy template", "error", err)
		os.Exit(1)
	}

	registry := bible.DefaultRegistry()
	verses := bibleapi.NewClient(cfg.BibleAPIURL, cfg.BibleAPIKey)
	fetcher := scrape.NewFetcher(3, time.Second)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, library, verses, registry, template, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, library, registry, fetcher, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		verses.Close()
	}()

	log.Info("starting deckgen", "port", cfg.Port, "hymns", library.Len())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
