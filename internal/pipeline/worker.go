package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tzlin/deckgen/internal/bible"
	"github.com/tzlin/deckgen/internal/bibleapi"
	"github.com/tzlin/deckgen/internal/deck"
	"github.com/tzlin/deckgen/internal/hymn"
)

// HymnResolver resolves a hymn specifier against the corpus.
type HymnResolver interface {
	Resolve(spec string) (hymn.Record, error)
}

// VerseSource fetches verse text for a citation range.
type VerseSource interface {
	Verses(ctx context.Context, vr bible.VerseRange) ([]bibleapi.Verse, error)
}

// Worker processes deck assembly jobs through the resolve, fetch and
// assemble phases.
type Worker struct {
	library  HymnResolver
	verses   VerseSource
	registry *bible.Registry
	template deck.Template
	log      *slog.Logger
	maxFetch int
}

func NewWorker(library HymnResolver, verses VerseSource, registry *bible.Registry, template deck.Template, log *slog.Logger, maxFetch int) *Worker {
	if maxFetch <= 0 {
		maxFetch = 1
	}
	return &Worker{
		library:  library,
		verses:   verses,
		registry: registry,
		template: template,
		log:      log,
		maxFetch: maxFetch,
	}
}

// Process runs a job through the pipeline. Required content that
// cannot be resolved or fetched fails the job; optional content
// degrades it to partial.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID)
	log.Info("job started")
	start := time.Now()

	plan := job.Plan
	partial := false

	// Resolve phase: hymns from the corpus, citations into ranges.
	job.SetStatus(StatusResolving, "resolve_hymns")

	reqs := w.template.HymnRequirements(plan)
	hymns := make(map[string]hymn.Record, len(reqs))

	scripture, err := w.parseCitation(plan.Scripture, true)
	if err != nil {
		w.fail(job, log, fmt.Sprintf("scripture citation: %v", err))
		return
	}
	memorize, err := w.parseCitation(plan.Memorize, false)
	if err != nil {
		w.fail(job, log, fmt.Sprintf("memorize citation: %v", err))
		return
	}
	job.SetTotals(len(reqs), len(scripture)+len(memorize))

	for _, req := range reqs {
		rec, err := w.library.Resolve(req.Spec)
		if err != nil {
			if !req.Optional {
				w.fail(job, log, fmt.Sprintf("hymn %q: %v", req.Spec, err))
				return
			}
			log.Warn("optional hymn not found", "specifier", req.Spec)
			job.AddError(fmt.Sprintf("hymn %q: %v", req.Spec, err))
			plan.ClearSlot(req.Spec)
			partial = true
			continue
		}
		hymns[req.Spec] = rec
		job.IncrHymnsResolved()
	}

	// Fetch phase: verse text for every range, bounded concurrency.
	job.SetStatus(StatusFetching, "fetch_verses")

	scripturePassages, err := w.fetchPassages(ctx, job, scripture)
	if err != nil {
		w.fail(job, log, fmt.Sprintf("scripture %v", err))
		return
	}
	memorizePassages, err := w.fetchPassages(ctx, job, memorize)
	if err != nil {
		log.Warn("memorize fetch failed", "error", err)
		job.AddError(fmt.Sprintf("memorize %v", err))
		memorizePassages = nil
		partial = true
	}

	// Assemble phase.
	job.SetStatus(StatusAssembling, "assemble_deck")

	slides, err := deck.Build(w.template, plan, deck.Content{
		Hymns:     hymns,
		Scripture: scripturePassages,
		Memorize:  memorizePassages,
	})
	if err != nil {
		w.fail(job, log, fmt.Sprintf("assemble: %v", err))
		return
	}
	job.SetSlides(slides)

	status := StatusCompleted
	if partial {
		status = StatusPartial
	}
	job.SetStatus(status, "done")
	log.Info("job finished",
		"status", status,
		"slides", len(slides),
		"duration_ms", time.Since(start).Milliseconds())
}

func (w *Worker) fail(job *Job, log *slog.Logger, msg string) {
	job.AddError(msg)
	job.SetStatus(StatusFailed, "error")
	log.Error("job failed", "error", msg)
}

// parseCitation parses a plan citation. A malformed citation always
// fails the job, even for optional content, because it is a plan
// authoring mistake rather than a transient condition.
func (w *Worker) parseCitation(citation string, required bool) ([]bible.VerseRange, error) {
	if citation == "" {
		if required {
			return nil, fmt.Errorf("plan has no scripture citation")
		}
		return nil, nil
	}
	return bible.Parse(w.registry, citation)
}

// fetchPassages fetches verse text for each range, at most maxFetch in
// flight, retrying transient failures.
func (w *Worker) fetchPassages(ctx context.Context, job *Job, ranges []bible.VerseRange) ([]deck.Passage, error) {
	if len(ranges) == 0 {
		return nil, nil
	}

	passages := make([]deck.Passage, len(ranges))
	errs := make([]error, len(ranges))
	sem := make(chan struct{}, w.maxFetch)
	done := make(chan int, len(ranges))

	for i, vr := range ranges {
		i, vr := i, vr
		go func() {
			defer func() { done <- i }()
			sem <- struct{}{}
			defer func() { <-sem }()

			verses, err := w.fetchWithRetry(ctx, vr)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", vr.Label(), err)
				return
			}
			passages[i] = deck.Passage{Range: vr, Label: vr.Label(), Verses: verses}
			job.IncrRangesFetched()
		}()
	}
	for range ranges {
		<-done
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return passages, nil
}

func (w *Worker) fetchWithRetry(ctx context.Context, vr bible.VerseRange) ([]bibleapi.Verse, error) {
	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(Backoff(attempt - 1)):
			}
		}
		verses, err := w.verses.Verses(ctx, vr)
		if err == nil {
			return verses, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
		w.log.Warn("verse fetch retry",
			"range", vr.Label(),
			"attempt", attempt+1,
			"error", err)
	}
	return nil, lastErr
}
