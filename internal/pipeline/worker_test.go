package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/tzlin/deckgen/internal/bible"
	"github.com/tzlin/deckgen/internal/bibleapi"
	"github.com/tzlin/deckgen/internal/deck"
	"github.com/tzlin/deckgen/internal/hymn"
)

type fakeLibrary map[string]hymn.Record

func (f fakeLibrary) Resolve(spec string) (hymn.Record, error) {
	if rec, ok := f[spec]; ok {
		return rec, nil
	}
	return hymn.Record{}, &hymn.NotFoundError{Specifier: spec}
}

type fakeVerses struct {
	failBook  string
	transient int // remaining retryable failures before success
	calls     int
}

func (f *fakeVerses) Verses(_ context.Context, vr bible.VerseRange) ([]bibleapi.Verse, error) {
	f.calls++
	if vr.Book == f.failBook {
		return nil, fmt.Errorf("no verses for %s", vr.Book)
	}
	if f.transient > 0 {
		f.transient--
		return nil, &bibleapi.RetryableError{StatusCode: 503, Message: "unavailable"}
	}
	var verses []bibleapi.Verse
	for v := vr.StartVerse; v <= vr.EndVerse; v++ {
		verses = append(verses, bibleapi.Verse{Chapter: vr.StartChapter, Verse: v, Text: fmt.Sprintf("%s %d:%d", vr.Book, vr.StartChapter, v)})
	}
	return verses, nil
}

func testTemplate() deck.Template {
	return deck.Template{
		{Type: deck.StepHymn, Slot: deck.SlotCongregation},
		{Type: deck.StepScripture},
		{Type: deck.StepMemorize},
		{Type: deck.StepHymn, Slot: deck.SlotChoir},
	}
}

func testLibrary() fakeLibrary {
	return fakeLibrary{
		"聖哉聖哉聖哉": {Number: "1", Title: "聖哉聖哉聖哉", Stanzas: [][]string{{"聖哉聖哉聖哉"}}},
		"榮耀頌":    {Title: "榮耀頌", Stanzas: [][]string{{"榮耀歸於真神"}}},
	}
}

func newTestWorker(library HymnResolver, verses VerseSource) *Worker {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(library, verses, bible.DefaultRegistry(), testTemplate(), log, 2)
}

func newTestJob(plan deck.Plan) *Job {
	return &Job{ID: NewJobID(), Status: StatusQueued, Plan: plan}
}

func TestWorker_Completed(t *testing.T) {
	w := newTestWorker(testLibrary(), &fakeVerses{})
	job := newTestJob(deck.Plan{
		Hymns:     []string{"聖哉聖哉聖哉"},
		Choir:     "榮耀頌",
		Scripture: "羅馬書12:1-2",
		Memorize:  "約翰福音3:16",
	})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.HymnsResolved != 2 || snap.Progress.RangesFetched != 2 {
		t.Errorf("unexpected progress: %+v", snap.Progress)
	}
	if len(snap.Slides) == 0 {
		t.Error("expected assembled slides")
	}
}

func TestWorker_MissingRequiredHymnFails(t *testing.T) {
	w := newTestWorker(fakeLibrary{}, &fakeVerses{})
	job := newTestJob(deck.Plan{
		Hymns:     []string{"不存在的詩歌"},
		Scripture: "羅馬書12:1-2",
	})

	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed, got %s", job.Snapshot().Status)
	}
}

func TestWorker_MissingOptionalHymnPartial(t *testing.T) {
	w := newTestWorker(testLibrary(), &fakeVerses{})
	job := newTestJob(deck.Plan{
		Hymns:     []string{"聖哉聖哉聖哉"},
		Choir:     "沒有這首",
		Scripture: "羅馬書12:1-2",
	})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusPartial {
		t.Fatalf("expected partial, got %s", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected the missing choir hymn to be recorded")
	}
	if len(snap.Slides) == 0 {
		t.Error("expected the rest of the deck to assemble")
	}
}

func TestWorker_MalformedCitationFails(t *testing.T) {
	w := newTestWorker(testLibrary(), &fakeVerses{})
	job := newTestJob(deck.Plan{
		Hymns:     []string{"聖哉聖哉聖哉"},
		Scripture: "羅馬書12",
	})

	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected malformed citation to fail, got %s", job.Snapshot().Status)
	}
}

func TestWorker_MalformedMemorizeFails(t *testing.T) {
	// A malformed citation is a plan bug even in an optional field.
	w := newTestWorker(testLibrary(), &fakeVerses{})
	job := newTestJob(deck.Plan{
		Hymns:     []string{"聖哉聖哉聖哉"},
		Scripture: "羅馬書12:1-2",
		Memorize:  "不是書卷1:1",
	})

	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected unknown memorize book to fail, got %s", job.Snapshot().Status)
	}
}

func TestWorker_ScriptureFetchFailureFails(t *testing.T) {
	w := newTestWorker(testLibrary(), &fakeVerses{failBook: "羅馬書"})
	job := newTestJob(deck.Plan{
		Hymns:     []string{"聖哉聖哉聖哉"},
		Scripture: "羅馬書12:1-2",
	})

	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed, got %s", job.Snapshot().Status)
	}
}

func TestWorker_MemorizeFetchFailurePartial(t *testing.T) {
	w := newTestWorker(testLibrary(), &fakeVerses{failBook: "約翰福音"})
	job := newTestJob(deck.Plan{
		Hymns:     []string{"聖哉聖哉聖哉"},
		Scripture: "羅馬書12:1-2",
		Memorize:  "約翰福音3:16",
	})

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusPartial {
		t.Fatalf("expected partial, got %s", snap.Status)
	}
	if len(snap.Slides) == 0 {
		t.Error("expected deck without the memorize slide")
	}
}

func TestWorker_RetriesTransientFetch(t *testing.T) {
	verses := &fakeVerses{transient: 2}
	w := newTestWorker(testLibrary(), verses)
	job := newTestJob(deck.Plan{
		Hymns:     []string{"聖哉聖哉聖哉"},
		Scripture: "約翰福音3:16",
	})

	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusCompleted {
		t.Fatalf("expected retries to recover, got %s", job.Snapshot().Status)
	}
	if verses.calls != 3 {
		t.Errorf("expected 3 fetch attempts, got %d", verses.calls)
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&bibleapi.RetryableError{StatusCode: 503}) {
		t.Error("expected RetryableError to be retryable")
	}
	if IsRetryable(fmt.Errorf("plain error")) {
		t.Error("expected plain error to not be retryable")
	}
	wrapped := fmt.Errorf("fetch: %w", &bibleapi.RetryableError{StatusCode: 429})
	if !IsRetryable(wrapped) {
		t.Error("expected wrapped RetryableError to be retryable")
	}
}

func TestBackoff_CapAndJitter(t *testing.T) {
	for attempt := 0; attempt < 10; attempt++ {
		d := Backoff(attempt)
		if d <= 0 || d > 45*time.Second {
			t.Errorf("attempt %d: backoff %v out of range", attempt, d)
		}
	}
}
