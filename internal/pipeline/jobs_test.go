package pipeline

import (
	"testing"
	"time"

	"github.com/tzlin/deckgen/internal/deck"
)

func TestNewJobID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewJobID()
		if len(id) != 26 {
			t.Fatalf("expected 26-char ULID, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate job ID %q", id)
		}
		seen[id] = true
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: NewJobID(), Status: StatusQueued, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get(job.ID)
	if got == nil || got.ID != job.ID {
		t.Fatalf("expected to get job back, got %v", got)
	}
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for unknown job ID")
	}
}

func TestJobStore_CleanupExpired(t *testing.T) {
	store := NewJobStore(time.Minute)

	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-2 * time.Minute)}
	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	store.Put(stale)
	store.Put(fresh)

	store.Cleanup()

	if store.Get("stale") != nil {
		t.Error("expected stale job to be evicted")
	}
	if store.Get("fresh") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJob_StatusTransitions(t *testing.T) {
	job := &Job{ID: NewJobID(), Status: StatusQueued}

	job.SetStatus(StatusResolving, "resolve_hymns")
	if job.Status != StatusResolving || job.Phase != "resolve_hymns" {
		t.Errorf("unexpected state after SetStatus: %s/%s", job.Status, job.Phase)
	}
	if job.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestJob_Snapshot(t *testing.T) {
	job := &Job{ID: "01ABC", Status: StatusQueued}
	job.SetTotals(3, 2)
	job.IncrHymnsResolved()
	job.IncrRangesFetched()
	job.AddError("hymn \"榮耀頌\": not found")
	job.SetSlides([]deck.Slide{{Layout: deck.LayoutBlank}})
	job.SetStatus(StatusPartial, "done")

	snap := job.Snapshot()
	if snap.ID != "01ABC" || snap.Status != StatusPartial {
		t.Errorf("unexpected snapshot identity: %+v", snap)
	}
	if snap.Progress.TotalHymns != 3 || snap.Progress.HymnsResolved != 1 {
		t.Errorf("unexpected hymn progress: %+v", snap.Progress)
	}
	if snap.Progress.TotalRanges != 2 || snap.Progress.RangesFetched != 1 {
		t.Errorf("unexpected range progress: %+v", snap.Progress)
	}
	if len(snap.Progress.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", snap.Progress.Errors)
	}
	if len(snap.Slides) != 1 {
		t.Errorf("expected slides in snapshot, got %v", snap.Slides)
	}
}

func TestJob_SnapshotEmptyErrors(t *testing.T) {
	job := &Job{ID: "x"}
	snap := job.Snapshot()
	if snap.Progress.Errors == nil {
		t.Error("expected empty error slice, not nil, for JSON")
	}
}
