package pipeline

import (
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/tzlin/deckgen/internal/deck"
)

// JobStatus represents the state of a deck assembly job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusResolving  JobStatus = "resolving"
	StatusFetching   JobStatus = "fetching"
	StatusAssembling JobStatus = "assembling"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// NewJobID returns a fresh ULID job identifier.
func NewJobID() string {
	return ulid.Make().String()
}

// Job tracks the state of a single deck assembly.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`
	Plan   deck.Plan `json:"plan"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	slides []deck.Slide
	errors []string
}

// Progress tracks assembly progress.
type Progress struct {
	TotalHymns    int      `json:"total_hymns"`
	HymnsResolved int      `json:"hymns_resolved"`
	TotalRanges   int      `json:"total_ranges"`
	RangesFetched int      `json:"ranges_fetched"`
	Errors        []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotals records how much work the plan calls for.
func (j *Job) SetTotals(hymns, ranges int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalHymns = hymns
	j.Progress.TotalRanges = ranges
	j.UpdatedAt = time.Now()
}

// IncrHymnsResolved atomically increments the resolved hymn count.
func (j *Job) IncrHymnsResolved() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.HymnsResolved++
	j.UpdatedAt = time.Now()
}

// IncrRangesFetched atomically increments the fetched range count.
func (j *Job) IncrRangesFetched() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.RangesFetched++
	j.UpdatedAt = time.Now()
}

// SetSlides stores the assembled deck.
func (j *Job) SetSlides(slides []deck.Slide) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.slides = slides
	j.UpdatedAt = time.Now()
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string       `json:"job_id"`
	Status   JobStatus    `json:"status"`
	Phase    string       `json:"phase"`
	Progress Progress     `json:"progress"`
	Slides   []deck.Slide `json:"slides,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state. Slides are only
// present once assembly finished.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:     j.ID,
		Status: j.Status,
		Phase:  j.Phase,
		Progress: Progress{
			TotalHymns:    j.Progress.TotalHymns,
			HymnsResolved: j.Progress.HymnsResolved,
			TotalRanges:   j.Progress.TotalRanges,
			RangesFetched: j.Progress.RangesFetched,
			Errors:        errs,
		},
		Slides: j.slides,
	}
}
