// Package dedup prevents duplicate concurrent load operations for the same
// note slug. Two callers racing to fetch-or-create a slug would otherwise
// both observe "not found" and both attempt creation.
package dedup

import (
	"context"
	"sync"
	"time"

	"github.com/slugpad/slugpad/internal/notes"
)

const (
	defaultEntryTTL      = 30 * time.Second
	defaultSweepInterval = 10 * time.Second
)

// Inflight tracks one in-progress load operation. The starter settles it
// exactly once; duplicate callers wait on it and adopt the result.
type Inflight struct {
	startedAt time.Time
	done      chan struct{}

	note *notes.Note
	err  error
}

// Wait blocks until the operation settles or the context is cancelled.
func (op *Inflight) Wait(ctx context.Context) (*notes.Note, error) {
	select {
	case <-op.done:
		return op.note, op.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (op *Inflight) settle(note *notes.Note, err error) {
	op.note = note
	op.err = err
	close(op.done)
}

// RegistryConfig describes the optional dependencies of a Registry.
type RegistryConfig struct {
	// Clock defaults to time.Now.
	Clock func() time.Time
	// EntryTTL bounds how long an abandoned entry may linger. Defaults to
	// 30 seconds.
	EntryTTL time.Duration
	// SweepInterval is the period of the background sweep. Defaults to 10
	// seconds.
	SweepInterval time.Duration
}

// Registry is the process-wide map from slug to in-flight load operation.
// It is constructed once at startup and injected wherever loads begin.
type Registry struct {
	mu       sync.Mutex
	inflight map[string]*Inflight

	clock         func() time.Time
	entryTTL      time.Duration
	sweepInterval time.Duration
}

// NewRegistry constructs an empty registry.
func NewRegistry(cfg RegistryConfig) *Registry {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	entryTTL := cfg.EntryTTL
	if entryTTL <= 0 {
		entryTTL = defaultEntryTTL
	}
	sweepInterval := cfg.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = defaultSweepInterval
	}
	return &Registry{
		inflight:      make(map[string]*Inflight),
		clock:         clock,
		entryTTL:      entryTTL,
		sweepInterval: sweepInterval,
	}
}

// Begin atomically checks for an in-flight load for the slug and inserts one
// if absent. It returns the operation and whether the caller is the starter;
// a non-starter must Wait on the returned operation instead of loading.
// Entries past their TTL are swept on access so an abandoned operation never
// blocks a slug forever.
func (r *Registry) Begin(slug notes.Slug) (*Inflight, bool) {
	key := slug.String()
	now := r.clock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.inflight[key]; ok {
		if now.Sub(existing.startedAt) <= r.entryTTL {
			return existing, false
		}
		delete(r.inflight, key)
	}

	op := &Inflight{startedAt: now, done: make(chan struct{})}
	r.inflight[key] = op
	return op, true
}

// Finish settles the operation and removes its entry. It must be called by
// the starter exactly once, regardless of outcome.
func (r *Registry) Finish(slug notes.Slug, op *Inflight, note *notes.Note, err error) {
	op.settle(note, err)

	r.mu.Lock()
	if current, ok := r.inflight[slug.String()]; ok && current == op {
		delete(r.inflight, slug.String())
	}
	r.mu.Unlock()
}

// Len reports the number of tracked in-flight operations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inflight)
}

// Run sweeps stale entries periodically until the context is cancelled.
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep()
		}
	}
}

func (r *Registry) sweep() {
	now := r.clock()

	r.mu.Lock()
	for key, op := range r.inflight {
		if now.Sub(op.startedAt) > r.entryTTL {
			delete(r.inflight, key)
		}
	}
	r.mu.Unlock()
}
