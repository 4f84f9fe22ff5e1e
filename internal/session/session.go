// Package session holds the note synchronization engine: per-slug sessions
// that load notes through the deduplication registry, debounce user edits
// into autosaves, and apply theme changes optimistically.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/slugpad/slugpad/internal/dedup"
	"github.com/slugpad/slugpad/internal/document"
	"github.com/slugpad/slugpad/internal/notes"
	"github.com/slugpad/slugpad/internal/theme"
)

const (
	defaultQuietPeriod = 800 * time.Millisecond
	defaultSavedFlash  = 2 * time.Second
)

var (
	errMissingGateway  = errors.New("note gateway is required")
	errMissingRegistry = errors.New("dedup registry is required")
	noOpLogger         = zap.NewNop()
)

// Gateway is the persistence boundary the session drives. GetNote folds
// failures into absent; all other errors surface to the session.
type Gateway interface {
	GetNote(ctx context.Context, slug notes.Slug) (*notes.Note, bool)
	CreateNote(ctx context.Context, slug notes.Slug) (*notes.Note, error)
	UpdateNote(ctx context.Context, slug notes.Slug, content document.Node) (*notes.Note, error)
	UpdateLastAccessed(ctx context.Context, slug notes.Slug)
	UpdateTheme(ctx context.Context, slug notes.Slug, themeName string) (*notes.Note, error)
}

// Phase names the coarse state of a session's load lifecycle. Saving is a
// flag rather than a phase: the editor stays usable while a save is in
// flight.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// Config describes the dependencies of a Session.
type Config struct {
	Gateway  Gateway
	Registry *dedup.Registry
	Logger   *zap.Logger
	Clock    func() time.Time
	// BaseContext is used for gateway calls triggered by timers rather than
	// requests. Defaults to context.Background().
	BaseContext context.Context
	// QuietPeriod is the autosave debounce window. Defaults to 800ms.
	QuietPeriod time.Duration
	// SavedFlash is how long the saved indicator stays visible. Defaults
	// to 2s.
	SavedFlash time.Duration
}

type debouncedEdit struct {
	epoch   uint64
	content document.Node
}

// Session owns the synchronization state for one slug view: the last-known
// persisted note, the live editor content that may lead it, and the
// transient saving/saved/error indicators.
type Session struct {
	gateway    Gateway
	registry   *dedup.Registry
	logger     *zap.Logger
	clock      func() time.Time
	baseCtx    context.Context
	savedFlash time.Duration
	debouncer  *Debouncer[debouncedEdit]

	mu              sync.Mutex
	epoch           uint64
	slug            notes.Slug
	phase           Phase
	note            *notes.Note
	content         document.Node
	theme           string
	isSaving        bool
	showSaved       bool
	errorMessage    string
	userHasModified bool
	lastSaved       document.Node
	ready           chan struct{}
	savedTimer      *time.Timer
	lastTouched     time.Time
}

// New constructs an idle session. Call Track to bind it to a slug.
func New(cfg Config) (*Session, error) {
	if cfg.Gateway == nil {
		return nil, errMissingGateway
	}
	if cfg.Registry == nil {
		return nil, errMissingRegistry
	}
	return newSession(cfg), nil
}

// newSession assumes cfg carries a gateway and a registry; callers validate.
func newSession(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	baseCtx := cfg.BaseContext
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	quiet := cfg.QuietPeriod
	if quiet <= 0 {
		quiet = defaultQuietPeriod
	}
	savedFlash := cfg.SavedFlash
	if savedFlash <= 0 {
		savedFlash = defaultSavedFlash
	}

	ready := make(chan struct{})
	close(ready)

	s := &Session{
		gateway:     cfg.Gateway,
		registry:    cfg.Registry,
		logger:      logger,
		clock:       clock,
		baseCtx:     baseCtx,
		savedFlash:  savedFlash,
		phase:       PhaseIdle,
		content:     document.Empty(),
		theme:       theme.DefaultName,
		ready:       ready,
		lastTouched: clock(),
	}
	s.debouncer = NewDebouncer(quiet, s.saveSettled)
	return s
}

// Track binds the session to a slug and starts loading it. State is reset to
// an empty unsaved document first so a previous slug's content can never show
// through. If a load for the slug is already in flight process-wide, the
// session adopts that operation's result instead of starting another.
func (s *Session) Track(slug notes.Slug) {
	s.debouncer.Cancel()

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	// Release waiters of a superseded load; its result will be discarded.
	if s.phase == PhaseLoading {
		close(s.ready)
	}
	s.slug = slug
	s.phase = PhaseLoading
	s.note = nil
	s.content = document.Empty()
	s.theme = theme.DefaultName
	s.isSaving = false
	s.showSaved = false
	s.errorMessage = ""
	s.userHasModified = false
	s.lastSaved = document.Node{}
	if s.savedTimer != nil {
		s.savedTimer.Stop()
		s.savedTimer = nil
	}
	s.ready = make(chan struct{})
	s.lastTouched = s.clock()
	s.mu.Unlock()

	op, started := s.registry.Begin(slug)
	if started {
		go s.startLoad(slug, epoch, op)
		return
	}
	go s.adoptLoad(slug, epoch, op)
}

// startLoad performs the fetch-or-create against the gateway and settles the
// registry entry so duplicate callers can adopt the outcome.
func (s *Session) startLoad(slug notes.Slug, epoch uint64, op *dedup.Inflight) {
	note, found := s.gateway.GetNote(s.baseCtx, slug)
	var err error
	if !found {
		note, err = s.gateway.CreateNote(s.baseCtx, slug)
	} else {
		// View bump; failures never block or error the session.
		s.gateway.UpdateLastAccessed(s.baseCtx, slug)
	}

	s.registry.Finish(slug, op, note, err)
	s.applyLoad(slug, epoch, note, err)
}

func (s *Session) adoptLoad(slug notes.Slug, epoch uint64, op *dedup.Inflight) {
	note, err := op.Wait(s.baseCtx)
	s.applyLoad(slug, epoch, note, err)
}

// applyLoad writes a settled load into session state unless the session has
// moved on to another slug in the meantime, in which case the result is
// discarded silently.
func (s *Session) applyLoad(slug notes.Slug, epoch uint64, note *notes.Note, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		return
	}

	defer close(s.ready)

	if err != nil {
		s.phase = PhaseError
		s.errorMessage = err.Error()
		s.logger.Warn("note load failed",
			zap.String("slug", slug.String()),
			zap.Error(err))
		return
	}

	content, decodeErr := note.Content()
	if decodeErr != nil {
		s.phase = PhaseError
		s.errorMessage = "failed to load note"
		s.logger.Error("stored note content is malformed",
			zap.String("slug", slug.String()),
			zap.Error(decodeErr))
		return
	}

	s.note = note
	s.content = content
	s.lastSaved = content
	s.theme = note.Theme
	s.phase = PhaseReady
}

// WaitReady blocks until the current load settles (successfully or not) or
// the context is cancelled.
func (s *Session) WaitReady(ctx context.Context) error {
	s.mu.Lock()
	ready := s.ready
	s.mu.Unlock()

	select {
	case <-ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// UpdateContent applies a user edit immediately and schedules a debounced
// autosave. Errors from previous operations are cleared; typing is always
// allowed.
func (s *Session) UpdateContent(content document.Node) {
	s.mu.Lock()
	s.content = content
	s.userHasModified = true
	s.errorMessage = ""
	s.lastTouched = s.clock()
	epoch := s.epoch
	s.mu.Unlock()

	s.debouncer.Set(debouncedEdit{epoch: epoch, content: content})
}

// saveSettled runs when the editor content has been quiet for the debounce
// window. It never fires a save for content the user did not modify and
// skips writes that would be structural no-ops.
func (s *Session) saveSettled(edit debouncedEdit) {
	s.mu.Lock()
	if edit.epoch != s.epoch || s.note == nil || !s.userHasModified {
		s.mu.Unlock()
		return
	}
	if document.Equal(edit.content, s.lastSaved) {
		s.mu.Unlock()
		return
	}
	slug := s.slug
	epoch := s.epoch
	s.isSaving = true
	s.mu.Unlock()

	note, err := s.gateway.UpdateNote(s.baseCtx, slug, edit.content)

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.isSaving = false
	if err != nil {
		s.errorMessage = err.Error()
		s.logger.Warn("autosave failed",
			zap.String("slug", slug.String()),
			zap.Error(err))
		return
	}

	s.note = note
	s.lastSaved = edit.content
	s.showSaved = true
	if s.savedTimer != nil {
		s.savedTimer.Stop()
	}
	s.savedTimer = time.AfterFunc(s.savedFlash, func() {
		s.mu.Lock()
		if epoch == s.epoch {
			s.showSaved = false
		}
		s.mu.Unlock()
	})
}

// UpdateTheme applies a theme choice. The local value is updated before the
// gateway call resolves and is never rolled back on persistence failure: the
// store lags, it does not lead, for this field.
func (s *Session) UpdateTheme(ctx context.Context, themeName string) error {
	s.mu.Lock()
	if s.note == nil {
		s.mu.Unlock()
		return nil
	}
	s.theme = themeName
	s.errorMessage = ""
	s.lastTouched = s.clock()
	slug := s.slug
	epoch := s.epoch
	s.mu.Unlock()

	note, err := s.gateway.UpdateTheme(ctx, slug, themeName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if epoch == s.epoch {
			s.errorMessage = err.Error()
		}
		return err
	}
	if epoch == s.epoch && note != nil {
		s.note = note
	}
	return nil
}

// Snapshot captures the session state for rendering.
type Snapshot struct {
	Slug         string
	Phase        Phase
	Note         *notes.Note
	Content      document.Node
	Theme        string
	IsSaving     bool
	ShowSaved    bool
	ErrorMessage string
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := Snapshot{
		Slug:         s.slug.String(),
		Phase:        s.phase,
		Content:      s.content,
		Theme:        s.theme,
		IsSaving:     s.isSaving,
		ShowSaved:    s.showSaved,
		ErrorMessage: s.errorMessage,
	}
	if s.note != nil {
		noteCopy := *s.note
		snapshot.Note = &noteCopy
	}
	return snapshot
}

// LastTouched reports when the session last saw user activity.
func (s *Session) LastTouched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTouched
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastTouched = now
	s.mu.Unlock()
}

// Close stops the session's timers. In-flight gateway calls are not aborted;
// their results are discarded by the epoch guard.
func (s *Session) Close() {
	s.debouncer.Stop()

	s.mu.Lock()
	s.epoch++
	if s.savedTimer != nil {
		s.savedTimer.Stop()
		s.savedTimer = nil
	}
	// Release anyone blocked on a load that will now never apply.
	if s.phase == PhaseLoading {
		s.phase = PhaseIdle
		close(s.ready)
	}
	s.mu.Unlock()
}
