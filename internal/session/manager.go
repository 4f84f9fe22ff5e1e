package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/slugpad/slugpad/internal/dedup"
	"github.com/slugpad/slugpad/internal/notes"
)

const (
	defaultIdleTTL           = 10 * time.Minute
	defaultIdleSweepInterval = time.Minute
)

// ManagerConfig describes the dependencies of a Manager.
type ManagerConfig struct {
	Gateway     Gateway
	Registry    *dedup.Registry
	Logger      *zap.Logger
	Clock       func() time.Time
	BaseContext context.Context
	QuietPeriod time.Duration
	SavedFlash  time.Duration
	// IdleTTL is how long an untouched session survives before eviction.
	// Defaults to 10 minutes.
	IdleTTL time.Duration
	// SweepInterval is the period of the idle-eviction sweep. Defaults to
	// one minute.
	SweepInterval time.Duration
}

// Manager owns one session per active slug. A session is created and starts
// loading on first acquisition and is discarded after sitting idle.
type Manager struct {
	sessionCfg    Config
	logger        *zap.Logger
	clock         func() time.Time
	idleTTL       time.Duration
	sweepInterval time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager constructs a session manager.
func NewManager(cfg ManagerConfig) (*Manager, error) {
	if cfg.Gateway == nil {
		return nil, errMissingGateway
	}
	if cfg.Registry == nil {
		return nil, errMissingRegistry
	}

	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	idleTTL := cfg.IdleTTL
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	sweepInterval := cfg.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = defaultIdleSweepInterval
	}

	return &Manager{
		sessionCfg: Config{
			Gateway:     cfg.Gateway,
			Registry:    cfg.Registry,
			Logger:      logger,
			Clock:       clock,
			BaseContext: cfg.BaseContext,
			QuietPeriod: cfg.QuietPeriod,
			SavedFlash:  cfg.SavedFlash,
		},
		logger:        logger,
		clock:         clock,
		idleTTL:       idleTTL,
		sweepInterval: sweepInterval,
		sessions:      make(map[string]*Session),
	}, nil
}

// Acquire returns the session for the slug, creating and tracking one when
// none exists.
func (m *Manager) Acquire(slug notes.Slug) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[slug.String()]; ok {
		existing.touch(m.clock())
		return existing
	}

	sess := newSession(m.sessionCfg)
	m.sessions[slug.String()] = sess
	sess.Track(slug)
	return sess
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Run evicts idle sessions periodically until the context is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	now := m.clock()

	m.mu.Lock()
	var evicted []*Session
	for key, sess := range m.sessions {
		if now.Sub(sess.LastTouched()) > m.idleTTL {
			evicted = append(evicted, sess)
			delete(m.sessions, key)
			m.logger.Debug("session evicted", zap.String("slug", key))
		}
	}
	m.mu.Unlock()

	for _, sess := range evicted {
		sess.Close()
	}
}

// Close stops every live session.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}
