package notes

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slugpad/slugpad/internal/document"
)

var (
	errMissingDatabase   = errors.New("database handle is required")
	errMissingIDProvider = errors.New("id provider is required")
	errMissingThemes     = errors.New("theme picker is required")
	errNoRowsUpdated     = errors.New("no rows updated")
	noOpLogger           = zap.NewNop()
)

const (
	opGetNote            = "notes.get_note"
	opCreateNote         = "notes.create_note"
	opUpdateNote         = "notes.update_note"
	opUpdateLastAccessed = "notes.update_last_accessed"
	opUpdateTheme        = "notes.update_theme"
)

// ThemePicker chooses the theme assigned to newly created notes.
type ThemePicker interface {
	Random() string
}

// StoreConfig describes the dependencies required by the note store.
type StoreConfig struct {
	Database   *gorm.DB
	Clock      func() time.Time
	IDProvider IDProvider
	Themes     ThemePicker
	Logger     *zap.Logger
}

// Store performs slug-keyed CRUD against the note table. Every mutating call
// touches exactly one row, identified by slug.
type Store struct {
	db     *gorm.DB
	clock  func() time.Time
	ids    IDProvider
	themes ThemePicker
	logger *zap.Logger
}

// NewStore constructs the note store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Database == nil {
		return nil, errMissingDatabase
	}
	if cfg.IDProvider == nil {
		return nil, errMissingIDProvider
	}
	if cfg.Themes == nil {
		return nil, errMissingThemes
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = noOpLogger
	}

	return &Store{
		db:     cfg.Database,
		clock:  clock,
		ids:    cfg.IDProvider,
		themes: cfg.Themes,
		logger: logger,
	}, nil
}

// GetNote looks a note up by slug. It returns absent both when no row exists
// and when the query fails; callers fall back to creation either way, and a
// creation racing an existing row surfaces as a CreationError through the
// unique slug index.
func (s *Store) GetNote(ctx context.Context, slug Slug) (*Note, bool) {
	var note Note
	err := s.db.WithContext(ctx).
		Where("slug = ?", slug.String()).
		Take(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("note lookup failed, treating as absent",
			zap.String("operation", opGetNote),
			zap.String("slug", slug.String()),
			zap.Error(err))
		return nil, false
	}
	return &note, true
}

// CreateNote inserts a fresh row for the slug with a randomly chosen theme,
// the canonical empty document, and all timestamps set to now.
func (s *Store) CreateNote(ctx context.Context, slug Slug) (*Note, error) {
	id, err := s.ids.NewID()
	if err != nil {
		s.logError(opCreateNote, "id_generation_failed", err, slug)
		return nil, &CreationError{Slug: slug.String(), Err: err}
	}

	now := s.clock().UTC().Unix()
	note := Note{
		ID:                  id,
		Slug:                slug.String(),
		Theme:               s.themes.Random(),
		CreatedAtSeconds:    now,
		UpdatedAtSeconds:    now,
		LastAccessedSeconds: now,
	}
	if err := note.SetContent(document.Empty()); err != nil {
		s.logError(opCreateNote, "content_encode_failed", err, slug)
		return nil, &CreationError{Slug: slug.String(), Err: err}
	}

	if err := s.db.WithContext(ctx).Create(&note).Error; err != nil {
		s.logError(opCreateNote, "insert_failed", err, slug)
		return nil, &CreationError{Slug: slug.String(), Err: err}
	}
	return &note, nil
}

// UpdateNote persists new content for the slug and bumps updated_at and
// last_accessed.
func (s *Store) UpdateNote(ctx context.Context, slug Slug, content document.Node) (*Note, error) {
	raw, err := document.Encode(content)
	if err != nil {
		s.logError(opUpdateNote, "content_encode_failed", err, slug)
		return nil, &UpdateError{Slug: slug.String(), Field: "content", Err: err}
	}

	now := s.clock().UTC().Unix()
	result := s.db.WithContext(ctx).
		Model(&Note{}).
		Where("slug = ?", slug.String()).
		Updates(map[string]any{
			"content_json":    string(raw),
			"updated_at_s":    now,
			"last_accessed_s": now,
		})
	if result.Error != nil {
		s.logError(opUpdateNote, "update_failed", result.Error, slug)
		return nil, &UpdateError{Slug: slug.String(), Field: "content", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		s.logError(opUpdateNote, "missing_row", errNoRowsUpdated, slug)
		return nil, &UpdateError{Slug: slug.String(), Field: "content", Err: errNoRowsUpdated}
	}

	return s.reload(ctx, opUpdateNote, "content", slug)
}

// UpdateLastAccessed records a view of the note. Failures are swallowed; the
// touch is not on any correctness path.
func (s *Store) UpdateLastAccessed(ctx context.Context, slug Slug) {
	now := s.clock().UTC().Unix()
	err := s.db.WithContext(ctx).
		Model(&Note{}).
		Where("slug = ?", slug.String()).
		Update("last_accessed_s", now).Error
	if err != nil {
		s.logger.Debug("last accessed touch failed",
			zap.String("operation", opUpdateLastAccessed),
			zap.String("slug", slug.String()),
			zap.Error(err))
	}
}

// UpdateTheme persists a new theme name for the slug and bumps updated_at.
func (s *Store) UpdateTheme(ctx context.Context, slug Slug, themeName string) (*Note, error) {
	now := s.clock().UTC().Unix()
	result := s.db.WithContext(ctx).
		Model(&Note{}).
		Where("slug = ?", slug.String()).
		Updates(map[string]any{
			"theme":        themeName,
			"updated_at_s": now,
		})
	if result.Error != nil {
		s.logError(opUpdateTheme, "update_failed", result.Error, slug)
		return nil, &UpdateError{Slug: slug.String(), Field: "theme", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		s.logError(opUpdateTheme, "missing_row", errNoRowsUpdated, slug)
		return nil, &UpdateError{Slug: slug.String(), Field: "theme", Err: errNoRowsUpdated}
	}

	return s.reload(ctx, opUpdateTheme, "theme", slug)
}

func (s *Store) reload(ctx context.Context, operation, field string, slug Slug) (*Note, error) {
	var note Note
	err := s.db.WithContext(ctx).
		Where("slug = ?", slug.String()).
		Take(&note).Error
	if err != nil {
		s.logError(operation, "reload_failed", err, slug)
		return nil, &UpdateError{Slug: slug.String(), Field: field, Err: err}
	}
	return &note, nil
}

func (s *Store) logError(operation, reason string, err error, slug Slug) {
	s.logger.Error("note store error",
		zap.String("operation", operation),
		zap.String("reason", reason),
		zap.String("slug", slug.String()),
		zap.Error(err))
}
