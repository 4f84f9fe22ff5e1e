package notes

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/slugpad/slugpad/internal/document"
)

const maxSlugLength = 190

var (
	// ErrInvalidSlug indicates that a slug is empty, malformed, or exceeds
	// storage bounds.
	ErrInvalidSlug = errors.New("notes: invalid slug")

	slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Slug represents a validated note slug. The slug is the primary lookup key
// and the only capability required to read or edit a note.
type Slug string

// NewSlug validates raw input and returns a Slug.
func NewSlug(rawInput string) (Slug, error) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidSlug)
	}
	if len(trimmed) > maxSlugLength {
		return "", fmt.Errorf("%w: exceeds %d characters", ErrInvalidSlug, maxSlugLength)
	}
	if !slugPattern.MatchString(trimmed) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, trimmed)
	}
	return Slug(trimmed), nil
}

// String returns the underlying slug value.
func (s Slug) String() string {
	return string(s)
}

// Note models the persisted note row. The slug is assigned once at creation
// and never regenerated; content is always a well-formed document tree.
type Note struct {
	ID                  string `gorm:"column:id;primaryKey;size:190;not null"`
	Slug                string `gorm:"column:slug;size:190;not null;uniqueIndex:idx_notes_slug"`
	ContentJSON         string `gorm:"column:content_json;type:text;not null"`
	Theme               string `gorm:"column:theme;size:64;not null"`
	CreatedAtSeconds    int64  `gorm:"column:created_at_s;not null"`
	UpdatedAtSeconds    int64  `gorm:"column:updated_at_s;not null"`
	LastAccessedSeconds int64  `gorm:"column:last_accessed_s;not null;index:idx_notes_last_accessed"`
}

// TableName provides the explicit table binding for GORM.
func (Note) TableName() string {
	return "notes"
}

// Content decodes the stored document tree.
func (n *Note) Content() (document.Node, error) {
	return document.Decode([]byte(n.ContentJSON))
}

// SetContent encodes and stores the document tree.
func (n *Note) SetContent(doc document.Node) error {
	raw, err := document.Encode(doc)
	if err != nil {
		return err
	}
	n.ContentJSON = string(raw)
	return nil
}
