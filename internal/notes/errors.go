package notes

import "fmt"

// CreationError reports a failed note insert. A duplicate slug insert lands
// here via the unique index, so concurrent create attempts for the same slug
// cannot silently produce two rows.
type CreationError struct {
	Slug string
	Err  error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("failed to create note %q: %v", e.Slug, e.Err)
}

func (e *CreationError) Unwrap() error {
	return e.Err
}

// UpdateError reports a failed content or theme update, including updates
// that matched no row.
type UpdateError struct {
	Slug  string
	Field string
	Err   error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("failed to update note %s %q: %v", e.Field, e.Slug, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}
