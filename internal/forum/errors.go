// Package forum implements the moderation, voting, and threading rules for
// posts and comments. All operations take an explicit Caller and go through
// narrow store interfaces, so the rules are testable without a request
// context or a live database.
package forum

import "errors"

// Error taxonomy surfaced to handlers. Anything else coming out of a store
// is an internal storage failure and is passed through wrapped.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)
