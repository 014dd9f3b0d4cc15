package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateSlug = errors.New("duplicate slug")
	ErrInvalidDoc    = errors.New("invalid document")
)
