package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFilter signals an invalid search filter.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidSynonymGroup signals an invalid synonym group definition.
	ErrInvalidSynonymGroup = errors.New("invalid synonym group")
	// ErrInvalidItem signals an invalid item record.
	ErrInvalidItem = errors.New("invalid item")
	// ErrIndexUnavailable signals that the text index cannot serve queries.
	ErrIndexUnavailable = errors.New("text index unavailable")
)
