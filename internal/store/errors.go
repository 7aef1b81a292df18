package store

import "errors"

var (
	// ErrStore is the catch-all base for transport and store failures.
	// Implementations wrap it so callers can match with errors.Is.
	ErrStore = errors.New("store error")

	// ErrUniqueViolation is the distinguishable uniqueness-violation signal
	// required of Insert.
	ErrUniqueViolation = errors.New("unique violation")

	// ErrBadIdentifier is returned when a table or column name fails the
	// identifier check before any SQL is built.
	ErrBadIdentifier = errors.New("invalid identifier")
)
