package session

import "errors"

var (
	// ErrSessionNotFound is returned for an unknown session id
	ErrSessionNotFound = errors.New("session not found")

	// ErrOutputNotBound is returned when generated text has no note field to go to
	ErrOutputNotBound = errors.New("generation output is not bound to a note field")

	// ErrUnknownSection is returned for a section missing from the schema
	ErrUnknownSection = errors.New("unknown prompt section")
)
