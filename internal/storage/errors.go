package storage

import "errors"

// Common storage errors
var (
	// ErrPreferencesNotFound indicates that no preference document exists for the user
	ErrPreferencesNotFound = errors.New("preferences not found")

	// ErrRowAssociationsNotFound indicates that no row associations exist for the row type
	ErrRowAssociationsNotFound = errors.New("row associations not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
