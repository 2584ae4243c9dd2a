package storage

import "context"

// PreferenceStorage defines interface for persisting per-user preference documents.
// This is the lowest storage layer: documents are opaque bytes (JSON encoded by
// the prefs package), no decoding happens here.
type PreferenceStorage interface {
	// SavePreferences stores the whole preference document of a user
	SavePreferences(ctx context.Context, user string, doc []byte) error

	// GetPreferences retrieves the preference document of a user
	// Returns ErrPreferencesNotFound if nothing was stored yet
	GetPreferences(ctx context.Context, user string) ([]byte, error)

	// DeletePreferences removes the preference document of a user
	DeletePreferences(ctx context.Context, user string) error
}
