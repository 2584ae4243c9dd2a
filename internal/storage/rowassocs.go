package storage

import "context"

// RowAssociationStorage defines interface for persisting free-text associations
// between the fields of a prompt row, per user and row type.
type RowAssociationStorage interface {
	// SaveRowAssociations stores all associations of one row type
	SaveRowAssociations(ctx context.Context, user, rowType string, doc []byte) error

	// GetRowAssociations retrieves the associations of one row type
	// Returns ErrRowAssociationsNotFound if nothing was stored yet
	GetRowAssociations(ctx context.Context, user, rowType string) ([]byte, error)
}
