package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/xavierfontaine/omakase/internal/storage"
)

// SaveRowAssociations stores all associations of one row type.
// Associations live in a nested bucket per user.
func (s *Storage) SaveRowAssociations(ctx context.Context, user, rowType string, doc []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketRowAssocs)
		if root == nil {
			return fmt.Errorf("row associations bucket not found")
		}

		userBucket, err := root.CreateBucketIfNotExists([]byte(user))
		if err != nil {
			return fmt.Errorf("failed to create user bucket: %w", err)
		}

		if err := userBucket.Put([]byte(rowType), doc); err != nil {
			return fmt.Errorf("failed to save row associations: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetRowAssociations retrieves the associations of one row type
func (s *Storage) GetRowAssociations(ctx context.Context, user, rowType string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var doc []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		root := tx.Bucket(bucketRowAssocs)
		if root == nil {
			return fmt.Errorf("row associations bucket not found")
		}

		// Нет bucket пользователя - ассоциаций ещё не было
		userBucket := root.Bucket([]byte(user))
		if userBucket == nil {
			return storage.ErrRowAssociationsNotFound
		}

		data := userBucket.Get([]byte(rowType))
		if data == nil {
			return storage.ErrRowAssociationsNotFound
		}

		doc = make([]byte, len(data))
		copy(doc, data)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return doc, nil
}
