package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/xavierfontaine/omakase/internal/storage"
)

// SavePreferences stores the whole preference document of a user
func (s *Storage) SavePreferences(ctx context.Context, user string, doc []byte) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("preferences bucket not found")
		}

		// Документ пишется целиком, ключ - имя пользователя
		if err := bucket.Put([]byte(user), doc); err != nil {
			return fmt.Errorf("failed to save preferences: %w", err)
		}

		return nil
	})
}

// GetPreferences retrieves the preference document of a user
func (s *Storage) GetPreferences(ctx context.Context, user string) ([]byte, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var doc []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("preferences bucket not found")
		}

		data := bucket.Get([]byte(user))
		if data == nil {
			return storage.ErrPreferencesNotFound
		}

		// Копируем: данные bbolt валидны только внутри транзакции
		doc = make([]byte, len(data))
		copy(doc, data)
		return nil
	})

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// DeletePreferences removes the preference document of a user
func (s *Storage) DeletePreferences(ctx context.Context, user string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPreferences)
		if bucket == nil {
			return fmt.Errorf("preferences bucket not found")
		}

		if bucket.Get([]byte(user)) == nil {
			return storage.ErrPreferencesNotFound
		}

		if err := bucket.Delete([]byte(user)); err != nil {
			return fmt.Errorf("failed to delete preferences: %w", err)
		}

		return nil
	})
}
