package boltdb

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/daybook-app/daybook-sync/internal/client/storage"
)

const (
	keyLastSuccessAt = "last_success_at"
	keyDeviceID      = "device_id"
)

// LastSuccessAt returns the time of the last pass that uploaded at
// least one record, or nil if no pass has succeeded yet.
func (s *Storage) LastSuccessAt(ctx context.Context) (*time.Time, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var at *time.Time

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSyncState)
		if bucket == nil {
			return fmt.Errorf("sync state bucket not found")
		}

		raw := bucket.Get([]byte(keyLastSuccessAt))
		if raw == nil {
			// No pass has succeeded yet.
			return nil
		}

		t := time.Unix(int64(binary.BigEndian.Uint64(raw)), 0)
		at = &t
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get last success time: %w", err)
	}

	return at, nil
}

// SaveLastSuccessAt persists the last successful pass time.
func (s *Storage) SaveLastSuccessAt(ctx context.Context, t time.Time) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSyncState)
		if bucket == nil {
			return fmt.Errorf("sync state bucket not found")
		}

		raw := make([]byte, 8)
		binary.BigEndian.PutUint64(raw, uint64(t.Unix()))

		if err := bucket.Put([]byte(keyLastSuccessAt), raw); err != nil {
			return fmt.Errorf("failed to save last success time: %w", err)
		}

		return nil
	})
}

// DeviceID returns the stable identifier of this device, generating
// and persisting one on first call.
func (s *Storage) DeviceID(ctx context.Context) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var id string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSyncState)
		if bucket == nil {
			return fmt.Errorf("sync state bucket not found")
		}

		if raw := bucket.Get([]byte(keyDeviceID)); raw != nil {
			id = string(raw)
		}
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to get device id: %w", err)
	}

	if id != "" {
		return id, nil
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSyncState)
		if bucket == nil {
			return fmt.Errorf("sync state bucket not found")
		}

		// Re-check under the write lock; a concurrent caller may have
		// generated the id between the two transactions.
		if raw := bucket.Get([]byte(keyDeviceID)); raw != nil {
			id = string(raw)
			return nil
		}

		id = uuid.NewString()
		if err := bucket.Put([]byte(keyDeviceID), []byte(id)); err != nil {
			return fmt.Errorf("failed to save device id: %w", err)
		}

		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to create device id: %w", err)
	}

	return id, nil
}
