package storage

import (
	"context"
	"time"
)

//go:generate moq -out state_mock.go . SyncStateStorage

// SyncStateStorage defines the interface for the small pieces of sync
// state that must survive process restarts.
type SyncStateStorage interface {
	// LastSuccessAt returns the time of the last pass that uploaded
	// at least one record, or nil if none has yet.
	LastSuccessAt(ctx context.Context) (*time.Time, error)

	// SaveLastSuccessAt persists the last successful pass time.
	SaveLastSuccessAt(ctx context.Context, t time.Time) error

	// DeviceID returns the stable identifier of this device,
	// generating and persisting one on first call.
	DeviceID(ctx context.Context) (string, error)
}
