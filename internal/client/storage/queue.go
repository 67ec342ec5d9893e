package storage

import (
	"context"

	"github.com/daybook-app/daybook-sync/internal/models"
)

//go:generate moq -out queue_mock.go . QueueStorage

// QueueStorage defines the interface for the durable upload queue on
// the device. A record stays in the queue until the ingestion service
// acknowledges it; presence of an entry is the authoritative "pending"
// signal.
type QueueStorage interface {
	// Enqueue validates the record, assigns an ID when empty and
	// commits it to stable storage before returning.
	Enqueue(ctx context.Context, record models.PendingRecord) (*models.QueueEntry, error)

	// ListPending returns the current entries of one kind in FIFO
	// order by creation timestamp. The result is a finite snapshot,
	// not a live stream.
	ListPending(ctx context.Context, kind models.RecordKind) ([]*models.QueueEntry, error)

	// Remove deletes an acknowledged entry. Idempotent: removing an
	// absent id is not an error.
	Remove(ctx context.Context, kind models.RecordKind, id string) error

	// MarkFailed records a failed upload attempt: increments the
	// attempt counter and stores the error kind and message.
	// Returns ErrEntryNotFound if the entry doesn't exist.
	MarkFailed(ctx context.Context, kind models.RecordKind, id, errorKind, message string) error

	// Requeue resets a failed entry to a fresh pending state,
	// clearing its attempt history. Used to rescue dead-lettered
	// entries. Returns ErrEntryNotFound if the entry doesn't exist.
	Requeue(ctx context.Context, kind models.RecordKind, id string) error

	// PendingCounts returns the number of entries per kind.
	PendingCounts(ctx context.Context) (map[models.RecordKind]int, error)

	// DeadLetterCounts returns, per kind, the number of entries the
	// server rejected at least maxAttempts times.
	DeadLetterCounts(ctx context.Context, maxAttempts int) (map[models.RecordKind]int, error)
}
