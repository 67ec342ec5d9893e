package models

import "time"

// EntryState is the explicit upload state of a queued entry. A row's
// presence in the queue is still the authoritative "pending" signal;
// the state distinguishes fresh entries from ones with failed attempts.
type EntryState string

// Entry states.
const (
	StatePending EntryState = "pending"
	StateFailed  EntryState = "failed"
)

// Error kinds recorded on an entry after a failed upload attempt.
const (
	ErrorKindStorage  = "storage"
	ErrorKindNetwork  = "network"
	ErrorKindRejected = "rejected"
)

// QueueEntry is one durable row of the upload queue: a pending record
// plus its attempt history. Entries are removed on acknowledged upload
// and retained otherwise.
type QueueEntry struct {
	CreatedAt     time.Time
	Record        PendingRecord
	ID            string
	Kind          RecordKind
	State         EntryState
	LastErrorKind string
	LastError     string
	Attempts      int
}

// DeadLettered reports whether the entry has been rejected by the
// server at least maxAttempts times and should be skipped by passes
// until requeued. Network and storage failures never dead-letter.
// maxAttempts <= 0 disables the check.
func (e *QueueEntry) DeadLettered(maxAttempts int) bool {
	return maxAttempts > 0 &&
		e.State == StateFailed &&
		e.LastErrorKind == ErrorKindRejected &&
		e.Attempts >= maxAttempts
}
