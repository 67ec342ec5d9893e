package storage

import (
	"context"
	"time"

	"github.com/daybook-app/daybook-sync/internal/models"
)

// Record is one ingested record as persisted by the service. The
// payload is the canonical JSON form of the wire payload; attachments
// live in their own rows.
type Record struct {
	CreatedAt  time.Time
	ReceivedAt time.Time
	ServerID   string
	ClientID   string
	DeviceID   string
	Kind       models.RecordKind
	Payload    []byte
}

// Attachment is one binary blob stored alongside an experience record.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RecordStorage defines the interface for the server-side record
// store.
type RecordStorage interface {
	// SaveRecord persists rec with its attachments and returns the
	// server-assigned id. Ingest is idempotent on (kind, client id):
	// a replayed record returns the original server id with
	// created=false and writes nothing.
	SaveRecord(ctx context.Context, rec *Record, atts []Attachment) (serverID string, created bool, err error)

	// CountByKind returns the number of stored records per kind.
	CountByKind(ctx context.Context) (map[models.RecordKind]int, error)
}
