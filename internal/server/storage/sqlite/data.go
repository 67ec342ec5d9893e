package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-sync/internal/models"
	"github.com/daybook-app/daybook-sync/internal/server/storage"
)

// SaveRecord persists one ingested record with its attachments.
// Idempotent on (kind, client id): replaying an already-stored record
// returns the original server id and writes nothing, which makes
// at-least-once delivery from the client safe.
func (s *Storage) SaveRecord(ctx context.Context, rec *storage.Record, atts []storage.Attachment) (string, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing string
	err = tx.QueryRowContext(ctx,
		`SELECT server_id FROM records WHERE kind = ? AND client_id = ?`,
		rec.Kind, rec.ClientID,
	).Scan(&existing)

	switch {
	case err == nil:
		// Replay of an acknowledged record.
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return "", false, fmt.Errorf("failed to check for existing record: %w", err)
	}

	serverID := uuid.NewString()
	receivedAt := rec.ReceivedAt
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO records (server_id, client_id, device_id, kind, created_at, received_at, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, serverID, rec.ClientID, rec.DeviceID, rec.Kind, rec.CreatedAt.Unix(), receivedAt.Unix(), rec.Payload)
	if err != nil {
		return "", false, fmt.Errorf("failed to insert record: %w", err)
	}

	for i := range atts {
		att := &atts[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO record_attachments (record_server_id, position, filename, content_type, data)
			VALUES (?, ?, ?, ?, ?)
		`, serverID, i, att.Filename, att.ContentType, att.Data)
		if err != nil {
			return "", false, fmt.Errorf("failed to insert attachment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("failed to commit record: %w", err)
	}

	return serverID, true, nil
}

// CountByKind returns the number of stored records per kind.
func (s *Storage) CountByKind(ctx context.Context) (map[models.RecordKind]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM records GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	counts := make(map[models.RecordKind]int)

	for rows.Next() {
		var (
			kind  models.RecordKind
			count int
		)
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[kind] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return counts, nil
}

// AttachmentCount returns the number of attachments stored for one
// record. Used by tests and diagnostics.
func (s *Storage) AttachmentCount(ctx context.Context, serverID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM record_attachments WHERE record_server_id = ?`,
		serverID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attachments: %w", err)
	}
	return count, nil
}
