package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook-sync/internal/client/storage"
	"github.com/daybook-app/daybook-sync/internal/models"
)

// maxErrorLen bounds the stored upload error message so a verbose
// server response cannot bloat the queue database.
const maxErrorLen = 512

// tableFor maps a record kind to its queue table.
func tableFor(kind models.RecordKind) (string, error) {
	switch kind {
	case models.KindNote:
		return "pending_notes", nil
	case models.KindEmotion:
		return "pending_emotions", nil
	case models.KindChat:
		return "pending_chat_messages", nil
	case models.KindExperience:
		return "pending_experiences", nil
	default:
		return "", fmt.Errorf("unknown record kind: %s", kind)
	}
}

// Enqueue validates the record, assigns an id and capture time when
// missing and commits the row (plus attachments for experiences)
// before returning.
func (s *Storage) Enqueue(ctx context.Context, record models.PendingRecord) (*models.QueueEntry, error) {
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", record.Kind(), err)
	}

	switch rec := record.(type) {
	case *models.Note:
		fillMeta(&rec.RecordMeta)
		return s.enqueueNote(ctx, rec)
	case *models.EmotionCapture:
		fillMeta(&rec.RecordMeta)
		return s.enqueueEmotion(ctx, rec)
	case *models.ChatMessage:
		fillMeta(&rec.RecordMeta)
		return s.enqueueChatMessage(ctx, rec)
	case *models.Experience:
		if err := s.limits.Check(rec.Attachments); err != nil {
			return nil, fmt.Errorf("invalid experience: %w", err)
		}
		fillMeta(&rec.RecordMeta)
		return s.enqueueExperience(ctx, rec)
	default:
		return nil, fmt.Errorf("unsupported record kind: %s", record.Kind())
	}
}

// fillMeta assigns the id and capture time a record arrived without.
func fillMeta(meta *models.RecordMeta) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now()
	}
}

func (s *Storage) enqueueNote(ctx context.Context, n *models.Note) (*models.QueueEntry, error) {
	query := `
		INSERT INTO pending_notes (id, created_at, body, latitude, longitude)
		VALUES (?, ?, ?, ?, ?)
	`

	lat, lng := geoToNull(n.Location)
	if _, err := s.db.ExecContext(ctx, query, n.ID, n.CreatedAt.Unix(), n.Body, lat, lng); err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	return newEntry(n), nil
}

func (s *Storage) enqueueEmotion(ctx context.Context, e *models.EmotionCapture) (*models.QueueEntry, error) {
	query := `
		INSERT INTO pending_emotions (id, created_at, emotion, intensity, note, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	lat, lng := geoToNull(e.Location)
	if _, err := s.db.ExecContext(ctx, query,
		e.ID, e.CreatedAt.Unix(), e.Emotion, e.Intensity, e.Note, lat, lng,
	); err != nil {
		return nil, fmt.Errorf("failed to insert emotion: %w", err)
	}

	return newEntry(e), nil
}

func (s *Storage) enqueueChatMessage(ctx context.Context, m *models.ChatMessage) (*models.QueueEntry, error) {
	query := `
		INSERT INTO pending_chat_messages (id, created_at, conversation_id, sender, body, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	lat, lng := geoToNull(m.Location)
	if _, err := s.db.ExecContext(ctx, query,
		m.ID, m.CreatedAt.Unix(), m.ConversationID, m.Sender, m.Body, lat, lng,
	); err != nil {
		return nil, fmt.Errorf("failed to insert chat message: %w", err)
	}

	return newEntry(m), nil
}

// enqueueExperience writes the experience row and its attachments in
// one transaction so a crash cannot leave a half-stored record.
func (s *Storage) enqueueExperience(ctx context.Context, x *models.Experience) (*models.QueueEntry, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO pending_experiences (id, created_at, title, story, latitude, longitude)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	lat, lng := geoToNull(x.Location)
	if _, err := tx.ExecContext(ctx, query,
		x.ID, x.CreatedAt.Unix(), x.Title, x.Story, lat, lng,
	); err != nil {
		return nil, fmt.Errorf("failed to insert experience: %w", err)
	}

	attQuery := `
		INSERT INTO experience_attachments (experience_id, position, filename, content_type, data)
		VALUES (?, ?, ?, ?, ?)
	`

	for i := range x.Attachments {
		att := &x.Attachments[i]
		if _, err := tx.ExecContext(ctx, attQuery, x.ID, i, att.Filename, att.ContentType, att.Data); err != nil {
			return nil, fmt.Errorf("failed to insert attachment %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit experience: %w", err)
	}

	return newEntry(x), nil
}

// newEntry wraps a freshly stored record into its queue entry.
func newEntry(record models.PendingRecord) *models.QueueEntry {
	meta := record.Meta()
	return &models.QueueEntry{
		ID:        meta.ID,
		Kind:      record.Kind(),
		CreatedAt: meta.CreatedAt,
		Record:    record,
		State:     models.StatePending,
	}
}

// ListPending returns the entries of one kind in FIFO order by capture
// time, insertion order breaking ties.
func (s *Storage) ListPending(ctx context.Context, kind models.RecordKind) ([]*models.QueueEntry, error) {
	switch kind {
	case models.KindNote:
		return s.listNotes(ctx)
	case models.KindEmotion:
		return s.listEmotions(ctx)
	case models.KindChat:
		return s.listChatMessages(ctx)
	case models.KindExperience:
		return s.listExperiences(ctx)
	default:
		return nil, fmt.Errorf("unknown record kind: %s", kind)
	}
}

func (s *Storage) listNotes(ctx context.Context) ([]*models.QueueEntry, error) {
	query := `
		SELECT id, created_at, body, latitude, longitude,
		       state, attempts, last_error_kind, last_error
		FROM pending_notes
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var entries []*models.QueueEntry

	for rows.Next() {
		n := &models.Note{}
		var createdAt int64
		var lat, lng sql.NullFloat64
		var attempt attemptCols

		if err := rows.Scan(
			&n.ID, &createdAt, &n.Body, &lat, &lng,
			&attempt.state, &attempt.attempts, &attempt.errorKind, &attempt.errorMsg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}

		n.CreatedAt = unixToTime(createdAt)
		n.Location = geoFromNull(lat, lng)
		entries = append(entries, attempt.entry(n))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func (s *Storage) listEmotions(ctx context.Context) ([]*models.QueueEntry, error) {
	query := `
		SELECT id, created_at, emotion, intensity, note, latitude, longitude,
		       state, attempts, last_error_kind, last_error
		FROM pending_emotions
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query emotions: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var entries []*models.QueueEntry

	for rows.Next() {
		e := &models.EmotionCapture{}
		var createdAt int64
		var lat, lng sql.NullFloat64
		var attempt attemptCols

		if err := rows.Scan(
			&e.ID, &createdAt, &e.Emotion, &e.Intensity, &e.Note, &lat, &lng,
			&attempt.state, &attempt.attempts, &attempt.errorKind, &attempt.errorMsg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan emotion: %w", err)
		}

		e.CreatedAt = unixToTime(createdAt)
		e.Location = geoFromNull(lat, lng)
		entries = append(entries, attempt.entry(e))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func (s *Storage) listChatMessages(ctx context.Context) ([]*models.QueueEntry, error) {
	query := `
		SELECT id, created_at, conversation_id, sender, body, latitude, longitude,
		       state, attempts, last_error_kind, last_error
		FROM pending_chat_messages
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var entries []*models.QueueEntry

	for rows.Next() {
		m := &models.ChatMessage{}
		var createdAt int64
		var lat, lng sql.NullFloat64
		var attempt attemptCols

		if err := rows.Scan(
			&m.ID, &createdAt, &m.ConversationID, &m.Sender, &m.Body, &lat, &lng,
			&attempt.state, &attempt.attempts, &attempt.errorKind, &attempt.errorMsg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}

		m.CreatedAt = unixToTime(createdAt)
		m.Location = geoFromNull(lat, lng)
		entries = append(entries, attempt.entry(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func (s *Storage) listExperiences(ctx context.Context) ([]*models.QueueEntry, error) {
	query := `
		SELECT id, created_at, title, story, latitude, longitude,
		       state, attempts, last_error_kind, last_error
		FROM pending_experiences
		ORDER BY created_at ASC, rowid ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query experiences: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var entries []*models.QueueEntry

	for rows.Next() {
		x := &models.Experience{}
		var createdAt int64
		var lat, lng sql.NullFloat64
		var attempt attemptCols

		if err := rows.Scan(
			&x.ID, &createdAt, &x.Title, &x.Story, &lat, &lng,
			&attempt.state, &attempt.attempts, &attempt.errorKind, &attempt.errorMsg,
		); err != nil {
			return nil, fmt.Errorf("failed to scan experience: %w", err)
		}

		x.CreatedAt = unixToTime(createdAt)
		x.Location = geoFromNull(lat, lng)
		entries = append(entries, attempt.entry(x))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	// Attachments load after the row cursor closes; the single
	// connection pool cannot nest queries.
	for _, entry := range entries {
		x := entry.Record.(*models.Experience)
		atts, err := s.loadAttachments(ctx, x.ID)
		if err != nil {
			return nil, err
		}
		x.Attachments = atts
	}

	return entries, nil
}

func (s *Storage) loadAttachments(ctx context.Context, experienceID string) ([]models.Attachment, error) {
	query := `
		SELECT filename, content_type, data
		FROM experience_attachments
		WHERE experience_id = ?
		ORDER BY position ASC
	`

	rows, err := s.db.QueryContext(ctx, query, experienceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	var atts []models.Attachment

	for rows.Next() {
		var att models.Attachment
		if err := rows.Scan(&att.Filename, &att.ContentType, &att.Data); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		atts = append(atts, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return atts, nil
}

// Remove deletes an acknowledged entry. Removing an absent id is not
// an error; attachments cascade with the experience row.
func (s *Storage) Remove(ctx context.Context, kind models.RecordKind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}

	return nil
}

// MarkFailed records one failed upload attempt on an entry.
func (s *Storage) MarkFailed(ctx context.Context, kind models.RecordKind, id, errorKind, message string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET state = ?, attempts = attempts + 1, last_error_kind = ?, last_error = ?
		WHERE id = ?
	`, table)

	result, err := s.db.ExecContext(ctx, query, models.StateFailed, errorKind, truncate(message, maxErrorLen), id)
	if err != nil {
		return fmt.Errorf("failed to mark entry failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

// Requeue resets a failed entry to a fresh pending state.
func (s *Storage) Requeue(ctx context.Context, kind models.RecordKind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET state = ?, attempts = 0, last_error_kind = '', last_error = ''
		WHERE id = ?
	`, table)

	result, err := s.db.ExecContext(ctx, query, models.StatePending, id)
	if err != nil {
		return fmt.Errorf("failed to requeue entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrEntryNotFound
	}

	return nil
}

// PendingCounts returns the number of queued entries per kind.
func (s *Storage) PendingCounts(ctx context.Context) (map[models.RecordKind]int, error) {
	counts := make(map[models.RecordKind]int, len(models.AllKinds()))

	for _, kind := range models.AllKinds() {
		table, err := tableFor(kind)
		if err != nil {
			return nil, err
		}

		var count int
		query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
		if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s entries: %w", kind, err)
		}
		counts[kind] = count
	}

	return counts, nil
}

// DeadLetterCounts returns, per kind, the entries rejected by the
// server at least maxAttempts times.
func (s *Storage) DeadLetterCounts(ctx context.Context, maxAttempts int) (map[models.RecordKind]int, error) {
	counts := make(map[models.RecordKind]int, len(models.AllKinds()))
	if maxAttempts <= 0 {
		return counts, nil
	}

	for _, kind := range models.AllKinds() {
		table, err := tableFor(kind)
		if err != nil {
			return nil, err
		}

		var count int
		query := fmt.Sprintf(`
			SELECT COUNT(*) FROM %s
			WHERE last_error_kind = ? AND attempts >= ?
		`, table)
		if err := s.db.QueryRowContext(ctx, query, models.ErrorKindRejected, maxAttempts).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count dead-lettered %s entries: %w", kind, err)
		}
		counts[kind] = count
	}

	return counts, nil
}

// attemptCols holds the attempt-tracking columns shared by every
// queue table.
type attemptCols struct {
	state     string
	errorKind string
	errorMsg  string
	attempts  int
}

// entry combines the scanned record with its attempt history.
func (c *attemptCols) entry(record models.PendingRecord) *models.QueueEntry {
	meta := record.Meta()
	return &models.QueueEntry{
		ID:            meta.ID,
		Kind:          record.Kind(),
		CreatedAt:     meta.CreatedAt,
		Record:        record,
		State:         models.EntryState(c.state),
		Attempts:      c.attempts,
		LastErrorKind: c.errorKind,
		LastError:     c.errorMsg,
	}
}

// Helper functions for geo/time conversion

func geoToNull(loc *models.GeoPoint) (lat, lng sql.NullFloat64) {
	if loc == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: loc.Latitude, Valid: true},
		sql.NullFloat64{Float64: loc.Longitude, Valid: true}
}

func geoFromNull(lat, lng sql.NullFloat64) *models.GeoPoint {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &models.GeoPoint{Latitude: lat.Float64, Longitude: lng.Float64}
}

func unixToTime(timestamp int64) time.Time {
	return time.Unix(timestamp, 0)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
