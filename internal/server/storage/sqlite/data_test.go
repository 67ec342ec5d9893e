package sqlite

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-sync/internal/models"
	"github.com/daybook-app/daybook-sync/internal/server/storage"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(t.Context(), filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func testRecord(kind models.RecordKind, clientID string) *storage.Record {
	payload, _ := json.Marshal(map[string]string{"id": clientID})
	return &storage.Record{
		ClientID:  clientID,
		DeviceID:  "device-1",
		Kind:      kind,
		CreatedAt: time.Now().Add(-time.Hour),
		Payload:   payload,
	}
}

func TestSaveRecord(t *testing.T) {
	s := newTestStorage(t)

	serverID, created, err := s.SaveRecord(t.Context(), testRecord(models.KindNote, "client-1"), nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, serverID)

	counts, err := s.CountByKind(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.KindNote])
}

func TestSaveRecordReplayIsIdempotent(t *testing.T) {
	s := newTestStorage(t)

	first, created, err := s.SaveRecord(t.Context(), testRecord(models.KindEmotion, "client-1"), nil)
	require.NoError(t, err)
	require.True(t, created)

	// The client re-uploads after losing the acknowledgement.
	second, created, err := s.SaveRecord(t.Context(), testRecord(models.KindEmotion, "client-1"), nil)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)

	counts, err := s.CountByKind(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.KindEmotion])
}

func TestSaveRecordSameClientIDDifferentKinds(t *testing.T) {
	s := newTestStorage(t)

	noteID, created, err := s.SaveRecord(t.Context(), testRecord(models.KindNote, "shared-id"), nil)
	require.NoError(t, err)
	require.True(t, created)

	chatID, created, err := s.SaveRecord(t.Context(), testRecord(models.KindChat, "shared-id"), nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, noteID, chatID)
}

func TestSaveRecordWithAttachments(t *testing.T) {
	s := newTestStorage(t)

	atts := []storage.Attachment{
		{Filename: "a.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0x01}},
		{Filename: "b.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8, 0x02}},
	}

	serverID, created, err := s.SaveRecord(t.Context(), testRecord(models.KindExperience, "client-x"), atts)
	require.NoError(t, err)
	require.True(t, created)

	count, err := s.AttachmentCount(t.Context(), serverID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// A replay must not duplicate attachments either.
	replayID, created, err := s.SaveRecord(t.Context(), testRecord(models.KindExperience, "client-x"), atts)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, serverID, replayID)

	count, err = s.AttachmentCount(t.Context(), serverID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCountByKindEmpty(t *testing.T) {
	s := newTestStorage(t)

	counts, err := s.CountByKind(t.Context())
	require.NoError(t, err)
	assert.Empty(t, counts)
}
