package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordKind_Valid(t *testing.T) {
	for _, k := range AllKinds() {
		assert.True(t, k.Valid(), "kind %q", k)
	}
	assert.False(t, RecordKind("").Valid())
	assert.False(t, RecordKind("photo").Valid())
}

func TestAllKinds_UploadOrder(t *testing.T) {
	// Experiences carry attachments and go first so the expensive
	// uploads happen while connectivity is freshest.
	require.Equal(t, []RecordKind{KindExperience, KindNote, KindEmotion, KindChat}, AllKinds())
}

func TestPendingRecord_Kinds(t *testing.T) {
	tests := []struct {
		record PendingRecord
		kind   RecordKind
	}{
		{&Note{Body: "x"}, KindNote},
		{&EmotionCapture{Emotion: "joy", Intensity: 3}, KindEmotion},
		{&ChatMessage{ConversationID: "c1", Body: "hi"}, KindChat},
		{&Experience{Title: "trip"}, KindExperience},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.record.Kind())
			assert.NoError(t, tt.record.Validate())
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		record  PendingRecord
		name    string
		wantErr string
	}{
		{&Note{}, "empty note", "note body is empty"},
		{&Note{Body: "   "}, "whitespace note", "note body is empty"},
		{&EmotionCapture{Intensity: 3}, "unnamed emotion", "emotion name is empty"},
		{&EmotionCapture{Emotion: "joy", Intensity: 0}, "intensity below range", "out of range"},
		{&EmotionCapture{Emotion: "joy", Intensity: 6}, "intensity above range", "out of range"},
		{&ChatMessage{Body: "hi"}, "message without conversation", "conversation id is empty"},
		{&ChatMessage{ConversationID: "c1"}, "empty message", "message body is empty"},
		{&Experience{}, "untitled experience", "experience title is empty"},
		{
			&Experience{Title: "trip", Attachments: []Attachment{{Filename: "a.jpg", ContentType: "image/jpeg"}}},
			"empty attachment",
			"is empty",
		},
		{
			&Experience{Title: "trip", Attachments: []Attachment{{ContentType: "image/jpeg", Data: []byte{1}}}},
			"attachment without filename",
			"filename is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRecordMeta_Propagates(t *testing.T) {
	created := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)
	loc := &GeoPoint{Latitude: 59.93, Longitude: 30.33}

	n := &Note{RecordMeta: RecordMeta{ID: "id-1", CreatedAt: created, Location: loc}, Body: "walk"}

	meta := n.Meta()
	assert.Equal(t, "id-1", meta.ID)
	assert.Equal(t, created, meta.CreatedAt)
	require.NotNil(t, meta.Location)
	assert.InDelta(t, 59.93, meta.Location.Latitude, 0.0001)
}

func TestAttachmentLimits_Check(t *testing.T) {
	atts := []Attachment{
		{Filename: "a.jpg", ContentType: "image/jpeg", Data: make([]byte, 100)},
		{Filename: "b.jpg", ContentType: "image/jpeg", Data: make([]byte, 300)},
	}

	tests := []struct {
		name    string
		wantErr string
		limits  AttachmentLimits
	}{
		{name: "unlimited", limits: AttachmentLimits{}},
		{name: "within limits", limits: AttachmentLimits{MaxCount: 2, MaxBytes: 300}},
		{name: "too many", limits: AttachmentLimits{MaxCount: 1}, wantErr: "too many attachments"},
		{name: "too large", limits: AttachmentLimits{MaxBytes: 200}, wantErr: "too large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.limits.Check(atts)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestQueueEntry_DeadLettered(t *testing.T) {
	tests := []struct {
		name        string
		entry       QueueEntry
		maxAttempts int
		want        bool
	}{
		{
			name:        "fresh entry",
			entry:       QueueEntry{State: StatePending},
			maxAttempts: 3,
			want:        false,
		},
		{
			name:        "rejected under threshold",
			entry:       QueueEntry{State: StateFailed, LastErrorKind: ErrorKindRejected, Attempts: 2},
			maxAttempts: 3,
			want:        false,
		},
		{
			name:        "rejected at threshold",
			entry:       QueueEntry{State: StateFailed, LastErrorKind: ErrorKindRejected, Attempts: 3},
			maxAttempts: 3,
			want:        true,
		},
		{
			name:        "network failures never dead-letter",
			entry:       QueueEntry{State: StateFailed, LastErrorKind: ErrorKindNetwork, Attempts: 50},
			maxAttempts: 3,
			want:        false,
		},
		{
			name:        "check disabled",
			entry:       QueueEntry{State: StateFailed, LastErrorKind: ErrorKindRejected, Attempts: 100},
			maxAttempts: 0,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.DeadLettered(tt.maxAttempts))
		})
	}
}
