package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RecordKind identifies one of the user-generated record families
// the device can queue for upload.
type RecordKind string

// Record kinds.
const (
	KindExperience RecordKind = "experience"
	KindNote       RecordKind = "note"
	KindEmotion    RecordKind = "emotion"
	KindChat       RecordKind = "chat"
)

// AllKinds returns every record kind in the default upload order:
// attachment-heavy experiences first, then notes, emotions, chat.
func AllKinds() []RecordKind {
	return []RecordKind{KindExperience, KindNote, KindEmotion, KindChat}
}

// Valid reports whether k names a known record kind.
func (k RecordKind) Valid() bool {
	switch k {
	case KindExperience, KindNote, KindEmotion, KindChat:
		return true
	}
	return false
}

// Intensity bounds for an emotion check-in (1 = barely, 5 = overwhelming).
const (
	MinIntensity = 1
	MaxIntensity = 5
)

// GeoPoint is the capture location attached to a record when the
// device had a fix at capture time.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RecordMeta carries the attributes shared by every record kind.
type RecordMeta struct {
	CreatedAt time.Time `json:"created_at"` // capture time on the device
	ID        string    `json:"id"`         // UUID, assigned at enqueue when empty
	Location  *GeoPoint `json:"location,omitempty"`
}

// PendingRecord is the union of records awaiting upload. Implemented by
// *Note, *EmotionCapture, *ChatMessage and *Experience.
type PendingRecord interface {
	Kind() RecordKind
	Meta() RecordMeta
	Validate() error
}

// Note is a plain text note.
type Note struct {
	RecordMeta
	Body string `json:"body"`
}

// Kind implements PendingRecord.
func (n *Note) Kind() RecordKind { return KindNote }

// Meta implements PendingRecord.
func (n *Note) Meta() RecordMeta { return n.RecordMeta }

// Validate checks the note is uploadable.
func (n *Note) Validate() error {
	if strings.TrimSpace(n.Body) == "" {
		return errors.New("note body is empty")
	}
	return nil
}

// EmotionCapture is a mood check-in: a named emotion with an intensity
// on the 1..5 scale and an optional free-form note.
type EmotionCapture struct {
	RecordMeta
	Emotion   string `json:"emotion"`
	Note      string `json:"note,omitempty"`
	Intensity int    `json:"intensity"`
}

// Kind implements PendingRecord.
func (e *EmotionCapture) Kind() RecordKind { return KindEmotion }

// Meta implements PendingRecord.
func (e *EmotionCapture) Meta() RecordMeta { return e.RecordMeta }

// Validate checks the check-in is uploadable.
func (e *EmotionCapture) Validate() error {
	if strings.TrimSpace(e.Emotion) == "" {
		return errors.New("emotion name is empty")
	}
	if e.Intensity < MinIntensity || e.Intensity > MaxIntensity {
		return fmt.Errorf("intensity %d out of range [%d, %d]", e.Intensity, MinIntensity, MaxIntensity)
	}
	return nil
}

// ChatMessage is one message of a companion conversation.
type ChatMessage struct {
	RecordMeta
	ConversationID string `json:"conversation_id"`
	Sender         string `json:"sender"` // "user" or "companion"
	Body           string `json:"body"`
}

// Kind implements PendingRecord.
func (m *ChatMessage) Kind() RecordKind { return KindChat }

// Meta implements PendingRecord.
func (m *ChatMessage) Meta() RecordMeta { return m.RecordMeta }

// Validate checks the message is uploadable.
func (m *ChatMessage) Validate() error {
	if m.ConversationID == "" {
		return errors.New("conversation id is empty")
	}
	if strings.TrimSpace(m.Body) == "" {
		return errors.New("message body is empty")
	}
	return nil
}

// Attachment is one binary blob attached to an experience, typically a
// compressed photo produced by the capture flow.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Validate checks the attachment is uploadable.
func (a *Attachment) Validate() error {
	if a.Filename == "" {
		return errors.New("attachment filename is empty")
	}
	if a.ContentType == "" {
		return errors.New("attachment content type is empty")
	}
	if len(a.Data) == 0 {
		return fmt.Errorf("attachment %q is empty", a.Filename)
	}
	return nil
}

// Experience is a rich journal entry: a titled story with photos.
type Experience struct {
	RecordMeta
	Title       string       `json:"title"`
	Story       string       `json:"story,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Kind implements PendingRecord.
func (x *Experience) Kind() RecordKind { return KindExperience }

// Meta implements PendingRecord.
func (x *Experience) Meta() RecordMeta { return x.RecordMeta }

// Validate checks the experience is uploadable.
func (x *Experience) Validate() error {
	if strings.TrimSpace(x.Title) == "" {
		return errors.New("experience title is empty")
	}
	for i := range x.Attachments {
		if err := x.Attachments[i].Validate(); err != nil {
			return fmt.Errorf("attachment %d: %w", i, err)
		}
	}
	return nil
}

// AttachmentLimits is the per-kind attachment policy supplied by the
// surrounding application. Zero values disable the corresponding check.
type AttachmentLimits struct {
	MaxCount int
	MaxBytes int64 // per attachment
}

// Check verifies a set of attachments against the limits.
func (l AttachmentLimits) Check(atts []Attachment) error {
	if l.MaxCount > 0 && len(atts) > l.MaxCount {
		return fmt.Errorf("too many attachments: %d > %d", len(atts), l.MaxCount)
	}
	if l.MaxBytes > 0 {
		for i := range atts {
			if size := int64(len(atts[i].Data)); size > l.MaxBytes {
				return fmt.Errorf("attachment %q too large: %d > %d bytes", atts[i].Filename, size, l.MaxBytes)
			}
		}
	}
	return nil
}
