package api

import "time"

// Record kind segments used in ingestion paths.
const (
	KindNote       = "note"
	KindEmotion    = "emotion"
	KindChat       = "chat"
	KindExperience = "experience"
)

// BatchPath is the endpoint for multi-record ingestion.
const BatchPath = "/sync/batch"

// HeaderDeviceID identifies the originating device on every request.
const HeaderDeviceID = "X-Device-ID"

// Multipart form field names for attachment-bearing records.
const (
	FormFieldID        = "id"
	FormFieldCreatedAt = "created_at"
	FormFieldTitle     = "title"
	FormFieldStory     = "story"
	FormFieldLatitude  = "latitude"
	FormFieldLongitude = "longitude"
	FormFilePhotos     = "photos"
)

// SyncPath returns the single-record ingestion path for a kind.
func SyncPath(kind string) string {
	return "/sync/" + kind
}

// UploadPath returns the multipart ingestion path for a kind.
func UploadPath(kind string) string {
	return "/sync/" + kind + "/upload"
}

// SyncResponse is the server acknowledgement for a single record.
type SyncResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// NotePayload is the wire form of a plain note.
type NotePayload struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Body      string    `json:"body"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// EmotionPayload is the wire form of an emotion check-in.
type EmotionPayload struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Emotion   string    `json:"emotion"`
	Note      string    `json:"note,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	Intensity int       `json:"intensity"`
}

// ChatMessagePayload is the wire form of a companion chat message.
type ChatMessagePayload struct {
	CreatedAt      time.Time `json:"created_at"`
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Body           string    `json:"body"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
}

// ExperiencePayload is the canonical form of an experience's text
// fields. On the wire an experience travels as multipart/form-data
// (see UploadPath); this struct is what the server stores alongside
// the binary parts.
type ExperiencePayload struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Story     string    `json:"story,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
}

// BatchRequest groups attachment-free records by kind for one exchange.
type BatchRequest struct {
	Notes        []NotePayload        `json:"notes,omitempty"`
	Emotions     []EmotionPayload     `json:"emotions,omitempty"`
	ChatMessages []ChatMessagePayload `json:"chat_messages,omitempty"`
}

// Size returns the total number of records in the batch.
func (r *BatchRequest) Size() int {
	return len(r.Notes) + len(r.Emotions) + len(r.ChatMessages)
}

// BatchItemError reports one record the server could not ingest.
// Records absent from BatchResponse.Failed were ingested successfully.
type BatchItemError struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// BatchResponse is the server acknowledgement for a batch exchange.
type BatchResponse struct {
	SyncedCounts map[string]int   `json:"per_kind_synced_counts"`
	Failed       []BatchItemError `json:"failed,omitempty"`
	Message      string           `json:"message,omitempty"`
	Success      bool             `json:"success"`
}
