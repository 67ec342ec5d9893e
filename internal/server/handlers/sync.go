package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/daybook-app/daybook-sync/internal/models"
	"github.com/daybook-app/daybook-sync/internal/server/storage"
	"github.com/daybook-app/daybook-sync/pkg/api"
)

//go:generate moq -out store_mock.go . RecordStore

// defaultMaxUploadBytes caps a multipart upload request body.
const defaultMaxUploadBytes = 32 << 20 // 32 MiB

// multipartMemoryBytes is how much of a parsed form stays in memory
// before spilling to disk.
const multipartMemoryBytes = 8 << 20 // 8 MiB

// RecordStore is the persistence surface the ingestion handlers need.
type RecordStore interface {
	SaveRecord(ctx context.Context, rec *storage.Record, atts []storage.Attachment) (serverID string, created bool, err error)
}

// SyncHandler serves the record ingestion endpoints.
type SyncHandler struct {
	logger         *slog.Logger
	store          RecordStore
	maxUploadBytes int64
}

// NewSyncHandler creates the ingestion handler. maxUploadBytes bounds
// a multipart request body; <= 0 selects the default.
func NewSyncHandler(logger *slog.Logger, store RecordStore, maxUploadBytes int64) *SyncHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &SyncHandler{
		logger:         logger,
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleRecord serves POST /sync/{kind} for attachment-free kinds.
func (h *SyncHandler) HandleRecord(w http.ResponseWriter, r *http.Request) {
	kind := models.RecordKind(r.PathValue("kind"))

	switch kind {
	case models.KindNote, models.KindEmotion, models.KindChat:
	case models.KindExperience:
		h.reject(w, http.StatusBadRequest, "experiences must use the multipart upload endpoint")
		return
	default:
		h.reject(w, http.StatusNotFound, fmt.Sprintf("unknown record kind: %s", kind))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.reject(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	rec, err := decodeRecord(kind, body)
	if err != nil {
		h.logger.Warn("rejected record", "kind", kind, "error", err)
		h.reject(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	rec.DeviceID = r.Header.Get(api.HeaderDeviceID)

	serverID, created, err := h.store.SaveRecord(r.Context(), rec, nil)
	if err != nil {
		h.logger.Error("failed to store record", "kind", kind, "error", err)
		h.reject(w, http.StatusInternalServerError, "failed to store record")
		return
	}

	h.logger.Info("record ingested", "kind", kind, "server_id", serverID, "replay", !created)
	h.respond(w, http.StatusOK, api.SyncResponse{Success: true, ID: serverID})
}

// HandleUpload serves POST /sync/experience/upload: text fields plus
// zero or more photo parts.
func (h *SyncHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.reject(w, http.StatusRequestEntityTooLarge, "upload too large")
			return
		}
		h.reject(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	payload, err := experienceFromForm(r)
	if err != nil {
		h.logger.Warn("rejected experience", "error", err)
		h.reject(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	atts, err := attachmentsFromForm(r)
	if err != nil {
		h.logger.Warn("rejected experience attachments", "error", err)
		h.reject(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		h.reject(w, http.StatusInternalServerError, "failed to encode payload")
		return
	}

	rec := &storage.Record{
		ClientID:  payload.ID,
		DeviceID:  r.Header.Get(api.HeaderDeviceID),
		Kind:      models.KindExperience,
		CreatedAt: payload.CreatedAt,
		Payload:   raw,
	}

	serverID, created, err := h.store.SaveRecord(r.Context(), rec, atts)
	if err != nil {
		h.logger.Error("failed to store experience", "error", err)
		h.reject(w, http.StatusInternalServerError, "failed to store record")
		return
	}

	h.logger.Info("experience ingested",
		"server_id", serverID, "attachments", len(atts), "replay", !created)
	h.respond(w, http.StatusOK, api.SyncResponse{Success: true, ID: serverID})
}

// HandleBatch serves POST /sync/batch. One malformed item never fails
// the rest: failures are reported per item in the response's failed
// list and everything else is ingested.
func (h *SyncHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	var req api.BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.reject(w, http.StatusBadRequest, "invalid batch body")
		return
	}

	deviceID := r.Header.Get(api.HeaderDeviceID)
	resp := api.BatchResponse{
		Success:      true,
		SyncedCounts: make(map[string]int),
	}

	ingest := func(kind models.RecordKind, clientID string, raw []byte, decodeErr error) {
		if decodeErr != nil {
			resp.Failed = append(resp.Failed, api.BatchItemError{
				Kind: string(kind), ID: clientID, Message: decodeErr.Error(),
			})
			return
		}

		rec, err := decodeRecord(kind, raw)
		if err != nil {
			resp.Failed = append(resp.Failed, api.BatchItemError{
				Kind: string(kind), ID: clientID, Message: err.Error(),
			})
			return
		}
		rec.DeviceID = deviceID

		if _, _, err := h.store.SaveRecord(r.Context(), rec, nil); err != nil {
			h.logger.Error("failed to store batch record", "kind", kind, "id", clientID, "error", err)
			resp.Failed = append(resp.Failed, api.BatchItemError{
				Kind: string(kind), ID: clientID, Message: "failed to store record",
			})
			return
		}

		resp.SyncedCounts[string(kind)]++
	}

	for _, p := range req.Notes {
		raw, err := json.Marshal(p)
		ingest(models.KindNote, p.ID, raw, err)
	}
	for _, p := range req.Emotions {
		raw, err := json.Marshal(p)
		ingest(models.KindEmotion, p.ID, raw, err)
	}
	for _, p := range req.ChatMessages {
		raw, err := json.Marshal(p)
		ingest(models.KindChat, p.ID, raw, err)
	}

	h.logger.Info("batch ingested",
		"received", req.Size(), "failed", len(resp.Failed), "device_id", deviceID)
	h.respond(w, http.StatusOK, resp)
}

// decodeRecord parses and validates one JSON wire payload into its
// storage form. The stored payload is the re-encoded canonical JSON.
func decodeRecord(kind models.RecordKind, body []byte) (*storage.Record, error) {
	var (
		record   models.PendingRecord
		clientID string
		created  time.Time
	)

	switch kind {
	case models.KindNote:
		var p api.NotePayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("invalid note payload: %w", err)
		}
		clientID, created = p.ID, p.CreatedAt
		record = &models.Note{
			RecordMeta: meta(p.ID, p.CreatedAt, p.Latitude, p.Longitude),
			Body:       p.Body,
		}
	case models.KindEmotion:
		var p api.EmotionPayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("invalid emotion payload: %w", err)
		}
		clientID, created = p.ID, p.CreatedAt
		record = &models.EmotionCapture{
			RecordMeta: meta(p.ID, p.CreatedAt, p.Latitude, p.Longitude),
			Emotion:    p.Emotion,
			Intensity:  p.Intensity,
			Note:       p.Note,
		}
	case models.KindChat:
		var p api.ChatMessagePayload
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, fmt.Errorf("invalid chat payload: %w", err)
		}
		clientID, created = p.ID, p.CreatedAt
		record = &models.ChatMessage{
			RecordMeta:     meta(p.ID, p.CreatedAt, p.Latitude, p.Longitude),
			ConversationID: p.ConversationID,
			Sender:         p.Sender,
			Body:           p.Body,
		}
	default:
		return nil, fmt.Errorf("unsupported record kind: %s", kind)
	}

	if clientID == "" {
		return nil, errors.New("record id is required")
	}
	if created.IsZero() {
		return nil, errors.New("created_at is required")
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	canonical, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}

	return &storage.Record{
		ClientID:  clientID,
		Kind:      kind,
		CreatedAt: created,
		Payload:   canonical,
	}, nil
}

func meta(id string, createdAt time.Time, lat, lng *float64) models.RecordMeta {
	m := models.RecordMeta{ID: id, CreatedAt: createdAt}
	if lat != nil && lng != nil {
		m.Location = &models.GeoPoint{Latitude: *lat, Longitude: *lng}
	}
	return m
}

// experienceFromForm reads and validates the text fields of a
// multipart experience upload.
func experienceFromForm(r *http.Request) (*api.ExperiencePayload, error) {
	payload := &api.ExperiencePayload{
		ID:    r.FormValue(api.FormFieldID),
		Title: r.FormValue(api.FormFieldTitle),
		Story: r.FormValue(api.FormFieldStory),
	}

	if payload.ID == "" {
		return nil, errors.New("record id is required")
	}
	if payload.Title == "" {
		return nil, errors.New("experience title is empty")
	}

	createdAt, err := time.Parse(time.RFC3339, r.FormValue(api.FormFieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("invalid created_at: %w", err)
	}
	payload.CreatedAt = createdAt

	latStr, lngStr := r.FormValue(api.FormFieldLatitude), r.FormValue(api.FormFieldLongitude)
	if latStr != "" && lngStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude: %w", err)
		}
		lng, err := strconv.ParseFloat(lngStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude: %w", err)
		}
		payload.Latitude, payload.Longitude = &lat, &lng
	}

	return payload, nil
}

// attachmentsFromForm reads the binary photo parts in form order.
func attachmentsFromForm(r *http.Request) ([]storage.Attachment, error) {
	files := r.MultipartForm.File[api.FormFilePhotos]
	if len(files) == 0 {
		return nil, nil
	}

	atts := make([]storage.Attachment, 0, len(files))

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open attachment %q: %w", fh.Filename, err)
		}

		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment %q: %w", fh.Filename, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("attachment %q is empty", fh.Filename)
		}

		contentType := fh.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		atts = append(atts, storage.Attachment{
			Filename:    fh.Filename,
			ContentType: contentType,
			Data:        data,
		})
	}

	return atts, nil
}

func (h *SyncHandler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *SyncHandler) reject(w http.ResponseWriter, status int, message string) {
	h.respond(w, status, api.SyncResponse{Success: false, Message: message})
}
