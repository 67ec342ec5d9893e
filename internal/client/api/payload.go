package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/daybook-app/daybook-sync/internal/models"
	"github.com/daybook-app/daybook-sync/pkg/api"
)

func notePayload(n *models.Note) api.NotePayload {
	p := api.NotePayload{
		ID:        n.ID,
		CreatedAt: n.CreatedAt,
		Body:      n.Body,
	}
	p.Latitude, p.Longitude = geoPtr(n.Location)
	return p
}

func emotionPayload(e *models.EmotionCapture) api.EmotionPayload {
	p := api.EmotionPayload{
		ID:        e.ID,
		CreatedAt: e.CreatedAt,
		Emotion:   e.Emotion,
		Intensity: e.Intensity,
		Note:      e.Note,
	}
	p.Latitude, p.Longitude = geoPtr(e.Location)
	return p
}

func chatMessagePayload(m *models.ChatMessage) api.ChatMessagePayload {
	p := api.ChatMessagePayload{
		ID:             m.ID,
		CreatedAt:      m.CreatedAt,
		ConversationID: m.ConversationID,
		Sender:         m.Sender,
		Body:           m.Body,
	}
	p.Latitude, p.Longitude = geoPtr(m.Location)
	return p
}

func geoPtr(loc *models.GeoPoint) (lat, lng *float64) {
	if loc == nil {
		return nil, nil
	}
	latV, lngV := loc.Latitude, loc.Longitude
	return &latV, &lngV
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// experienceBody encodes an experience as multipart/form-data: text
// fields first, then one binary part per attachment carrying its own
// content type.
func experienceBody(x *models.Experience) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := []struct {
		name  string
		value string
	}{
		{api.FormFieldID, x.ID},
		{api.FormFieldCreatedAt, x.CreatedAt.Format(time.RFC3339)},
		{api.FormFieldTitle, x.Title},
		{api.FormFieldStory, x.Story},
	}
	if x.Location != nil {
		fields = append(fields,
			struct{ name, value string }{api.FormFieldLatitude, strconv.FormatFloat(x.Location.Latitude, 'f', -1, 64)},
			struct{ name, value string }{api.FormFieldLongitude, strconv.FormatFloat(x.Location.Longitude, 'f', -1, 64)},
		)
	}

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", f.name, err)
		}
	}

	for i := range x.Attachments {
		att := &x.Attachments[i]

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			api.FormFilePhotos, quoteEscaper.Replace(att.Filename)))
		header.Set("Content-Type", att.ContentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part for %s: %w", att.Filename, err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write attachment %s: %w", att.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf, w.FormDataContentType(), nil
}
