package cli

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/daybook-app/daybook-sync/internal/models"
)

// photoList collects repeated --photo flags in order.
type photoList []string

func (p *photoList) String() string { return fmt.Sprint(*p) }

func (p *photoList) Set(value string) error {
	*p = append(*p, value)
	return nil
}

// runAdd queues one capture. The record gets its ID and durability
// from Enqueue; by the time the command prints, the entry survives a
// process kill.
func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: add <note|emotion|chat|experience> [flags]")
	}

	kind := models.RecordKind(args[0])
	flagArgs := args[1:]

	var (
		record models.PendingRecord
		err    error
	)

	switch kind {
	case models.KindNote:
		record, err = noteFromFlags(flagArgs)
	case models.KindEmotion:
		record, err = emotionFromFlags(flagArgs)
	case models.KindChat:
		record, err = chatFromFlags(flagArgs)
	case models.KindExperience:
		record, err = experienceFromFlags(flagArgs)
	default:
		return fmt.Errorf("unknown record kind: %s", kind)
	}
	if err != nil {
		return err
	}

	entry, err := c.queue.Enqueue(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to queue %s: %w", kind, err)
	}

	fmt.Fprintf(c.out, "Queued %s %s\n", kind, entry.ID)
	return nil
}

func noteFromFlags(args []string) (models.PendingRecord, error) {
	fs := flag.NewFlagSet("add note", flag.ContinueOnError)
	body := fs.String("body", "", "note text (required)")
	lat := fs.String("lat", "", "capture latitude")
	lng := fs.String("lng", "", "capture longitude")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	meta, err := captureMeta(*lat, *lng)
	if err != nil {
		return nil, err
	}

	return &models.Note{RecordMeta: meta, Body: *body}, nil
}

func emotionFromFlags(args []string) (models.PendingRecord, error) {
	fs := flag.NewFlagSet("add emotion", flag.ContinueOnError)
	emotion := fs.String("emotion", "", "emotion name (required)")
	intensity := fs.Int("intensity", 0, "intensity 1..5 (required)")
	note := fs.String("note", "", "optional free-form note")
	lat := fs.String("lat", "", "capture latitude")
	lng := fs.String("lng", "", "capture longitude")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	meta, err := captureMeta(*lat, *lng)
	if err != nil {
		return nil, err
	}

	return &models.EmotionCapture{
		RecordMeta: meta,
		Emotion:    *emotion,
		Intensity:  *intensity,
		Note:       *note,
	}, nil
}

func chatFromFlags(args []string) (models.PendingRecord, error) {
	fs := flag.NewFlagSet("add chat", flag.ContinueOnError)
	conversation := fs.String("conversation", "", "conversation id (required)")
	sender := fs.String("sender", "user", "message sender: user or companion")
	body := fs.String("body", "", "message text (required)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &models.ChatMessage{
		RecordMeta:     models.RecordMeta{CreatedAt: time.Now()},
		ConversationID: *conversation,
		Sender:         *sender,
		Body:           *body,
	}, nil
}

func experienceFromFlags(args []string) (models.PendingRecord, error) {
	fs := flag.NewFlagSet("add experience", flag.ContinueOnError)
	title := fs.String("title", "", "experience title (required)")
	story := fs.String("story", "", "experience story")
	lat := fs.String("lat", "", "capture latitude")
	lng := fs.String("lng", "", "capture longitude")
	var photos photoList
	fs.Var(&photos, "photo", "photo file to attach (repeatable)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	meta, err := captureMeta(*lat, *lng)
	if err != nil {
		return nil, err
	}

	atts := make([]models.Attachment, 0, len(photos))
	for _, path := range photos {
		att, err := loadAttachment(path)
		if err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}

	return &models.Experience{
		RecordMeta:  meta,
		Title:       *title,
		Story:       *story,
		Attachments: atts,
	}, nil
}

// captureMeta stamps capture time and optional location. The location
// is taken only when both coordinates are given.
func captureMeta(latStr, lngStr string) (models.RecordMeta, error) {
	meta := models.RecordMeta{CreatedAt: time.Now()}

	if latStr == "" && lngStr == "" {
		return meta, nil
	}
	if latStr == "" || lngStr == "" {
		return meta, fmt.Errorf("latitude and longitude must be given together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return meta, fmt.Errorf("invalid latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return meta, fmt.Errorf("invalid longitude: %w", err)
	}

	meta.Location = &models.GeoPoint{Latitude: lat, Longitude: lng}
	return meta, nil
}

// loadAttachment reads one photo file. The content type comes from the
// extension, falling back to content sniffing.
func loadAttachment(path string) (models.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("failed to read photo %q: %w", path, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return models.Attachment{
		Filename:    filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}
