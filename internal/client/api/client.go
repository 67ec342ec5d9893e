package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/daybook-app/daybook-sync/internal/models"
	"github.com/daybook-app/daybook-sync/pkg/api"
)

const (
	defaultTimeout              = 30 * time.Second
	defaultPerAttachmentTimeout = 15 * time.Second

	// batchChunkSize bounds one batch request so queue size cannot
	// produce an unbounded body.
	batchChunkSize = 100
)

// Config holds the externally supplied upload settings.
type Config struct {
	// BaseURL is the ingestion service root, e.g. "https://sync.daybook.app".
	BaseURL string
	// AuthToken, when set, is sent as a bearer token.
	AuthToken string
	// DeviceID is sent with every request for server-side bookkeeping.
	DeviceID string
	// Timeout is the round-trip budget for JSON exchanges.
	Timeout time.Duration
	// PerAttachmentTimeout extends the budget of a multipart exchange
	// for each attachment it carries.
	PerAttachmentTimeout time.Duration
}

// Outcome is the transient result of one upload exchange, consumed
// immediately by the orchestrator to decide the queue mutation.
type Outcome struct {
	Err      error
	EntryID  string
	ServerID string
}

// Succeeded reports whether the server acknowledged the record.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Client performs upload exchanges against the ingestion service.
// It is stateless and never touches the queue; mutation decisions
// belong to the orchestrator.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// NewClient creates an upload client for the given configuration.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.PerAttachmentTimeout <= 0 {
		cfg.PerAttachmentTimeout = defaultPerAttachmentTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			// No client-wide timeout: each exchange sets its own
			// deadline, and multipart budgets grow with attachment
			// count.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// UploadOne uploads a single queue entry: JSON for plain kinds,
// multipart for experiences.
func (c *Client) UploadOne(ctx context.Context, entry *models.QueueEntry) Outcome {
	outcome := Outcome{EntryID: entry.ID}

	var (
		resp *api.SyncResponse
		err  error
	)

	switch rec := entry.Record.(type) {
	case *models.Note:
		resp, err = c.postRecord(ctx, api.SyncPath(api.KindNote), notePayload(rec))
	case *models.EmotionCapture:
		resp, err = c.postRecord(ctx, api.SyncPath(api.KindEmotion), emotionPayload(rec))
	case *models.ChatMessage:
		resp, err = c.postRecord(ctx, api.SyncPath(api.KindChat), chatMessagePayload(rec))
	case *models.Experience:
		resp, err = c.uploadExperience(ctx, rec)
	default:
		err = fmt.Errorf("unsupported record kind: %s", entry.Kind)
	}

	if err != nil {
		outcome.Err = err
		return outcome
	}

	outcome.ServerID = resp.ID
	return outcome
}

// UploadBatch uploads attachment-free entries of one kind in chunks.
// The returned outcomes map one-to-one onto entries: records named in
// the server's failed list carry a RejectedError, a failed exchange
// marks the whole chunk with the shared error. The error return is
// reserved for misuse (unsupported kind, unencodable payload).
func (c *Client) UploadBatch(ctx context.Context, kind models.RecordKind, entries []*models.QueueEntry) ([]Outcome, error) {
	if kind == models.KindExperience {
		return nil, fmt.Errorf("kind %s does not support batch upload", kind)
	}

	outcomes := make([]Outcome, 0, len(entries))

	for start := 0; start < len(entries); start += batchChunkSize {
		end := min(start+batchChunkSize, len(entries))

		chunk, err := c.uploadChunk(ctx, entries[start:end])
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, chunk...)
	}

	return outcomes, nil
}

func (c *Client) uploadChunk(ctx context.Context, chunk []*models.QueueEntry) ([]Outcome, error) {
	var req api.BatchRequest

	for _, entry := range chunk {
		switch rec := entry.Record.(type) {
		case *models.Note:
			req.Notes = append(req.Notes, notePayload(rec))
		case *models.EmotionCapture:
			req.Emotions = append(req.Emotions, emotionPayload(rec))
		case *models.ChatMessage:
			req.ChatMessages = append(req.ChatMessages, chatMessagePayload(rec))
		default:
			return nil, fmt.Errorf("unsupported record kind in batch: %s", entry.Kind)
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	outcomes := make([]Outcome, len(chunk))
	for i, entry := range chunk {
		outcomes[i] = Outcome{EntryID: entry.ID}
	}

	var resp api.BatchResponse
	if err := c.do(ctx, api.BatchPath, "application/json", bytes.NewReader(body), c.cfg.Timeout, &resp); err != nil {
		// The exchange itself failed; every entry shares the outcome.
		for i := range outcomes {
			outcomes[i].Err = err
		}
		return outcomes, nil
	}

	failed := make(map[string]api.BatchItemError, len(resp.Failed))
	for _, f := range resp.Failed {
		failed[f.ID] = f
	}

	for i := range outcomes {
		if f, ok := failed[outcomes[i].EntryID]; ok {
			outcomes[i].Err = &RejectedError{StatusCode: http.StatusOK, Message: f.Message}
		}
	}

	return outcomes, nil
}

func (c *Client) postRecord(ctx context.Context, path string, payload any) (*api.SyncResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	var resp api.SyncResponse
	if err := c.do(ctx, path, "application/json", bytes.NewReader(body), c.cfg.Timeout, &resp); err != nil {
		return nil, err
	}

	return checkAck(&resp)
}

func (c *Client) uploadExperience(ctx context.Context, x *models.Experience) (*api.SyncResponse, error) {
	body, contentType, err := experienceBody(x)
	if err != nil {
		return nil, fmt.Errorf("failed to encode multipart body: %w", err)
	}

	// Attachment transfer dominates round-trip latency, so the budget
	// grows with attachment count.
	timeout := c.cfg.Timeout + time.Duration(len(x.Attachments))*c.cfg.PerAttachmentTimeout

	var resp api.SyncResponse
	if err := c.do(ctx, api.UploadPath(api.KindExperience), contentType, body, timeout, &resp); err != nil {
		return nil, err
	}

	return checkAck(&resp)
}

// checkAck guards against a 2xx response that still reports failure.
func checkAck(resp *api.SyncResponse) (*api.SyncResponse, error) {
	if !resp.Success {
		return nil, &RejectedError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return resp, nil
}

// do executes one POST exchange under its deadline and decodes the
// response into result, mapping failures onto the error taxonomy.
func (c *Client) do(ctx context.Context, path, contentType string, body io.Reader, timeout time.Duration, result any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	op := "POST " + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	if c.cfg.DeviceID != "" {
		req.Header.Set(api.HeaderDeviceID, c.cfg.DeviceID)
	}
	if c.cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	switch {
	case resp.StatusCode >= 500:
		// Server trouble is transient from the queue's perspective.
		return &NetworkError{Op: op, Err: fmt.Errorf("server error (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusTooManyRequests:
		// Credentials or throttling, not a payload problem; the entry
		// must not move toward dead-letter.
		return &NetworkError{Op: op, Err: fmt.Errorf("request refused (%d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return newRejectedError(resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	return nil
}

// newRejectedError extracts the server's message when the error body
// is a well-formed acknowledgement.
func newRejectedError(status int, body []byte) *RejectedError {
	var errResp api.SyncResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return &RejectedError{StatusCode: status, Message: errResp.Message}
	}
	return &RejectedError{StatusCode: status, Message: strings.TrimSpace(string(body))}
}
