package sync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uploadapi "github.com/daybook-app/daybook-sync/internal/client/api"
	"github.com/daybook-app/daybook-sync/internal/client/storage"
	"github.com/daybook-app/daybook-sync/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fakeQueue is an in-memory QueueStorage backing the orchestrator
// tests: entries per kind in insertion (FIFO) order.
type fakeQueue struct {
	mu      sync.Mutex
	entries map[models.RecordKind][]*models.QueueEntry
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{entries: make(map[models.RecordKind][]*models.QueueEntry)}
}

func (q *fakeQueue) add(entry *models.QueueEntry) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries[entry.Kind] = append(q.entries[entry.Kind], entry)
}

func (q *fakeQueue) Enqueue(ctx context.Context, record models.PendingRecord) (*models.QueueEntry, error) {
	meta := record.Meta()
	entry := &models.QueueEntry{
		ID:        meta.ID,
		Kind:      record.Kind(),
		CreatedAt: meta.CreatedAt,
		Record:    record,
		State:     models.StatePending,
	}
	q.add(entry)
	return entry, nil
}

func (q *fakeQueue) ListPending(ctx context.Context, kind models.RecordKind) ([]*models.QueueEntry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]*models.QueueEntry, len(q.entries[kind]))
	copy(out, q.entries[kind])
	return out, nil
}

func (q *fakeQueue) Remove(ctx context.Context, kind models.RecordKind, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.entries[kind][:0]
	for _, entry := range q.entries[kind] {
		if entry.ID != id {
			kept = append(kept, entry)
		}
	}
	q.entries[kind] = kept
	return nil
}

func (q *fakeQueue) MarkFailed(ctx context.Context, kind models.RecordKind, id, errorKind, message string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, entry := range q.entries[kind] {
		if entry.ID == id {
			entry.State = models.StateFailed
			entry.Attempts++
			entry.LastErrorKind = errorKind
			entry.LastError = message
			return nil
		}
	}
	return storage.ErrEntryNotFound
}

func (q *fakeQueue) Requeue(ctx context.Context, kind models.RecordKind, id string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, entry := range q.entries[kind] {
		if entry.ID == id {
			entry.State = models.StatePending
			entry.Attempts = 0
			entry.LastErrorKind = ""
			entry.LastError = ""
			return nil
		}
	}
	return storage.ErrEntryNotFound
}

func (q *fakeQueue) PendingCounts(ctx context.Context) (map[models.RecordKind]int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	counts := make(map[models.RecordKind]int)
	for kind, entries := range q.entries {
		counts[kind] = len(entries)
	}
	return counts, nil
}

func (q *fakeQueue) DeadLetterCounts(ctx context.Context, maxAttempts int) (map[models.RecordKind]int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	counts := make(map[models.RecordKind]int)
	for kind, entries := range q.entries {
		for _, entry := range entries {
			if entry.DeadLettered(maxAttempts) {
				counts[kind]++
			}
		}
	}
	return counts, nil
}

func (q *fakeQueue) len(kind models.RecordKind) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries[kind])
}

func (q *fakeQueue) ids(kind models.RecordKind) []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	var ids []string
	for _, entry := range q.entries[kind] {
		ids = append(ids, entry.ID)
	}
	return ids
}

func newStateMock() *storage.SyncStateStorageMock {
	var (
		mu   sync.Mutex
		last *time.Time
	)
	return &storage.SyncStateStorageMock{
		LastSuccessAtFunc: func(ctx context.Context) (*time.Time, error) {
			mu.Lock()
			defer mu.Unlock()
			return last, nil
		},
		SaveLastSuccessAtFunc: func(ctx context.Context, t time.Time) error {
			mu.Lock()
			defer mu.Unlock()
			last = &t
			return nil
		},
		DeviceIDFunc: func(ctx context.Context) (string, error) {
			return "device-test", nil
		},
	}
}

func noteEntry(id string, createdAt time.Time) *models.QueueEntry {
	return &models.QueueEntry{
		ID:        id,
		Kind:      models.KindNote,
		CreatedAt: createdAt,
		Record:    &models.Note{RecordMeta: models.RecordMeta{ID: id, CreatedAt: createdAt}, Body: "note " + id},
		State:     models.StatePending,
	}
}

func emotionEntry(id string, createdAt time.Time) *models.QueueEntry {
	return &models.QueueEntry{
		ID:        id,
		Kind:      models.KindEmotion,
		CreatedAt: createdAt,
		Record: &models.EmotionCapture{
			RecordMeta: models.RecordMeta{ID: id, CreatedAt: createdAt},
			Emotion:    "calm",
			Intensity:  2,
		},
		State: models.StatePending,
	}
}

func experienceEntry(id string, createdAt time.Time) *models.QueueEntry {
	return &models.QueueEntry{
		ID:        id,
		Kind:      models.KindExperience,
		CreatedAt: createdAt,
		Record: &models.Experience{
			RecordMeta: models.RecordMeta{ID: id, CreatedAt: createdAt},
			Title:      "trip " + id,
			Attachments: []models.Attachment{
				{Filename: "photo.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}},
			},
		},
		State: models.StatePending,
	}
}

// Scenario: three notes, all uploads succeed. The queue ends empty and
// lastSuccessAt lands at or after the pass start.
func TestRunPassAllSucceed(t *testing.T) {
	queue := newFakeQueue()
	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"n1", "n2", "n3"} {
		queue.add(noteEntry(id, base.Add(time.Duration(i)*time.Minute)))
	}

	state := newStateMock()
	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			return uploadapi.Outcome{EntryID: entry.ID, ServerID: "srv-" + entry.ID}
		},
	}

	svc := New(queue, state, uploader, testLogger(), Config{})

	before := time.Now()
	result, err := svc.RunPass(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Uploaded)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, queue.len(models.KindNote))

	require.Len(t, state.SaveLastSuccessAtCalls(), 1)
	assert.False(t, state.SaveLastSuccessAtCalls()[0].T.Before(before))
}

// Scenario: two experiences, the second hits a network error. Only the
// second stays queued, with the attempt recorded on it.
func TestRunPassRetainsFailedExperience(t *testing.T) {
	queue := newFakeQueue()
	base := time.Now().Add(-time.Hour)
	queue.add(experienceEntry("x1", base))
	queue.add(experienceEntry("x2", base.Add(time.Minute)))

	state := newStateMock()
	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			if entry.ID == "x2" {
				return uploadapi.Outcome{EntryID: entry.ID, Err: &uploadapi.NetworkError{Op: "POST /sync/experience/upload", Err: errors.New("connection refused")}}
			}
			return uploadapi.Outcome{EntryID: entry.ID, ServerID: "srv-x1"}
		},
	}

	svc := New(queue, state, uploader, testLogger(), Config{})

	result, err := svc.RunPass(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Uploaded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"x2"}, queue.ids(models.KindExperience))

	remaining, err := queue.ListPending(t.Context(), models.KindExperience)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, models.StateFailed, remaining[0].State)
	assert.Equal(t, models.ErrorKindNetwork, remaining[0].LastErrorKind)
	assert.Equal(t, 1, remaining[0].Attempts)

	// One item succeeded, so the pass still counts as a success.
	assert.Len(t, state.SaveLastSuccessAtCalls(), 1)
}

// Isolation: M of N failures leave exactly M entries behind.
func TestRunPassIsolation(t *testing.T) {
	queue := newFakeQueue()
	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		queue.add(noteEntry(id, base.Add(time.Duration(i)*time.Second)))
	}

	failing := map[string]bool{"b": true, "d": true}
	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			if failing[entry.ID] {
				return uploadapi.Outcome{EntryID: entry.ID, Err: &uploadapi.RejectedError{StatusCode: 422, Message: "bad payload"}}
			}
			return uploadapi.Outcome{EntryID: entry.ID}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{})

	result, err := svc.RunPass(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Uploaded)
	assert.Equal(t, 2, result.Failed)
	assert.ElementsMatch(t, []string{"b", "d"}, queue.ids(models.KindNote))
}

// Idempotence: an empty queue produces zero upload calls and no
// lastSuccessAt update.
func TestRunPassEmptyQueue(t *testing.T) {
	queue := newFakeQueue()
	state := newStateMock()
	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			t.Error("upload call against an empty queue")
			return uploadapi.Outcome{}
		},
	}

	svc := New(queue, state, uploader, testLogger(), Config{})

	result, err := svc.RunPass(t.Context())
	require.NoError(t, err)

	assert.Zero(t, result.Uploaded)
	assert.Zero(t, result.Failed)
	assert.Empty(t, uploader.UploadOneCalls())
	assert.Empty(t, state.SaveLastSuccessAtCalls())
}

// Mutual exclusion: a concurrent trigger performs no extra upload
// calls and returns ErrPassInProgress.
func TestRunPassMutualExclusion(t *testing.T) {
	queue := newFakeQueue()
	queue.add(noteEntry("chat-note", time.Now()))

	firstEntered := make(chan struct{})
	release := make(chan struct{})

	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			close(firstEntered)
			<-release
			return uploadapi.Outcome{EntryID: entry.ID}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{})

	done := make(chan error, 1)
	go func() {
		_, err := svc.RunPass(t.Context())
		done <- err
	}()

	<-firstEntered

	_, err := svc.RunPass(t.Context())
	assert.ErrorIs(t, err, ErrPassInProgress)

	close(release)
	require.NoError(t, <-done)

	assert.Len(t, uploader.UploadOneCalls(), 1)
}

// Kinds run in the configured order; entries within a kind in FIFO
// order.
func TestRunPassOrdering(t *testing.T) {
	queue := newFakeQueue()
	base := time.Now().Add(-time.Hour)
	queue.add(noteEntry("n1", base))
	queue.add(noteEntry("n2", base.Add(time.Minute)))
	queue.add(experienceEntry("x1", base.Add(2*time.Minute)))
	queue.add(emotionEntry("e1", base.Add(3*time.Minute)))

	var order []string
	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			order = append(order, entry.ID)
			return uploadapi.Outcome{EntryID: entry.ID}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{})

	_, err := svc.RunPass(t.Context())
	require.NoError(t, err)

	// Default order: experiences, notes, emotions, chat.
	assert.Equal(t, []string{"x1", "n1", "n2", "e1"}, order)
}

// Dead-lettered entries are skipped and counted; a Requeue makes them
// uploadable again.
func TestRunPassSkipsDeadLettered(t *testing.T) {
	queue := newFakeQueue()
	dead := noteEntry("dead", time.Now().Add(-time.Hour))
	dead.State = models.StateFailed
	dead.LastErrorKind = models.ErrorKindRejected
	dead.Attempts = DefaultMaxAttempts
	queue.add(dead)
	queue.add(noteEntry("alive", time.Now()))

	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			return uploadapi.Outcome{EntryID: entry.ID}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{})

	result, err := svc.RunPass(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Uploaded)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, []string{"dead"}, queue.ids(models.KindNote))

	// Rescue the entry and run again.
	require.NoError(t, queue.Requeue(t.Context(), models.KindNote, "dead"))

	result, err = svc.RunPass(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
	assert.Zero(t, result.Skipped)
	assert.Empty(t, queue.ids(models.KindNote))
}

// Repeated network failures never dead-letter an entry.
func TestRunPassNetworkFailuresNeverDeadLetter(t *testing.T) {
	queue := newFakeQueue()
	queue.add(noteEntry("flaky", time.Now()))

	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			return uploadapi.Outcome{EntryID: entry.ID, Err: &uploadapi.NetworkError{Op: "POST /sync/note", Err: errors.New("timeout")}}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{})

	for range DefaultMaxAttempts + 2 {
		_, err := svc.RunPass(t.Context())
		require.NoError(t, err)
	}

	// Every pass attempted the entry; none skipped it.
	assert.Len(t, uploader.UploadOneCalls(), DefaultMaxAttempts+2)

	entries, err := queue.ListPending(t.Context(), models.KindNote)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].DeadLettered(DefaultMaxAttempts))
	assert.Equal(t, DefaultMaxAttempts+2, entries[0].Attempts)
}

// Batch mode: outcomes map back onto entries; rejected ones are
// marked, the rest removed.
func TestRunPassBatchMode(t *testing.T) {
	queue := newFakeQueue()
	base := time.Now().Add(-time.Hour)
	queue.add(noteEntry("n1", base))
	queue.add(noteEntry("n2", base.Add(time.Second)))
	queue.add(noteEntry("n3", base.Add(2*time.Second)))

	uploader := &UploaderMock{
		UploadBatchFunc: func(ctx context.Context, kind models.RecordKind, entries []*models.QueueEntry) ([]uploadapi.Outcome, error) {
			outcomes := make([]uploadapi.Outcome, len(entries))
			for i, entry := range entries {
				outcomes[i] = uploadapi.Outcome{EntryID: entry.ID}
				if entry.ID == "n2" {
					outcomes[i].Err = &uploadapi.RejectedError{StatusCode: 200, Message: "invalid note"}
				}
			}
			return outcomes, nil
		},
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			t.Errorf("per-item upload in batch mode for %s", entry.ID)
			return uploadapi.Outcome{}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{UseBatch: true})

	result, err := svc.RunPass(t.Context())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Uploaded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, []string{"n2"}, queue.ids(models.KindNote))
	assert.Len(t, uploader.UploadBatchCalls(), 1)
}

// Experiences never go through the batch path even in batch mode.
func TestRunPassBatchModeExperiencesPerItem(t *testing.T) {
	queue := newFakeQueue()
	queue.add(experienceEntry("x1", time.Now()))

	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			return uploadapi.Outcome{EntryID: entry.ID}
		},
		UploadBatchFunc: func(ctx context.Context, kind models.RecordKind, entries []*models.QueueEntry) ([]uploadapi.Outcome, error) {
			t.Error("batch upload used for experiences")
			return nil, nil
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{UseBatch: true})

	result, err := svc.RunPass(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
	assert.Len(t, uploader.UploadOneCalls(), 1)
}

// A queue listing error skips that kind only; other kinds still run.
func TestRunPassListingErrorSkipsKind(t *testing.T) {
	base := time.Now().Add(-time.Hour)
	note := noteEntry("n1", base)

	queue := &storage.QueueStorageMock{
		ListPendingFunc: func(ctx context.Context, kind models.RecordKind) ([]*models.QueueEntry, error) {
			if kind == models.KindExperience {
				return nil, errors.New("disk I/O error")
			}
			if kind == models.KindNote {
				return []*models.QueueEntry{note}, nil
			}
			return nil, nil
		},
		RemoveFunc: func(ctx context.Context, kind models.RecordKind, id string) error {
			return nil
		},
	}

	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			return uploadapi.Outcome{EntryID: entry.ID}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{})

	result, err := svc.RunPass(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Uploaded)
}

func TestCurrentStatus(t *testing.T) {
	queue := newFakeQueue()
	queue.add(noteEntry("n1", time.Now()))
	dead := emotionEntry("e1", time.Now())
	dead.State = models.StateFailed
	dead.LastErrorKind = models.ErrorKindRejected
	dead.Attempts = DefaultMaxAttempts
	queue.add(dead)

	state := newStateMock()
	svc := New(queue, state, &UploaderMock{}, testLogger(), Config{AutoSync: true})

	status, err := svc.CurrentStatus(t.Context())
	require.NoError(t, err)

	assert.False(t, status.InProgress)
	assert.True(t, status.AutoSync)
	assert.Equal(t, 1, status.Pending[models.KindNote])
	// Dead-lettered entries are reported separately, not as pending.
	assert.Equal(t, 0, status.Pending[models.KindEmotion])
	assert.Equal(t, 1, status.DeadLettered[models.KindEmotion])
	assert.Nil(t, status.LastSuccessAt)
	assert.Equal(t, 1, status.TotalPending())
}

func TestSubscribeReceivesPassBoundaries(t *testing.T) {
	queue := newFakeQueue()
	queue.add(noteEntry("n1", time.Now()))

	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			return uploadapi.Outcome{EntryID: entry.ID}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{})

	ch, cancel := svc.Subscribe()
	defer cancel()

	_, err := svc.RunPass(t.Context())
	require.NoError(t, err)

	select {
	case status := <-ch:
		assert.NotNil(t, status.Pending)
	case <-time.After(time.Second):
		t.Fatal("no status snapshot after the pass")
	}
}

func TestSetAutoSync(t *testing.T) {
	svc := New(newFakeQueue(), newStateMock(), &UploaderMock{}, testLogger(), Config{AutoSync: true})

	assert.True(t, svc.AutoSyncEnabled())
	svc.SetAutoSync(false)
	assert.False(t, svc.AutoSyncEnabled())
}
