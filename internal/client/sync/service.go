package sync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	uploadapi "github.com/daybook-app/daybook-sync/internal/client/api"
	"github.com/daybook-app/daybook-sync/internal/client/storage"
	"github.com/daybook-app/daybook-sync/internal/models"
)

//go:generate moq -out service_mock.go . Service

// ErrPassInProgress is returned when a pass is triggered while another
// one runs. The second trigger is dropped, never queued; automatic
// callers treat it as a silent no-op.
var ErrPassInProgress = errors.New("sync pass already in progress")

// DefaultMaxAttempts is the rejection count after which an entry is
// considered dead-lettered and skipped by passes.
const DefaultMaxAttempts = 5

// Uploader executes upload exchanges against the ingestion service.
// It never mutates the queue; that is the orchestrator's job.
type Uploader interface {
	// UploadOne uploads a single entry and reports the outcome.
	UploadOne(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome

	// UploadBatch uploads attachment-free entries of one kind. The
	// outcomes map one-to-one onto entries; the error return is
	// reserved for misuse.
	UploadBatch(ctx context.Context, kind models.RecordKind, entries []*models.QueueEntry) ([]uploadapi.Outcome, error)
}

// Service is the synchronization orchestrator: it runs upload passes
// over the durable queue and publishes their observable state.
type Service interface {
	// RunPass executes one synchronization pass: per-kind sub-passes
	// in the configured order, FIFO within a kind, remove-on-success
	// and retain-on-failure per entry. Returns ErrPassInProgress when
	// a pass is already running.
	RunPass(ctx context.Context) (*PassResult, error)

	// CurrentStatus re-queries the queue and sync state and returns a
	// point-in-time view for external observers.
	CurrentStatus(ctx context.Context) (*Status, error)

	// Subscribe returns a channel receiving a status snapshot at every
	// pass boundary, and a function releasing the subscription. Slow
	// subscribers miss snapshots instead of blocking a pass.
	Subscribe() (<-chan Status, func())

	// SetAutoSync toggles automatic pass triggering on connectivity
	// edges. Manual passes are unaffected.
	SetAutoSync(enabled bool)

	// AutoSyncEnabled reports whether automatic triggering is on.
	AutoSyncEnabled() bool
}

// Config holds the externally supplied orchestration settings.
type Config struct {
	// Kinds is the sub-pass order. Defaults to models.AllKinds().
	Kinds []models.RecordKind
	// MaxAttempts dead-letters an entry after this many rejections.
	// Defaults to DefaultMaxAttempts; negative disables dead-lettering.
	MaxAttempts int
	// UseBatch uploads attachment-free kinds through the batch
	// endpoint instead of one exchange per entry.
	UseBatch bool
	// AutoSync is the initial automatic-trigger setting.
	AutoSync bool
}

func (c *Config) setDefaults() {
	if len(c.Kinds) == 0 {
		c.Kinds = models.AllKinds()
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
}

// PassResult summarizes one completed pass.
type PassResult struct {
	// Started is the wall-clock start of the pass.
	Started time.Time
	// Uploaded counts entries acknowledged and removed from the queue.
	Uploaded int
	// Failed counts entries that stay queued after a failed attempt.
	Failed int
	// Skipped counts dead-lettered entries the pass did not attempt.
	Skipped int
}

// Status is the externally observable projection of the sync engine:
// a live re-query of the queue and the persisted sync state.
type Status struct {
	LastSuccessAt *time.Time
	// Pending counts uploadable entries per kind, dead-letters excluded.
	Pending map[models.RecordKind]int
	// DeadLettered counts entries skipped until requeued.
	DeadLettered map[models.RecordKind]int
	InProgress   bool
	AutoSync     bool
}

// TotalPending returns the number of uploadable entries across kinds.
func (s *Status) TotalPending() int {
	total := 0
	for _, n := range s.Pending {
		total += n
	}
	return total
}

type service struct {
	queue    storage.QueueStorage
	state    storage.SyncStateStorage
	uploader Uploader
	logger   *slog.Logger
	cfg      Config

	inProgress atomic.Bool
	autoSync   atomic.Bool

	subMu   sync.Mutex
	subs    map[int]chan Status
	nextSub int
}

// New creates the orchestrator. All collaborators enter here; the
// service owns no globals.
func New(queue storage.QueueStorage, state storage.SyncStateStorage, uploader Uploader, logger *slog.Logger, cfg Config) Service {
	cfg.setDefaults()

	s := &service{
		queue:    queue,
		state:    state,
		uploader: uploader,
		logger:   logger,
		cfg:      cfg,
		subs:     make(map[int]chan Status),
	}
	s.autoSync.Store(cfg.AutoSync)

	return s
}

// RunPass executes one pass. Mutual exclusion is a compare-and-swap on
// the in-progress flag: a concurrent trigger gets ErrPassInProgress
// without performing any upload call.
func (s *service) RunPass(ctx context.Context) (*PassResult, error) {
	if !s.inProgress.CompareAndSwap(false, true) {
		return nil, ErrPassInProgress
	}

	result := &PassResult{Started: time.Now()}

	// Publish after the flag drops so subscribers observe Idle.
	defer s.publish(ctx)
	defer s.inProgress.Store(false)

	s.logger.Info("sync pass started")
	s.publish(ctx)

	for _, kind := range s.cfg.Kinds {
		if ctx.Err() != nil {
			s.logger.Info("sync pass canceled, remaining entries stay queued", "kind", kind)
			break
		}
		s.runKind(ctx, kind, result)
	}

	if result.Uploaded > 0 {
		if err := s.state.SaveLastSuccessAt(ctx, time.Now()); err != nil {
			s.logger.Warn("failed to persist last success time", "error", err)
		}
	}

	s.logger.Info("sync pass finished",
		"uploaded", result.Uploaded,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"duration", time.Since(result.Started))

	return result, nil
}

// runKind runs one sub-pass. A listing failure skips the kind; an
// entry failure never aborts the sub-pass.
func (s *service) runKind(ctx context.Context, kind models.RecordKind, result *PassResult) {
	entries, err := s.queue.ListPending(ctx, kind)
	if err != nil {
		s.logger.Warn("failed to list pending entries, skipping kind", "kind", kind, "error", err)
		return
	}

	uploadable := make([]*models.QueueEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.DeadLettered(s.cfg.MaxAttempts) {
			result.Skipped++
			continue
		}
		uploadable = append(uploadable, entry)
	}

	if len(uploadable) == 0 {
		return
	}

	if s.cfg.UseBatch && kind != models.KindExperience {
		s.runKindBatch(ctx, kind, uploadable, result)
		return
	}

	for _, entry := range uploadable {
		if ctx.Err() != nil {
			return
		}
		outcome := s.uploader.UploadOne(ctx, entry)
		s.applyOutcome(ctx, kind, outcome, result)
	}
}

func (s *service) runKindBatch(ctx context.Context, kind models.RecordKind, entries []*models.QueueEntry, result *PassResult) {
	outcomes, err := s.uploader.UploadBatch(ctx, kind, entries)
	if err != nil {
		s.logger.Warn("batch upload failed, entries stay queued", "kind", kind, "error", err)
		return
	}

	for _, outcome := range outcomes {
		s.applyOutcome(ctx, kind, outcome, result)
	}
}

// applyOutcome is the queue mutation policy: remove on success, record
// the failed attempt otherwise.
func (s *service) applyOutcome(ctx context.Context, kind models.RecordKind, outcome uploadapi.Outcome, result *PassResult) {
	if outcome.Succeeded() {
		if err := s.queue.Remove(ctx, kind, outcome.EntryID); err != nil {
			// The record is acknowledged but still queued; the next
			// pass re-uploads it and the server dedupes the replay.
			s.logger.Warn("failed to remove acknowledged entry", "kind", kind, "id", outcome.EntryID, "error", err)
			result.Failed++
			return
		}
		result.Uploaded++
		return
	}

	result.Failed++
	s.logger.Warn("upload failed, entry retained", "kind", kind, "id", outcome.EntryID, "error", outcome.Err)

	errorKind := uploadapi.ErrorKindOf(outcome.Err)
	if err := s.queue.MarkFailed(ctx, kind, outcome.EntryID, errorKind, outcome.Err.Error()); err != nil {
		s.logger.Warn("failed to record attempt on entry", "kind", kind, "id", outcome.EntryID, "error", err)
	}
}

// CurrentStatus re-queries the collaborators; it never serves a cached
// snapshot.
func (s *service) CurrentStatus(ctx context.Context) (*Status, error) {
	pending, err := s.queue.PendingCounts(ctx)
	if err != nil {
		return nil, err
	}

	dead, err := s.queue.DeadLetterCounts(ctx, s.cfg.MaxAttempts)
	if err != nil {
		return nil, err
	}

	lastSuccess, err := s.state.LastSuccessAt(ctx)
	if err != nil {
		return nil, err
	}

	for kind, n := range dead {
		if remaining := pending[kind] - n; remaining >= 0 {
			pending[kind] = remaining
		}
	}

	return &Status{
		InProgress:    s.inProgress.Load(),
		AutoSync:      s.autoSync.Load(),
		Pending:       pending,
		DeadLettered:  dead,
		LastSuccessAt: lastSuccess,
	}, nil
}

// Subscribe registers a status observer notified at pass boundaries.
func (s *service) Subscribe() (<-chan Status, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan Status, 1)
	s.subs[id] = ch

	cancel := func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

// publish pushes a fresh snapshot to every subscriber without blocking.
func (s *service) publish(ctx context.Context) {
	s.subMu.Lock()
	if len(s.subs) == 0 {
		s.subMu.Unlock()
		return
	}
	s.subMu.Unlock()

	status, err := s.CurrentStatus(ctx)
	if err != nil {
		s.logger.Warn("failed to compute status for subscribers", "error", err)
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- *status:
		default:
		}
	}
}

// SetAutoSync toggles automatic triggering.
func (s *service) SetAutoSync(enabled bool) {
	s.autoSync.Store(enabled)
}

// AutoSyncEnabled reports whether automatic triggering is on.
func (s *service) AutoSyncEnabled() bool {
	return s.autoSync.Load()
}
