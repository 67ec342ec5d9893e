package sync

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uploadapi "github.com/daybook-app/daybook-sync/internal/client/api"
	"github.com/daybook-app/daybook-sync/internal/client/netmon"
	"github.com/daybook-app/daybook-sync/internal/models"
)

func eventMonitor(events chan netmon.Event) *netmon.MonitorMock {
	return &netmon.MonitorMock{
		EventsFunc: func() <-chan netmon.Event {
			return events
		},
		CurrentFunc: func() netmon.Class {
			return netmon.ConnectedPreferred
		},
		CloseFunc: func() error {
			return nil
		},
	}
}

// Scenario: a disconnected -> preferred edge with auto-sync on and two
// pending emotions triggers exactly one pass, uploading both in FIFO
// creation order.
func TestRunnerTriggersPassOnPreferredEdge(t *testing.T) {
	queue := newFakeQueue()
	base := time.Now().Add(-time.Hour)
	queue.add(emotionEntry("e1", base))
	queue.add(emotionEntry("e2", base.Add(time.Minute)))

	var order []string
	uploaded := make(chan string, 2)
	uploader := &UploaderMock{
		UploadOneFunc: func(ctx context.Context, entry *models.QueueEntry) uploadapi.Outcome {
			order = append(order, entry.ID)
			uploaded <- entry.ID
			return uploadapi.Outcome{EntryID: entry.ID}
		},
	}

	svc := New(queue, newStateMock(), uploader, testLogger(), Config{AutoSync: true})

	events := make(chan netmon.Event, 1)
	runner := NewRunner(svc, eventMonitor(events), testLogger(), nil)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	events <- netmon.Event{
		At:       time.Now(),
		Previous: netmon.Disconnected,
		Current:  netmon.ConnectedPreferred,
	}

	for range 2 {
		select {
		case <-uploaded:
		case <-time.After(2 * time.Second):
			t.Fatal("pass did not upload both emotions")
		}
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	assert.Equal(t, []string{"e1", "e2"}, order)
	assert.Equal(t, 0, queue.len(models.KindEmotion))
	assert.Len(t, uploader.UploadOneCalls(), 2)
}

func TestRunnerIgnoresNonPreferredEdges(t *testing.T) {
	svc := &ServiceMock{
		AutoSyncEnabledFunc: func() bool { return true },
		CurrentStatusFunc: func(ctx context.Context) (*Status, error) {
			t.Error("status read for a non-preferred edge")
			return &Status{}, nil
		},
		RunPassFunc: func(ctx context.Context) (*PassResult, error) {
			t.Error("pass triggered by a non-preferred edge")
			return &PassResult{}, nil
		},
	}

	events := make(chan netmon.Event, 2)
	runner := NewRunner(svc, eventMonitor(events), testLogger(), nil)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	events <- netmon.Event{Previous: netmon.Disconnected, Current: netmon.ConnectedOther}
	events <- netmon.Event{Previous: netmon.ConnectedOther, Current: netmon.Disconnected}

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.Empty(t, svc.RunPassCalls())
}

func TestRunnerRespectsAutoSyncFlag(t *testing.T) {
	svc := &ServiceMock{
		AutoSyncEnabledFunc: func() bool { return false },
		RunPassFunc: func(ctx context.Context) (*PassResult, error) {
			t.Error("pass triggered with auto-sync disabled")
			return &PassResult{}, nil
		},
	}

	events := make(chan netmon.Event, 1)
	runner := NewRunner(svc, eventMonitor(events), testLogger(), nil)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	events <- netmon.Event{Previous: netmon.Disconnected, Current: netmon.ConnectedPreferred}

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.Empty(t, svc.RunPassCalls())
}

func TestRunnerSkipsPassOnEmptyQueue(t *testing.T) {
	svc := &ServiceMock{
		AutoSyncEnabledFunc: func() bool { return true },
		CurrentStatusFunc: func(ctx context.Context) (*Status, error) {
			return &Status{Pending: map[models.RecordKind]int{}}, nil
		},
		RunPassFunc: func(ctx context.Context) (*PassResult, error) {
			t.Error("pass triggered against an empty queue")
			return &PassResult{}, nil
		},
	}

	events := make(chan netmon.Event, 1)
	runner := NewRunner(svc, eventMonitor(events), testLogger(), nil)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	events <- netmon.Event{Previous: netmon.Disconnected, Current: netmon.ConnectedPreferred}

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	assert.Empty(t, svc.RunPassCalls())
}

// A pass with failures arms a retry pass; a clean retry resets the
// streak.
func TestRunnerArmsRetryAfterFailedPass(t *testing.T) {
	var passes atomic.Int32
	ran := make(chan int32, 4)

	svc := &ServiceMock{
		AutoSyncEnabledFunc: func() bool { return true },
		CurrentStatusFunc: func(ctx context.Context) (*Status, error) {
			return &Status{Pending: map[models.RecordKind]int{models.KindNote: 1}}, nil
		},
		RunPassFunc: func(ctx context.Context) (*PassResult, error) {
			n := passes.Add(1)
			ran <- n
			if n == 1 {
				return &PassResult{Started: time.Now(), Failed: 1}, nil
			}
			return &PassResult{Started: time.Now(), Uploaded: 1}, nil
		},
	}

	events := make(chan netmon.Event, 1)
	runner := NewRunner(svc, eventMonitor(events), testLogger(), ConstantBackoffFactory(10*time.Millisecond))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	events <- netmon.Event{Previous: netmon.Disconnected, Current: netmon.ConnectedPreferred}

	// First pass fails, the armed retry runs a second, clean one.
	for range 2 {
		select {
		case <-ran:
		case <-time.After(2 * time.Second):
			t.Fatal("expected an armed retry pass")
		}
	}

	// Clean pass: no further retries fire.
	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	require.Len(t, svc.RunPassCalls(), 2)
}

// A nil backoff factory disables failure-driven retries.
func TestRunnerNoRetryWithoutBackoff(t *testing.T) {
	svc := &ServiceMock{
		AutoSyncEnabledFunc: func() bool { return true },
		CurrentStatusFunc: func(ctx context.Context) (*Status, error) {
			return &Status{Pending: map[models.RecordKind]int{models.KindNote: 1}}, nil
		},
		RunPassFunc: func(ctx context.Context) (*PassResult, error) {
			return &PassResult{Started: time.Now(), Failed: 1}, nil
		},
	}

	events := make(chan netmon.Event, 1)
	runner := NewRunner(svc, eventMonitor(events), testLogger(), nil)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx) }()

	events <- netmon.Event{Previous: netmon.Disconnected, Current: netmon.ConnectedPreferred}

	time.Sleep(100 * time.Millisecond)
	cancel()
	<-done

	assert.Len(t, svc.RunPassCalls(), 1)
}

func TestRunnerStopsWhenMonitorCloses(t *testing.T) {
	events := make(chan netmon.Event)
	runner := NewRunner(&ServiceMock{}, eventMonitor(events), testLogger(), nil)

	done := make(chan error, 1)
	go func() { done <- runner.Run(t.Context()) }()

	close(events)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not stop after the monitor closed")
	}
}
