package netmon

import (
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestClassify(t *testing.T) {
	preferred := []string{"wlan", "wl", "en0"}

	tests := []struct {
		name   string
		ifaces []Iface
		want   Class
	}{
		{
			name:   "no interfaces",
			ifaces: nil,
			want:   Disconnected,
		},
		{
			name: "only down interfaces",
			ifaces: []Iface{
				{Name: "wlan0", Up: false, HasAddr: false},
				{Name: "eth0", Up: false, HasAddr: false},
			},
			want: Disconnected,
		},
		{
			name: "up without address",
			ifaces: []Iface{
				{Name: "wlan0", Up: true, HasAddr: false},
			},
			want: Disconnected,
		},
		{
			name: "wifi class interface",
			ifaces: []Iface{
				{Name: "wlan0", Up: true, HasAddr: true},
			},
			want: ConnectedPreferred,
		},
		{
			name: "cellular only",
			ifaces: []Iface{
				{Name: "rmnet0", Up: true, HasAddr: true},
			},
			want: ConnectedOther,
		},
		{
			name: "preferred wins over other",
			ifaces: []Iface{
				{Name: "rmnet0", Up: true, HasAddr: true},
				{Name: "wlp3s0", Up: true, HasAddr: true},
			},
			want: ConnectedPreferred,
		},
		{
			name: "preferred down, other up",
			ifaces: []Iface{
				{Name: "wlan0", Up: false, HasAddr: false},
				{Name: "eth0", Up: true, HasAddr: true},
			},
			want: ConnectedOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ifaces, preferred))
		})
	}
}

// fakeLister serves interface snapshots that tests can swap at runtime.
type fakeLister struct {
	mu     sync.Mutex
	ifaces []Iface
}

func (f *fakeLister) list() ([]Iface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ifaces, nil
}

func (f *fakeLister) set(ifaces []Iface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ifaces = ifaces
}

func TestInterfaceMonitorInitialClass(t *testing.T) {
	lister := &fakeLister{ifaces: []Iface{{Name: "wlan0", Up: true, HasAddr: true}}}

	m := newWithLister(Config{PollInterval: time.Hour}, testLogger(), lister.list)
	defer func() { _ = m.Close() }()

	assert.Equal(t, ConnectedPreferred, m.Current())
}

func TestInterfaceMonitorEmitsEdgeOnce(t *testing.T) {
	lister := &fakeLister{}

	m := newWithLister(Config{PollInterval: 5 * time.Millisecond}, testLogger(), lister.list)
	defer func() { _ = m.Close() }()

	require.Equal(t, Disconnected, m.Current())

	// WiFi comes up.
	lister.set([]Iface{{Name: "wlan0", Up: true, HasAddr: true}})

	select {
	case ev := <-m.Events():
		assert.Equal(t, Disconnected, ev.Previous)
		assert.Equal(t, ConnectedPreferred, ev.Current)
		assert.False(t, ev.At.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the disconnected -> preferred edge")
	}

	// Stable class: several poll cycles must not re-emit.
	time.Sleep(50 * time.Millisecond)
	select {
	case ev := <-m.Events():
		t.Fatalf("unexpected event while class is stable: %+v", ev)
	default:
	}

	assert.Equal(t, ConnectedPreferred, m.Current())
}

func TestInterfaceMonitorTransitionChain(t *testing.T) {
	lister := &fakeLister{ifaces: []Iface{{Name: "wlan0", Up: true, HasAddr: true}}}

	m := newWithLister(Config{PollInterval: 5 * time.Millisecond}, testLogger(), lister.list)
	defer func() { _ = m.Close() }()

	// WiFi drops, cellular takes over.
	lister.set([]Iface{{Name: "rmnet0", Up: true, HasAddr: true}})

	select {
	case ev := <-m.Events():
		assert.Equal(t, ConnectedPreferred, ev.Previous)
		assert.Equal(t, ConnectedOther, ev.Current)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the preferred -> other edge")
	}

	// Everything drops.
	lister.set(nil)

	select {
	case ev := <-m.Events():
		assert.Equal(t, ConnectedOther, ev.Previous)
		assert.Equal(t, Disconnected, ev.Current)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for the other -> disconnected edge")
	}
}

func TestInterfaceMonitorCloseClosesEvents(t *testing.T) {
	lister := &fakeLister{}

	m := newWithLister(Config{PollInterval: time.Hour}, testLogger(), lister.list)

	require.NoError(t, m.Close())
	// Close is idempotent.
	require.NoError(t, m.Close())

	_, open := <-m.Events()
	assert.False(t, open)
}
