package netmon

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
)

const (
	defaultPollInterval = 5 * time.Second

	// eventBufSize absorbs short consumer stalls; when the buffer is
	// full the edge is dropped with a warning rather than blocking the
	// poll loop.
	eventBufSize = 16
)

// defaultPreferredPrefixes matches the WiFi-class interface names seen
// on Linux, BSD and macOS devices.
var defaultPreferredPrefixes = []string{"wlan", "wl", "en0"}

// Config holds the externally supplied monitor settings.
type Config struct {
	// PollInterval is the time between interface scans.
	PollInterval time.Duration
	// PreferredPrefixes are the interface name prefixes counted as
	// preferred-class connectivity (WiFi-class by default).
	PreferredPrefixes []string
}

func (c *Config) setDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = defaultPollInterval
	}
	if len(c.PreferredPrefixes) == 0 {
		c.PreferredPrefixes = defaultPreferredPrefixes
	}
}

// Iface is the observed state of one network interface.
type Iface struct {
	Name    string
	Up      bool
	HasAddr bool
}

// Classify reduces an interface snapshot to a connectivity class. Any
// usable interface with a preferred name prefix wins; any other usable
// interface counts as ConnectedOther.
func Classify(ifaces []Iface, preferredPrefixes []string) Class {
	class := Disconnected

	for _, ifc := range ifaces {
		if !ifc.Up || !ifc.HasAddr {
			continue
		}
		for _, prefix := range preferredPrefixes {
			if strings.HasPrefix(ifc.Name, prefix) {
				return ConnectedPreferred
			}
		}
		class = ConnectedOther
	}

	return class
}

// InterfaceMonitor is a polling Monitor over the host's network
// interfaces. It cannot see below-interface-level fluctuations; only
// interfaces appearing, disappearing or losing their addresses.
type InterfaceMonitor struct {
	cfg    Config
	logger *slog.Logger

	// list is swapped out in tests.
	list func() ([]Iface, error)

	events chan Event
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	current Class

	closeOnce sync.Once
}

// New starts a monitor polling the host's interfaces. The initial
// class is observed synchronously so Current is valid immediately.
func New(cfg Config, logger *slog.Logger) *InterfaceMonitor {
	return newWithLister(cfg, logger, systemInterfaces)
}

func newWithLister(cfg Config, logger *slog.Logger, list func() ([]Iface, error)) *InterfaceMonitor {
	cfg.setDefaults()

	m := &InterfaceMonitor{
		cfg:    cfg,
		logger: logger,
		list:   list,
		events: make(chan Event, eventBufSize),
		done:   make(chan struct{}),
	}

	m.current = m.observe()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go m.run(ctx)

	return m
}

// Current returns the present connectivity class.
func (m *InterfaceMonitor) Current() Class {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Events returns the transition stream.
func (m *InterfaceMonitor) Events() <-chan Event {
	return m.events
}

// Close stops the poll loop and closes the event channel.
func (m *InterfaceMonitor) Close() error {
	m.closeOnce.Do(func() {
		m.cancel()
		<-m.done
		close(m.events)
	})
	return nil
}

func (m *InterfaceMonitor) run(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll re-observes the interfaces and emits an event on a class edge.
func (m *InterfaceMonitor) poll() {
	observed := m.observe()

	m.mu.Lock()
	previous := m.current
	m.current = observed
	m.mu.Unlock()

	if observed == previous {
		return
	}

	event := Event{At: time.Now(), Previous: previous, Current: observed}

	select {
	case m.events <- event:
	default:
		m.logger.Warn("connectivity event dropped, consumer stalled",
			"previous", previous, "current", observed)
	}
}

func (m *InterfaceMonitor) observe() Class {
	ifaces, err := m.list()
	if err != nil {
		m.logger.Warn("failed to list network interfaces", "error", err)
		return Disconnected
	}
	return Classify(ifaces, m.cfg.PreferredPrefixes)
}

// systemInterfaces snapshots the host's interfaces. An interface is
// usable when it is up, running, non-loopback and holds at least one
// global unicast address.
func systemInterfaces() ([]Iface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("failed to list interfaces: %w", err)
	}

	snapshot := make([]Iface, 0, len(ifaces))

	for _, ifc := range ifaces {
		const usable = net.FlagUp | net.FlagRunning
		up := ifc.Flags&usable == usable && ifc.Flags&net.FlagLoopback == 0

		hasAddr := false
		if up {
			addrs, err := ifc.Addrs()
			if err != nil {
				continue
			}
			for _, addr := range addrs {
				ipNet, ok := addr.(*net.IPNet)
				if ok && ipNet.IP.IsGlobalUnicast() {
					hasAddr = true
					break
				}
			}
		}

		snapshot = append(snapshot, Iface{Name: ifc.Name, Up: up, HasAddr: hasAddr})
	}

	return snapshot, nil
}
