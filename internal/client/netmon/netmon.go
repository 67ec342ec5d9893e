package netmon

import (
	"time"
)

//go:generate moq -out netmon_mock.go . Monitor

// Class is the connectivity classification of the device. The platform
// can only observe interface classes, not network identity, so
// ConnectedPreferred means "any preferred-class interface is usable",
// not "the home network".
type Class string

// Connectivity classes.
const (
	Disconnected       Class = "disconnected"
	ConnectedPreferred Class = "connected_preferred"
	ConnectedOther     Class = "connected_other"
)

// Event is one connectivity transition. Exactly one event is emitted
// per class change; a stable class is never re-announced.
type Event struct {
	At       time.Time
	Previous Class
	Current  Class
}

// Monitor observes connectivity transitions. Consumers that auto-sync
// act only on events whose Current class is ConnectedPreferred.
type Monitor interface {
	// Current returns the present connectivity class.
	Current() Class

	// Events returns the transition stream. The channel closes when
	// the monitor is closed.
	Events() <-chan Event

	// Close releases the observation handle and stops event delivery.
	Close() error
}
