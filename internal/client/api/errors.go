package api

import (
	"errors"
	"fmt"

	"github.com/daybook-app/daybook-sync/internal/models"
)

// NetworkError is a transport-level upload failure: unreachable host,
// timeout, TLS failure, or a 5xx/throttling response. Entries stay
// queued and are retried on the next pass.
type NetworkError struct {
	Err error
	Op  string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RejectedError is an application-level rejection: the server received
// the record and refused it. Repeated rejections dead-letter the entry.
type RejectedError struct {
	Message    string
	StatusCode int
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request (%d)", e.StatusCode)
	}
	return fmt.Sprintf("server rejected request (%d): %s", e.StatusCode, e.Message)
}

// ErrorKindOf classifies an upload error for attempt tracking on the
// queue entry. Unrecognized errors count as local storage trouble.
func ErrorKindOf(err error) string {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return models.ErrorKindRejected
	}

	var network *NetworkError
	if errors.As(err, &network) {
		return models.ErrorKindNetwork
	}

	return models.ErrorKindStorage
}
