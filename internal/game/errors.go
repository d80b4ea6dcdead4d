package game

import (
	"errors"
	"fmt"
)

// RejectedError is returned by a collaborator that was reached but declined
// the request (unknown game, bad index, rule violation).
type RejectedError struct {
	Status int
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("rejected (%d): %s", e.Status, e.Reason)
	}
	return "rejected: " + e.Reason
}

// TransportError wraps a failure to reach the collaborator or a server-side
// fault. The request may be retried unchanged.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a transport failure.
func IsRetryable(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// RejectionReason returns the collaborator's reason when err is a rejection.
func RejectionReason(err error) (string, bool) {
	var re *RejectedError
	if errors.As(err, &re) {
		return re.Reason, true
	}
	return "", false
}
