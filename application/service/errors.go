package service

import (
	"errors"
	"sync/atomic"
)

var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("vtasurvey: client is closed")

	// ErrUnknownSocietalBenefitArea is returned when an application is linked to an
	// area that the taxonomy does not define.
	ErrUnknownSocietalBenefitArea = errors.New("unknown societal benefit area")
)

// checkOpen fails once the owning client has been closed. A nil flag means
// the service is not owned by a client.
func checkOpen(closed *atomic.Bool) error {
	if closed != nil && closed.Load() {
		return ErrClientClosed
	}
	return nil
}
