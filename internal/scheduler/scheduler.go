package scheduler

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyRunning is returned by RunNow when a manual trigger overlaps a
// sync that is still in flight.
var ErrAlreadyRunning = errors.New("sync already running")

// Syncer is the common surface of the three marketplace sync services.
type Syncer interface {
	Name() string
	Start(ctx context.Context) error
	RunNow() error
	Status() SyncStatus
}

// SyncStatus is a snapshot of one sync service for the status endpoint.
type SyncStatus struct {
	Name            string     `json:"name"`
	Enabled         bool       `json:"enabled"`
	Running         bool       `json:"running"`
	LastStartedAt   *time.Time `json:"lastStartedAt,omitempty"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
	LastError       string     `json:"lastError,omitempty"`
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
