package domain

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// PendingSignal completes when the download of a single resource settles,
// whether it succeeded or not. One signal is shared by every caller that
// observed the same download.
type PendingSignal struct {
	id   string
	uri  string
	done chan struct{}
	once sync.Once
	err  error
}

// NewPendingSignal creates an open signal for the given resource URI.
func NewPendingSignal(uri string) *PendingSignal {
	return &PendingSignal{
		id:   uuid.New().String(),
		uri:  uri,
		done: make(chan struct{}),
	}
}

// ID returns the unique id of the signal.
func (s *PendingSignal) ID() string {
	return s.id
}

// URI returns the resource URI the signal belongs to.
func (s *PendingSignal) URI() string {
	return s.uri
}

// Done returns a channel closed when the download settles.
func (s *PendingSignal) Done() <-chan struct{} {
	return s.done
}

// Err returns the download error after Done is closed, nil on success.
func (s *PendingSignal) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

// Completed reports whether the signal has settled.
func (s *PendingSignal) Completed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Complete settles the signal. Only the first call has an effect.
func (s *PendingSignal) Complete(err error) {
	s.once.Do(func() {
		s.err = err
		close(s.done)
	})
}

// Wait blocks until the signal settles or ctx is done.
func (s *PendingSignal) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BusyDownloadingError reports a resource that is being downloaded.
// It matches ErrBusyDownloading with errors.Is.
type BusyDownloadingError struct {
	URI    string
	Signal *PendingSignal
}

func (e *BusyDownloadingError) Error() string {
	return ErrBusyDownloading.Error() + ": " + e.URI
}

// Is reports whether target is ErrBusyDownloading.
func (e *BusyDownloadingError) Is(target error) bool {
	return target == ErrBusyDownloading
}
