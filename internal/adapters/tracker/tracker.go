// Package tracker detects modifications of a set of files by comparing their
// modification times.
package tracker

import (
	"os"
	"sync"
	"time"

	"go.trai.ch/xmlres/internal/core/domain"
)

// Tracker records the last known modification time of a set of files.
// IsDirty reports a change at most once per detected change.
type Tracker struct {
	mu    sync.Mutex
	files []domain.TrackedFile
	index map[string]int
	stat  func(path string) (time.Time, bool)
}

// New creates a tracker over the given file URIs.
func New(uris ...string) *Tracker {
	t := &Tracker{
		index: make(map[string]int),
		stat:  modTime,
	}
	for _, uri := range uris {
		t.AddFileURI(uri)
	}
	return t
}

// AddFileURI starts tracking uri and captures its current modification time.
// A missing file is recorded with the zero time. Adding a tracked URI again is a no-op.
func (t *Tracker) AddFileURI(uri string) {
	if uri == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.index[uri]; ok {
		return
	}
	t.index[uri] = len(t.files)
	t.files = append(t.files, domain.TrackedFile{
		URI:               uri,
		LastKnownModified: t.current(uri),
	})
}

// IsDirty reports whether any tracked file changed since the previous call.
// Changes between two calls are coalesced into a single true.
func (t *Tracker) IsDirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	dirty := false
	for i := range t.files {
		now := t.current(t.files[i].URI)
		if !now.Equal(t.files[i].LastKnownModified) {
			t.files[i].LastKnownModified = now
			dirty = true
		}
	}
	return dirty
}

// URIs returns the tracked URIs in the order they were added.
func (t *Tracker) URIs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.files))
	for i, f := range t.files {
		out[i] = f.URI
	}
	return out
}

// Files returns a snapshot of the tracked files.
func (t *Tracker) Files() []domain.TrackedFile {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.TrackedFile, len(t.files))
	copy(out, t.files)
	return out
}

// Contains reports whether uri is tracked.
func (t *Tracker) Contains(uri string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.index[uri]
	return ok
}

func (t *Tracker) current(uri string) time.Time {
	path, ok := domain.PathFromURI(uri)
	if !ok {
		return time.Time{}
	}
	mod, ok := t.stat(path)
	if !ok {
		return time.Time{}
	}
	return mod
}

func modTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
