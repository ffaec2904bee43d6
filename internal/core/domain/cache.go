// Package domain contains the core types of the resource resolution subsystem.
package domain

import "time"

// CacheState is the attempt state of a remote resource in the resource cache.
type CacheState uint8

const (
	// CacheEmpty indicates no attempt is remembered for the resource.
	CacheEmpty CacheState = iota
	// CacheDownloading indicates a download is in flight.
	CacheDownloading
	// CacheCached indicates the resource is available on disk.
	CacheCached
	// CacheFailed indicates the last download failed and the failure is still remembered.
	CacheFailed
)

// String returns the lower-case name of the state.
func (s CacheState) String() string {
	switch s {
	case CacheDownloading:
		return "downloading"
	case CacheCached:
		return "cached"
	case CacheFailed:
		return "failed"
	default:
		return "empty"
	}
}

// CacheEntry is a snapshot of the cache bookkeeping for one remote URI.
type CacheEntry struct {
	Key         string
	State       CacheState
	LocalPath   string
	LastAttempt time.Time
	// ExpiresAt is zero for entries that never expire.
	ExpiresAt time.Time
	// LastError is the message of the failed download, if any.
	LastError string
}

// TrackedFile is a file whose modification time is watched for changes.
type TrackedFile struct {
	URI               string
	LastKnownModified time.Time
}
