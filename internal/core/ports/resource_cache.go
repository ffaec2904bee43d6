package ports

import (
	"context"
	"io"

	"go.trai.ch/xmlres/internal/core/domain"
)

// ResourceCache maps remote URIs to local copies.
//
//go:generate mockgen -source=resource_cache.go -destination=mocks/mock_resource_cache.go -package=mocks
type ResourceCache interface {
	// CanUseCache reports whether uri is served through the cache.
	CanUseCache(uri string) bool
	// GetResource returns the local path of uri.
	// It fails with a *domain.BusyDownloadingError while the resource is downloading and
	// returns "", nil while a failed download is remembered.
	GetResource(ctx context.Context, uri string) (string, error)
	// Entry returns a snapshot of the bookkeeping for uri.
	Entry(uri string) domain.CacheEntry
	// ForceDownload allows uri to be downloaded even when downloads are disabled.
	ForceDownload(uri string)
	// CachePath returns the deterministic disk location of uri.
	CachePath(uri string) (string, error)
	// Evict removes every cached resource.
	Evict(ctx context.Context) error
}

// Fetcher downloads remote resources.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (io.ReadCloser, error)
}

// ChangeTracker answers whether any tracked file changed since the last check.
type ChangeTracker interface {
	AddFileURI(uri string)
	IsDirty() bool
}
