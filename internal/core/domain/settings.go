package domain

import "time"

const (
	// DefaultCacheTTL is the default failure memoization window.
	DefaultCacheTTL = 30 * time.Second
	// DefaultHTTPTimeout bounds a single download.
	DefaultHTTPTimeout = 30 * time.Second
	// DefaultMaxRedirects is the number of redirects a download may follow.
	DefaultMaxRedirects = 5
)

// FileAssociation binds documents matching a glob pattern to a grammar.
type FileAssociation struct {
	Pattern  string
	SystemID string
}

// Settings is the runtime configuration of the subsystem.
type Settings struct {
	// UseCache enables the resource cache for remote grammars.
	UseCache bool
	// FailureTTL is how long a failed download is remembered.
	FailureTTL time.Duration
	// AttemptTTL is how long the bookkeeping of a successful download stays in memory.
	AttemptTTL time.Duration
	// CachePath is the root directory of the on-disk cache.
	CachePath string
	// DownloadExternalResources allows fetching remote grammars.
	DownloadExternalResources bool
	// CatalogPaths lists XML catalog files.
	CatalogPaths []string
	// FileAssociations lists glob pattern bindings.
	FileAssociations []FileAssociation
	// RootURI is the base for relative catalog paths and file associations.
	RootURI string
	// HTTPTimeout bounds a single download.
	HTTPTimeout time.Duration
	// MaxRedirects bounds redirects followed by a download.
	MaxRedirects int
	// JSONLogs switches the logger to JSON output.
	JSONLogs bool
}

// DefaultSettings returns the settings used when no configuration file exists.
func DefaultSettings() Settings {
	return Settings{
		UseCache:                  true,
		FailureTTL:                DefaultCacheTTL,
		AttemptTTL:                DefaultCacheTTL,
		CachePath:                 DefaultCachePath(),
		DownloadExternalResources: true,
		HTTPTimeout:               DefaultHTTPTimeout,
		MaxRedirects:              DefaultMaxRedirects,
	}
}
