package domain

import "go.trai.ch/zerr"

var (
	// ErrBusyDownloading is returned when a resource is not cached yet and a download
	// for it is in flight. It is transient: callers proceed without the resource.
	ErrBusyDownloading = zerr.New("resource is downloading")

	// ErrResourceUnavailable is returned when a previous download of a resource failed
	// and its failure window has not elapsed yet.
	ErrResourceUnavailable = zerr.New("resource is unavailable")

	// ErrGrammarSyntax is returned when a grammar engine rejects a resource.
	ErrGrammarSyntax = zerr.New("grammar syntax error")

	// ErrNoApplicableProvider is returned when no grammar provider claims a document.
	ErrNoApplicableProvider = zerr.New("no grammar provider applies to the document")

	// ErrNilResolver is returned when registering a nil resolver.
	ErrNilResolver = zerr.New("resolver must not be nil")

	// ErrNilProvider is returned when registering a nil grammar provider.
	ErrNilProvider = zerr.New("grammar provider must not be nil")

	// ErrDownloadDisabled is returned when a remote resource is missing from the cache
	// and external downloads are turned off.
	ErrDownloadDisabled = zerr.New("downloading external resources is disabled")

	// ErrDownloadFailed is returned when fetching a remote resource fails.
	ErrDownloadFailed = zerr.New("failed to download resource")

	// ErrInvalidCachePath is returned when a URI maps outside the cache directory.
	ErrInvalidCachePath = zerr.New("resource cannot be stored in the cache path")

	// ErrInvalidURI is returned when a URI cannot be parsed.
	ErrInvalidURI = zerr.New("invalid URI")

	// ErrUnsupportedProtocol is returned when a URI uses a protocol the cache cannot fetch.
	ErrUnsupportedProtocol = zerr.New("unsupported protocol")

	// ErrInsecureRedirect is returned when an https download is redirected to plain http.
	ErrInsecureRedirect = zerr.New("insecure redirect from https to http")

	// ErrTooManyRedirects is returned when a download exceeds the redirect limit.
	ErrTooManyRedirects = zerr.New("too many redirects")

	// ErrCacheCreateFailed is returned when the cache directory cannot be created.
	ErrCacheCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheWriteFailed is returned when a downloaded resource cannot be published to the cache.
	ErrCacheWriteFailed = zerr.New("failed to write resource to cache")

	// ErrCacheReadFailed is returned when a cached resource cannot be read.
	ErrCacheReadFailed = zerr.New("failed to read cached resource")

	// ErrCacheEvictFailed is returned when the cache directory cannot be cleared.
	ErrCacheEvictFailed = zerr.New("failed to evict cache")

	// ErrDocumentParseFailed is returned when an XML document is not well-formed.
	ErrDocumentParseFailed = zerr.New("failed to parse XML document")

	// ErrCatalogParseFailed is returned when an XML catalog cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse XML catalog")

	// ErrInvalidFileAssociation is returned when a file association has an empty pattern or system id.
	ErrInvalidFileAssociation = zerr.New("invalid file association")

	// ErrBundledResourceMissing is returned when an embedded schema cannot be found.
	ErrBundledResourceMissing = zerr.New("bundled resource not found")

	// ErrValidationSuperseded is returned when a newer validation of the same document
	// started before this one finished.
	ErrValidationSuperseded = zerr.New("validation superseded by a newer request")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigUnsupportedFormat is returned when the config file extension is unknown.
	ErrConfigUnsupportedFormat = zerr.New("unsupported config file format")

	// ErrNoInputFiles is returned when the validate command gets no files.
	ErrNoInputFiles = zerr.New("no input files specified")

	// ErrValidationFailed is returned when at least one document has error diagnostics.
	ErrValidationFailed = zerr.New("validation reported errors")

	// ErrUnknownFormat is returned when an output format name is not recognized.
	ErrUnknownFormat = zerr.New("unknown output format")

	// ErrNoIdentifier is returned when the resolve command gets neither a public nor a system id.
	ErrNoIdentifier = zerr.New("a public or system identifier is required")

	// ErrUnresolved is returned when no resolver maps an identifier.
	ErrUnresolved = zerr.New("identifier could not be resolved")

	// ErrServerFailed is returned when the HTTP server stops unexpectedly.
	ErrServerFailed = zerr.New("server failed")
)
