// Package rescache implements the resource cache: a durable, TTL-aware mapping
// from remote URIs to local files with single-flight downloads and failure
// memoization.
package rescache

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.trai.ch/xmlres/internal/adapters/telemetry"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultProtocols are the URI schemes served through the cache.
var DefaultProtocols = []string{"http", "https", "ftp"}

type entry struct {
	state       domain.CacheState
	localPath   string
	lastAttempt time.Time
	// expiresAt is when the in-memory bookkeeping is dropped.
	expiresAt time.Time
	lastErr   string
	signal    *domain.PendingSignal
}

// Option configures a Cache.
type Option func(*Cache)

// WithClock replaces the clock used for TTL bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// WithTracer sets the tracer used for download spans.
func WithTracer(tracer ports.Tracer) Option {
	return func(c *Cache) {
		c.tracer = tracer
	}
}

// Cache implements ports.ResourceCache.
type Cache struct {
	store   *Store
	fetcher ports.Fetcher
	logger  ports.Logger
	tracer  ports.Tracer
	now     func() time.Time

	enabled    bool
	download   bool
	failureTTL time.Duration
	attemptTTL time.Duration

	mu        sync.Mutex
	entries   map[string]*entry
	forced    map[string]time.Time
	protocols map[string]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a cache over store. Downloads run on background goroutines
// bound to the lifetime of the cache, not to the requests that start them.
func New(settings domain.Settings, store *Store, fetcher ports.Fetcher, logger ports.Logger, opts ...Option) *Cache {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Cache{
		store:      store,
		fetcher:    fetcher,
		logger:     logger,
		tracer:     telemetry.NewNoOpTracer(),
		now:        time.Now,
		enabled:    settings.UseCache,
		download:   settings.DownloadExternalResources,
		failureTTL: settings.FailureTTL,
		attemptTTL: settings.AttemptTTL,
		entries:    make(map[string]*entry),
		forced:     make(map[string]time.Time),
		protocols:  make(map[string]struct{}),
		ctx:        ctx,
		cancel:     cancel,
	}
	if c.failureTTL <= 0 {
		c.failureTTL = domain.DefaultCacheTTL
	}
	if c.attemptTTL <= 0 {
		c.attemptTTL = c.failureTTL
	}
	for _, p := range DefaultProtocols {
		c.protocols[p] = struct{}{}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the disk layout of the cache.
func (c *Cache) Store() *Store {
	return c.store
}

// AddProtocol serves URIs with the given scheme through the cache.
func (c *Cache) AddProtocol(scheme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.protocols[normalizeProtocol(scheme)] = struct{}{}
}

// RemoveProtocol stops serving URIs with the given scheme through the cache.
func (c *Cache) RemoveProtocol(scheme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.protocols, normalizeProtocol(scheme))
}

func normalizeProtocol(scheme string) string {
	return strings.ToLower(strings.TrimSuffix(scheme, ":"))
}

// CanUseCache reports whether uri is served through the cache.
// It is false for local files and whenever caching is disabled.
func (c *Cache) CanUseCache(uri string) bool {
	if !c.enabled {
		return false
	}
	scheme := domain.URIScheme(uri)
	if scheme == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.protocols[scheme]
	return ok
}

// CachePath returns the deterministic disk location of uri.
func (c *Cache) CachePath(uri string) (string, error) {
	return c.store.Path(uri)
}

// GetResource returns the local path of uri.
//
// A published file is returned regardless of any in-memory state. Otherwise a
// download is started (or joined) and a *domain.BusyDownloadingError carrying
// the shared pending signal is returned. While a failed download is
// remembered, GetResource returns "", nil.
func (c *Cache) GetResource(_ context.Context, uri string) (string, error) {
	p, err := c.store.Path(uri)
	if err != nil {
		lookupsTotal.WithLabelValues(outcomeInvalid).Inc()
		return "", err
	}
	if c.store.Exists(p) {
		lookupsTotal.WithLabelValues(outcomeHit).Inc()
		return p, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.pruneLocked(now)
	// A download may have published p since the check above.
	if e, ok := c.entries[uri]; ok && e.state == domain.CacheCached {
		lookupsTotal.WithLabelValues(outcomeHit).Inc()
		return e.localPath, nil
	}
	if c.store.Exists(p) {
		lookupsTotal.WithLabelValues(outcomeHit).Inc()
		return p, nil
	}
	if !c.download && !c.isForcedLocked(uri, now) {
		lookupsTotal.WithLabelValues(outcomeDisabled).Inc()
		return "", zerr.With(zerr.Wrap(domain.ErrDownloadDisabled, "resource not cached"), "uri", uri)
	}

	if e, ok := c.entries[uri]; ok {
		switch e.state {
		case domain.CacheDownloading:
			lookupsTotal.WithLabelValues(outcomeBusy).Inc()
			return "", &domain.BusyDownloadingError{URI: uri, Signal: e.signal}
		case domain.CacheFailed:
			lookupsTotal.WithLabelValues(outcomeUnavailable).Inc()
			return "", nil
		}
	}

	signal := domain.NewPendingSignal(uri)
	c.entries[uri] = &entry{
		state:       domain.CacheDownloading,
		lastAttempt: now,
		signal:      signal,
	}
	lookupsTotal.WithLabelValues(outcomeStarted).Inc()

	c.wg.Add(1)
	go c.fetch(uri, p, signal)

	return "", &domain.BusyDownloadingError{URI: uri, Signal: signal}
}

func (c *Cache) fetch(uri, p string, signal *domain.PendingSignal) {
	defer c.wg.Done()

	ctx, span := c.tracer.Start(c.ctx, "rescache.download", ports.WithAttribute("uri", uri))
	defer span.End()

	inflightDownloads.Inc()
	defer inflightDownloads.Dec()

	c.logger.Info("Downloading " + uri + " to " + p)
	start := time.Now()
	size, err := c.downloadTo(ctx, uri, p)
	downloadDuration.Observe(time.Since(start).Seconds())

	c.mu.Lock()
	now := c.now()
	if e, ok := c.entries[uri]; ok && e.signal == signal {
		if err != nil {
			e.state = domain.CacheFailed
			e.expiresAt = now.Add(c.failureTTL)
			e.lastErr = err.Error()
		} else {
			e.state = domain.CacheCached
			e.localPath = p
			e.expiresAt = now.Add(c.attemptTTL)
			e.lastErr = ""
		}
	}
	c.mu.Unlock()

	if err != nil {
		downloadsTotal.WithLabelValues("failure").Inc()
		span.RecordError(err)
		c.logger.Error(zerr.With(err, "uri", uri))
	} else {
		downloadsTotal.WithLabelValues("success").Inc()
		span.SetAttribute("bytes", size)
		c.logger.Info("Downloaded " + uri + " to " + p)
	}
	signal.Complete(err)
}

func (c *Cache) downloadTo(ctx context.Context, uri, p string) (int64, error) {
	body, err := c.fetcher.Fetch(ctx, uri)
	if err != nil {
		return 0, err
	}
	defer func() { _ = body.Close() }()
	return c.store.Publish(p, body)
}

// Entry returns a snapshot of the bookkeeping for uri. A published file with
// no in-memory entry is reported as cached.
func (c *Cache) Entry(uri string) domain.CacheEntry {
	out := domain.CacheEntry{Key: uri}
	p, pathErr := c.store.Path(uri)

	c.mu.Lock()
	now := c.now()
	c.pruneLocked(now)
	if e, ok := c.entries[uri]; ok {
		out.State = e.state
		out.LocalPath = e.localPath
		out.LastAttempt = e.lastAttempt
		out.LastError = e.lastErr
		if e.state == domain.CacheFailed {
			out.ExpiresAt = e.expiresAt
		}
	}
	c.mu.Unlock()

	if out.State != domain.CacheDownloading && pathErr == nil && c.store.Exists(p) {
		out.State = domain.CacheCached
		out.LocalPath = p
		out.ExpiresAt = time.Time{}
		out.LastError = ""
	}
	return out
}

// pruneLocked drops bookkeeping whose window elapsed. Failed entries revert
// to empty and cached entries forget their attempt; files stay on disk.
func (c *Cache) pruneLocked(now time.Time) {
	for k, e := range c.entries {
		if e.state != domain.CacheDownloading && !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	for k, until := range c.forced {
		if !now.Before(until) {
			delete(c.forced, k)
		}
	}
}

// ForceDownload allows uri to be downloaded for the attempt window even when
// external downloads are disabled. A remembered failure is forgotten.
func (c *Cache) ForceDownload(uri string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.forced[uri] = c.now().Add(c.attemptTTL)
	if e, ok := c.entries[uri]; ok && e.state == domain.CacheFailed {
		delete(c.entries, uri)
	}
}

func (c *Cache) isForcedLocked(uri string, now time.Time) bool {
	until, ok := c.forced[uri]
	if !ok {
		return false
	}
	if !now.Before(until) {
		delete(c.forced, uri)
		return false
	}
	return true
}

// Evict deletes every cached file and resets the in-memory state.
// Downloads in flight keep running and publish into the emptied cache.
func (c *Cache) Evict(_ context.Context) error {
	c.mu.Lock()
	for k, e := range c.entries {
		if e.state != domain.CacheDownloading {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()

	if err := c.store.Clear(); err != nil {
		return err
	}
	c.logger.Info("Evicted resource cache at " + c.store.Root())
	return nil
}

// Close cancels downloads in flight and waits for them to settle.
func (c *Cache) Close(ctx context.Context) error {
	c.cancel()
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every download started so far has settled.
func (c *Cache) Wait() {
	c.wg.Wait()
}
