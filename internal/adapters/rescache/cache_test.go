package rescache_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/rescache"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	body  string
	err   error
	gate  chan struct{}
}

func (f *fakeFetcher) Fetch(ctx context.Context, _ string) (io.ReadCloser, error) {
	f.mu.Lock()
	f.calls++
	gate, body, err := f.gate, f.body, f.err
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeFetcher) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

const remoteURI = "http://example.org/schemas/a.xsd"

func newTestCache(t *testing.T, settings domain.Settings, fetcher *fakeFetcher) (*rescache.Cache, *fakeClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	if settings.CachePath == "" {
		settings.CachePath = t.TempDir()
	}
	store, err := rescache.NewStore(settings.CachePath)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := rescache.New(settings, store, fetcher, logger, rescache.WithClock(clock.Now))
	t.Cleanup(func() { _ = c.Close(context.Background()) })
	return c, clock
}

func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	s.CachePath = ""
	return s
}

func requireBusy(t *testing.T, err error) *domain.PendingSignal {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrBusyDownloading)
	var busy *domain.BusyDownloadingError
	require.ErrorAs(t, err, &busy)
	require.NotNil(t, busy.Signal)
	return busy.Signal
}

func waitSignal(t *testing.T, s *domain.PendingSignal) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
}

func TestCache_CanUseCache(t *testing.T) {
	tests := []struct {
		uri     string
		enabled bool
		want    bool
	}{
		{"http://example.org/a.xsd", true, true},
		{"https://example.org/a.xsd", true, true},
		{"ftp://example.org/a.xsd", true, true},
		{"HTTP://example.org/a.xsd", true, true},
		{"file:///tmp/a.xsd", true, false},
		{"a.xsd", true, false},
		{"/tmp/a.xsd", true, false},
		{`C:\schemas\a.xsd`, true, false},
		{"urn:oasis:names:tc:entity:xmlns:xml:catalog", true, false},
		{"http://example.org/a.xsd", false, false},
		{"https://example.org/a.xsd", false, false},
		{"ftp://example.org/a.xsd", false, false},
		{"file:///tmp/a.xsd", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			s := testSettings()
			s.UseCache = tt.enabled
			c, _ := newTestCache(t, s, &fakeFetcher{})
			assert.Equal(t, tt.want, c.CanUseCache(tt.uri))
		})
	}
}

func TestCache_AddRemoveProtocol(t *testing.T) {
	c, _ := newTestCache(t, testSettings(), &fakeFetcher{})

	assert.False(t, c.CanUseCache("jar:file:/a.jar!/a.xsd"))
	c.AddProtocol("jar:")
	assert.True(t, c.CanUseCache("jar:file:/a.jar!/a.xsd"))

	c.RemoveProtocol("ftp")
	assert.False(t, c.CanUseCache("ftp://example.org/a.xsd"))
}

func TestCache_FailingResource(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	c, clock := newTestCache(t, testSettings(), fetcher)
	ctx := context.Background()

	_, err := c.GetResource(ctx, remoteURI)
	signal := requireBusy(t, err)
	waitSignal(t, signal)
	require.Error(t, signal.Err())

	path, err := c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	assert.Empty(t, path)

	entry := c.Entry(remoteURI)
	assert.Equal(t, domain.CacheFailed, entry.State)
	assert.Contains(t, entry.LastError, "connection refused")
	assert.Equal(t, clock.Now().Add(domain.DefaultCacheTTL), entry.ExpiresAt)

	clock.Advance(domain.DefaultCacheTTL - time.Second)
	path, err = c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, 1, fetcher.Calls())

	clock.Advance(2 * time.Second)
	_, err = c.GetResource(ctx, remoteURI)
	retry := requireBusy(t, err)
	assert.NotEqual(t, signal.ID(), retry.ID())
	waitSignal(t, retry)
	assert.Equal(t, 2, fetcher.Calls())
}

func TestCache_SucceedingResource(t *testing.T) {
	fetcher := &fakeFetcher{body: "<xs:schema/>"}
	c, clock := newTestCache(t, testSettings(), fetcher)
	ctx := context.Background()

	_, err := c.GetResource(ctx, remoteURI)
	signal := requireBusy(t, err)
	waitSignal(t, signal)
	require.NoError(t, signal.Err())

	path, err := c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	require.NotEmpty(t, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<xs:schema/>", string(data))

	// The origin goes away and the attempt window elapses.
	fetcher.Fail(errors.New("unreachable"))
	clock.Advance(10 * domain.DefaultCacheTTL)

	again, err := c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, fetcher.Calls())

	entry := c.Entry(remoteURI)
	assert.Equal(t, domain.CacheCached, entry.State)
	assert.Equal(t, path, entry.LocalPath)
	assert.True(t, entry.ExpiresAt.IsZero())
}

func TestCache_CachedEntryNeverRestartsDownload(t *testing.T) {
	fetcher := &fakeFetcher{body: "<xs:schema/>"}
	c, _ := newTestCache(t, testSettings(), fetcher)
	ctx := context.Background()

	_, err := c.GetResource(ctx, remoteURI)
	waitSignal(t, requireBusy(t, err))
	path := c.Entry(remoteURI).LocalPath
	require.NotEmpty(t, path)

	// The file disappears while the entry still records the finished download.
	require.NoError(t, os.Remove(path))

	got, err := c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, 1, fetcher.Calls())
	assert.Equal(t, domain.CacheCached, c.Entry(remoteURI).State)
}

func TestCache_SingleFlight(t *testing.T) {
	fetcher := &fakeFetcher{body: "<xs:schema/>", gate: make(chan struct{})}
	c, _ := newTestCache(t, testSettings(), fetcher)
	ctx := context.Background()

	const callers = 32
	signals := make([]*domain.PendingSignal, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.GetResource(ctx, remoteURI)
		}()
	}
	wg.Wait()

	for i, err := range errs {
		signals[i] = requireBusy(t, err)
		assert.Equal(t, signals[0].ID(), signals[i].ID())
	}
	assert.Equal(t, domain.CacheDownloading, c.Entry(remoteURI).State)

	close(fetcher.gate)
	waitSignal(t, signals[0])
	c.Wait()

	assert.Equal(t, 1, fetcher.Calls())
	path, err := c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestCache_DiskIsAuthoritativeAcrossRestarts(t *testing.T) {
	s := testSettings()
	s.CachePath = t.TempDir()

	first := &fakeFetcher{body: "<!ELEMENT a EMPTY>"}
	c1, _ := newTestCache(t, s, first)
	_, err := c1.GetResource(context.Background(), "https://example.org/a.dtd")
	waitSignal(t, requireBusy(t, err))

	second := &fakeFetcher{err: errors.New("offline")}
	c2, _ := newTestCache(t, s, second)
	path, err := c2.GetResource(context.Background(), "https://example.org/a.dtd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.CachePath, "https", "example.org", "a.dtd"), path)
	assert.Zero(t, second.Calls())
}

func TestCache_DownloadDisabled(t *testing.T) {
	s := testSettings()
	s.DownloadExternalResources = false
	fetcher := &fakeFetcher{body: "<xs:schema/>"}
	c, clock := newTestCache(t, s, fetcher)
	ctx := context.Background()

	_, err := c.GetResource(ctx, remoteURI)
	require.ErrorIs(t, err, domain.ErrDownloadDisabled)
	assert.Zero(t, fetcher.Calls())

	c.ForceDownload(remoteURI)
	_, err = c.GetResource(ctx, remoteURI)
	waitSignal(t, requireBusy(t, err))

	path, err := c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	// The force window only covers the attempt TTL.
	clock.Advance(domain.DefaultCacheTTL + time.Second)
	_, err = c.GetResource(ctx, "http://example.org/other.xsd")
	require.ErrorIs(t, err, domain.ErrDownloadDisabled)
}

func TestCache_ForceDownloadForgetsFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("boom")}
	c, _ := newTestCache(t, testSettings(), fetcher)
	ctx := context.Background()

	_, err := c.GetResource(ctx, remoteURI)
	waitSignal(t, requireBusy(t, err))

	path, err := c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	require.Empty(t, path)

	fetcher.Fail(nil)
	c.ForceDownload(remoteURI)
	_, err = c.GetResource(ctx, remoteURI)
	waitSignal(t, requireBusy(t, err))
	assert.Equal(t, 2, fetcher.Calls())
}

func TestCache_Evict(t *testing.T) {
	fetcher := &fakeFetcher{body: "<xs:schema/>"}
	c, _ := newTestCache(t, testSettings(), fetcher)
	ctx := context.Background()

	_, err := c.GetResource(ctx, remoteURI)
	waitSignal(t, requireBusy(t, err))
	path, err := c.GetResource(ctx, remoteURI)
	require.NoError(t, err)
	require.FileExists(t, path)

	require.NoError(t, c.Evict(ctx))
	assert.NoFileExists(t, path)
	assert.Equal(t, domain.CacheEmpty, c.Entry(remoteURI).State)
	assert.DirExists(t, c.Store().Root())

	_, err = c.GetResource(ctx, remoteURI)
	requireBusy(t, err)
}

func TestCache_InvalidURI(t *testing.T) {
	c, _ := newTestCache(t, testSettings(), &fakeFetcher{})

	_, err := c.GetResource(context.Background(), "http://example.org/a/../../../etc/passwd")
	require.ErrorIs(t, err, domain.ErrInvalidCachePath)
}

func TestCache_CloseCancelsDownloads(t *testing.T) {
	fetcher := &fakeFetcher{gate: make(chan struct{})}
	c, _ := newTestCache(t, testSettings(), fetcher)

	_, err := c.GetResource(context.Background(), remoteURI)
	signal := requireBusy(t, err)

	require.NoError(t, c.Close(context.Background()))
	waitSignal(t, signal)
	require.ErrorIs(t, signal.Err(), context.Canceled)
	assert.Equal(t, domain.CacheFailed, c.Entry(remoteURI).State)
}
