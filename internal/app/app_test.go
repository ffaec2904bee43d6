package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/dom"
	"go.trai.ch/xmlres/internal/adapters/telemetry"
	"go.trai.ch/xmlres/internal/adapters/watcher"
	"go.trai.ch/xmlres/internal/app"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const noteXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  targetNamespace="urn:note" xmlns="urn:note" elementFormDefault="qualified">
  <xs:element name="note">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="to" type="xs:string"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

const noteXSDWithLang = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  targetNamespace="urn:note" xmlns="urn:note" elementFormDefault="qualified">
  <xs:element name="note">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="to" type="xs:string"/>
      </xs:sequence>
      <xs:attribute name="lang" type="xs:string" use="required"/>
    </xs:complexType>
  </xs:element>
</xs:schema>`

func noteDoc(location, body string) string {
	return `<note xmlns="urn:note"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:note ` + location + `">` + body + `</note>`
}

const configFile = "xmlres.yaml"

type fixture struct {
	dir      string
	settings domain.Settings
	loader   *mocks.MockConfigLoader
	out      *syncBuffer
	app      *app.App
	index    *watcher.DependencyIndex
}

func newFixture(t *testing.T, opts ...func(*fixture)) *fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	settings := domain.DefaultSettings()
	settings.CachePath = filepath.Join(dir, ".cache")
	settings.RootURI = domain.FileURI(dir)

	f := &fixture{
		dir:      dir,
		settings: settings,
		loader:   mocks.NewMockConfigLoader(ctrl),
		out:      &syncBuffer{},
		index:    watcher.NewDependencyIndex(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.loader.EXPECT().LoadFile(configFile).DoAndReturn(func(string) (domain.Settings, error) {
		return f.settings, nil
	}).AnyTimes()

	f.app = app.New(f.loader, logger, dom.NewParser(), telemetry.NewNoOpTracer(), nil, f.index).
		WithOutput(f.out).
		WithDebounce(10 * time.Millisecond)
	return f
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func settingsOptions() app.SettingsOptions {
	return app.SettingsOptions{ConfigPath: configFile}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

type fetcherFunc func(ctx context.Context, uri string) (io.ReadCloser, error)

func (f fetcherFunc) Fetch(ctx context.Context, uri string) (io.ReadCloser, error) {
	return f(ctx, uri)
}

func TestApp_Validate(t *testing.T) {
	f := newFixture(t)
	f.write(t, "note.xsd", noteXSD)
	valid := f.write(t, "valid.xml", noteDoc("note.xsd", "<to>Ada</to>"))

	err := f.app.Validate(t.Context(), app.ValidateOptions{
		SettingsOptions: settingsOptions(),
		Files:           []string{valid},
		Format:          "plain",
	})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "1 document(s), 0 error(s), 0 warning(s)")
}

func TestApp_Validate_ReportsErrors(t *testing.T) {
	f := newFixture(t)
	f.write(t, "note.xsd", noteXSD)
	valid := f.write(t, "valid.xml", noteDoc("note.xsd", "<to>Ada</to>"))
	invalid := f.write(t, "invalid.xml", noteDoc("note.xsd", ""))
	broken := f.write(t, "broken.xml", "<note><to></note>")

	err := f.app.Validate(t.Context(), app.ValidateOptions{
		SettingsOptions: settingsOptions(),
		Files:           []string{valid, invalid, broken},
		Format:          "plain",
	})
	require.ErrorIs(t, err, domain.ErrValidationFailed)

	out := f.out.String()
	assert.Contains(t, out, "invalid.xml:1:1: error:")
	assert.Contains(t, out, "["+domain.CodeMissingChild+"]")
	assert.Contains(t, out, "["+domain.CodeXMLSyntax+"]")
	assert.Contains(t, out, "3 document(s), 2 error(s)")
	assert.NotContains(t, out, string(filepath.Separator)+"valid.xml:")
}

func TestApp_Validate_UnreadableFile(t *testing.T) {
	f := newFixture(t)

	err := f.app.Validate(t.Context(), app.ValidateOptions{
		SettingsOptions: settingsOptions(),
		Files:           []string{filepath.Join(f.dir, "missing.xml")},
		Format:          "json",
	})
	require.ErrorIs(t, err, domain.ErrValidationFailed)

	var line struct {
		URI   string `json:"uri"`
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(f.out.String())), &line))
	assert.Equal(t, domain.FileURI(filepath.Join(f.dir, "missing.xml")), line.URI)
	assert.Contains(t, line.Error, "failed to open document")
}

func TestApp_Validate_BadInput(t *testing.T) {
	f := newFixture(t)

	err := f.app.Validate(t.Context(), app.ValidateOptions{SettingsOptions: settingsOptions()})
	require.ErrorIs(t, err, domain.ErrNoInputFiles)

	err = f.app.Validate(t.Context(), app.ValidateOptions{
		SettingsOptions: settingsOptions(),
		Files:           []string{"doc.xml"},
		Format:          "yaml",
	})
	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func remoteFixture(t *testing.T, calls *atomic.Int32) *fixture {
	t.Helper()
	f := newFixture(t)
	f.app.WithFetcher(fetcherFunc(func(_ context.Context, uri string) (io.ReadCloser, error) {
		calls.Add(1)
		assert.Equal(t, "http://example.org/note.xsd", uri)
		return io.NopCloser(strings.NewReader(noteXSD)), nil
	}))
	return f
}

func TestApp_Validate_WaitRevalidatesAfterDownloads(t *testing.T) {
	var calls atomic.Int32
	f := remoteFixture(t, &calls)
	doc := f.write(t, "remote.xml", noteDoc("http://example.org/note.xsd", ""))

	err := f.app.Validate(t.Context(), app.ValidateOptions{
		SettingsOptions: settingsOptions(),
		Files:           []string{doc},
		Wait:            true,
		Timeout:         5 * time.Second,
		Format:          "plain",
	})
	require.ErrorIs(t, err, domain.ErrValidationFailed)

	out := f.out.String()
	assert.Contains(t, out, "["+domain.CodeMissingChild+"]")
	assert.NotContains(t, out, domain.CodeDownloadInProgress)
	assert.NotContains(t, out, "pending")
	assert.Equal(t, int32(1), calls.Load())

	cached := filepath.Join(f.settings.CachePath, "http", "example.org", "note.xsd")
	assert.FileExists(t, cached)
}

func TestApp_Validate_WithoutWaitReportsPending(t *testing.T) {
	var calls atomic.Int32
	f := remoteFixture(t, &calls)
	doc := f.write(t, "remote.xml", noteDoc("http://example.org/note.xsd", "<to>Ada</to>"))

	err := f.app.Validate(t.Context(), app.ValidateOptions{
		SettingsOptions: settingsOptions(),
		Files:           []string{doc},
		Format:          "plain",
	})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "1 download(s) pending")
}

func TestApp_Validate_OfflineSkipsDownloads(t *testing.T) {
	var calls atomic.Int32
	f := remoteFixture(t, &calls)
	doc := f.write(t, "remote.xml", noteDoc("http://example.org/note.xsd", ""))

	opts := settingsOptions()
	opts.Offline = true
	err := f.app.Validate(t.Context(), app.ValidateOptions{
		SettingsOptions: opts,
		Files:           []string{doc},
		Wait:            true,
		Format:          "plain",
	})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "["+domain.CodeNoGrammar+"]")
	assert.Zero(t, calls.Load())
}

func TestApp_LoadSettings_Overrides(t *testing.T) {
	f := newFixture(t)
	cacheDir := filepath.Join(f.dir, "other-cache")

	settings, err := f.app.LoadSettings(app.SettingsOptions{
		ConfigPath: configFile,
		NoCache:    true,
		Offline:    true,
		CachePath:  cacheDir,
		JSONLogs:   true,
	})
	require.NoError(t, err)
	assert.False(t, settings.UseCache)
	assert.False(t, settings.DownloadExternalResources)
	assert.Equal(t, cacheDir, settings.CachePath)
	assert.True(t, settings.JSONLogs)
}

func TestApp_LoadSettings_Discovers(t *testing.T) {
	f := newFixture(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)
	f.loader.EXPECT().Load(cwd).Return(f.settings, nil)

	settings, err := f.app.LoadSettings(app.SettingsOptions{})
	require.NoError(t, err)
	assert.Equal(t, f.settings.RootURI, settings.RootURI)
}

func TestApp_LoadSettings_Error(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().LoadFile("broken.yaml").Return(domain.Settings{}, domain.ErrConfigParseFailed)

	_, err := f.app.LoadSettings(app.SettingsOptions{ConfigPath: "broken.yaml"})
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}

// chanWatcher replays events sent on a channel.
type chanWatcher struct {
	events  chan ports.WatchEvent
	started chan string
	once    sync.Once
}

func newChanWatcher() *chanWatcher {
	return &chanWatcher{events: make(chan ports.WatchEvent), started: make(chan string, 1)}
}

func (w *chanWatcher) Start(_ context.Context, root string) error {
	w.started <- root
	return nil
}

func (w *chanWatcher) Stop() error {
	w.once.Do(func() { close(w.events) })
	return nil
}

func (w *chanWatcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for ev := range w.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func TestApp_Watch(t *testing.T) {
	w := newChanWatcher()
	f := newFixture(t)
	f.app = app.New(f.loader, quietLogger(t), dom.NewParser(), telemetry.NewNoOpTracer(),
		func() (ports.Watcher, error) { return w, nil }, f.index).
		WithOutput(f.out).
		WithDebounce(10 * time.Millisecond)

	schema := f.write(t, "note.xsd", noteXSD)
	doc := f.write(t, "docs/note.xml", noteDoc("../note.xsd", "<to>Ada</to>"))
	f.write(t, ".hidden/skipped.xml", "<broken>")

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- f.app.Watch(ctx, app.WatchOptions{
			SettingsOptions: settingsOptions(),
			Dir:             f.dir,
			Format:          "plain",
		})
	}()

	assert.Equal(t, f.dir, <-w.started)
	require.Eventually(t, func() bool {
		return strings.Contains(f.out.String(), "1 document(s), 0 error(s)")
	}, 5*time.Second, 10*time.Millisecond)
	assert.True(t, f.index.IsGrammar(schema))
	assert.NotContains(t, f.out.String(), "skipped.xml")

	// A grammar change revalidates the documents depending on it.
	f.out.Reset()
	f.write(t, "note.xsd", noteXSDWithLang)
	w.events <- ports.WatchEvent{Path: schema, Operation: ports.OpWrite}
	require.Eventually(t, func() bool {
		return strings.Contains(f.out.String(), "["+domain.CodeMissingAttribute+"]")
	}, 5*time.Second, 10*time.Millisecond)

	// An edit to the document revalidates it.
	f.out.Reset()
	f.write(t, "docs/note.xml", `<note xmlns="urn:note" lang="en"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:note ../note.xsd"><to>Ada</to></note>`)
	w.events <- ports.WatchEvent{Path: doc, Operation: ports.OpWrite}
	require.Eventually(t, func() bool {
		return strings.Contains(f.out.String(), "1 document(s), 0 error(s)")
	}, 5*time.Second, 10*time.Millisecond)

	// Removing the document forgets it.
	require.NoError(t, os.Remove(doc))
	w.events <- ports.WatchEvent{Path: doc, Operation: ports.OpRemove}
	require.Eventually(t, func() bool {
		return !f.index.IsGrammar(schema)
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func quietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return logger
}

func TestApp_CacheCommands(t *testing.T) {
	f := newFixture(t)
	f.write(t, ".cache/http/example.org/note.xsd", noteXSD)
	uri := "http://example.org/note.xsd"

	require.NoError(t, f.app.CacheList(settingsOptions(), "json"))
	var entries []app.CacheEntryInfo
	require.NoError(t, json.Unmarshal([]byte(f.out.String()), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "http/example.org/note.xsd", entries[0].Path)
	assert.Equal(t, int64(len(noteXSD)), entries[0].Size)
	assert.Len(t, entries[0].Digest, 64)

	f.out.Reset()
	require.NoError(t, f.app.CacheStatusOf(settingsOptions(), uri, "json"))
	var status app.CacheStatus
	require.NoError(t, json.Unmarshal([]byte(f.out.String()), &status))
	assert.True(t, status.Cacheable)
	assert.True(t, status.OnDisk)
	assert.Equal(t, domain.CacheCached.String(), status.State)

	f.out.Reset()
	require.NoError(t, f.app.CacheEvict(t.Context(), settingsOptions()))
	require.NoError(t, f.app.CacheList(settingsOptions(), "plain"))
	assert.Contains(t, f.out.String(), "is empty")

	f.out.Reset()
	require.NoError(t, f.app.CacheStatusOf(settingsOptions(), "urn:example:note", "plain"))
	assert.Contains(t, f.out.String(), "is not served through the cache")
}

func TestApp_CacheList_Table(t *testing.T) {
	f := newFixture(t)
	f.write(t, ".cache/https/example.org/a.xsd", noteXSD)

	require.NoError(t, f.app.CacheList(settingsOptions(), "pretty"))
	out := f.out.String()
	assert.Contains(t, out, "RESOURCE")
	assert.Contains(t, out, "https/example.org/a.xsd")
}

func TestApp_Resolve(t *testing.T) {
	f := newFixture(t, func(f *fixture) {
		f.settings.FileAssociations = []domain.FileAssociation{
			{Pattern: "**/*.note.xml", SystemID: "schemas/note.xsd"},
		}
	})

	tests := []struct {
		name     string
		opts     app.ResolveOptions
		uri      string
		resolver string
	}{
		{
			name:     "file association",
			opts:     app.ResolveOptions{Base: filepath.Join(f.dir, "a", "b.note.xml")},
			uri:      domain.FileURI(filepath.Join(f.dir, "schemas", "note.xsd")),
			resolver: "file-association",
		},
		{
			name:     "default expansion",
			opts:     app.ResolveOptions{System: "types.xsd", Base: filepath.Join(f.dir, "doc.xml")},
			uri:      domain.FileURI(filepath.Join(f.dir, "types.xsd")),
			resolver: "default",
		},
		{
			name:     "absolute system id",
			opts:     app.ResolveOptions{System: "http://example.org/x.xsd"},
			uri:      "http://example.org/x.xsd",
			resolver: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.out.Reset()
			tt.opts.SettingsOptions = settingsOptions()
			tt.opts.Format = "json"
			require.NoError(t, f.app.Resolve(tt.opts))

			var res app.Resolution
			require.NoError(t, json.Unmarshal([]byte(f.out.String()), &res))
			assert.Equal(t, tt.uri, res.URI)
			assert.Equal(t, tt.resolver, res.Resolver)
		})
	}
}

func TestApp_Resolve_ListAndErrors(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.app.Resolve(app.ResolveOptions{SettingsOptions: settingsOptions(), List: true, Format: "plain"}))
	assert.Equal(t, "1. file-association\n2. catalog\n3. bundled\n", f.out.String())

	err := f.app.Resolve(app.ResolveOptions{SettingsOptions: settingsOptions()})
	require.ErrorIs(t, err, domain.ErrNoIdentifier)

	err = f.app.Resolve(app.ResolveOptions{SettingsOptions: settingsOptions(), Public: "-//Unknown//EN"})
	require.ErrorIs(t, err, domain.ErrUnresolved)
}
