package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/config"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(mockLogger)
}

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.PrivateFilePerm))
	return path
}

func TestLoader_Load_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	settings, err := newLoader(t).Load(dir)
	require.NoError(t, err)

	want := domain.DefaultSettings()
	want.RootURI = domain.FileURI(dir)
	assert.Equal(t, want, settings)
}

func TestLoader_Load_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "xmlres.yaml",
			content: `
useCache: false
cacheTTLSeconds: 10
cachePath: .cache
downloadExternalResources: false
catalogPaths:
  - catalogs/catalog.xml
fileAssociations:
  - pattern: "**/*.pom"
    systemId: grammars/pom.xsd
httpTimeoutSeconds: 5
maxRedirects: 2
log:
  json: true
`,
		},
		{
			name: "toml",
			file: "xmlres.toml",
			content: `
useCache = false
cacheTTLSeconds = 10
cachePath = ".cache"
downloadExternalResources = false
catalogPaths = ["catalogs/catalog.xml"]
httpTimeoutSeconds = 5
maxRedirects = 2

[[fileAssociations]]
pattern = "**/*.pom"
systemId = "grammars/pom.xsd"

[log]
json = true
`,
		},
		{
			name: "json",
			file: "xmlres.json",
			content: `{
  "useCache": false,
  "cacheTTLSeconds": 10,
  "cachePath": ".cache",
  "downloadExternalResources": false,
  "catalogPaths": ["catalogs/catalog.xml"],
  "fileAssociations": [{"pattern": "**/*.pom", "systemId": "grammars/pom.xsd"}],
  "httpTimeoutSeconds": 5,
  "maxRedirects": 2,
  "log": {"json": true}
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			createFile(t, dir, tt.file, tt.content)

			settings, err := newLoader(t).Load(dir)
			require.NoError(t, err)

			assert.False(t, settings.UseCache)
			assert.Equal(t, 10*time.Second, settings.FailureTTL)
			assert.Equal(t, 10*time.Second, settings.AttemptTTL, "attempt TTL follows the failure TTL")
			assert.Equal(t, filepath.Join(dir, ".cache"), settings.CachePath)
			assert.False(t, settings.DownloadExternalResources)
			assert.Equal(t, []string{"catalogs/catalog.xml"}, settings.CatalogPaths)
			assert.Equal(t, []domain.FileAssociation{{Pattern: "**/*.pom", SystemID: "grammars/pom.xsd"}}, settings.FileAssociations)
			assert.Equal(t, 5*time.Second, settings.HTTPTimeout)
			assert.Equal(t, 2, settings.MaxRedirects)
			assert.True(t, settings.JSONLogs)
			assert.Equal(t, domain.FileURI(dir), settings.RootURI)
		})
	}
}

func TestLoader_Load_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))
	createFile(t, root, "xmlres.yaml", "maxRedirects: 1\n")

	loader := newLoader(t)

	path, err := loader.DiscoverConfigPath(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "xmlres.yaml"), path)

	settings, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, 1, settings.MaxRedirects)
	assert.Equal(t, domain.FileURI(root), settings.RootURI, "relative settings resolve against the settings file")
}

func TestLoader_DiscoverConfigPath_NearestWins(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(nested, domain.DirPerm))
	createFile(t, root, "xmlres.yaml", "")
	createFile(t, nested, "xmlres.toml", "")

	path, err := newLoader(t).DiscoverConfigPath(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nested, "xmlres.toml"), path)
}

func TestLoader_DiscoverConfigPath_FileNameOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	fsys := fstest.MapFS{
		"project/xmlres.json": &fstest.MapFile{Data: []byte("{}")},
		"project/xmlres.yml":  &fstest.MapFile{Data: []byte("")},
	}
	loader := config.NewLoaderWithFS(mockLogger, config.NewMapFSAdapter("/work", fsys))

	path, err := loader.DiscoverConfigPath("/work/project")
	require.NoError(t, err)
	assert.Equal(t, "/work/project/xmlres.yml", path)
}

func TestLoader_DiscoverConfigPath_NoFile(t *testing.T) {
	loader := config.NewLoaderWithFS(nil, config.NewMapFSAdapter("/work", fstest.MapFS{}))

	path, err := loader.DiscoverConfigPath("/work/project")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoader_LoadFile_AttemptTTLOverride(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, "custom.yml", "cacheTTLSeconds: 4\nattemptTTLSeconds: 60\n")

	settings, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, settings.FailureTTL)
	assert.Equal(t, time.Minute, settings.AttemptTTL)
}

func TestLoader_LoadFile_AbsoluteCachePath(t *testing.T) {
	dir := t.TempDir()
	cache := filepath.Join(t.TempDir(), "cache")
	path := createFile(t, dir, "xmlres.yaml", "cachePath: "+cache+"\n")

	settings, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cache, settings.CachePath)
}

func TestLoader_LoadFile_EmptyFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := createFile(t, dir, "xmlres.yaml", "\n\n")

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	settings, err := config.NewLoader(mockLogger).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings().MaxRedirects, settings.MaxRedirects)
	assert.True(t, settings.UseCache)
}

func TestLoader_LoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    error
	}{
		{name: "unsupported extension", file: "xmlres.ini", content: "a=b", want: domain.ErrConfigUnsupportedFormat},
		{name: "invalid yaml", file: "xmlres.yaml", content: "useCache: [", want: domain.ErrConfigParseFailed},
		{name: "invalid toml", file: "xmlres.toml", content: "useCache = ", want: domain.ErrConfigParseFailed},
		{name: "invalid json", file: "xmlres.json", content: "{", want: domain.ErrConfigParseFailed},
		{name: "wrong type", file: "xmlres.yaml", content: "maxRedirects: many", want: domain.ErrConfigParseFailed},
		{
			name:    "association without system id",
			file:    "xmlres.yaml",
			content: "fileAssociations:\n  - pattern: \"*.xml\"\n",
			want:    domain.ErrInvalidFileAssociation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := createFile(t, dir, tt.file, tt.content)

			_, err := newLoader(t).LoadFile(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Contains(t, zErr.Metadata(), "path")
		})
	}
}

func TestLoader_LoadFile_Missing(t *testing.T) {
	_, err := newLoader(t).LoadFile(filepath.Join(t.TempDir(), "xmlres.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigReadFailed)
}

func TestMapFSAdapter_OutsideRoot(t *testing.T) {
	adapter := config.NewMapFSAdapter("/work", fstest.MapFS{
		"xmlres.yaml": &fstest.MapFile{Data: []byte("useCache: true")},
	})

	_, err := adapter.Stat("/work/xmlres.yaml")
	require.NoError(t, err)

	_, err = adapter.Stat("/other/xmlres.yaml")
	require.Error(t, err)

	data, err := adapter.ReadFile("/work/xmlres.yaml")
	require.NoError(t, err)
	assert.Equal(t, "useCache: true", string(data))
}
