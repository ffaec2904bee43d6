// Package config loads the xmlres settings file.
package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader over YAML, TOML and JSON files.
type Loader struct {
	Logger ports.Logger
	FS     FileSystem
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader reading from the host filesystem.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, FS: NewOSFS()}
}

// NewLoaderWithFS creates a new Loader reading from fsys.
func NewLoaderWithFS(logger ports.Logger, fsys FileSystem) *Loader {
	return &Loader{Logger: logger, FS: fsys}
}

// Load discovers the settings file from cwd upwards. Without one it returns
// domain.DefaultSettings rooted at cwd.
func (l *Loader) Load(cwd string) (domain.Settings, error) {
	path, err := l.DiscoverConfigPath(cwd)
	if err != nil {
		return domain.Settings{}, err
	}
	if path == "" {
		settings := domain.DefaultSettings()
		settings.RootURI = domain.FileURI(cwd)
		return settings, nil
	}
	return l.LoadFile(path)
}

// DiscoverConfigPath walks up from cwd and returns the first settings file found.
// Within one directory the order of domain.ConfigFileNames decides.
func (l *Loader) DiscoverConfigPath(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	for {
		var found []string
		for _, name := range domain.ConfigFileNames {
			candidate := filepath.Join(dir, name)
			info, statErr := l.FS.Stat(candidate)
			if statErr == nil && !info.IsDir() {
				found = append(found, candidate)
			}
		}
		if len(found) > 0 {
			if len(found) > 1 {
				l.Logger.Warn("several settings files in " + dir + ", using " + filepath.Base(found[0]))
			}
			return found[0], nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadFile reads settings from path. The format follows the file extension.
// Relative paths in the file are resolved against its directory.
func (l *Loader) LoadFile(path string) (domain.Settings, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Settingsfile
	if err := l.decode(abs, &file); err != nil {
		return domain.Settings{}, err
	}

	settings, err := file.toSettings(filepath.Dir(abs))
	if err != nil {
		return domain.Settings{}, zerr.With(err, "path", abs)
	}
	return settings, nil
}

func (l *Loader) decode(path string, target *Settingsfile) error {
	unmarshal, err := unmarshalerFor(path)
	if err != nil {
		return err
	}

	data, err := l.FS.ReadFile(path)
	if err != nil {
		wrapped := zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
		if errors.Is(err, fs.ErrNotExist) {
			wrapped = zerr.Wrap(domain.ErrConfigReadFailed, "settings file does not exist")
		}
		return zerr.With(wrapped, "path", path)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		l.Logger.Warn("settings file " + path + " is empty, using defaults")
		return nil
	}

	if err := unmarshal(data, target); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}
	return nil
}

func unmarshalerFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	case ".toml":
		return toml.Unmarshal, nil
	case ".json":
		return json.Unmarshal, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigUnsupportedFormat, "unknown settings file extension"), "path", path)
	}
}

func (f *Settingsfile) toSettings(dir string) (domain.Settings, error) {
	s := domain.DefaultSettings()
	s.RootURI = domain.FileURI(dir)

	if f.UseCache != nil {
		s.UseCache = *f.UseCache
	}
	if f.CacheTTLSeconds != nil {
		s.FailureTTL = seconds(*f.CacheTTLSeconds)
		s.AttemptTTL = s.FailureTTL
	}
	if f.AttemptTTLSeconds != nil {
		s.AttemptTTL = seconds(*f.AttemptTTLSeconds)
	}
	if f.CachePath != "" {
		s.CachePath = resolvePath(dir, f.CachePath)
	}
	if f.DownloadExternalResources != nil {
		s.DownloadExternalResources = *f.DownloadExternalResources
	}
	if f.HTTPTimeoutSeconds != nil && *f.HTTPTimeoutSeconds > 0 {
		s.HTTPTimeout = seconds(*f.HTTPTimeoutSeconds)
	}
	if f.MaxRedirects != nil && *f.MaxRedirects >= 0 {
		s.MaxRedirects = *f.MaxRedirects
	}
	s.JSONLogs = f.Log.JSON

	for _, p := range f.CatalogPaths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		s.CatalogPaths = append(s.CatalogPaths, p)
	}

	for i, fa := range f.FileAssociations {
		if strings.TrimSpace(fa.Pattern) == "" || strings.TrimSpace(fa.SystemID) == "" {
			err := zerr.With(zerr.Wrap(domain.ErrInvalidFileAssociation, "pattern and systemId are required"), "index", i)
			return domain.Settings{}, zerr.With(err, "pattern", fa.Pattern)
		}
		s.FileAssociations = append(s.FileAssociations, domain.FileAssociation{
			Pattern:  fa.Pattern,
			SystemID: fa.SystemID,
		})
	}

	return s, nil
}

func seconds(n int) time.Duration {
	if n < 0 {
		n = 0
	}
	return time.Duration(n) * time.Second
}

// resolvePath expands a leading ~ and makes relative paths relative to dir.
func resolvePath(dir, p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(dir, p))
}
