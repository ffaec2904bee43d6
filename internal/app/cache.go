package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/xmlres/internal/adapters/detector"
	"go.trai.ch/xmlres/internal/ui/output"
	"go.trai.ch/zerr"
)

// CacheEntryInfo describes one file of the resource cache.
type CacheEntryInfo struct {
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
	Digest  string    `json:"blake3"`
}

// CacheList prints the files of the resource cache with their digests.
func (a *App) CacheList(opts SettingsOptions, format string) error {
	f, err := detector.ParseFormat(format)
	if err != nil {
		return err
	}
	settings, err := a.LoadSettings(opts)
	if err != nil {
		return err
	}
	engine, err := a.NewEngine(settings)
	if err != nil {
		return err
	}
	defer a.closeEngine(engine)

	files, err := engine.Store.List()
	if err != nil {
		return err
	}
	infos := make([]CacheEntryInfo, 0, len(files))
	for _, file := range files {
		digest, err := engine.Store.Digest(file.Path)
		if err != nil {
			return err
		}
		infos = append(infos, CacheEntryInfo{
			Path:    file.Rel,
			Size:    file.Size,
			ModTime: file.ModTime.UTC(),
			Digest:  digest,
		})
	}

	if f == detector.FormatJSON {
		return a.writeJSON(infos)
	}
	if len(infos) == 0 {
		_, _ = fmt.Fprintf(a.stdout, "cache at %s is empty\n", engine.Store.Root())
		return nil
	}

	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{info.Path, strconv.FormatInt(info.Size, 10), info.ModTime.Format(time.RFC3339), shortDigest(info.Digest)}
	}
	lg := output.Renderer(a.stdout, output.ColorProfile())
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("RESOURCE", "SIZE", "MODIFIED", "BLAKE3").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return lg.NewStyle().Bold(true)
			}
			return lg.NewStyle()
		})
	_, _ = fmt.Fprintln(a.stdout, t.String())
	return nil
}

// CacheStatus describes the cache bookkeeping of one URI.
type CacheStatus struct {
	URI       string     `json:"uri"`
	Cacheable bool       `json:"cacheable"`
	State     string     `json:"state"`
	Path      string     `json:"path,omitempty"`
	OnDisk    bool       `json:"onDisk"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	LastError string     `json:"lastError,omitempty"`
}

// CacheStatusOf prints where uri is cached and whether the file exists.
func (a *App) CacheStatusOf(opts SettingsOptions, uri, format string) error {
	f, err := detector.ParseFormat(format)
	if err != nil {
		return err
	}
	settings, err := a.LoadSettings(opts)
	if err != nil {
		return err
	}
	engine, err := a.NewEngine(settings)
	if err != nil {
		return err
	}
	defer a.closeEngine(engine)

	status := CacheStatus{URI: uri, Cacheable: engine.Cache.CanUseCache(uri)}
	if status.Cacheable {
		entry := engine.Cache.Entry(uri)
		status.State = entry.State.String()
		status.LastError = entry.LastError
		if !entry.ExpiresAt.IsZero() {
			status.ExpiresAt = &entry.ExpiresAt
		}
		if p, err := engine.Cache.CachePath(uri); err == nil {
			status.Path = p
			status.OnDisk = engine.Store.Exists(p)
		}
	}

	if f == detector.FormatJSON {
		return a.writeJSON(status)
	}
	if !status.Cacheable {
		_, _ = fmt.Fprintf(a.stdout, "%s is not served through the cache\n", uri)
		return nil
	}
	_, _ = fmt.Fprintf(a.stdout, "uri:     %s\nstate:   %s\npath:    %s\non disk: %t\n",
		status.URI, status.State, status.Path, status.OnDisk)
	if status.LastError != "" {
		_, _ = fmt.Fprintf(a.stdout, "error:   %s\n", status.LastError)
	}
	return nil
}

// CacheEvict removes every cached resource.
func (a *App) CacheEvict(ctx context.Context, opts SettingsOptions) error {
	settings, err := a.LoadSettings(opts)
	if err != nil {
		return err
	}
	engine, err := a.NewEngine(settings)
	if err != nil {
		return err
	}
	defer a.closeEngine(engine)

	return engine.Cache.Evict(ctx)
}

func (a *App) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return zerr.Wrap(err, "failed to encode output")
	}
	return nil
}

func shortDigest(d string) string {
	if len(d) > 16 {
		return d[:16]
	}
	return d
}
