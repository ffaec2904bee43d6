package app

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/xmlres/internal/adapters/report"
	"go.trai.ch/xmlres/internal/adapters/watcher"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	SettingsOptions
	Dir    string
	Format string
}

// Watch validates every XML document below Dir and revalidates documents when
// they change, when a grammar they were validated with changes, or when the
// downloads they were waiting for settle. It runs until ctx is done.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "invalid watch directory"), "path", dir)
	}

	renderer, err := a.renderer(opts.Format)
	if err != nil {
		return err
	}
	settings, err := a.LoadSettings(opts.SettingsOptions)
	if err != nil {
		return err
	}
	engine, err := a.NewEngine(settings)
	if err != nil {
		return err
	}
	defer a.closeEngine(engine)

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()
	if err := w.Start(ctx, root); err != nil {
		return err
	}

	docs, err := collectDocuments(root)
	if err != nil {
		return err
	}

	s := &watchSession{
		app:      a,
		engine:   engine,
		renderer: renderer,
		batches:  make(chan []string, 1),
	}
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case s.batches <- paths:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()
	s.debouncer = debouncer

	for _, doc := range docs {
		a.index.Changed(doc)
	}
	s.revalidate(ctx, docs)
	a.logger.Info("watching " + root)

	go func() {
		for ev := range w.Events() {
			s.handle(ev)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return nil
		case paths := <-s.batches:
			s.revalidate(ctx, s.affected(paths))
		}
	}
}

type watchSession struct {
	app       *App
	engine    *Engine
	renderer  *report.Renderer
	debouncer *watcher.Debouncer
	batches   chan []string
	wg        sync.WaitGroup
}

func (s *watchSession) handle(ev ports.WatchEvent) {
	index := s.app.index
	path := filepath.Clean(ev.Path)

	if index.IsGrammar(path) {
		s.engine.Registry.Invalidate(domain.FileURI(path))
		s.debouncer.Add(path)
	}
	if !isDocument(path) {
		return
	}

	switch ev.Operation {
	case ports.OpRemove, ports.OpRename:
		index.Remove(path)
		s.engine.Coordinator.Forget(domain.FileURI(path))
	case ports.OpCreate, ports.OpWrite:
		if index.Changed(path) {
			s.debouncer.Add(path)
		}
	}
}

// affected returns the documents a batch of changed paths requires to revalidate.
func (s *watchSession) affected(paths []string) []string {
	docs := s.app.index.Affected(paths)
	for _, p := range paths {
		if !isDocument(p) || slices.Contains(docs, p) {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			docs = append(docs, p)
		}
	}
	slices.Sort(docs)
	return docs
}

func (s *watchSession) revalidate(ctx context.Context, docs []string) {
	var summary report.Summary
	for _, doc := range docs {
		if ctx.Err() != nil {
			return
		}
		uri := domain.FileURI(doc)
		res, err := s.app.validateURI(ctx, s.engine, uri)
		if err != nil {
			s.renderer.Error(uri, err)
			continue
		}
		s.renderer.Result(res)
		summary.Add(res)

		s.app.index.Track(doc, s.engine.Registry.GrammarFiles(uri))
		if res.HasPending() {
			s.awaitPending(ctx, doc, res)
		}
	}
	if len(docs) > 0 {
		s.renderer.Summary(summary)
	}
}

// awaitPending queues doc for revalidation once the downloads of res settle.
func (s *watchSession) awaitPending(ctx context.Context, doc string, res *domain.DiagnosticsResult) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := res.Wait(ctx); err != nil {
			return
		}
		s.debouncer.Add(doc)
	}()
}

// collectDocuments returns every XML document below root, skipping hidden
// directories and node_modules.
func collectDocuments(root string) ([]string, error) {
	var docs []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isDocument(p) {
			docs = append(docs, p)
		}
		return nil
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list documents"), "path", root)
	}
	return docs, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

func isDocument(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}
