package rng

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"go.trai.ch/xmlres/internal/adapters/grammar/model"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
)

// loader reads a grammar and the files it includes or references into
// pattern trees.
type loader struct {
	ctx      context.Context
	entities ports.EntityResolver
	doc      *model.Document
	loading  map[string]bool
}

// ParseBytes builds the content model of the RelaxNG grammar at uri. The
// compact syntax is used for .rnc files and for content that does not start
// with markup.
func ParseBytes(ctx context.Context, uri string, data []byte, entities ports.EntityResolver) (*model.Document, error) {
	l := &loader{
		ctx:      ctx,
		entities: entities,
		doc:      model.NewDocument(uri, domain.GrammarRelaxNG, ""),
		loading:  map[string]bool{uri: true},
	}
	start, err := l.parse(uri, data, newScope(nil), nil)
	if err != nil {
		return nil, err
	}
	newBuilder(l.doc).build(start)
	return l.doc, nil
}

func (l *loader) parse(uri string, data []byte, sc *scope, skip map[string]bool) (*pattern, error) {
	if err := l.ctx.Err(); err != nil {
		return nil, err
	}
	if isCompact(uri, data) {
		return l.parseCompact(uri, data, sc, skip)
	}
	return l.parseXML(uri, data, sc, skip)
}

func isCompact(uri string, data []byte) bool {
	if kind, ok := domain.KindFromLocation(uri); ok && kind == domain.GrammarRelaxNG {
		loc := strings.ToLower(uri)
		if i := strings.IndexAny(loc, "?#"); i >= 0 {
			loc = loc[:i]
		}
		return strings.HasSuffix(loc, ".rnc")
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	return len(trimmed) > 0 && trimmed[0] != '<'
}

// open reads a referenced grammar file and records it as a dependency. Only
// in-flight downloads are errors; unreadable references yield nil.
func (l *loader) open(base, href string) (*domain.InputSource, error) {
	if href == "" {
		return nil, nil
	}
	src, err := model.Open(l.ctx, l.entities, domain.Identifier{SystemID: href, BaseLocation: base})
	if err != nil {
		if errors.Is(err, domain.ErrBusyDownloading) {
			return nil, err
		}
		return nil, nil
	}
	if src == nil {
		l.doc.AddDependency(domain.ExpandSystemID(href, base))
		return nil, nil
	}
	l.doc.AddDependency(src.SystemID)
	if l.loading[src.SystemID] {
		return nil, nil
	}
	return src, nil
}

// include merges the grammar at href into sc. Definitions named in skip were
// overridden by the include element and are not taken from the file.
func (l *loader) include(base, href string, sc *scope, skip map[string]bool) error {
	src, err := l.open(base, href)
	if err != nil || src == nil {
		return err
	}
	l.loading[src.SystemID] = true
	defer delete(l.loading, src.SystemID)

	p, err := l.parse(src.SystemID, src.Body, sc, skip)
	if err != nil {
		if errors.Is(err, domain.ErrBusyDownloading) {
			return err
		}
		return nil
	}
	if p != nil && p.kind != kindRef && !skip[""] {
		sc.define("", p, false)
	}
	return nil
}

// external returns the pattern of a separate grammar file, evaluated in its
// own scope.
func (l *loader) external(base, href string) (*pattern, error) {
	src, err := l.open(base, href)
	if err != nil || src == nil {
		return nil, err
	}
	l.loading[src.SystemID] = true
	defer delete(l.loading, src.SystemID)

	p, err := l.parse(src.SystemID, src.Body, newScope(nil), nil)
	if err != nil {
		if errors.Is(err, domain.ErrBusyDownloading) {
			return nil, err
		}
		return nil, nil
	}
	return p, nil
}
