package resolver

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/antchfx/xmlquery"
	"go.trai.ch/xmlres/internal/adapters/tracker"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// CatalogName is the name of the XML catalog resolver.
const CatalogName = "catalog"

type entryKind uint8

const (
	entryPublic entryKind = iota
	entrySystem
	entryURI
	entryRewriteSystem
	entryRewriteURI
	entrySystemSuffix
	entryURISuffix
)

type catalogEntry struct {
	kind   entryKind
	match  string
	target string
}

type catalogFile struct {
	uri     string
	entries []catalogEntry
	next    []string
}

// Catalog resolves identifiers through OASIS XML catalogs.
// Catalog files, including the ones reached through nextCatalog, are reloaded
// when any of them changes on disk.
type Catalog struct {
	logger ports.Logger
	roots  []string

	mu      sync.Mutex
	loaded  bool
	files   map[string]*catalogFile
	tracker *tracker.Tracker
}

// NewCatalog creates a catalog resolver over the given catalog files.
// Relative paths are expanded against rootURI.
func NewCatalog(rootURI string, paths []string, logger ports.Logger) *Catalog {
	base := ""
	if rootURI != "" {
		base = strings.TrimSuffix(rootURI, "/") + "/"
	}
	c := &Catalog{logger: logger}
	for _, p := range paths {
		if p == "" {
			continue
		}
		c.roots = append(c.roots, domain.ExpandSystemID(p, base))
	}
	return c
}

// Name implements ports.URIResolver.
func (c *Catalog) Name() string {
	return CatalogName
}

// Files returns the URIs of the configured catalog files.
func (c *Catalog) Files() []string {
	out := make([]string, len(c.roots))
	copy(out, c.roots)
	return out
}

// Resolve looks up the identifier. The public id doubles as the namespace of
// the document, so it is tried against uri entries first, then the system id
// against system entries, then the public id against public entries and
// finally the system id against uri entries.
func (c *Catalog) Resolve(_, publicID, systemID string) string {
	if publicID == "" && systemID == "" {
		return ""
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refreshLocked()

	if publicID != "" {
		if uri := c.walk(func(f *catalogFile) string { return f.lookupURI(publicID) }); uri != "" {
			return uri
		}
	}
	if systemID != "" {
		if uri := c.walk(func(f *catalogFile) string { return f.lookupSystem(systemID) }); uri != "" {
			return uri
		}
	}
	if publicID != "" {
		pub := normalizePublicID(publicID)
		if uri := c.walk(func(f *catalogFile) string { return f.lookupPublic(pub) }); uri != "" {
			return uri
		}
	}
	if systemID != "" {
		return c.walk(func(f *catalogFile) string { return f.lookupURI(systemID) })
	}
	return ""
}

// ResolveEntity reads the local file a catalog entry points to.
// Targets that are not local files are left to the other resolvers.
func (c *Catalog) ResolveEntity(_ context.Context, id domain.Identifier) (*domain.InputSource, error) {
	uri := c.Resolve(id.BaseLocation, id.PublicID, id.SystemID)
	if uri == "" {
		return nil, nil
	}
	p, ok := domain.PathFromURI(uri)
	if !ok {
		return nil, nil
	}
	body, err := os.ReadFile(p)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceUnavailable.Error()), "uri", uri)
	}
	return &domain.InputSource{
		PublicID: id.PublicID,
		SystemID: uri,
		BaseURI:  uri,
		Body:     body,
	}, nil
}

// Reload drops the parsed catalogs so the next lookup reads them again.
func (c *Catalog) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
}

// walk visits the configured catalogs and their next catalogs depth first.
// Entries of a catalog take precedence over the catalogs it delegates to.
func (c *Catalog) walk(lookup func(*catalogFile) string) string {
	visited := make(map[string]bool)
	var visit func(uri string) string
	visit = func(uri string) string {
		if visited[uri] {
			return ""
		}
		visited[uri] = true
		f, ok := c.files[uri]
		if !ok {
			return ""
		}
		if target := lookup(f); target != "" {
			return target
		}
		for _, next := range f.next {
			if target := visit(next); target != "" {
				return target
			}
		}
		return ""
	}
	for _, root := range c.roots {
		if target := visit(root); target != "" {
			return target
		}
	}
	return ""
}

func (c *Catalog) refreshLocked() {
	if c.loaded && !c.tracker.IsDirty() {
		return
	}
	c.files = make(map[string]*catalogFile)
	c.tracker = tracker.New()
	var load func(uri string)
	load = func(uri string) {
		if _, ok := c.files[uri]; ok {
			return
		}
		c.tracker.AddFileURI(uri)
		f, err := parseCatalogFile(uri)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				c.logger.Warn("catalog not found: " + uri)
			} else {
				c.logger.Error(err)
			}
			return
		}
		c.files[uri] = f
		for _, next := range f.next {
			load(next)
		}
	}
	for _, root := range c.roots {
		load(root)
	}
	c.loaded = true
}

func parseCatalogFile(uri string) (*catalogFile, error) {
	p, ok := domain.PathFromURI(uri)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnsupportedProtocol, "catalog must be a local file"), "uri", uri)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCatalogParseFailed.Error()), "uri", uri)
	}
	f := &catalogFile{uri: uri}
	for n := doc.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == xmlquery.ElementNode && n.Data == "catalog" {
			f.collect(n, uri)
		}
	}
	return f, nil
}

func (f *catalogFile) collect(parent *xmlquery.Node, base string) {
	base = withBase(parent, base)
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		if n.NamespaceURI != "" && n.NamespaceURI != domain.CatalogNamespace {
			continue
		}
		entryBase := withBase(n, base)
		switch n.Data {
		case "group":
			f.collect(n, base)
		case "public":
			f.add(entryPublic, normalizePublicID(attr(n, "publicId")), attr(n, "uri"), entryBase)
		case "system":
			f.add(entrySystem, attr(n, "systemId"), attr(n, "uri"), entryBase)
		case "uri":
			f.add(entryURI, attr(n, "name"), attr(n, "uri"), entryBase)
		case "rewriteSystem":
			f.add(entryRewriteSystem, attr(n, "systemIdStartString"), attr(n, "rewritePrefix"), entryBase)
		case "rewriteURI":
			f.add(entryRewriteURI, attr(n, "uriStartString"), attr(n, "rewritePrefix"), entryBase)
		case "systemSuffix":
			f.add(entrySystemSuffix, attr(n, "systemIdSuffix"), attr(n, "uri"), entryBase)
		case "uriSuffix":
			f.add(entryURISuffix, attr(n, "uriSuffix"), attr(n, "uri"), entryBase)
		case "nextCatalog":
			if target := attr(n, "catalog"); target != "" {
				f.next = append(f.next, expand(target, entryBase))
			}
		}
	}
}

func (f *catalogFile) add(kind entryKind, match, target, base string) {
	if match == "" || target == "" {
		return
	}
	f.entries = append(f.entries, catalogEntry{kind: kind, match: match, target: expand(target, base)})
}

func (f *catalogFile) lookupPublic(publicID string) string {
	for _, e := range f.entries {
		if e.kind == entryPublic && e.match == publicID {
			return e.target
		}
	}
	return ""
}

func (f *catalogFile) lookupSystem(systemID string) string {
	return f.lookup(systemID, entrySystem, entryRewriteSystem, entrySystemSuffix)
}

func (f *catalogFile) lookupURI(uri string) string {
	return f.lookup(uri, entryURI, entryRewriteURI, entryURISuffix)
}

// lookup applies an exact match, then the longest rewrite prefix, then the longest suffix.
func (f *catalogFile) lookup(id string, exact, rewrite, suffix entryKind) string {
	for _, e := range f.entries {
		if e.kind == exact && e.match == id {
			return e.target
		}
	}
	var best *catalogEntry
	for i := range f.entries {
		e := &f.entries[i]
		if e.kind == rewrite && strings.HasPrefix(id, e.match) && (best == nil || len(e.match) > len(best.match)) {
			best = e
		}
	}
	if best != nil {
		return best.target + id[len(best.match):]
	}
	for i := range f.entries {
		e := &f.entries[i]
		if e.kind == suffix && strings.HasSuffix(id, e.match) && (best == nil || len(e.match) > len(best.match)) {
			best = e
		}
	}
	if best != nil {
		return best.target
	}
	return ""
}

func attr(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local && a.NamespaceURI == "" {
			return a.Value
		}
	}
	return ""
}

func withBase(n *xmlquery.Node, base string) string {
	for _, a := range n.Attr {
		if a.Name.Local == "base" && (a.NamespaceURI == domain.XMLNamespace || a.Name.Space == "xml") {
			return expand(a.Value, base)
		}
	}
	return base
}

// expand resolves target against base and keeps a trailing slash, which
// rewrite prefixes and xml:base directories rely on.
func expand(target, base string) string {
	out := domain.ExpandSystemID(target, base)
	if strings.HasSuffix(target, "/") && !strings.HasSuffix(out, "/") {
		out += "/"
	}
	return out
}

// normalizePublicID collapses whitespace runs the way public identifiers are compared.
func normalizePublicID(id string) string {
	return strings.Join(strings.Fields(id), " ")
}
