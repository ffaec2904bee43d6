// Package registry maps documents to content models. It picks the grammar
// provider a document binds, resolves and fetches the grammar, and memoizes
// the parsed model until the grammar or one of its dependencies changes.
package registry

import (
	"context"
	"errors"
	"os"
	"slices"
	"sync"
	"time"

	"go.trai.ch/xmlres/internal/adapters/grammar/dtd"
	"go.trai.ch/xmlres/internal/adapters/grammar/model"
	"go.trai.ch/xmlres/internal/adapters/grammar/rng"
	"go.trai.ch/xmlres/internal/adapters/grammar/xmlmodel"
	"go.trai.ch/xmlres/internal/adapters/grammar/xsd"
	"go.trai.ch/xmlres/internal/adapters/telemetry"
	"go.trai.ch/xmlres/internal/adapters/tracker"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// DefaultProviders returns the built-in providers in precedence order.
func DefaultProviders() []ports.GrammarProvider {
	d, x, r := dtd.NewProvider(), xsd.NewProvider(), rng.NewProvider()
	return []ports.GrammarProvider{d, x, r, xmlmodel.NewProvider(d, x, r)}
}

// delegator is implemented by providers that hand xml-model grammars to the
// provider of their syntax.
type delegator interface {
	Delegate(m domain.XMLModel) ports.GrammarProvider
}

type memoEntry struct {
	model   ports.CMDocument
	kind    domain.GrammarKind
	tracker *tracker.Tracker
}

// Stats describes the memo of a registry.
type Stats struct {
	Models    int `json:"models"`
	Documents int `json:"documents"`
}

// Option configures a Registry.
type Option func(*Registry)

// WithTracer sets the tracer used for lookup spans.
func WithTracer(tracer ports.Tracer) Option {
	return func(r *Registry) {
		r.tracer = tracer
	}
}

// Registry implements ports.GrammarRegistry.
type Registry struct {
	chain    ports.ResolverChain
	cache    ports.ResourceCache
	logger   ports.Logger
	tracer   ports.Tracer
	entities *Entities

	mu        sync.Mutex
	providers []ports.GrammarProvider
	memo      map[string]*memoEntry
	// used maps document URIs to the grammar URIs their models were built from.
	used  map[string]map[string]struct{}
	group singleflight.Group
}

var _ ports.GrammarRegistry = (*Registry)(nil)

// New creates a registry over the given providers, in precedence order.
func New(chain ports.ResolverChain, cache ports.ResourceCache, logger ports.Logger, providers []ports.GrammarProvider, opts ...Option) (*Registry, error) {
	r := &Registry{
		chain:    chain,
		cache:    cache,
		logger:   logger,
		tracer:   telemetry.NewNoOpTracer(),
		entities: NewEntities(chain, cache),
		memo:     make(map[string]*memoEntry),
		used:     make(map[string]map[string]struct{}),
	}
	for _, p := range providers {
		if err := r.Register(p); err != nil {
			return nil, err
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Register appends a provider with the lowest precedence. A provider whose
// kind is already registered is ignored.
func (r *Registry) Register(p ports.GrammarProvider) error {
	if p == nil {
		return domain.ErrNilProvider
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.providers {
		if existing.Kind() == p.Kind() {
			return nil
		}
	}
	r.providers = append(r.providers, p)
	return nil
}

// Providers returns the registered providers in precedence order.
func (r *Registry) Providers() []ports.GrammarProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.providers)
}

// Entities returns the entity resolver handed to grammar engines.
func (r *Registry) Entities() *Entities {
	return r.entities
}

// CreateContentModel returns the model for the namespace of the document element.
func (r *Registry) CreateContentModel(ctx context.Context, doc ports.Document) (ports.CMDocument, error) {
	ns := ""
	if root := doc.Root(); root != nil {
		ns = root.NamespaceURI()
	}
	return r.FindContentModel(ctx, doc, ns)
}

// claim returns the provider responsible for doc. Documents that declare no
// grammar fall back to file associations.
func (r *Registry) claim(doc ports.Document) (ports.GrammarProvider, []domain.Identifier, bool) {
	providers := r.Providers()
	for _, p := range providers {
		if p.Adopts(doc) {
			return p, nil, false
		}
	}
	uri := r.chain.Resolve(doc.URI(), "", "")
	if uri == "" {
		return nil, nil, false
	}
	for _, p := range providers {
		if p.AcceptsURI(uri) {
			return p, []domain.Identifier{{SystemID: uri, BaseLocation: doc.URI()}}, true
		}
	}
	return nil, nil, false
}

// FindContentModel returns the model for namespaceURI. Identifiers are tried
// in document order; an identifier whose grammar is being downloaded stops
// the search with a *domain.BusyDownloadingError.
func (r *Registry) FindContentModel(ctx context.Context, doc ports.Document, namespaceURI string) (ports.CMDocument, error) {
	ctx, span := r.tracer.Start(ctx, "registry.find_content_model",
		ports.WithAttribute("uri", doc.URI()),
		ports.WithAttribute("namespace", namespaceURI))
	defer span.End()

	cm, err := r.findContentModel(ctx, doc, namespaceURI)
	if err != nil {
		span.RecordError(err)
	}
	return cm, err
}

func (r *Registry) findContentModel(ctx context.Context, doc ports.Document, namespaceURI string) (ports.CMDocument, error) {
	provider, ids, associated := r.claim(doc)
	if provider == nil {
		lookupsTotal.WithLabelValues(outcomeNoProvider).Inc()
		return nil, zerr.With(zerr.Wrap(domain.ErrNoApplicableProvider, "no grammar declared"), "uri", doc.URI())
	}
	if !associated {
		ids = provider.Identifiers(doc, namespaceURI)
	}

	if len(ids) == 0 {
		if inline, ok := provider.(ports.InlineGrammarProvider); ok {
			cm, err := inline.ParseInline(ctx, doc, r.entities)
			if err != nil {
				return nil, r.classify(doc.URI(), err)
			}
			if cm != nil {
				return cm, nil
			}
		}
		lookupsTotal.WithLabelValues(outcomeNoProvider).Inc()
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrNoApplicableProvider, "no grammar for namespace"), "uri", doc.URI()), "namespace", namespaceURI)
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		uri, _ := r.resolve(id)
		if uri == "" {
			continue
		}
		localPath, err := r.localPath(ctx, uri)
		if err != nil {
			if errors.Is(err, domain.ErrBusyDownloading) {
				lookupsTotal.WithLabelValues(outcomeBusy).Inc()
				return nil, err
			}
			r.logger.Warn("grammar " + uri + " is unavailable: " + err.Error())
			continue
		}
		if localPath == "" {
			continue
		}
		if _, err := os.Stat(localPath); err != nil {
			r.logger.Warn("grammar " + uri + " is unavailable: " + err.Error())
			continue
		}

		cm, err := r.load(ctx, provider, uri, localPath)
		if err != nil {
			if errors.Is(err, domain.ErrResourceUnavailable) {
				continue
			}
			return nil, r.classify(uri, err)
		}
		r.markUsed(doc.URI(), uri)
		return cm, nil
	}

	lookupsTotal.WithLabelValues(outcomeUnavailable).Inc()
	return nil, zerr.With(zerr.Wrap(domain.ErrResourceUnavailable, "no grammar could be loaded"), "uri", doc.URI())
}

// classify maps a build failure to the error taxonomy of the registry.
func (r *Registry) classify(uri string, err error) error {
	var syntax *domain.GrammarSyntaxError
	switch {
	case errors.Is(err, domain.ErrBusyDownloading):
		lookupsTotal.WithLabelValues(outcomeBusy).Inc()
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case errors.As(err, &syntax):
		lookupsTotal.WithLabelValues(outcomeSyntax).Inc()
		return err
	case errors.Is(err, domain.ErrResourceUnavailable):
		lookupsTotal.WithLabelValues(outcomeUnavailable).Inc()
		return err
	default:
		lookupsTotal.WithLabelValues(outcomeSyntax).Inc()
		return &domain.GrammarSyntaxError{URI: uri, Err: err}
	}
}

// resolve maps an identifier to the grammar URI and the resolver that answered.
func (r *Registry) resolve(id domain.Identifier) (string, string) {
	uri, name := r.chain.ResolveWithName(id.BaseLocation, id.PublicID, id.SystemID)
	if uri != "" {
		return uri, name
	}
	return domain.ExpandSystemID(id.SystemID, id.BaseLocation), ""
}

// localPath returns the file a grammar URI is read from, "" when the grammar
// is remembered as unavailable.
func (r *Registry) localPath(ctx context.Context, uri string) (string, error) {
	if r.cache != nil && r.cache.CanUseCache(uri) {
		return r.cache.GetResource(ctx, uri)
	}
	p, ok := domain.PathFromURI(uri)
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnsupportedProtocol, "grammar cannot be read"), "uri", uri)
	}
	return p, nil
}

// trackedURI is the file whose modification invalidates a grammar: the
// grammar itself when local, its cached copy when remote.
func (r *Registry) trackedURI(uri string) string {
	if r.cache != nil && r.cache.CanUseCache(uri) {
		if p, err := r.cache.CachePath(uri); err == nil {
			return domain.FileURI(p)
		}
		return ""
	}
	return uri
}

func (r *Registry) load(ctx context.Context, provider ports.GrammarProvider, uri, localPath string) (ports.CMDocument, error) {
	r.mu.Lock()
	if e, ok := r.memo[uri]; ok {
		if e.kind == provider.Kind() && !e.tracker.IsDirty() {
			r.mu.Unlock()
			lookupsTotal.WithLabelValues(outcomeHit).Inc()
			return e.model, nil
		}
		delete(r.memo, uri)
		memoizedModels.Set(float64(len(r.memo)))
	}
	r.mu.Unlock()

	// Builds are shared by every waiting caller and outlive the one that started them.
	build := context.WithoutCancel(ctx)
	ch := r.group.DoChan(string(provider.Kind())+" "+uri, func() (any, error) {
		lookupsTotal.WithLabelValues(outcomeMiss).Inc()
		start := time.Now()
		t := tracker.New(r.trackedURI(uri))
		cm, err := provider.Parse(build, uri, localPath, r.entities)
		buildDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			return nil, err
		}

		for _, dep := range cm.Dependencies() {
			t.AddFileURI(r.trackedURI(dep))
		}
		r.mu.Lock()
		r.memo[uri] = &memoEntry{model: cm, kind: provider.Kind(), tracker: t}
		memoizedModels.Set(float64(len(r.memo)))
		r.mu.Unlock()
		r.logger.Info("loaded " + string(provider.Kind()) + " grammar " + uri)
		return cm, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(ports.CMDocument), nil
	}
}

func (r *Registry) markUsed(docURI, grammarURI string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.used[docURI]
	if !ok {
		set = make(map[string]struct{})
		r.used[docURI] = set
	}
	set[grammarURI] = struct{}{}
}

// GetIdentifiers returns the grammar hints of doc for namespaceURI: DOCTYPE
// and xml-model entries in document order, then xsi:schemaLocation pairs for
// the namespace, then xsi:noNamespaceSchemaLocation for the empty namespace.
// Duplicates are kept.
func (r *Registry) GetIdentifiers(doc ports.Document, namespaceURI string) []domain.Identifier {
	var ids []domain.Identifier
	for _, item := range doc.Prolog() {
		switch {
		case item.Doctype != nil:
			if item.Doctype.PublicID != "" || item.Doctype.SystemID != "" {
				ids = append(ids, domain.Identifier{PublicID: item.Doctype.PublicID, SystemID: item.Doctype.SystemID, BaseLocation: doc.URI()})
			}
		case item.XMLModel != nil:
			if item.XMLModel.Href != "" {
				ids = append(ids, domain.Identifier{SystemID: item.XMLModel.Href, BaseLocation: doc.URI()})
			}
		}
	}
	for _, loc := range doc.SchemaLocations() {
		if loc.Namespace == namespaceURI {
			ids = append(ids, domain.Identifier{PublicID: loc.Namespace, SystemID: loc.Location, BaseLocation: doc.URI()})
		}
	}
	if namespaceURI == "" {
		if loc := doc.NoNamespaceSchemaLocation(); loc != "" {
			ids = append(ids, domain.Identifier{SystemID: loc, BaseLocation: doc.URI()})
		}
	}
	return ids
}

// ReferencedGrammars lists every grammar doc refers to with the URI it
// resolves to.
func (r *Registry) ReferencedGrammars(doc ports.Document) []domain.ReferencedGrammar {
	var out []domain.ReferencedGrammar
	add := func(id domain.Identifier, binding domain.Binding, kind domain.GrammarKind) {
		uri, name := r.resolve(id)
		out = append(out, domain.ReferencedGrammar{Identifier: id, Binding: binding, Kind: kind, ResolvedURI: uri, Resolver: name})
	}

	var models ports.GrammarProvider
	for _, p := range r.Providers() {
		if p.Kind() == domain.GrammarXMLModel {
			models = p
		}
	}

	for _, item := range doc.Prolog() {
		switch {
		case item.Doctype != nil:
			dt := item.Doctype
			if dt.PublicID != "" || dt.SystemID != "" {
				add(domain.Identifier{PublicID: dt.PublicID, SystemID: dt.SystemID, BaseLocation: doc.URI()}, domain.BindingDoctype, domain.GrammarDTD)
			} else if dt.InternalSubset != "" {
				out = append(out, domain.ReferencedGrammar{
					Identifier:  domain.Identifier{BaseLocation: doc.URI()},
					Binding:     domain.BindingInternalSubset,
					Kind:        domain.GrammarDTD,
					ResolvedURI: doc.URI(),
				})
			}
		case item.XMLModel != nil && item.XMLModel.Href != "":
			kind := domain.GrammarXMLModel
			if d, ok := models.(delegator); ok {
				if p := d.Delegate(*item.XMLModel); p != nil {
					kind = p.Kind()
				}
			}
			add(domain.Identifier{SystemID: item.XMLModel.Href, BaseLocation: doc.URI()}, domain.BindingXMLModel, kind)
		}
	}
	for _, loc := range doc.SchemaLocations() {
		add(domain.Identifier{PublicID: loc.Namespace, SystemID: loc.Location, BaseLocation: doc.URI()}, domain.BindingSchemaLocation, domain.GrammarXSD)
	}
	if loc := doc.NoNamespaceSchemaLocation(); loc != "" {
		add(domain.Identifier{SystemID: loc, BaseLocation: doc.URI()}, domain.BindingNoNamespace, domain.GrammarXSD)
	}

	if len(out) == 0 {
		if uri, name := r.chain.ResolveWithName(doc.URI(), "", ""); uri != "" {
			kind, _ := domain.KindFromLocation(uri)
			out = append(out, domain.ReferencedGrammar{
				Identifier:  domain.Identifier{SystemID: uri, BaseLocation: doc.URI()},
				Binding:     domain.BindingFileAssociation,
				Kind:        kind,
				ResolvedURI: uri,
				Resolver:    name,
			})
		}
	}
	return out
}

// DependsOnGrammar reports whether a model doc was validated with was built
// from grammarURI or depends on it.
func (r *Registry) DependsOnGrammar(doc ports.Document, grammarURI string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uri := range r.used[doc.URI()] {
		if uri == grammarURI {
			return true
		}
		if e, ok := r.memo[uri]; ok && (model.DependsOn(e.model, grammarURI) || e.tracker.Contains(grammarURI)) {
			return true
		}
	}
	return false
}

// GrammarFiles returns the files the models of a document were built from:
// grammar files, the files they pull in and cached copies of remote grammars.
func (r *Registry) GrammarFiles(docURI string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for uri := range r.used[docURI] {
		e, ok := r.memo[uri]
		if !ok {
			continue
		}
		for _, f := range e.tracker.URIs() {
			if !slices.Contains(out, f) {
				out = append(out, f)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Invalidate drops every memoized model built from uri or depending on it.
func (r *Registry) Invalidate(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.memo {
		if key == uri || model.DependsOn(e.model, uri) || e.tracker.Contains(uri) {
			delete(r.memo, key)
		}
	}
	memoizedModels.Set(float64(len(r.memo)))
}

// Forget drops what the registry remembers about a document.
func (r *Registry) Forget(docURI string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.used, docURI)
}

// Stats returns the size of the memo.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Models: len(r.memo), Documents: len(r.used)}
}

// FindCMElement returns the declaration of node by walking from the document
// element down: the document element is looked up in the model of its
// namespace, every deeper level among the children of the level above.
func (r *Registry) FindCMElement(ctx context.Context, doc ports.Document, node ports.Node) (ports.CMElement, error) {
	if node == nil {
		return nil, nil
	}
	var path []ports.Node
	for n := node; n != nil; n = n.Parent() {
		path = append(path, n)
	}
	slices.Reverse(path)

	root := path[0]
	cm, err := r.FindContentModel(ctx, doc, root.NamespaceURI())
	if err != nil {
		return nil, err
	}
	el := cm.FindElement(root.LocalName(), root.NamespaceURI())
	for _, n := range path[1:] {
		if el == nil {
			return nil, nil
		}
		el = el.FindChild(n.LocalName(), n.NamespaceURI())
	}
	return el, nil
}
