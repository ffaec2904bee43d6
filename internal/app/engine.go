package app

import (
	"context"

	"go.trai.ch/xmlres/internal/adapters/registry"
	"go.trai.ch/xmlres/internal/adapters/rescache"
	"go.trai.ch/xmlres/internal/adapters/resolver"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/engine/diagnostics"
	"go.trai.ch/xmlres/internal/engine/validation"
)

// Engine is the subsystem assembled for one set of settings.
type Engine struct {
	Settings    domain.Settings
	Store       *rescache.Store
	Cache       *rescache.Cache
	Chain       *resolver.Chain
	Registry    *registry.Registry
	Coordinator *diagnostics.Coordinator
}

// NewEngine wires the resource cache, the resolver chain, the grammar
// registry and the diagnostics coordinator. Resolvers are consulted in the
// order file associations, catalogs, bundled schemas.
func (a *App) NewEngine(settings domain.Settings) (*Engine, error) {
	store, err := rescache.NewStore(settings.CachePath)
	if err != nil {
		return nil, err
	}

	fetcher := a.fetcher
	if fetcher == nil {
		fetcher = rescache.NewHTTPFetcher(settings.HTTPTimeout, settings.MaxRedirects)
	}
	cache := rescache.New(settings, store, fetcher, a.logger, rescache.WithTracer(a.tracer))

	associations, err := resolver.NewFileAssociations(settings.RootURI, settings.FileAssociations)
	if err != nil {
		return nil, err
	}
	chain, err := resolver.NewChain(
		associations,
		resolver.NewCatalog(settings.RootURI, settings.CatalogPaths, a.logger),
		resolver.NewBundled(store, a.logger),
	)
	if err != nil {
		return nil, err
	}

	reg, err := registry.New(chain, cache, a.logger, registry.DefaultProviders(), registry.WithTracer(a.tracer))
	if err != nil {
		return nil, err
	}

	return &Engine{
		Settings:    settings,
		Store:       store,
		Cache:       cache,
		Chain:       chain,
		Registry:    reg,
		Coordinator: diagnostics.NewCoordinator(reg, validation.New(), a.parser, a.logger, a.tracer),
	}, nil
}

// Close stops downloads still in flight.
func (e *Engine) Close(ctx context.Context) error {
	return e.Cache.Close(ctx)
}
