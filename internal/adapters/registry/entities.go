package registry

import (
	"context"
	"errors"
	"os"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Entities serves the files grammars pull in: the entity resolvers of the
// chain first, then the resolved URI through the cache or the local disk.
type Entities struct {
	chain ports.ResolverChain
	cache ports.ResourceCache
}

var _ ports.EntityResolver = (*Entities)(nil)

// NewEntities creates an entity resolver over chain and cache.
func NewEntities(chain ports.ResolverChain, cache ports.ResourceCache) *Entities {
	return &Entities{chain: chain, cache: cache}
}

// ResolveEntity implements ports.EntityResolver. A resource that is being
// downloaded fails with a *domain.BusyDownloadingError.
func (e *Entities) ResolveEntity(ctx context.Context, id domain.Identifier) (*domain.InputSource, error) {
	src, err := e.chain.ResolveEntity(ctx, id)
	if err != nil || src != nil {
		return src, err
	}

	uri := e.chain.Resolve(id.BaseLocation, id.PublicID, id.SystemID)
	if uri == "" {
		uri = domain.ExpandSystemID(id.SystemID, id.BaseLocation)
	}
	if uri == "" {
		return nil, nil
	}

	var path string
	if e.cache != nil && e.cache.CanUseCache(uri) {
		path, err = e.cache.GetResource(ctx, uri)
		if err != nil {
			return nil, err
		}
		if path == "" {
			return nil, nil
		}
	} else {
		p, ok := domain.PathFromURI(uri)
		if !ok {
			return nil, nil
		}
		path = p
	}

	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceUnavailable.Error()), "uri", uri)
	}
	return &domain.InputSource{PublicID: id.PublicID, SystemID: uri, BaseURI: uri, Body: body}, nil
}
