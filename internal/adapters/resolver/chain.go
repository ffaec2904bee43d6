// Package resolver implements the identifier resolver chain and the built-in
// resolvers: file associations, XML catalogs and bundled schemas.
package resolver

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
)

// ChainName is the name the chain reports for itself.
const ChainName = "chain"

// Chain is an ordered list of resolvers where the first non-empty answer wins.
// Resolution reads an immutable snapshot, so resolvers may be registered while
// resolutions are running.
type Chain struct {
	mu        sync.Mutex
	resolvers atomic.Pointer[[]ports.URIResolver]
}

// NewChain creates a chain with the given resolvers, in order.
// Nil resolvers are rejected.
func NewChain(resolvers ...ports.URIResolver) (*Chain, error) {
	c := &Chain{}
	empty := []ports.URIResolver{}
	c.resolvers.Store(&empty)
	for _, r := range resolvers {
		if err := c.Register(r); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Name implements ports.URIResolver.
func (c *Chain) Name() string {
	return ChainName
}

// Register appends r to the chain. Registering a resolver with the name of an
// already registered one is a no-op.
func (c *Chain) Register(r ports.URIResolver) error {
	if r == nil {
		return domain.ErrNilResolver
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	current := *c.resolvers.Load()
	if slices.ContainsFunc(current, func(existing ports.URIResolver) bool {
		return existing.Name() == r.Name()
	}) {
		return nil
	}
	next := make([]ports.URIResolver, len(current), len(current)+1)
	copy(next, current)
	next = append(next, r)
	c.resolvers.Store(&next)
	return nil
}

// Unregister removes the resolver with the name of r.
func (c *Chain) Unregister(r ports.URIResolver) {
	if r == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	current := *c.resolvers.Load()
	next := slices.DeleteFunc(slices.Clone(current), func(existing ports.URIResolver) bool {
		return existing.Name() == r.Name()
	})
	c.resolvers.Store(&next)
}

// Resolvers returns a snapshot of the registered resolvers.
func (c *Chain) Resolvers() []ports.URIResolver {
	return slices.Clone(*c.resolvers.Load())
}

// Resolve returns the first non-empty answer of the registered resolvers, or "".
func (c *Chain) Resolve(baseLocation, publicID, systemID string) string {
	uri, _ := c.ResolveWithName(baseLocation, publicID, systemID)
	return uri
}

// ResolveWithName is Resolve that also reports which resolver answered.
func (c *Chain) ResolveWithName(baseLocation, publicID, systemID string) (uri, resolver string) {
	for _, r := range *c.resolvers.Load() {
		if uri := r.Resolve(baseLocation, publicID, systemID); uri != "" {
			return uri, r.Name()
		}
	}
	return "", ""
}

// ResolveEntity asks every resolver that can produce content, in order.
// The first non-nil source wins. Errors of earlier resolvers are returned only
// when no resolver produced a source.
func (c *Chain) ResolveEntity(ctx context.Context, id domain.Identifier) (*domain.InputSource, error) {
	var firstErr error
	for _, r := range *c.resolvers.Load() {
		er, ok := r.(ports.EntityResolver)
		if !ok {
			continue
		}
		src, err := er.ResolveEntity(ctx, id)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if src != nil {
			return src, nil
		}
	}
	return nil, firstErr
}

// ExpandSystemID is the default expansion applied when no resolver answers.
func ExpandSystemID(systemID, baseLocation string) string {
	return domain.ExpandSystemID(systemID, baseLocation)
}
