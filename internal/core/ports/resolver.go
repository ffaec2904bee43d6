package ports

import (
	"context"

	"go.trai.ch/xmlres/internal/core/domain"
)

// URIResolver maps an identifier triple to a URI. It returns "" when it has no answer.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type URIResolver interface {
	// Name identifies the resolver. Two resolvers with the same name are the same resolver.
	Name() string
	Resolve(baseLocation, publicID, systemID string) string
}

// EntityResolver produces readable content for an identifier.
// It returns nil, nil when it has no answer.
type EntityResolver interface {
	ResolveEntity(ctx context.Context, id domain.Identifier) (*domain.InputSource, error)
}

// ResolverChain is an ordered set of resolvers where the first answer wins.
type ResolverChain interface {
	URIResolver
	EntityResolver
	Register(r URIResolver) error
	Unregister(r URIResolver)
	// ResolveWithName also returns the name of the resolver that answered.
	ResolveWithName(baseLocation, publicID, systemID string) (uri, resolver string)
	Resolvers() []URIResolver
}
