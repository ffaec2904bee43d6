// Package xsd builds content models from W3C XML Schemas.
package xsd

import (
	"context"
	"os"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider adopts documents bound with xsi:schemaLocation or
// xsi:noNamespaceSchemaLocation.
type Provider struct{}

var _ ports.GrammarProvider = (*Provider)(nil)

// NewProvider creates the XML Schema provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Kind implements ports.GrammarProvider.
func (p *Provider) Kind() domain.GrammarKind {
	return domain.GrammarXSD
}

// Adopts implements ports.GrammarProvider.
func (p *Provider) Adopts(doc ports.Document) bool {
	return doc.HasSchemaLocation()
}

// Identifiers returns the schema locations declared for namespaceURI. The
// namespace travels as public id so catalogs can map it.
func (p *Provider) Identifiers(doc ports.Document, namespaceURI string) []domain.Identifier {
	var ids []domain.Identifier
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

// AcceptsURI implements ports.GrammarProvider.
func (p *Provider) AcceptsURI(uri string) bool {
	kind, ok := domain.KindFromLocation(uri)
	return ok && kind == domain.GrammarXSD
}

// Parse implements ports.GrammarProvider.
func (p *Provider) Parse(ctx context.Context, uri, localPath string, entities ports.EntityResolver) (ports.CMDocument, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceUnavailable.Error()), "path", localPath)
	}
	doc, err := ParseBytes(ctx, uri, data, entities)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
