// Package rng builds content models from RelaxNG grammars in XML and
// compact syntax.
package rng

import (
	"context"
	"os"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider parses RelaxNG grammars. Documents bind RelaxNG only through
// xml-model or file associations, so it never adopts a document itself.
type Provider struct{}

var _ ports.GrammarProvider = (*Provider)(nil)

// NewProvider creates the RelaxNG provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Kind implements ports.GrammarProvider.
func (p *Provider) Kind() domain.GrammarKind {
	return domain.GrammarRelaxNG
}

// Adopts implements ports.GrammarProvider.
func (p *Provider) Adopts(ports.Document) bool {
	return false
}

// Identifiers implements ports.GrammarProvider.
func (p *Provider) Identifiers(ports.Document, string) []domain.Identifier {
	return nil
}

// AcceptsURI implements ports.GrammarProvider.
func (p *Provider) AcceptsURI(uri string) bool {
	kind, ok := domain.KindFromLocation(uri)
	return ok && kind == domain.GrammarRelaxNG
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
