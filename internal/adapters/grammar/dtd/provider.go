package dtd

import (
	"context"
	"os"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// Provider adopts documents with a DOCTYPE declaration.
type Provider struct{}

var (
	_ ports.GrammarProvider       = (*Provider)(nil)
	_ ports.InlineGrammarProvider = (*Provider)(nil)
)

// NewProvider creates the DTD provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Kind implements ports.GrammarProvider.
func (p *Provider) Kind() domain.GrammarKind {
	return domain.GrammarDTD
}

// Adopts implements ports.GrammarProvider.
func (p *Provider) Adopts(doc ports.Document) bool {
	if !doc.HasDoctype() {
		return false
	}
	dt := doc.Doctype()
	return dt != nil && (dt.PublicID != "" || dt.SystemID != "" || dt.InternalSubset != "")
}

// Identifiers returns the external id of the DOCTYPE. A DTD is not bound to a
// namespace, so the identifier applies to every namespace of the document.
func (p *Provider) Identifiers(doc ports.Document, _ string) []domain.Identifier {
	dt := doc.Doctype()
	if dt == nil || (dt.PublicID == "" && dt.SystemID == "") {
		return nil
	}
	return []domain.Identifier{{PublicID: dt.PublicID, SystemID: dt.SystemID, BaseLocation: doc.URI()}}
}

// AcceptsURI implements ports.GrammarProvider.
func (p *Provider) AcceptsURI(uri string) bool {
	kind, ok := domain.KindFromLocation(uri)
	return ok && kind == domain.GrammarDTD
}

// Parse implements ports.GrammarProvider.
func (p *Provider) Parse(ctx context.Context, uri, localPath string, entities ports.EntityResolver) (ports.CMDocument, error) {
	data, err := os.ReadFile(localPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceUnavailable.Error()), "path", localPath)
	}
	doc, err := ParseText(ctx, uri, uri, string(data), entities)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseInline builds a model from the internal subset of a DOCTYPE without an
// external id. Relative references in the subset resolve against the document.
func (p *Provider) ParseInline(ctx context.Context, doc ports.Document, entities ports.EntityResolver) (ports.CMDocument, error) {
	dt := doc.Doctype()
	if dt == nil || dt.InternalSubset == "" || dt.PublicID != "" || dt.SystemID != "" {
		return nil, nil
	}
	m, err := ParseText(ctx, doc.URI(), doc.URI(), dt.InternalSubset, entities)
	if err != nil {
		return nil, err
	}
	return m, nil
}
