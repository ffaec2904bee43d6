// Package xmlmodel adopts documents that declare their grammar with the
// xml-model processing instruction and hands the grammar to the provider of
// its actual syntax.
package xmlmodel

import (
	"bytes"
	"context"
	"os"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

// DTDType is the xml-model type of a DTD.
const DTDType = "application/xml-dtd"

// Provider delegates parsing to the providers of the concrete syntaxes.
type Provider struct {
	delegates map[domain.GrammarKind]ports.GrammarProvider
	order     []ports.GrammarProvider
}

var _ ports.GrammarProvider = (*Provider)(nil)

// NewProvider creates the xml-model provider over the given syntax providers.
func NewProvider(delegates ...ports.GrammarProvider) *Provider {
	p := &Provider{delegates: make(map[domain.GrammarKind]ports.GrammarProvider)}
	for _, d := range delegates {
		if d == nil {
			continue
		}
		if _, ok := p.delegates[d.Kind()]; ok {
			continue
		}
		p.delegates[d.Kind()] = d
		p.order = append(p.order, d)
	}
	return p
}

// Kind implements ports.GrammarProvider.
func (p *Provider) Kind() domain.GrammarKind {
	return domain.GrammarXMLModel
}

// Adopts implements ports.GrammarProvider.
func (p *Provider) Adopts(doc ports.Document) bool {
	for _, m := range doc.XMLModels() {
		if m.Href != "" {
			return true
		}
	}
	return false
}

// Identifiers returns the hrefs of the xml-model instructions in document
// order. xml-model does not scope a grammar to a namespace.
func (p *Provider) Identifiers(doc ports.Document, _ string) []domain.Identifier {
	var ids []domain.Identifier
	for _, m := range doc.XMLModels() {
		if m.Href != "" {
			ids = append(ids, domain.Identifier{SystemID: m.Href, BaseLocation: doc.URI()})
		}
	}
	return ids
}

// AcceptsURI implements ports.GrammarProvider.
func (p *Provider) AcceptsURI(uri string) bool {
	return p.byLocation(uri) != nil
}

// Delegate returns the provider for the grammar an xml-model instruction
// points to. schematypens wins over type, which wins over the href extension.
func (p *Provider) Delegate(m domain.XMLModel) ports.GrammarProvider {
	switch m.Schematypens {
	case domain.XSDNamespace:
		return p.delegates[domain.GrammarXSD]
	case domain.RelaxNGNamespace:
		return p.delegates[domain.GrammarRelaxNG]
	}
	switch m.Type {
	case domain.RelaxNGCompactType:
		return p.delegates[domain.GrammarRelaxNG]
	case DTDType:
		return p.delegates[domain.GrammarDTD]
	}
	return p.byLocation(m.Href)
}

func (p *Provider) byLocation(uri string) ports.GrammarProvider {
	for _, d := range p.order {
		if d.AcceptsURI(uri) {
			return d
		}
	}
	return nil
}

// Parse picks the delegate from the grammar location and, for locations
// without a known extension, from the grammar content.
func (p *Provider) Parse(ctx context.Context, uri, localPath string, entities ports.EntityResolver) (ports.CMDocument, error) {
	d := p.byLocation(uri)
	if d == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrResourceUnavailable.Error()), "path", localPath)
		}
		d = p.delegates[sniff(data)]
	}
	if d == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoApplicableProvider, "unknown grammar syntax"), "uri", uri)
	}
	return d.Parse(ctx, uri, localPath, entities)
}

// sniff guesses the syntax of a grammar from its content.
func sniff(data []byte) domain.GrammarKind {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	switch {
	case bytes.Contains(data, []byte(domain.XSDNamespace)):
		return domain.GrammarXSD
	case bytes.Contains(data, []byte(domain.RelaxNGNamespace)):
		return domain.GrammarRelaxNG
	case bytes.Contains(data, []byte("<!ELEMENT")), bytes.Contains(data, []byte("<!ENTITY")):
		return domain.GrammarDTD
	case len(trimmed) > 0 && trimmed[0] != '<':
		return domain.GrammarRelaxNG
	default:
		return ""
	}
}
