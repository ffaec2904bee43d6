package dom

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
)

// Element is an element of a parsed document.
type Element struct {
	node     *xmlquery.Node
	parent   *Element
	children []*Element
	attrs    []domain.Attribute
	rng      domain.Range
	hasText  bool
}

var _ ports.Node = (*Element)(nil)

// LocalName implements ports.Node.
func (e *Element) LocalName() string {
	return e.node.Data
}

// Prefix implements ports.Node.
func (e *Element) Prefix() string {
	return e.node.Prefix
}

// NamespaceURI implements ports.Node.
func (e *Element) NamespaceURI() string {
	return e.node.NamespaceURI
}

// Parent implements ports.Node.
func (e *Element) Parent() ports.Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Children implements ports.Node.
func (e *Element) Children() []ports.Node {
	out := make([]ports.Node, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// Attributes implements ports.Node.
func (e *Element) Attributes() []domain.Attribute {
	out := make([]domain.Attribute, len(e.attrs))
	copy(out, e.attrs)
	return out
}

// Attribute implements ports.Node.
func (e *Element) Attribute(namespaceURI, localName string) (string, bool) {
	for _, a := range e.attrs {
		if a.LocalName == localName && a.NamespaceURI == namespaceURI && !a.IsNamespaceDeclaration() {
			return a.Value, true
		}
	}
	return "", false
}

// HasText implements ports.Node.
func (e *Element) HasText() bool {
	return e.hasText
}

// Range implements ports.Node.
func (e *Element) Range() domain.Range {
	return e.rng
}

// Document is a parsed XML document together with its prolog.
type Document struct {
	uri       string
	root      *Element
	prolog    []domain.PrologItem
	doctype   *domain.Doctype
	models    []domain.XMLModel
	locations []domain.SchemaLocation
	noNS      string
	hasSchema bool
}

var _ ports.Document = (*Document)(nil)

// URI implements ports.Document.
func (d *Document) URI() string {
	return d.uri
}

// Root implements ports.Document.
func (d *Document) Root() ports.Node {
	if d.root == nil {
		return nil
	}
	return d.root
}

// RootElement returns the document element with its concrete type.
func (d *Document) RootElement() *Element {
	return d.root
}

// Doctype implements ports.Document.
func (d *Document) Doctype() *domain.Doctype {
	return d.doctype
}

// XMLModels implements ports.Document.
func (d *Document) XMLModels() []domain.XMLModel {
	return d.models
}

// Prolog implements ports.Document.
func (d *Document) Prolog() []domain.PrologItem {
	return d.prolog
}

// HasDoctype implements ports.Document.
func (d *Document) HasDoctype() bool {
	return d.doctype != nil
}

// HasSchemaLocation implements ports.Document.
func (d *Document) HasSchemaLocation() bool {
	return d.hasSchema
}

// SchemaLocations implements ports.Document.
func (d *Document) SchemaLocations() []domain.SchemaLocation {
	return d.locations
}

// NoNamespaceSchemaLocation implements ports.Document.
func (d *Document) NoNamespaceSchemaLocation() string {
	return d.noNS
}

// readSchemaLocations collects the xsi attributes of the root element.
// xsi:schemaLocation holds whitespace separated namespace/location pairs; a
// trailing namespace without location is ignored.
func (d *Document) readSchemaLocations() {
	if d.root == nil {
		return
	}
	if v, ok := d.root.Attribute(domain.XSINamespace, "schemaLocation"); ok {
		d.hasSchema = true
		fields := strings.Fields(v)
		for i := 0; i+1 < len(fields); i += 2 {
			d.locations = append(d.locations, domain.SchemaLocation{Namespace: fields[i], Location: fields[i+1]})
		}
	}
	if v, ok := d.root.Attribute(domain.XSINamespace, "noNamespaceSchemaLocation"); ok {
		d.hasSchema = true
		d.noNS = strings.TrimSpace(v)
	}
}
