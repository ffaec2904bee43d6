package ports

import (
	"io"

	"go.trai.ch/xmlres/internal/core/domain"
)

// Node is a read-only element of a parsed document.
type Node interface {
	LocalName() string
	Prefix() string
	NamespaceURI() string
	// Parent returns the parent element, nil for the root element.
	Parent() Node
	// Children returns the child elements in document order.
	Children() []Node
	Attributes() []domain.Attribute
	// Attribute returns the value of the attribute with the given namespace and local name.
	Attribute(namespaceURI, localName string) (string, bool)
	// HasText reports whether the element directly contains non-whitespace character data.
	HasText() bool
	// Range returns the location of the start tag.
	Range() domain.Range
}

// Document is a read-only parsed XML document.
type Document interface {
	URI() string
	// Root returns the document element, nil for an empty document.
	Root() Node
	Doctype() *domain.Doctype
	XMLModels() []domain.XMLModel
	// Prolog returns DOCTYPE and xml-model entries in document order.
	Prolog() []domain.PrologItem
	HasDoctype() bool
	HasSchemaLocation() bool
	SchemaLocations() []domain.SchemaLocation
	NoNamespaceSchemaLocation() string
}

// DocumentParser builds documents from XML text.
//
//go:generate mockgen -source=document.go -destination=mocks/mock_document.go -package=mocks
type DocumentParser interface {
	Parse(uri string, r io.Reader) (Document, error)
}
