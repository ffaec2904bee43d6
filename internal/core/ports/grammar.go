package ports

import (
	"context"

	"go.trai.ch/xmlres/internal/core/domain"
)

// CMDocument is a parsed grammar, independent of its surface syntax.
type CMDocument interface {
	URI() string
	Kind() domain.GrammarKind
	TargetNamespace() string
	// Elements returns the global element declarations.
	Elements() []CMElement
	// FindElement looks up a global element declaration.
	FindElement(localName, namespaceURI string) CMElement
	// Dependencies returns the URIs of the grammar files this grammar includes or imports.
	Dependencies() []string
}

// CMElement is an element declaration.
type CMElement interface {
	Name() string
	NamespaceURI() string
	Content() domain.ContentKind
	// Children returns the declarations of the allowed child elements.
	Children() []CMElement
	// FindChild looks up an allowed child element.
	FindChild(localName, namespaceURI string) CMElement
	// RequiredChildren returns the children that must occur at least once.
	RequiredChildren() []CMElement
	Attributes() []CMAttribute
	FindAttribute(localName, namespaceURI string) CMAttribute
	// AnyAttribute reports whether undeclared attributes are allowed.
	AnyAttribute() bool
	Documentation() string
}

// CMAttribute is an attribute declaration.
type CMAttribute interface {
	Name() string
	NamespaceURI() string
	Required() bool
	DefaultValue() string
	Enumeration() []string
	Documentation() string
}

// GrammarProvider turns grammar resources of one kind into content models.
//
//go:generate mockgen -source=grammar.go -destination=mocks/mock_grammar.go -package=mocks
type GrammarProvider interface {
	Kind() domain.GrammarKind
	// Adopts reports whether the document declares a grammar of this kind.
	Adopts(doc Document) bool
	// Identifiers returns the grammar hints of this kind declared by the document for a namespace.
	Identifiers(doc Document, namespaceURI string) []domain.Identifier
	// AcceptsURI reports whether the grammar behind uri is of this kind.
	AcceptsURI(uri string) bool
	// Parse builds a content model from a local copy of the grammar found at uri.
	Parse(ctx context.Context, uri, localPath string, entities EntityResolver) (CMDocument, error)
}

// InlineGrammarProvider is implemented by providers that can build a model from
// the document itself, such as a DTD internal subset.
type InlineGrammarProvider interface {
	// ParseInline returns nil, nil when the document carries no inline grammar.
	ParseInline(ctx context.Context, doc Document, entities EntityResolver) (CMDocument, error)
}

// GrammarRegistry maps documents to content models.
type GrammarRegistry interface {
	CreateContentModel(ctx context.Context, doc Document) (CMDocument, error)
	FindContentModel(ctx context.Context, doc Document, namespaceURI string) (CMDocument, error)
	GetIdentifiers(doc Document, namespaceURI string) []domain.Identifier
	ReferencedGrammars(doc Document) []domain.ReferencedGrammar
	FindCMElement(ctx context.Context, doc Document, node Node) (CMElement, error)
	DependsOnGrammar(doc Document, grammarURI string) bool
	Invalidate(uri string)
}
