package domain

import "strings"

// GrammarKind is the surface syntax of a grammar.
type GrammarKind string

const (
	// GrammarXSD is W3C XML Schema.
	GrammarXSD GrammarKind = "xsd"
	// GrammarDTD is a document type definition.
	GrammarDTD GrammarKind = "dtd"
	// GrammarRelaxNG is RelaxNG in XML or compact syntax.
	GrammarRelaxNG GrammarKind = "relaxng"
	// GrammarXMLModel is a grammar declared with the xml-model processing instruction.
	GrammarXMLModel GrammarKind = "xml-model"
)

// Well known namespaces.
const (
	XSINamespace       = "http://www.w3.org/2001/XMLSchema-instance"
	XSDNamespace       = "http://www.w3.org/2001/XMLSchema"
	XMLNamespace       = "http://www.w3.org/XML/1998/namespace"
	XMLNSNamespace     = "http://www.w3.org/2000/xmlns/"
	RelaxNGNamespace   = "http://relaxng.org/ns/structure/1.0"
	CatalogNamespace   = "urn:oasis:names:tc:entity:xmlns:xml:catalog"
	RelaxNGCompactType = "application/relax-ng-compact-syntax"
	XMLModelTarget     = "xml-model"
)

// Binding names how a document declared its grammar.
type Binding string

const (
	BindingDoctype         Binding = "doctype"
	BindingSchemaLocation  Binding = "xsi:schemaLocation"
	BindingNoNamespace     Binding = "xsi:noNamespaceSchemaLocation"
	BindingXMLModel        Binding = "xml-model"
	BindingFileAssociation Binding = "file-association"
	BindingInternalSubset  Binding = "internal-subset"
)

// Doctype is the DOCTYPE declaration of a document.
type Doctype struct {
	Name           string
	PublicID       string
	SystemID       string
	InternalSubset string
}

// XMLModel is an <?xml-model?> processing instruction.
type XMLModel struct {
	Href         string
	Type         string
	Schematypens string
}

// SchemaLocation is one namespace/location pair of xsi:schemaLocation.
type SchemaLocation struct {
	Namespace string
	Location  string
}

// PrologItem is a DOCTYPE or xml-model entry of the document prolog, in document order.
// Exactly one of the fields is set.
type PrologItem struct {
	Doctype  *Doctype
	XMLModel *XMLModel
}

// ReferencedGrammar describes a grammar a document refers to and how it was resolved.
type ReferencedGrammar struct {
	Identifier  Identifier  `json:"identifier"`
	Binding     Binding     `json:"binding"`
	Kind        GrammarKind `json:"kind"`
	ResolvedURI string      `json:"resolvedUri"`
	// Resolver is the name of the resolver that answered, empty for default expansion.
	Resolver string `json:"resolver,omitempty"`
}

// GrammarSyntaxError reports a grammar the grammar engine rejected.
// It matches ErrGrammarSyntax with errors.Is.
type GrammarSyntaxError struct {
	URI string
	Err error
}

func (e *GrammarSyntaxError) Error() string {
	return ErrGrammarSyntax.Error() + " in " + e.URI + ": " + e.Err.Error()
}

// Unwrap returns the engine error.
func (e *GrammarSyntaxError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrGrammarSyntax.
func (e *GrammarSyntaxError) Is(target error) bool {
	return target == ErrGrammarSyntax
}

// KindFromLocation guesses the grammar kind from a file extension.
func KindFromLocation(location string) (GrammarKind, bool) {
	loc := strings.ToLower(location)
	if i := strings.IndexAny(loc, "?#"); i >= 0 {
		loc = loc[:i]
	}
	switch {
	case strings.HasSuffix(loc, ".xsd"):
		return GrammarXSD, true
	case strings.HasSuffix(loc, ".dtd"), strings.HasSuffix(loc, ".ent"), strings.HasSuffix(loc, ".mod"):
		return GrammarDTD, true
	case strings.HasSuffix(loc, ".rng"), strings.HasSuffix(loc, ".rnc"):
		return GrammarRelaxNG, true
	default:
		return "", false
	}
}
