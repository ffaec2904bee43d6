package domain

// Attribute is an attribute of a DOM element.
type Attribute struct {
	LocalName    string
	Prefix       string
	NamespaceURI string
	Value        string
}

// QName returns the prefixed name of the attribute.
func (a Attribute) QName() string {
	if a.Prefix == "" {
		return a.LocalName
	}
	return a.Prefix + ":" + a.LocalName
}

// IsNamespaceDeclaration reports whether the attribute is an xmlns declaration.
func (a Attribute) IsNamespaceDeclaration() bool {
	return a.Prefix == "xmlns" || (a.Prefix == "" && a.LocalName == "xmlns")
}

// ContentKind classifies what an element declaration allows as content.
type ContentKind uint8

const (
	// ContentElements allows child elements only.
	ContentElements ContentKind = iota
	// ContentEmpty allows neither elements nor text.
	ContentEmpty
	// ContentText allows character data only.
	ContentText
	// ContentMixed allows child elements and text.
	ContentMixed
	// ContentAny allows anything.
	ContentAny
)

// String returns the lower-case name of the content kind.
func (k ContentKind) String() string {
	switch k {
	case ContentEmpty:
		return "empty"
	case ContentText:
		return "text"
	case ContentMixed:
		return "mixed"
	case ContentAny:
		return "any"
	default:
		return "elements"
	}
}

// XMLSyntaxError reports a document that is not well-formed.
// It matches ErrDocumentParseFailed with errors.Is.
type XMLSyntaxError struct {
	URI string
	// Line is zero-based, -1 when unknown.
	Line int
	Msg  string
}

func (e *XMLSyntaxError) Error() string {
	return ErrDocumentParseFailed.Error() + " " + e.URI + ": " + e.Msg
}

// Is reports whether target is ErrDocumentParseFailed.
func (e *XMLSyntaxError) Is(target error) bool {
	return target == ErrDocumentParseFailed
}
