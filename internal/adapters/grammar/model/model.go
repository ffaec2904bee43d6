// Package model holds the content model every grammar engine produces:
// element and attribute declarations independent of the grammar syntax.
package model

import (
	"slices"
	"strings"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
)

type qname struct {
	local string
	ns    string
}

// Document is a content model built from one grammar and the files it pulls in.
type Document struct {
	uri             string
	kind            domain.GrammarKind
	targetNamespace string
	elements        []*Element
	index           map[qname]*Element
	deps            []string
	ignoreNS        bool
}

var _ ports.CMDocument = (*Document)(nil)

// NewDocument creates an empty content model.
func NewDocument(uri string, kind domain.GrammarKind, targetNamespace string) *Document {
	return &Document{
		uri:             uri,
		kind:            kind,
		targetNamespace: targetNamespace,
		index:           make(map[qname]*Element),
	}
}

// URI implements ports.CMDocument.
func (d *Document) URI() string { return d.uri }

// Kind implements ports.CMDocument.
func (d *Document) Kind() domain.GrammarKind { return d.kind }

// TargetNamespace implements ports.CMDocument.
func (d *Document) TargetNamespace() string { return d.targetNamespace }

// SetTargetNamespace sets the namespace of the grammar.
func (d *Document) SetTargetNamespace(ns string) { d.targetNamespace = ns }

// AddElement declares a global element. A second declaration of the same
// name is ignored and the first one is returned.
func (d *Document) AddElement(e *Element) *Element {
	key := qname{e.name, e.ns}
	if existing, ok := d.index[key]; ok {
		return existing
	}
	e.owner = d
	d.index[key] = e
	d.elements = append(d.elements, e)
	return e
}

// IgnoreNamespaces makes lookups match on the local part of declared names
// only. Grammars that declare qualified names literally, like DTDs, use it.
func (d *Document) IgnoreNamespaces() { d.ignoreNS = true }

// Element returns the global element with its concrete type, nil if undeclared.
func (d *Document) Element(localName, namespaceURI string) *Element {
	if d.ignoreNS {
		for _, e := range d.elements {
			if localPart(e.name) == localName {
				return e
			}
		}
		return nil
	}
	return d.index[qname{localName, namespaceURI}]
}

// Elements implements ports.CMDocument.
func (d *Document) Elements() []ports.CMElement {
	out := make([]ports.CMElement, len(d.elements))
	for i, e := range d.elements {
		out[i] = e
	}
	return out
}

// FindElement implements ports.CMDocument.
func (d *Document) FindElement(localName, namespaceURI string) ports.CMElement {
	if e := d.Element(localName, namespaceURI); e != nil {
		return e
	}
	return nil
}

// AddDependency records a file the grammar pulled in. Duplicates and the
// grammar itself are ignored.
func (d *Document) AddDependency(uri string) {
	if uri == "" || uri == d.uri || slices.Contains(d.deps, uri) {
		return
	}
	d.deps = append(d.deps, uri)
}

// Dependencies implements ports.CMDocument.
func (d *Document) Dependencies() []string {
	return slices.Clone(d.deps)
}

// DependsOn reports whether the model was built from uri or pulled it in.
func DependsOn(doc ports.CMDocument, uri string) bool {
	return doc.URI() == uri || slices.Contains(doc.Dependencies(), uri)
}

// Element is an element declaration.
type Element struct {
	name          string
	ns            string
	content       domain.ContentKind
	children      []*Element
	required      map[*Element]bool
	attrs         []*Attribute
	anyAttribute  bool
	documentation string
	owner         *Document
}

var _ ports.CMElement = (*Element)(nil)

// NewElement creates an element declaration with element-only content.
func NewElement(name, namespaceURI string) *Element {
	return &Element{name: name, ns: namespaceURI, required: make(map[*Element]bool)}
}

// Name implements ports.CMElement.
func (e *Element) Name() string { return e.name }

// NamespaceURI implements ports.CMElement.
func (e *Element) NamespaceURI() string { return e.ns }

// Content implements ports.CMElement.
func (e *Element) Content() domain.ContentKind { return e.content }

// SetContent sets what the element allows as content.
func (e *Element) SetContent(kind domain.ContentKind) { e.content = kind }

// SetOwner attaches a local declaration to the model it belongs to, which
// lets open content look up global declarations.
func (e *Element) SetOwner(d *Document) { e.owner = d }

// AddChild allows child as content. A child added several times is required
// as soon as one of the additions requires it.
func (e *Element) AddChild(child *Element, required bool) {
	if !slices.Contains(e.children, child) {
		if existing := e.child(child.name, child.ns); existing != nil {
			child = existing
		} else {
			e.children = append(e.children, child)
		}
	}
	if required {
		e.required[child] = true
	}
}

func (e *Element) child(localName, namespaceURI string) *Element {
	for _, c := range e.children {
		if e.matches(c.name, c.ns, localName, namespaceURI) {
			return c
		}
	}
	return nil
}

func (e *Element) matches(name, ns, localName, namespaceURI string) bool {
	if e.owner != nil && e.owner.ignoreNS {
		return localPart(name) == localPart(localName)
	}
	return name == localName && ns == namespaceURI
}

func localPart(name string) string {
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// Children implements ports.CMElement.
func (e *Element) Children() []ports.CMElement {
	out := make([]ports.CMElement, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// FindChild implements ports.CMElement. Open content resolves against the
// global declarations of the owning model.
func (e *Element) FindChild(localName, namespaceURI string) ports.CMElement {
	if c := e.child(localName, namespaceURI); c != nil {
		return c
	}
	if e.content == domain.ContentAny && e.owner != nil {
		return e.owner.FindElement(localName, namespaceURI)
	}
	return nil
}

// RequiredChildren implements ports.CMElement.
func (e *Element) RequiredChildren() []ports.CMElement {
	var out []ports.CMElement
	for _, c := range e.children {
		if e.required[c] {
			out = append(out, c)
		}
	}
	return out
}

// AddAttribute declares an attribute. A second declaration of the same name is ignored.
func (e *Element) AddAttribute(a *Attribute) {
	if e.attribute(a.name, a.ns) != nil {
		return
	}
	e.attrs = append(e.attrs, a)
}

func (e *Element) attribute(localName, namespaceURI string) *Attribute {
	for _, a := range e.attrs {
		if a.ns == domain.XMLNamespace || namespaceURI == domain.XMLNamespace {
			if a.name == localName && a.ns == namespaceURI {
				return a
			}
			continue
		}
		if e.matches(a.name, a.ns, localName, namespaceURI) {
			return a
		}
	}
	return nil
}

// Attributes implements ports.CMElement.
func (e *Element) Attributes() []ports.CMAttribute {
	out := make([]ports.CMAttribute, len(e.attrs))
	for i, a := range e.attrs {
		out[i] = a
	}
	return out
}

// FindAttribute implements ports.CMElement.
func (e *Element) FindAttribute(localName, namespaceURI string) ports.CMAttribute {
	if a := e.attribute(localName, namespaceURI); a != nil {
		return a
	}
	return nil
}

// AnyAttribute implements ports.CMElement.
func (e *Element) AnyAttribute() bool { return e.anyAttribute || e.content == domain.ContentAny }

// SetAnyAttribute allows undeclared attributes.
func (e *Element) SetAnyAttribute(v bool) { e.anyAttribute = v }

// Documentation implements ports.CMElement.
func (e *Element) Documentation() string { return e.documentation }

// SetDocumentation sets the documentation of the declaration.
func (e *Element) SetDocumentation(doc string) { e.documentation = doc }

// Attribute is an attribute declaration.
type Attribute struct {
	name          string
	ns            string
	required      bool
	defaultValue  string
	enumeration   []string
	documentation string
}

var _ ports.CMAttribute = (*Attribute)(nil)

// NewAttribute creates an attribute declaration.
func NewAttribute(name, namespaceURI string, required bool) *Attribute {
	return &Attribute{name: name, ns: namespaceURI, required: required}
}

// Name implements ports.CMAttribute.
func (a *Attribute) Name() string { return a.name }

// NamespaceURI implements ports.CMAttribute.
func (a *Attribute) NamespaceURI() string { return a.ns }

// Required implements ports.CMAttribute.
func (a *Attribute) Required() bool { return a.required }

// DefaultValue implements ports.CMAttribute.
func (a *Attribute) DefaultValue() string { return a.defaultValue }

// Enumeration implements ports.CMAttribute.
func (a *Attribute) Enumeration() []string { return slices.Clone(a.enumeration) }

// Documentation implements ports.CMAttribute.
func (a *Attribute) Documentation() string { return a.documentation }

// WithDefault sets the default value.
func (a *Attribute) WithDefault(v string) *Attribute {
	a.defaultValue = v
	return a
}

// WithEnumeration sets the allowed values.
func (a *Attribute) WithEnumeration(values ...string) *Attribute {
	a.enumeration = values
	return a
}

// WithDocumentation sets the documentation.
func (a *Attribute) WithDocumentation(doc string) *Attribute {
	a.documentation = doc
	return a
}
