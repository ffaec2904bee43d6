package dtd

import (
	"strings"

	"go.trai.ch/xmlres/internal/adapters/grammar/model"
	"go.trai.ch/xmlres/internal/core/domain"
)

type builder struct {
	doc      *model.Document
	declared map[*model.Element]bool
}

func newBuilder(doc *model.Document) *builder {
	return &builder{doc: doc, declared: make(map[*model.Element]bool)}
}

func (b *builder) build(f *file) {
	for _, d := range f.Decls {
		if d.Element != nil {
			b.element(d.Element)
		}
	}
	for _, d := range f.Decls {
		if d.Attlist != nil {
			b.attlist(d.Attlist)
		}
	}
}

// lookup returns the declaration of name, creating an open placeholder for
// elements referenced before (or without) their declaration.
func (b *builder) lookup(name string) *model.Element {
	if e := b.doc.Element(name, ""); e != nil {
		return e
	}
	e := model.NewElement(name, "")
	e.SetContent(domain.ContentAny)
	return b.doc.AddElement(e)
}

func (b *builder) element(decl *elementDecl) {
	if isPERef(decl.Name) {
		return
	}
	e := b.lookup(decl.Name)
	if b.declared[e] {
		return
	}
	b.declared[e] = true

	content := decl.Content
	switch {
	case content.Empty:
		e.SetContent(domain.ContentEmpty)
		return
	case content.Any:
		e.SetContent(domain.ContentAny)
		return
	}

	var walk contentWalk
	walk.particle(content.Particle, true)
	switch {
	case walk.unresolved:
		e.SetContent(domain.ContentAny)
	case walk.pcdata && len(walk.children) == 0:
		e.SetContent(domain.ContentText)
	case walk.pcdata:
		e.SetContent(domain.ContentMixed)
	default:
		e.SetContent(domain.ContentElements)
	}
	if walk.unresolved {
		return
	}
	for _, c := range walk.children {
		e.AddChild(b.lookup(c.name), c.required && !walk.pcdata)
	}
}

type childRef struct {
	name     string
	required bool
}

type contentWalk struct {
	children   []childRef
	pcdata     bool
	unresolved bool
}

func (w *contentWalk) particle(p *particle, required bool) {
	if p == nil || p.Item == nil {
		return
	}
	required = required && (p.Occurs == "" || p.Occurs == "+")
	it := p.Item
	switch {
	case it.PCData:
		w.pcdata = true
	case it.Name != nil:
		w.children = append(w.children, childRef{name: *it.Name, required: required})
	case it.PERef != nil:
		w.unresolved = true
	case it.Group != nil:
		w.group(it.Group, required)
	}
}

func (w *contentWalk) group(g *cpGroup, required bool) {
	choice := len(g.Rest) > 0 && g.Rest[0].Sep == "|"
	branchRequired := required && !choice
	w.particle(g.First, branchRequired)
	for _, r := range g.Rest {
		w.particle(r.Particle, branchRequired)
	}
}

func (b *builder) attlist(decl *attlistDecl) {
	if isPERef(decl.Element) {
		return
	}
	e := b.lookup(decl.Element)
	for _, def := range decl.Defs {
		if def.Def == nil {
			continue
		}
		name := def.Def.Name
		if name == "xmlns" || strings.HasPrefix(name, "xmlns:") {
			continue
		}
		ns := ""
		if local, ok := strings.CutPrefix(name, "xml:"); ok {
			name, ns = local, domain.XMLNamespace
		}
		dflt := def.Def.Default
		attr := model.NewAttribute(name, ns, dflt != nil && dflt.Required)
		switch {
		case dflt == nil:
		case dflt.Fixed != nil:
			attr.WithDefault(unquote(*dflt.Fixed))
		case dflt.Value != nil:
			attr.WithDefault(unquote(*dflt.Value))
		}
		if t := def.Def.Type; t != nil {
			switch {
			case len(t.Enum) > 0:
				attr.WithEnumeration(t.Enum...)
			case len(t.Notation) > 0:
				attr.WithEnumeration(t.Notation...)
			}
		}
		e.AddAttribute(attr)
	}
}

func isPERef(name string) bool {
	return strings.HasPrefix(name, "%")
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
