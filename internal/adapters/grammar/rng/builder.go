package rng

import (
	"go.trai.ch/xmlres/internal/adapters/grammar/model"
	"go.trai.ch/xmlres/internal/core/domain"
)

type elementKey struct {
	p    *pattern
	name qname
}

type builder struct {
	doc  *model.Document
	memo map[elementKey]*model.Element
}

func newBuilder(doc *model.Document) *builder {
	return &builder{doc: doc, memo: make(map[elementKey]*model.Element)}
}

// build declares the elements the start pattern allows as document element
// and everything reachable from them.
func (b *builder) build(start *pattern) {
	var roots []*pattern
	b.topElements(start, make(map[*pattern]bool), &roots)
	for _, p := range roots {
		for _, n := range p.names.names {
			e := b.element(p, n, true)
			if b.doc.TargetNamespace() == "" {
				b.doc.SetTargetNamespace(e.NamespaceURI())
			}
		}
	}
}

func (b *builder) topElements(p *pattern, visited map[*pattern]bool, out *[]*pattern) {
	if p == nil {
		return
	}
	switch p.kind {
	case kindElement:
		*out = append(*out, p)
	case kindAttribute:
	case kindRef:
		target := resolve(p)
		if target == nil || visited[target] {
			return
		}
		visited[target] = true
		b.topElements(target, visited, out)
	default:
		for _, c := range p.children {
			b.topElements(c, visited, out)
		}
	}
}

func resolve(p *pattern) *pattern {
	if p.scope == nil {
		return nil
	}
	return p.scope.lookup(p.ref)
}

func (b *builder) element(p *pattern, name qname, global bool) *model.Element {
	key := elementKey{p: p, name: name}
	if e, ok := b.memo[key]; ok {
		return e
	}
	e := model.NewElement(name.local, name.ns)
	if global {
		if existing := b.doc.AddElement(e); existing != e {
			b.memo[key] = existing
			return existing
		}
	} else {
		e.SetOwner(b.doc)
	}
	b.memo[key] = e
	e.SetDocumentation(p.doc)

	w := &contentWalk{b: b, el: e, visited: make(map[*pattern]bool)}
	for _, c := range p.children {
		w.content(c, true)
	}
	switch {
	case w.any:
		e.SetContent(domain.ContentAny)
	case w.text && w.elements > 0:
		e.SetContent(domain.ContentMixed)
	case w.text:
		e.SetContent(domain.ContentText)
	case w.elements > 0:
		e.SetContent(domain.ContentElements)
	default:
		e.SetContent(domain.ContentEmpty)
	}
	return e
}

type contentWalk struct {
	b        *builder
	el       *model.Element
	visited  map[*pattern]bool
	elements int
	text     bool
	any      bool
}

func (w *contentWalk) content(p *pattern, required bool) {
	switch p.kind {
	case kindElement:
		if p.names.any {
			w.any = true
			return
		}
		for _, n := range p.names.names {
			w.el.AddChild(w.b.element(p, n, false), required && len(p.names.names) == 1)
			w.elements++
		}
	case kindAttribute:
		if p.names.any {
			w.el.SetAnyAttribute(true)
			return
		}
		for _, n := range p.names.names {
			a := model.NewAttribute(n.local, n.ns, required && len(p.names.names) == 1).
				WithDocumentation(p.doc)
			if p.defaultValue != "" {
				a.WithDefault(p.defaultValue)
			}
			if values, ok := enumeration(group(p.children)); ok {
				a.WithEnumeration(values...)
			}
			w.el.AddAttribute(a)
		}
	case kindGroup, kindInterleave, kindOneOrMore:
		for _, c := range p.children {
			w.content(c, required)
		}
	case kindChoice:
		for _, c := range p.children {
			w.content(c, required && len(p.children) == 1)
		}
	case kindOptional, kindZeroOrMore:
		for _, c := range p.children {
			w.content(c, false)
		}
	case kindMixed:
		w.text = true
		for _, c := range p.children {
			w.content(c, required)
		}
	case kindText, kindValue:
		w.text = true
	case kindRef:
		target := resolve(p)
		if target == nil {
			w.any = true
			return
		}
		if w.visited[target] {
			return
		}
		w.visited[target] = true
		w.content(target, required)
	}
}

// enumeration returns the values of a pattern made only of value choices.
func enumeration(p *pattern) ([]string, bool) {
	switch p.kind {
	case kindValue:
		return []string{p.value}, true
	case kindChoice:
		var out []string
		for _, c := range p.children {
			values, ok := enumeration(c)
			if !ok {
				return nil, false
			}
			out = append(out, values...)
		}
		return out, len(out) > 0
	default:
		return nil, false
	}
}
