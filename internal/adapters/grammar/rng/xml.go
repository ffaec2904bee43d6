package rng

import (
	"bytes"
	"iter"
	"strings"

	"github.com/antchfx/xmlquery"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/zerr"
)

// AnnotationsNamespace holds a:documentation and a:defaultValue.
const AnnotationsNamespace = "http://relaxng.org/ns/compatibility/annotations/1.0"

var compositors = map[string]kind{
	"group":      kindGroup,
	"interleave": kindInterleave,
	"choice":     kindChoice,
	"optional":   kindOptional,
	"zeroOrMore": kindZeroOrMore,
	"oneOrMore":  kindOneOrMore,
	"mixed":      kindMixed,
}

type xmlReader struct {
	l   *loader
	uri string
}

func (l *loader) parseXML(uri string, data []byte, sc *scope, skip map[string]bool) (*pattern, error) {
	tree, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(err, "uri", uri)
	}
	root := documentElement(tree)
	if root == nil || root.NamespaceURI != domain.RelaxNGNamespace {
		return nil, zerr.With(zerr.Wrap(domain.ErrGrammarSyntax, "document element is not a RelaxNG pattern"), "uri", uri)
	}
	r := &xmlReader{l: l, uri: uri}
	if root.Data == "grammar" {
		if err := r.grammarContent(root, sc, skip); err != nil {
			return nil, err
		}
		return &pattern{kind: kindRef, scope: sc}, nil
	}
	return r.pattern(root, sc)
}

func (r *xmlReader) grammarContent(n *xmlquery.Node, sc *scope, skip map[string]bool) error {
	for c := range rngChildren(n) {
		switch c.Data {
		case "start", "define":
			name := ""
			if c.Data == "define" {
				name = strings.TrimSpace(c.SelectAttr("name"))
			}
			if skip[name] {
				continue
			}
			p, err := r.group(c, sc)
			if err != nil {
				return err
			}
			sc.define(name, p, c.SelectAttr("combine") == "interleave")
		case "div":
			if err := r.grammarContent(c, sc, skip); err != nil {
				return err
			}
		case "include":
			if err := r.grammarContent(c, sc, skip); err != nil {
				return err
			}
			overridden := make(map[string]bool, len(skip))
			for k := range skip {
				overridden[k] = true
			}
			overrides(c, overridden)
			if err := r.l.include(r.uri, strings.TrimSpace(c.SelectAttr("href")), sc, overridden); err != nil {
				return err
			}
		}
	}
	return nil
}

// overrides collects the names of the start and define elements of an include.
func overrides(n *xmlquery.Node, names map[string]bool) {
	for c := range rngChildren(n) {
		switch c.Data {
		case "start":
			names[""] = true
		case "define":
			names[strings.TrimSpace(c.SelectAttr("name"))] = true
		case "div":
			overrides(c, names)
		}
	}
}

func (r *xmlReader) group(n *xmlquery.Node, sc *scope) (*pattern, error) {
	children, err := r.patterns(rngChildren(n), sc)
	if err != nil {
		return nil, err
	}
	return group(children), nil
}

func (r *xmlReader) patterns(nodes iter.Seq[*xmlquery.Node], sc *scope) ([]*pattern, error) {
	var out []*pattern
	for c := range nodes {
		p, err := r.pattern(c, sc)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *xmlReader) pattern(n *xmlquery.Node, sc *scope) (*pattern, error) {
	switch n.Data {
	case "element", "attribute":
		return r.named(n, sc)
	case "group", "interleave", "choice":
		children, err := r.patterns(rngChildren(n), sc)
		if err != nil {
			return nil, err
		}
		return &pattern{kind: compositors[n.Data], children: children}, nil
	case "optional", "zeroOrMore", "oneOrMore", "mixed":
		body, err := r.group(n, sc)
		if err != nil {
			return nil, err
		}
		return &pattern{kind: compositors[n.Data], children: []*pattern{body}}, nil
	case "text", "data", "list":
		return &pattern{kind: kindText}, nil
	case "value":
		return &pattern{kind: kindValue, value: n.InnerText()}, nil
	case "empty":
		return &pattern{kind: kindEmpty}, nil
	case "notAllowed":
		return &pattern{kind: kindNotAllowed}, nil
	case "ref":
		return &pattern{kind: kindRef, ref: strings.TrimSpace(n.SelectAttr("name")), scope: sc}, nil
	case "parentRef":
		return &pattern{kind: kindRef, ref: strings.TrimSpace(n.SelectAttr("name")), scope: sc.parent}, nil
	case "externalRef":
		p, err := r.l.external(r.uri, strings.TrimSpace(n.SelectAttr("href")))
		if err != nil {
			return nil, err
		}
		if p == nil {
			return &pattern{kind: kindRef}, nil
		}
		return p, nil
	case "grammar":
		nested := newScope(sc)
		if err := r.grammarContent(n, nested, nil); err != nil {
			return nil, err
		}
		return &pattern{kind: kindRef, scope: nested}, nil
	default:
		return nil, nil
	}
}

// named reads an element or attribute pattern. The name comes from the name
// attribute or from the first child, which is then a name class.
func (r *xmlReader) named(n *xmlquery.Node, sc *scope) (*pattern, error) {
	isElement := n.Data == "element"
	p := &pattern{kind: kindElement, doc: documentation(n)}
	if !isElement {
		p.kind = kindAttribute
		for _, a := range n.Attr {
			if a.NamespaceURI == AnnotationsNamespace && a.Name.Local == "defaultValue" {
				p.defaultValue = a.Value
			}
		}
	}

	body := rngChildren(n)
	if name, ok := attrValue(n, "name"); ok {
		p.names.names = []qname{resolveName(n, name, nameNS(n, isElement))}
	} else {
		var first *xmlquery.Node
		for c := range rngChildren(n) {
			first = c
			break
		}
		if first == nil {
			return nil, nil
		}
		p.names = nameClassOf(first, nameNS(n, isElement))
		body = func(yield func(*xmlquery.Node) bool) {
			for c := range rngChildren(n) {
				if c != first && !yield(c) {
					return
				}
			}
		}
	}

	children, err := r.patterns(body, sc)
	if err != nil {
		return nil, err
	}
	if !isElement && len(children) == 0 {
		children = []*pattern{{kind: kindText}}
	}
	p.children = children
	return p, nil
}

// nameNS is the namespace unprefixed names of n take. Elements inherit the ns
// attribute from their ancestors; attributes only use their own.
func nameNS(n *xmlquery.Node, inherit bool) string {
	if !inherit {
		v, _ := attrValue(n, "ns")
		return v
	}
	for ; n != nil; n = n.Parent {
		if v, ok := attrValue(n, "ns"); ok {
			return v
		}
	}
	return ""
}

func nameClassOf(n *xmlquery.Node, ns string) nameClass {
	if v, ok := attrValue(n, "ns"); ok {
		ns = v
	}
	switch n.Data {
	case "name":
		return nameClass{names: []qname{resolveName(n, n.InnerText(), ns)}}
	case "choice":
		var nc nameClass
		for c := range rngChildren(n) {
			sub := nameClassOf(c, ns)
			nc.names = append(nc.names, sub.names...)
			nc.any = nc.any || sub.any
		}
		return nc
	default:
		// anyName and nsName
		return nameClass{any: true}
	}
}

func resolveName(n *xmlquery.Node, value, defaultNS string) qname {
	prefix, local, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return qname{ns: defaultNS, local: prefix}
	}
	if prefix == "xml" {
		return qname{ns: domain.XMLNamespace, local: local}
	}
	return qname{ns: lookupNamespace(n, prefix), local: local}
}

func lookupNamespace(n *xmlquery.Node, prefix string) string {
	for ; n != nil; n = n.Parent {
		for _, a := range n.Attr {
			if a.Name.Space == "xmlns" && a.Name.Local == prefix {
				return a.Value
			}
		}
	}
	return ""
}

func attrValue(n *xmlquery.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Name.Space == "" && a.Name.Local == name {
			return strings.TrimSpace(a.Value), true
		}
	}
	return "", false
}

func documentation(n *xmlquery.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.NamespaceURI == AnnotationsNamespace && c.Data == "documentation" {
			return strings.TrimSpace(c.InnerText())
		}
	}
	return ""
}

// rngChildren yields the child elements of n in the RelaxNG namespace.
func rngChildren(n *xmlquery.Node) iter.Seq[*xmlquery.Node] {
	return func(yield func(*xmlquery.Node) bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode && c.NamespaceURI == domain.RelaxNGNamespace {
				if !yield(c) {
					return
				}
			}
		}
	}
}

func documentElement(tree *xmlquery.Node) *xmlquery.Node {
	for top := tree; top != nil; top = top.NextSibling {
		if top.Type == xmlquery.ElementNode {
			return top
		}
		for n := top.FirstChild; n != nil; n = n.NextSibling {
			if n.Type == xmlquery.ElementNode {
				return n
			}
		}
	}
	return nil
}
