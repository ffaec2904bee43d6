package xsd

import (
	"iter"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"go.trai.ch/xmlres/internal/adapters/grammar/model"
	"go.trai.ch/xmlres/internal/core/domain"
)

var (
	documentationExpr = xpath.MustCompile(`./*[local-name()='annotation']/*[local-name()='documentation']`)
	enumerationExpr   = xpath.MustCompile(`./*[local-name()='restriction']/*[local-name()='enumeration']`)
)

type builder struct {
	l        *loader
	elements map[*xmlquery.Node]*model.Element
}

// content collects what the particles of a type allow while it is applied.
type content struct {
	particles bool
	mixed     bool
	wildcard  bool
	simple    bool
	visited   map[*xmlquery.Node]bool
}

func (c *content) kind() domain.ContentKind {
	switch {
	case c.wildcard:
		return domain.ContentAny
	case c.mixed:
		return domain.ContentMixed
	case c.simple:
		return domain.ContentText
	case c.particles:
		return domain.ContentElements
	default:
		return domain.ContentEmpty
	}
}

func newBuilder(l *loader) *builder {
	return &builder{l: l, elements: make(map[*xmlquery.Node]*model.Element)}
}

func (b *builder) globalElement(c component) *model.Element {
	if e, ok := b.elements[c.node]; ok {
		return e
	}
	e := b.l.doc.AddElement(model.NewElement(c.node.SelectAttr("name"), c.schema.tns))
	b.elements[c.node] = e
	b.fill(e, c.node, c.schema)
	return e
}

func (b *builder) localElement(n *xmlquery.Node, s *schema) *model.Element {
	if ref := n.SelectAttr("ref"); ref != "" {
		qn := resolveQName(n, ref, s)
		if c, ok := b.l.elements[qn]; ok {
			return b.globalElement(c)
		}
		e := model.NewElement(qn.local, qn.ns)
		e.SetContent(domain.ContentAny)
		return e
	}
	if e, ok := b.elements[n]; ok {
		return e
	}
	ns := ""
	switch n.SelectAttr("form") {
	case "qualified":
		ns = s.tns
	case "":
		if s.qualifiedElements {
			ns = s.tns
		}
	}
	e := model.NewElement(n.SelectAttr("name"), ns)
	e.SetOwner(b.l.doc)
	b.elements[n] = e
	b.fill(e, n, s)
	return e
}

// fill applies the type of an element declaration.
func (b *builder) fill(e *model.Element, n *xmlquery.Node, s *schema) {
	e.SetDocumentation(documentation(n))
	c := &content{visited: make(map[*xmlquery.Node]bool)}

	if typ := n.SelectAttr("type"); typ != "" {
		qn := resolveQName(n, typ, s)
		switch {
		case qn.ns == domain.XSDNamespace && qn.local == "anyType":
			c.wildcard = true
		case qn.ns == domain.XSDNamespace:
			c.simple = true
		default:
			if ct, ok := b.l.complexTypes[qn]; ok {
				b.complexType(e, ct.node, ct.schema, c, false)
			} else if _, ok := b.l.simpleTypes[qn]; ok {
				c.simple = true
			} else {
				c.wildcard = true
			}
		}
		e.SetContent(c.kind())
		return
	}

	typed := false
	for child := range xsChildren(n) {
		switch child.Data {
		case "complexType":
			b.complexType(e, child, s, c, false)
			typed = true
		case "simpleType":
			c.simple = true
			typed = true
		}
	}
	if !typed {
		c.wildcard = true
	}
	e.SetContent(c.kind())
}

func (b *builder) complexType(e *model.Element, ct *xmlquery.Node, s *schema, c *content, attrsOnly bool) {
	if c.visited[ct] {
		return
	}
	c.visited[ct] = true
	if ct.SelectAttr("mixed") == "true" && !attrsOnly {
		c.mixed = true
	}
	b.body(e, ct, s, c, attrsOnly)
}

// body applies the particles and attributes of a complex type or derivation.
func (b *builder) body(e *model.Element, parent *xmlquery.Node, s *schema, c *content, attrsOnly bool) {
	for n := range xsChildren(parent) {
		switch n.Data {
		case "sequence", "choice", "all", "group", "any":
			if !attrsOnly {
				b.particle(e, n, s, true, c)
			}
		case "attribute":
			b.attribute(e, n, s)
		case "attributeGroup":
			b.attributeGroup(e, n, s, c.visited)
		case "anyAttribute":
			e.SetAnyAttribute(true)
		case "simpleContent":
			if !attrsOnly {
				c.simple = true
			}
			b.derivation(e, n, s, c, attrsOnly)
		case "complexContent":
			if n.SelectAttr("mixed") == "true" && !attrsOnly {
				c.mixed = true
			}
			b.derivation(e, n, s, c, attrsOnly)
		}
	}
}

func (b *builder) derivation(e *model.Element, holder *xmlquery.Node, s *schema, c *content, attrsOnly bool) {
	for d := range xsChildren(holder) {
		if d.Data != "extension" && d.Data != "restriction" {
			continue
		}
		base := resolveQName(d, d.SelectAttr("base"), s)
		if ct, ok := b.l.complexTypes[base]; ok {
			// A restriction restates the content model but inherits attributes.
			b.complexType(e, ct.node, ct.schema, c, attrsOnly || d.Data == "restriction")
		}
		b.body(e, d, s, c, attrsOnly)
	}
}

func (b *builder) particle(e *model.Element, p *xmlquery.Node, s *schema, required bool, c *content) {
	if p.SelectAttr("maxOccurs") == "0" {
		return
	}
	required = required && p.SelectAttr("minOccurs") != "0"
	switch p.Data {
	case "element":
		c.particles = true
		e.AddChild(b.localElement(p, s), required)
	case "sequence", "all":
		for n := range xsChildren(p) {
			b.particle(e, n, s, required, c)
		}
	case "choice":
		branches := 0
		for n := range xsChildren(p) {
			if isParticle(n) {
				branches++
			}
		}
		for n := range xsChildren(p) {
			b.particle(e, n, s, required && branches == 1, c)
		}
	case "group":
		def, defSchema := p, s
		if ref := p.SelectAttr("ref"); ref != "" {
			g, ok := b.l.groups[resolveQName(p, ref, s)]
			if !ok {
				return
			}
			def, defSchema = g.node, g.schema
		}
		if c.visited[def] {
			return
		}
		c.visited[def] = true
		defer delete(c.visited, def)
		for n := range xsChildren(def) {
			b.particle(e, n, defSchema, required, c)
		}
	case "any":
		c.particles = true
		c.wildcard = true
	}
}

func (b *builder) attribute(e *model.Element, n *xmlquery.Node, s *schema) {
	use := n.SelectAttr("use")
	if use == "prohibited" {
		return
	}
	required := use == "required"
	if ref := n.SelectAttr("ref"); ref != "" {
		qn := resolveQName(n, ref, s)
		attr := model.NewAttribute(qn.local, qn.ns, required)
		if decl, ok := b.l.attributes[qn]; ok {
			b.describeAttribute(attr, decl.node, decl.schema)
		}
		b.describeAttribute(attr, n, s)
		e.AddAttribute(attr)
		return
	}
	ns := ""
	switch n.SelectAttr("form") {
	case "qualified":
		ns = s.tns
	case "":
		if s.qualifiedAttributes {
			ns = s.tns
		}
	}
	attr := model.NewAttribute(n.SelectAttr("name"), ns, required)
	b.describeAttribute(attr, n, s)
	e.AddAttribute(attr)
}

// describeAttribute copies default, enumeration and documentation of a declaration.
// Values already set by a more specific declaration are kept.
func (b *builder) describeAttribute(attr *model.Attribute, n *xmlquery.Node, s *schema) {
	if v := n.SelectAttr("default"); v != "" {
		attr.WithDefault(v)
	} else if v := n.SelectAttr("fixed"); v != "" {
		attr.WithDefault(v)
	}
	if doc := documentation(n); doc != "" {
		attr.WithDocumentation(doc)
	}
	var values []string
	for st := range xsChildren(n) {
		if st.Data == "simpleType" {
			values = enumerations(st)
		}
	}
	if typ := n.SelectAttr("type"); typ != "" && values == nil {
		if st, ok := b.l.simpleTypes[resolveQName(n, typ, s)]; ok {
			values = enumerations(st.node)
		}
	}
	if values != nil {
		attr.WithEnumeration(values...)
	}
}

func (b *builder) attributeGroup(e *model.Element, n *xmlquery.Node, s *schema, visited map[*xmlquery.Node]bool) {
	def, defSchema := n, s
	if ref := n.SelectAttr("ref"); ref != "" {
		g, ok := b.l.attributeGroups[resolveQName(n, ref, s)]
		if !ok {
			return
		}
		def, defSchema = g.node, g.schema
	}
	if visited[def] {
		return
	}
	visited[def] = true
	for child := range xsChildren(def) {
		switch child.Data {
		case "attribute":
			b.attribute(e, child, defSchema)
		case "attributeGroup":
			b.attributeGroup(e, child, defSchema, visited)
		case "anyAttribute":
			e.SetAnyAttribute(true)
		}
	}
}

func enumerations(simpleType *xmlquery.Node) []string {
	var out []string
	for _, n := range xmlquery.QuerySelectorAll(simpleType, enumerationExpr) {
		out = append(out, n.SelectAttr("value"))
	}
	return out
}

func documentation(n *xmlquery.Node) string {
	var parts []string
	for _, d := range xmlquery.QuerySelectorAll(n, documentationExpr) {
		if text := strings.TrimSpace(d.InnerText()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

func isParticle(n *xmlquery.Node) bool {
	switch n.Data {
	case "element", "sequence", "choice", "all", "group", "any":
		return true
	}
	return false
}

func isXS(n *xmlquery.Node, local string) bool {
	return n.Type == xmlquery.ElementNode && n.NamespaceURI == domain.XSDNamespace && n.Data == local
}

// xsChildren yields the child elements of n in the XML Schema namespace.
func xsChildren(n *xmlquery.Node) iter.Seq[*xmlquery.Node] {
	return func(yield func(*xmlquery.Node) bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == xmlquery.ElementNode && c.NamespaceURI == domain.XSDNamespace {
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

// resolveQName maps a prefixed name in a schema to its namespace using the
// declarations in scope. Unprefixed names in chameleon includes take the
// namespace of the including schema.
func resolveQName(n *xmlquery.Node, value string, s *schema) qname {
	prefix, local, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		prefix, local = "", prefix
	}
	if prefix == "xml" {
		return qname{ns: domain.XMLNamespace, local: local}
	}
	ns := lookupNamespace(n, prefix)
	if ns == "" && prefix == "" && s.chameleon {
		ns = s.tns
	}
	return qname{ns: ns, local: local}
}

func lookupNamespace(n *xmlquery.Node, prefix string) string {
	for ; n != nil; n = n.Parent {
		for _, a := range n.Attr {
			if prefix == "" && a.Name.Space == "" && a.Name.Local == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Name.Space == "xmlns" && a.Name.Local == prefix {
				return a.Value
			}
		}
	}
	return ""
}
