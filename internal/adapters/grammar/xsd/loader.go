package xsd

import (
	"bytes"
	"context"
	"errors"

	"github.com/antchfx/xmlquery"
	"go.trai.ch/xmlres/internal/adapters/grammar/model"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
)

type qname struct {
	ns    string
	local string
}

type schema struct {
	uri                 string
	tns                 string
	chameleon           bool
	qualifiedElements   bool
	qualifiedAttributes bool
}

type component struct {
	node   *xmlquery.Node
	schema *schema
}

// loader reads a schema and everything it includes, imports or redefines into
// one symbol space per component kind.
type loader struct {
	ctx      context.Context
	entities ports.EntityResolver
	doc      *model.Document
	loaded   map[string]*schema

	elements        map[qname]component
	elementOrder    []qname
	complexTypes    map[qname]component
	simpleTypes     map[qname]component
	groups          map[qname]component
	attributeGroups map[qname]component
	attributes      map[qname]component
}

// ParseBytes builds the content model of the schema at uri.
func ParseBytes(ctx context.Context, uri string, data []byte, entities ports.EntityResolver) (*model.Document, error) {
	l := &loader{
		ctx:             ctx,
		entities:        entities,
		doc:             model.NewDocument(uri, domain.GrammarXSD, ""),
		loaded:          make(map[string]*schema),
		elements:        make(map[qname]component),
		complexTypes:    make(map[qname]component),
		simpleTypes:     make(map[qname]component),
		groups:          make(map[qname]component),
		attributeGroups: make(map[qname]component),
		attributes:      make(map[qname]component),
	}
	main, err := l.load(uri, data, "", false)
	if err != nil {
		return nil, err
	}
	l.doc.SetTargetNamespace(main.tns)

	b := newBuilder(l)
	for _, qn := range l.elementOrder {
		b.globalElement(l.elements[qn])
	}
	return l.doc, nil
}

func (l *loader) load(uri string, data []byte, chameleonNS string, chameleon bool) (*schema, error) {
	if s, ok := l.loaded[uri]; ok {
		return s, nil
	}
	if err := l.ctx.Err(); err != nil {
		return nil, err
	}
	tree, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(err, "uri", uri)
	}
	root := documentElement(tree)
	if root == nil || !isXS(root, "schema") {
		return nil, zerr.With(zerr.Wrap(domain.ErrGrammarSyntax, "document element is not xs:schema"), "uri", uri)
	}

	s := &schema{
		uri:                 uri,
		tns:                 root.SelectAttr("targetNamespace"),
		qualifiedElements:   root.SelectAttr("elementFormDefault") == "qualified",
		qualifiedAttributes: root.SelectAttr("attributeFormDefault") == "qualified",
	}
	if s.tns == "" && chameleon {
		s.tns = chameleonNS
		s.chameleon = chameleonNS != ""
	}
	l.loaded[uri] = s

	for n := range xsChildren(root) {
		switch n.Data {
		case "include":
			if err := l.loadRef(uri, n.SelectAttr("schemaLocation"), "", s.tns, true); err != nil {
				return nil, err
			}
		case "import":
			ns := n.SelectAttr("namespace")
			if err := l.loadRef(uri, n.SelectAttr("schemaLocation"), ns, "", false); err != nil {
				return nil, err
			}
		case "redefine":
			if err := l.loadRef(uri, n.SelectAttr("schemaLocation"), "", s.tns, true); err != nil {
				return nil, err
			}
			for r := range xsChildren(n) {
				l.register(r, s, true)
			}
		default:
			l.register(n, s, false)
		}
	}
	return s, nil
}

func (l *loader) register(n *xmlquery.Node, s *schema, override bool) {
	name := n.SelectAttr("name")
	if name == "" {
		return
	}
	qn := qname{ns: s.tns, local: name}
	var table map[qname]component
	switch n.Data {
	case "element":
		table = l.elements
		if _, ok := table[qn]; !ok {
			l.elementOrder = append(l.elementOrder, qn)
		}
	case "complexType":
		table = l.complexTypes
	case "simpleType":
		table = l.simpleTypes
	case "group":
		table = l.groups
	case "attributeGroup":
		table = l.attributeGroups
	case "attribute":
		table = l.attributes
	default:
		return
	}
	if _, ok := table[qn]; ok && !override {
		return
	}
	table[qn] = component{node: n, schema: s}
}

// loadRef follows an include, import or redefine. Only in-flight downloads
// abort the build; references that cannot be read are skipped.
func (l *loader) loadRef(base, location, namespace, chameleonNS string, chameleon bool) error {
	if location == "" && namespace == "" {
		return nil
	}
	src, err := model.Open(l.ctx, l.entities, domain.Identifier{PublicID: namespace, SystemID: location, BaseLocation: base})
	if err != nil {
		if errors.Is(err, domain.ErrBusyDownloading) {
			return err
		}
		return nil
	}
	if src == nil {
		if location != "" {
			l.doc.AddDependency(domain.ExpandSystemID(location, base))
		}
		return nil
	}
	l.doc.AddDependency(src.SystemID)
	_, err = l.load(src.SystemID, src.Body, chameleonNS, chameleon)
	return err
}
