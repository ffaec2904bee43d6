// Package dom parses XML documents into the read-only tree the grammar
// registry and the validator work on.
package dom

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"maps"
	"regexp"
	"strings"

	"github.com/antchfx/xmlquery"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/net/html/charset"
)

// Parser builds documents with xmlquery.
type Parser struct{}

var _ ports.DocumentParser = (*Parser)(nil)

// NewParser creates a new document parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements ports.DocumentParser.
func (p *Parser) Parse(uri string, r io.Reader) (ports.Document, error) {
	return p.ParseDocument(uri, r)
}

// ParseDocument parses r into a Document. A document that is not well-formed
// yields a *domain.XMLSyntaxError.
func (p *Parser) ParseDocument(uri string, r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDocumentParseFailed.Error()), "uri", uri)
	}
	src := string(data)

	doc := &Document{uri: uri}
	for _, tok := range scanProlog(src) {
		switch tok.kind {
		case prologDoctype:
			if doc.doctype != nil {
				continue
			}
			dt, err := parseDoctype(tok.text)
			if err != nil {
				return nil, &domain.XMLSyntaxError{URI: uri, Line: -1, Msg: "malformed DOCTYPE: " + err.Error()}
			}
			doc.doctype = dt
			doc.prolog = append(doc.prolog, domain.PrologItem{Doctype: dt})
		case prologPI:
			target, inst := tok.text, ""
			if i := strings.IndexAny(tok.text, " \t\r\n"); i >= 0 {
				target, inst = tok.text[:i], tok.text[i:]
			}
			if target != domain.XMLModelTarget {
				continue
			}
			model := parseXMLModel(inst)
			if model.Href == "" {
				continue
			}
			doc.models = append(doc.models, model)
			doc.prolog = append(doc.prolog, domain.PrologItem{XMLModel: &model})
		}
	}

	var entities map[string]string
	if dt := doc.doctype; dt != nil {
		entities = make(map[string]string)
		if dt.PublicID != "" || dt.SystemID != "" {
			// Entities of an external DTD are unknown at this point.
			maps.Copy(entities, xml.HTMLEntity)
		}
		maps.Copy(entities, internalEntities(dt.InternalSubset))
	}

	tree, err := xmlquery.ParseWithOptions(bytes.NewReader(data), xmlquery.ParserOptions{
		Decoder: &xmlquery.DecoderOptions{
			Strict:        true,
			Entity:        entities,
			CharsetReader: charset.NewReaderLabel,
		},
	})
	if err != nil {
		return nil, syntaxError(uri, err)
	}

	// Nodes preceding an XML declaration-less document element may be
	// attached as siblings of the document node.
	ranges := startTagRanges(src)
	next := 0
	for top := tree; top != nil && doc.root == nil; top = top.NextSibling {
		if top.Type == xmlquery.ElementNode {
			doc.root = buildElement(top, nil, ranges, &next)
			break
		}
		for n := top.FirstChild; n != nil; n = n.NextSibling {
			if n.Type == xmlquery.ElementNode {
				doc.root = buildElement(n, nil, ranges, &next)
				break
			}
		}
	}
	doc.readSchemaLocations()
	return doc, nil
}

func buildElement(n *xmlquery.Node, parent *Element, ranges []domain.Range, next *int) *Element {
	e := &Element{node: n, parent: parent}
	if *next < len(ranges) {
		e.rng = ranges[*next]
	}
	*next++
	for _, a := range n.Attr {
		e.attrs = append(e.attrs, convertAttr(a))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.ElementNode:
			e.children = append(e.children, buildElement(c, e, ranges, next))
		case xmlquery.TextNode, xmlquery.CharDataNode:
			if strings.TrimSpace(c.Data) != "" {
				e.hasText = true
			}
		}
	}
	return e
}

func convertAttr(a xmlquery.Attr) domain.Attribute {
	out := domain.Attribute{LocalName: a.Name.Local, Value: a.Value}
	switch {
	case a.Name.Space == "xmlns":
		out.Prefix = "xmlns"
		out.NamespaceURI = domain.XMLNSNamespace
	case a.Name.Space == "" && a.Name.Local == "xmlns":
		out.NamespaceURI = domain.XMLNSNamespace
	case a.NamespaceURI == domain.XMLNamespace:
		out.Prefix = "xml"
		out.NamespaceURI = domain.XMLNamespace
	default:
		out.NamespaceURI = a.NamespaceURI
		if a.Name.Space != a.NamespaceURI {
			out.Prefix = a.Name.Space
		}
	}
	return out
}

var pseudoAttr = regexp.MustCompile(`([A-Za-z_][\w.:-]*)\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// parseXMLModel reads the pseudo-attributes of an xml-model processing instruction.
func parseXMLModel(inst string) domain.XMLModel {
	var m domain.XMLModel
	for _, match := range pseudoAttr.FindAllStringSubmatch(inst, -1) {
		value := match[2]
		if value == "" {
			value = match[3]
		}
		switch match[1] {
		case "href":
			m.Href = value
		case "type":
			m.Type = value
		case "schematypens":
			m.Schematypens = value
		}
	}
	return m
}

func syntaxError(uri string, err error) error {
	var se *xml.SyntaxError
	if errors.As(err, &se) {
		return &domain.XMLSyntaxError{URI: uri, Line: se.Line - 1, Msg: se.Msg}
	}
	return &domain.XMLSyntaxError{URI: uri, Line: -1, Msg: err.Error()}
}
