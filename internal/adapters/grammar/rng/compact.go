package rng

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/zerr"
)

type rncFile struct {
	Decls []*rncDecl `@@*`
	Items []*rncItem `@@*`
}

type rncDecl struct {
	Namespace *rncNamespace `  @@`
	Datatypes *rncDatatypes `| @@`
}

type rncNamespace struct {
	Default bool   `@"default"? "namespace"`
	Prefix  string `@Ident? "="`
	URI     string `@(String | "inherit")`
}

type rncDatatypes struct {
	Prefix string `"datatypes" @Ident "="`
	URI    string `@String`
}

type rncItem struct {
	Start   *rncStart   `  @@`
	Define  *rncDefine  `| @@`
	Include *rncInclude `| @@`
	Div     *rncDiv     `| @@`
	Pattern *rncPattern `| @@`
}

type rncStart struct {
	Combine string      `"start" @("=" | Assign)`
	Pattern *rncPattern `@@`
}

type rncDefine struct {
	Name    string      `@Ident`
	Combine string      `@("=" | Assign)`
	Pattern *rncPattern `@@`
}

type rncInclude struct {
	Href    string     `"include" @String`
	Inherit string     `( "inherit" "=" @Ident )?`
	Body    []*rncItem `( "{" @@* "}" )?`
}

type rncDiv struct {
	Items []*rncItem `"div" "{" @@* "}"`
}

type rncPattern struct {
	First *rncParticle   `@@`
	Rest  []*rncOperated `@@*`
}

type rncOperated struct {
	Op       string       `@("," | "|" | "&")`
	Particle *rncParticle `@@`
}

type rncParticle struct {
	Primary *rncPrimary `@@`
	Occurs  string      `@("?" | "*" | "+")?`
}

type rncPrimary struct {
	Element    *rncNamed    `  "element" @@`
	Attribute  *rncNamed    `| "attribute" @@`
	Mixed      *rncPattern  `| "mixed" "{" @@ "}"`
	List       *rncPattern  `| "list" "{" @@ "}"`
	Text       bool         `| @"text"`
	Empty      bool         `| @"empty"`
	NotAllowed bool         `| @"notAllowed"`
	Parent     *string      `| "parent" @Ident`
	External   *string      `| "external" @String`
	Grammar    []*rncItem   `| "grammar" "{" @@* "}"`
	Group      *rncPattern  `| "(" @@ ")"`
	Value      *string      `| @String`
	Datatype   *rncDatatype `| @@`
	Ref        *string      `| @Ident`
}

type rncDatatype struct {
	Name   string      `@(CName | "string" | "token")`
	Value  *string     `@String?`
	Params []*rncParam `( "{" @@* "}" )?`
}

type rncParam struct {
	Name  string `@Ident "="`
	Value string `@String`
}

type rncNamed struct {
	Names *rncNameClass `@@`
	Body  *rncPattern   `"{" @@ "}"`
}

type rncNameClass struct {
	First  *rncName      `@@`
	Rest   []*rncName    `( "|" @@ )*`
	Except *rncNameClass `( "-" @@ )?`
}

type rncName struct {
	Any   bool          `  @"*"`
	Name  string        `| @(CName | Ident)`
	Group *rncNameClass `| "(" @@ ")"`
}

var rncLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Annotation", Pattern: `\[(?:[^\[\]"']|"[^"]*"|'[^']*'|\[[^\[\]]*\])*\]`},
	{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
	{Name: "CName", Pattern: `[\p{L}_][\p{L}\p{N}_.\-]*:(?:\*|[\p{L}_][\p{L}\p{N}_.\-]*)`},
	{Name: "Ident", Pattern: `\\?[\p{L}_][\p{L}\p{N}_.\-]*`},
	{Name: "Assign", Pattern: `[|&]=`},
	{Name: "Punct", Pattern: `[=,|&?*+(){}\-~]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var rncParser = participle.MustBuild[rncFile](
	participle.Lexer(rncLexer),
	participle.Elide("Comment", "Annotation", "Whitespace"),
	participle.UseLookahead(4),
)

// compact converts the compact syntax tree into patterns.
type compact struct {
	l         *loader
	uri       string
	prefixes  map[string]string
	defaultNS string
}

func (l *loader) parseCompact(uri string, data []byte, sc *scope, skip map[string]bool) (*pattern, error) {
	f, err := rncParser.ParseBytes(uri, data)
	if err != nil {
		return nil, zerr.With(err, "uri", uri)
	}
	c := &compact{l: l, uri: uri, prefixes: map[string]string{"xml": domain.XMLNamespace}}
	for _, d := range f.Decls {
		if ns := d.Namespace; ns != nil {
			value := unquote(ns.URI)
			if ns.URI == "inherit" {
				value = ""
			}
			if ns.Prefix != "" {
				c.prefixes[ns.Prefix] = value
			}
			if ns.Default {
				c.defaultNS = value
			}
		}
	}

	if len(f.Items) == 1 && f.Items[0].Pattern != nil {
		return c.pattern(f.Items[0].Pattern, sc)
	}
	if err := c.items(f.Items, sc, skip); err != nil {
		return nil, err
	}
	return &pattern{kind: kindRef, scope: sc}, nil
}

func (c *compact) items(items []*rncItem, sc *scope, skip map[string]bool) error {
	for _, it := range items {
		switch {
		case it.Start != nil:
			if skip[""] {
				continue
			}
			p, err := c.pattern(it.Start.Pattern, sc)
			if err != nil {
				return err
			}
			sc.define("", p, it.Start.Combine == "&=")
		case it.Define != nil:
			name := strings.TrimPrefix(it.Define.Name, `\`)
			if skip[name] {
				continue
			}
			p, err := c.pattern(it.Define.Pattern, sc)
			if err != nil {
				return err
			}
			sc.define(name, p, it.Define.Combine == "&=")
		case it.Div != nil:
			if err := c.items(it.Div.Items, sc, skip); err != nil {
				return err
			}
		case it.Include != nil:
			if err := c.items(it.Include.Body, sc, skip); err != nil {
				return err
			}
			overridden := make(map[string]bool, len(skip))
			for k := range skip {
				overridden[k] = true
			}
			compactOverrides(it.Include.Body, overridden)
			if err := c.l.include(c.uri, unquote(it.Include.Href), sc, overridden); err != nil {
				return err
			}
		case it.Pattern != nil:
			return zerr.With(zerr.Wrap(domain.ErrGrammarSyntax, "pattern mixed with grammar content"), "uri", c.uri)
		}
	}
	return nil
}

func compactOverrides(items []*rncItem, names map[string]bool) {
	for _, it := range items {
		switch {
		case it.Start != nil:
			names[""] = true
		case it.Define != nil:
			names[strings.TrimPrefix(it.Define.Name, `\`)] = true
		case it.Div != nil:
			compactOverrides(it.Div.Items, names)
		}
	}
}

func (c *compact) pattern(p *rncPattern, sc *scope) (*pattern, error) {
	first, err := c.particle(p.First, sc)
	if err != nil {
		return nil, err
	}
	if len(p.Rest) == 0 {
		return first, nil
	}
	out := &pattern{kind: kindGroup, children: []*pattern{first}}
	switch p.Rest[0].Op {
	case "|":
		out.kind = kindChoice
	case "&":
		out.kind = kindInterleave
	}
	for _, r := range p.Rest {
		next, err := c.particle(r.Particle, sc)
		if err != nil {
			return nil, err
		}
		out.children = append(out.children, next)
	}
	return out, nil
}

func (c *compact) particle(p *rncParticle, sc *scope) (*pattern, error) {
	inner, err := c.primary(p.Primary, sc)
	if err != nil {
		return nil, err
	}
	switch p.Occurs {
	case "?":
		return &pattern{kind: kindOptional, children: []*pattern{inner}}, nil
	case "*":
		return &pattern{kind: kindZeroOrMore, children: []*pattern{inner}}, nil
	case "+":
		return &pattern{kind: kindOneOrMore, children: []*pattern{inner}}, nil
	default:
		return inner, nil
	}
}

func (c *compact) primary(p *rncPrimary, sc *scope) (*pattern, error) {
	switch {
	case p.Element != nil:
		return c.named(kindElement, p.Element, sc)
	case p.Attribute != nil:
		return c.named(kindAttribute, p.Attribute, sc)
	case p.Mixed != nil:
		body, err := c.pattern(p.Mixed, sc)
		if err != nil {
			return nil, err
		}
		return &pattern{kind: kindMixed, children: []*pattern{body}}, nil
	case p.List != nil, p.Text:
		return &pattern{kind: kindText}, nil
	case p.Empty:
		return &pattern{kind: kindEmpty}, nil
	case p.NotAllowed:
		return &pattern{kind: kindNotAllowed}, nil
	case p.Parent != nil:
		return &pattern{kind: kindRef, ref: strings.TrimPrefix(*p.Parent, `\`), scope: sc.parent}, nil
	case p.External != nil:
		ext, err := c.l.external(c.uri, unquote(*p.External))
		if err != nil {
			return nil, err
		}
		if ext == nil {
			return &pattern{kind: kindRef}, nil
		}
		return ext, nil
	case p.Grammar != nil:
		nested := newScope(sc)
		if err := c.items(p.Grammar, nested, nil); err != nil {
			return nil, err
		}
		return &pattern{kind: kindRef, scope: nested}, nil
	case p.Group != nil:
		return c.pattern(p.Group, sc)
	case p.Value != nil:
		return &pattern{kind: kindValue, value: unquote(*p.Value)}, nil
	case p.Datatype != nil:
		if p.Datatype.Value != nil {
			return &pattern{kind: kindValue, value: unquote(*p.Datatype.Value)}, nil
		}
		return &pattern{kind: kindText}, nil
	case p.Ref != nil:
		return &pattern{kind: kindRef, ref: strings.TrimPrefix(*p.Ref, `\`), scope: sc}, nil
	default:
		return &pattern{kind: kindEmpty}, nil
	}
}

func (c *compact) named(k kind, n *rncNamed, sc *scope) (*pattern, error) {
	body, err := c.pattern(n.Body, sc)
	if err != nil {
		return nil, err
	}
	return &pattern{kind: k, names: c.nameClass(n.Names, k == kindElement), children: []*pattern{body}}, nil
}

func (c *compact) nameClass(nc *rncNameClass, isElement bool) nameClass {
	var out nameClass
	for _, n := range append([]*rncName{nc.First}, nc.Rest...) {
		switch {
		case n.Any:
			out.any = true
		case n.Group != nil:
			sub := c.nameClass(n.Group, isElement)
			out.names = append(out.names, sub.names...)
			out.any = out.any || sub.any
		case strings.HasSuffix(n.Name, ":*"):
			out.any = true
		default:
			out.names = append(out.names, c.resolve(n.Name, isElement))
		}
	}
	return out
}

func (c *compact) resolve(name string, isElement bool) qname {
	name = strings.TrimPrefix(name, `\`)
	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		if isElement {
			return qname{ns: c.defaultNS, local: name}
		}
		return qname{local: name}
	}
	return qname{ns: c.prefixes[prefix], local: local}
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
