package dtd

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// file is a sequence of markup declarations. Comments, processing
// instructions and conditional section markers are elided by the lexer.
type file struct {
	Decls []*decl `@@*`
}

type decl struct {
	Element  *elementDecl  `  @@`
	Attlist  *attlistDecl  `| @@`
	Entity   *entityDecl   `| @@`
	Notation *notationDecl `| @@`
	PERef    *string       `| @PERef`
}

type elementDecl struct {
	Name    string       `"<!ELEMENT" @(Name | PERef)`
	Content *contentSpec `@@ ">"`
}

type contentSpec struct {
	Empty    bool      `  @"EMPTY"`
	Any      bool      `| @"ANY"`
	Particle *particle `| @@`
}

type particle struct {
	Item   *item  `@@`
	Occurs string `@("?" | "*" | "+")?`
}

type item struct {
	PCData bool     `  @"#PCDATA"`
	Name   *string  `| @Name`
	PERef  *string  `| @PERef`
	Group  *cpGroup `| "(" @@ ")"`
}

type cpGroup struct {
	First *particle    `@@`
	Rest  []*groupItem `@@*`
}

type groupItem struct {
	Sep      string    `@("|" | ",")`
	Particle *particle `@@`
}

type attlistDecl struct {
	Element string    `"<!ATTLIST" @(Name | PERef)`
	Defs    []*attDef `@@* ">"`
}

type attDef struct {
	PERef *string        `  @PERef`
	Def   *attDefinition `| @@`
}

type attDefinition struct {
	Name    string       `@Name`
	Type    *attType     `@@`
	Default *defaultDecl `@@`
}

type attType struct {
	Enum     []string `  "(" @Name ( "|" @Name )* ")"`
	Notation []string `| "NOTATION" "(" @Name ( "|" @Name )* ")"`
	Kind     string   `| @(Name | PERef)`
}

type defaultDecl struct {
	Required bool    `  @"#REQUIRED"`
	Implied  bool    `| @"#IMPLIED"`
	Fixed    *string `| "#FIXED" @String`
	Value    *string `| @String`
	PERef    *string `| @PERef`
}

type entityDecl struct {
	Parameter bool         `"<!ENTITY" @"%"?`
	Name      string       `@Name`
	Value     *entityValue `@@`
	NData     string       `( "NDATA" @Name )? ">"`
}

type entityValue struct {
	Literal  *string     `  @String`
	External *externalID `| @@`
}

type externalID struct {
	System *string    `  "SYSTEM" @String`
	Public *publicExt `| "PUBLIC" @@`
}

type publicExt struct {
	PublicID string  `@String`
	SystemID *string `@String?`
}

type notationDecl struct {
	Name     string      `"<!NOTATION" @Name`
	External *externalID `@@ ">"`
}

var dtdLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `<!--[\s\S]*?-->`},
	{Name: "PI", Pattern: `<\?[\s\S]*?\?>`},
	{Name: "Ignore", Pattern: `<!\[\s*IGNORE\s*\[[\s\S]*?\]\]>`},
	{Name: "CondStart", Pattern: `<!\[\s*(?:INCLUDE|%[^;\s]+;)\s*\[`},
	{Name: "CondEnd", Pattern: `\]\]>`},
	{Name: "Decl", Pattern: `<!(?:ELEMENT|ATTLIST|ENTITY|NOTATION)`},
	{Name: "PERef", Pattern: `%[^;\s%"'<>()|,]+;`},
	{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
	{Name: "Keyword", Pattern: `#[A-Z]+`},
	{Name: "Name", Pattern: `[\p{L}\p{N}_.:\-]+`},
	{Name: "Punct", Pattern: `[()|,?*+>%]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var dtdParser = participle.MustBuild[file](
	participle.Lexer(dtdLexer),
	participle.Elide("Comment", "PI", "Ignore", "CondStart", "CondEnd", "Whitespace"),
	participle.UseLookahead(2),
)
