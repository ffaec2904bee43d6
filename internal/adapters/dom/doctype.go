package dom

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"go.trai.ch/xmlres/internal/core/domain"
)

// doctypeDecl is the body of a <!DOCTYPE ...> directive.
type doctypeDecl struct {
	Name     string      `"DOCTYPE" @Name`
	External *externalID `@@?`
	Subset   *string     `@Subset?`
}

type externalID struct {
	Public *publicID `  "PUBLIC" @@`
	System *string   `| "SYSTEM" @String`
}

type publicID struct {
	PublicID string  `@String`
	SystemID *string `@String?`
}

var doctypeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Subset", Pattern: `\[[\s\S]*\]`},
	{Name: "String", Pattern: `"[^"]*"|'[^']*'`},
	{Name: "Name", Pattern: `[^\s"'\[\]>]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var doctypeParser = participle.MustBuild[doctypeDecl](
	participle.Lexer(doctypeLexer),
	participle.Elide("Whitespace"),
)

// parseDoctype parses the text of a DOCTYPE directive without the <! and > markers.
func parseDoctype(directive string) (*domain.Doctype, error) {
	decl, err := doctypeParser.ParseString("", directive)
	if err != nil {
		return nil, err
	}
	dt := &domain.Doctype{Name: decl.Name}
	if ext := decl.External; ext != nil {
		switch {
		case ext.Public != nil:
			dt.PublicID = unquote(ext.Public.PublicID)
			if ext.Public.SystemID != nil {
				dt.SystemID = unquote(*ext.Public.SystemID)
			}
		case ext.System != nil:
			dt.SystemID = unquote(*ext.System)
		}
	}
	if decl.Subset != nil {
		subset := *decl.Subset
		dt.InternalSubset = strings.TrimSpace(subset[1 : len(subset)-1])
	}
	return dt, nil
}

func isDoctype(directive string) bool {
	return strings.HasPrefix(strings.TrimSpace(directive), "DOCTYPE")
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}

var entityDecl = regexp.MustCompile(`<!ENTITY\s+([^\s%"']+)\s+(?:"([^"]*)"|'([^']*)')`)

// internalEntities returns the general entities with literal values declared
// in an internal subset. Parameter entities and external entities are skipped.
func internalEntities(subset string) map[string]string {
	matches := entityDecl.FindAllStringSubmatch(subset, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make(map[string]string, len(matches))
	for _, m := range matches {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		if _, ok := out[m[1]]; !ok {
			out[m[1]] = value
		}
	}
	return out
}
