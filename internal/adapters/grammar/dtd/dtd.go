// Package dtd builds content models from document type definitions, both
// external DTD files and the internal subset of a document.
package dtd

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.trai.ch/xmlres/internal/adapters/grammar/model"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
)

// maxExpansionRounds bounds parameter entity substitution, which also stops
// self-referencing entities.
const maxExpansionRounds = 8

var (
	peDecl = regexp.MustCompile(`<!ENTITY\s+%\s+([^\s]+)\s+(?:"([^"]*)"|'([^']*)'|SYSTEM\s+(?:"([^"]*)"|'([^']*)')|PUBLIC\s+(?:"([^"]*)"|'([^']*)')\s+(?:"([^"]*)"|'([^']*)'))\s*>`)
	peRef  = regexp.MustCompile(`%([^;\s%"'<>()|,]+);`)
)

type paramEntity struct {
	value    string
	publicID string
	systemID string
	external bool
}

// ParseText builds the content model of DTD text. base is the URI relative
// references resolve against and uri the identity of the model.
func ParseText(ctx context.Context, uri, base, text string, entities ports.EntityResolver) (*model.Document, error) {
	doc := model.NewDocument(uri, domain.GrammarDTD, "")
	doc.IgnoreNamespaces()

	expanded, err := expandParameterEntities(ctx, doc, text, base, entities)
	if err != nil {
		return nil, err
	}
	parsed, err := dtdParser.ParseString(uri, expanded)
	if err != nil {
		return nil, &domain.GrammarSyntaxError{URI: uri, Err: err}
	}
	newBuilder(doc).build(parsed)
	return doc, nil
}

// expandParameterEntities substitutes parameter entity references with their
// replacement text. External parameter entities are read through the entity
// resolver and become dependencies of the model. Unknown references are left
// in place; the grammar tolerates them.
func expandParameterEntities(ctx context.Context, doc *model.Document, text, base string, entities ports.EntityResolver) (string, error) {
	defs := make(map[string]*paramEntity)
	loaded := make(map[string]string)

	collect := func(text string) {
		for _, m := range peDecl.FindAllStringSubmatch(text, -1) {
			if _, ok := defs[m[1]]; ok {
				continue
			}
			pe := &paramEntity{}
			rest := strings.TrimSpace(m[0][strings.IndexByte(m[0], '%')+1:])
			rest = strings.TrimSpace(rest[len(m[1]):])
			switch {
			case strings.HasPrefix(rest, "SYSTEM"):
				pe.external = true
				pe.systemID = m[4] + m[5]
			case strings.HasPrefix(rest, "PUBLIC"):
				pe.external = true
				pe.publicID = m[6] + m[7]
				pe.systemID = m[8] + m[9]
			default:
				pe.value = m[2] + m[3]
			}
			defs[m[1]] = pe
		}
	}
	collect(text)

	for range maxExpansionRounds {
		changed := false
		var firstErr error
		text = peRef.ReplaceAllStringFunc(text, func(ref string) string {
			name := ref[1 : len(ref)-1]
			pe, ok := defs[name]
			if !ok {
				return ref
			}
			if !pe.external {
				changed = true
				return pe.value
			}
			if body, ok := loaded[name]; ok {
				changed = true
				return body
			}
			src, err := model.Open(ctx, entities, domain.Identifier{PublicID: pe.publicID, SystemID: pe.systemID, BaseLocation: base})
			if err != nil {
				if errors.Is(err, domain.ErrBusyDownloading) && firstErr == nil {
					firstErr = err
				}
				return ref
			}
			if src == nil {
				doc.AddDependency(domain.ExpandSystemID(pe.systemID, base))
				loaded[name] = ""
				changed = true
				return ""
			}
			doc.AddDependency(src.SystemID)
			body := string(src.Body)
			loaded[name] = body
			collect(body)
			changed = true
			return body
		})
		if firstErr != nil {
			return "", firstErr
		}
		if !changed {
			break
		}
	}
	return text, nil
}
