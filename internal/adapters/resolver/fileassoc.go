package resolver

import (
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/zerr"
)

// FileAssociationsName is the name of the file association resolver.
const FileAssociationsName = "file-association"

type association struct {
	segments []string
	systemID string
}

// FileAssociations binds documents to a grammar by glob pattern on the document location.
// It only answers lookups without a system id, which is how a document asks for
// the grammar it does not declare itself.
type FileAssociations struct {
	rules []association
}

// NewFileAssociations compiles the given associations. Relative patterns and
// system ids are expanded against rootURI.
func NewFileAssociations(rootURI string, associations []domain.FileAssociation) (*FileAssociations, error) {
	root := ""
	if rootURI != "" {
		if p, ok := domain.PathFromURI(rootURI); ok {
			root = p
		}
	}
	fa := &FileAssociations{}
	for _, a := range associations {
		if a.Pattern == "" || a.SystemID == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidFileAssociation, "pattern and systemId are required"),
				"pattern", a.Pattern)
		}
		pattern := filepath.ToSlash(a.Pattern)
		if !path.IsAbs(pattern) && !filepath.IsAbs(a.Pattern) && root != "" {
			pattern = path.Join(filepath.ToSlash(root), pattern)
		}
		segments := splitSegments(pattern)
		for _, s := range segments {
			if s == "**" {
				continue
			}
			if _, err := path.Match(s, ""); err != nil {
				return nil, zerr.With(zerr.Wrap(domain.ErrInvalidFileAssociation, err.Error()), "pattern", a.Pattern)
			}
		}
		systemID := a.SystemID
		if root != "" {
			systemID = domain.ExpandSystemID(systemID, domain.FileURI(filepath.Join(root, "_")))
		}
		fa.rules = append(fa.rules, association{segments: segments, systemID: systemID})
	}
	return fa, nil
}

// Name implements ports.URIResolver.
func (f *FileAssociations) Name() string {
	return FileAssociationsName
}

// Resolve returns the system id of the first association whose pattern matches baseLocation.
func (f *FileAssociations) Resolve(baseLocation, _, systemID string) string {
	if systemID != "" || baseLocation == "" {
		return ""
	}
	location, ok := domain.PathFromURI(baseLocation)
	if !ok {
		return ""
	}
	target := splitSegments(filepath.ToSlash(location))
	for _, rule := range f.rules {
		if matchSegments(rule.segments, target) {
			return rule.systemID
		}
	}
	return ""
}

// Len returns the number of associations.
func (f *FileAssociations) Len() int {
	return len(f.rules)
}

func splitSegments(p string) []string {
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// matchSegments matches path segments against glob segments where "**"
// matches zero or more segments.
func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(name); i++ {
				if matchSegments(rest, name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
