package domain

import (
	"net/url"
	"path/filepath"
	"strings"
)

const fileScheme = "file"

// FileURI converts a filesystem path to a file:// URI.
// Relative paths are made absolute first.
func FileURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: fileScheme, Path: p}
	return u.String()
}

// PathFromURI returns the filesystem path behind a file URI or a plain path.
// It reports false for any other scheme.
func PathFromURI(uri string) (string, bool) {
	if uri == "" {
		return "", false
	}
	scheme := URIScheme(uri)
	switch scheme {
	case "":
		return filepath.FromSlash(uri), true
	case fileScheme:
		u, err := url.Parse(uri)
		if err != nil {
			return "", false
		}
		p := u.Path
		if p == "" {
			p = u.Opaque
		}
		// file:///C:/x on windows
		if len(p) > 2 && p[0] == '/' && p[2] == ':' {
			p = p[1:]
		}
		return filepath.FromSlash(p), true
	default:
		return "", false
	}
}

// URIScheme returns the lower-cased scheme of uri, or "" when uri is a plain path.
// Single-letter schemes are treated as windows drive letters.
func URIScheme(uri string) string {
	i := strings.Index(uri, ":")
	if i < 2 {
		return ""
	}
	scheme := uri[:i]
	for j, r := range scheme {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if isAlpha {
			continue
		}
		if j > 0 && ((r >= '0' && r <= '9') || r == '+' || r == '-' || r == '.') {
			continue
		}
		return ""
	}
	return strings.ToLower(scheme)
}

// ExpandSystemID resolves systemID against base the way an XML parser expands
// external identifiers. Absolute URIs are returned unchanged and paths become file URIs.
func ExpandSystemID(systemID, base string) string {
	if systemID == "" {
		return ""
	}
	if URIScheme(systemID) != "" {
		return systemID
	}
	if filepath.IsAbs(systemID) || strings.HasPrefix(systemID, "/") {
		return FileURI(systemID)
	}
	if base == "" {
		return FileURI(systemID)
	}
	if URIScheme(base) == "" || URIScheme(base) == fileScheme {
		basePath, ok := PathFromURI(base)
		if !ok {
			return systemID
		}
		return FileURI(filepath.Join(filepath.Dir(basePath), filepath.FromSlash(systemID)))
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return systemID
	}
	ref, err := url.Parse(systemID)
	if err != nil {
		return systemID
	}
	return baseURL.ResolveReference(ref).String()
}
