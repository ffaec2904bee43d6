package watcher

import (
	"os"
	"path/filepath"
	"slices"
	"sync"
	"unique"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/xmlres/internal/core/domain"
)

// DependencyIndex maps watched documents to the grammar files their last
// validation used, so a change to either can be traced back to the documents
// that need revalidation. It also fingerprints document contents to ignore
// events that leave a file unchanged.
type DependencyIndex struct {
	mu           sync.RWMutex
	grammars     map[unique.Handle[string]][]unique.Handle[string] // document -> grammar paths
	dependents   map[unique.Handle[string]]map[unique.Handle[string]]struct{}
	fingerprints map[unique.Handle[string]]uint64
}

// NewDependencyIndex creates an empty index.
func NewDependencyIndex() *DependencyIndex {
	return &DependencyIndex{
		grammars:     make(map[unique.Handle[string]][]unique.Handle[string]),
		dependents:   make(map[unique.Handle[string]]map[unique.Handle[string]]struct{}),
		fingerprints: make(map[unique.Handle[string]]uint64),
	}
}

// Track records the grammar URIs a document was validated with, replacing the
// previous record. URIs that do not denote local files are ignored.
func (x *DependencyIndex) Track(doc string, grammarURIs []string) {
	docHandle := unique.Make(filepath.Clean(doc))

	x.mu.Lock()
	defer x.mu.Unlock()

	x.untrack(docHandle)
	var paths []unique.Handle[string]
	for _, uri := range grammarURIs {
		path, ok := domain.PathFromURI(uri)
		if !ok {
			continue
		}
		h := unique.Make(filepath.Clean(path))
		if slices.Contains(paths, h) {
			continue
		}
		paths = append(paths, h)
		set, ok := x.dependents[h]
		if !ok {
			set = make(map[unique.Handle[string]]struct{})
			x.dependents[h] = set
		}
		set[docHandle] = struct{}{}
	}
	x.grammars[docHandle] = paths
}

// Remove forgets a document.
func (x *DependencyIndex) Remove(doc string) {
	docHandle := unique.Make(filepath.Clean(doc))

	x.mu.Lock()
	defer x.mu.Unlock()

	x.untrack(docHandle)
	delete(x.grammars, docHandle)
	delete(x.fingerprints, docHandle)
}

func (x *DependencyIndex) untrack(doc unique.Handle[string]) {
	for _, g := range x.grammars[doc] {
		set := x.dependents[g]
		delete(set, doc)
		if len(set) == 0 {
			delete(x.dependents, g)
		}
	}
}

// Affected returns the documents to revalidate after paths changed: tracked
// documents among paths and every document depending on a changed grammar.
// The result is sorted.
func (x *DependencyIndex) Affected(paths []string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	seen := make(map[unique.Handle[string]]struct{})
	for _, p := range paths {
		h := unique.Make(filepath.Clean(p))
		if _, ok := x.grammars[h]; ok {
			seen[h] = struct{}{}
		}
		for doc := range x.dependents[h] {
			seen[doc] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for h := range seen {
		out = append(out, h.Value())
	}
	slices.Sort(out)
	return out
}

// IsGrammar reports whether any tracked document depends on path.
func (x *DependencyIndex) IsGrammar(path string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()
	_, ok := x.dependents[unique.Make(filepath.Clean(path))]
	return ok
}

// Grammars returns the grammar paths recorded for a document.
func (x *DependencyIndex) Grammars(doc string) []string {
	x.mu.RLock()
	defer x.mu.RUnlock()

	hs := x.grammars[unique.Make(filepath.Clean(doc))]
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Value()
	}
	return out
}

// Changed reports whether the content of path differs from the last call.
// The first call for a path reports true. An unreadable file reports true and
// clears the fingerprint.
func (x *DependencyIndex) Changed(path string) bool {
	h := unique.Make(filepath.Clean(path))
	data, err := os.ReadFile(path)

	x.mu.Lock()
	defer x.mu.Unlock()

	if err != nil {
		delete(x.fingerprints, h)
		return true
	}
	sum := xxhash.Sum64(data)
	if prev, ok := x.fingerprints[h]; ok && prev == sum {
		return false
	}
	x.fingerprints[h] = sum
	return true
}
