package rng_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/dom"
	"go.trai.ch/xmlres/internal/adapters/grammar/rng"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const libraryNS = "urn:example:library"

func parseTestdata(t *testing.T, name string) ports.CMDocument {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", name))
	require.NoError(t, err)
	doc, err := rng.NewProvider().Parse(context.Background(), domain.FileURI(path), path, nil)
	require.NoError(t, err)
	return doc
}

func names[T interface{ Name() string }](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name()
	}
	return out
}

func TestParse_BothSyntaxes(t *testing.T) {
	for _, file := range []string{"library.rng", "library.rnc"} {
		t.Run(file, func(t *testing.T) {
			doc := parseTestdata(t, file)

			assert.Equal(t, domain.GrammarRelaxNG, doc.Kind())
			assert.Equal(t, libraryNS, doc.TargetNamespace())
			assert.Equal(t, []string{"library"}, names(doc.Elements()))
			assert.Nil(t, doc.FindElement("library", ""))

			library := doc.FindElement("library", libraryNS)
			require.NotNil(t, library)
			assert.Equal(t, domain.ContentElements, library.Content())
			assert.Equal(t, []string{"book"}, names(library.RequiredChildren()))
			version := library.FindAttribute("version", "")
			require.NotNil(t, version)
			assert.False(t, version.Required())

			book := library.FindChild("book", libraryNS)
			require.NotNil(t, book)
			assert.Equal(t, []string{"title", "author", "note", "extra"}, names(book.Children()))
			assert.Equal(t, []string{"title"}, names(book.RequiredChildren()))
			assert.Nil(t, book.FindChild("heading", libraryNS))

			id := book.FindAttribute("id", "")
			require.NotNil(t, id)
			assert.True(t, id.Required())
			status := book.FindAttribute("status", "")
			require.NotNil(t, status)
			assert.Equal(t, []string{"available", "lent"}, status.Enumeration())
			lang := book.FindAttribute("lang", domain.XMLNamespace)
			require.NotNil(t, lang)
			assert.False(t, lang.Required())

			note := book.FindChild("note", libraryNS)
			require.NotNil(t, note)
			assert.Equal(t, domain.ContentMixed, note.Content())
			assert.Equal(t, []string{"em"}, names(note.Children()))

			extra := book.FindChild("extra", libraryNS)
			require.NotNil(t, extra)
			assert.Equal(t, domain.ContentAny, extra.Content())
			assert.True(t, extra.AnyAttribute())

			title := book.FindChild("title", libraryNS)
			require.NotNil(t, title)
			assert.Equal(t, domain.ContentText, title.Content())
		})
	}
}

func TestParse_Annotations(t *testing.T) {
	doc := parseTestdata(t, "library.rng")
	library := doc.FindElement("library", libraryNS)
	require.NotNil(t, library)
	assert.Equal(t, "A collection of books.", library.Documentation())

	book := library.FindChild("book", libraryNS)
	require.NotNil(t, book)
	assert.Equal(t, "available", book.FindAttribute("status", "").DefaultValue())
}

func TestParse_IncludesAreDependencies(t *testing.T) {
	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)

	assert.Equal(t,
		[]string{domain.FileURI(filepath.Join(dir, "common.rng"))},
		parseTestdata(t, "library.rng").Dependencies())
	assert.Equal(t,
		[]string{domain.FileURI(filepath.Join(dir, "common.rnc"))},
		parseTestdata(t, "library.rnc").Dependencies())
}

func TestParseBytes_CompactPattern(t *testing.T) {
	doc, err := rng.ParseBytes(context.Background(), "file:///work/doc.rnc", []byte(`
namespace d = "urn:doc"
element d:doc {
  attribute kind { "a" | "b" }?,
  (element d:p { text } | element d:pre { text })+
}`), nil)
	require.NoError(t, err)

	root := doc.FindElement("doc", "urn:doc")
	require.NotNil(t, root)
	assert.Equal(t, []string{"p", "pre"}, names(root.Children()))
	assert.Empty(t, root.RequiredChildren())
	assert.Equal(t, []string{"a", "b"}, root.FindAttribute("kind", "").Enumeration())
}

func TestParseBytes_RecursiveDefinitions(t *testing.T) {
	doc, err := rng.ParseBytes(context.Background(), "file:///work/tree.rng", []byte(`
<grammar xmlns="http://relaxng.org/ns/structure/1.0">
  <start><ref name="node"/></start>
  <define name="node">
    <element name="node">
      <zeroOrMore><ref name="node"/></zeroOrMore>
    </element>
  </define>
</grammar>`), nil)
	require.NoError(t, err)

	node := doc.FindElement("node", "")
	require.NotNil(t, node)
	assert.Same(t, node, node.FindChild("node", ""))
}

func TestParseBytes_BusyIncludeAbortsBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	entities := mocks.NewMockEntityResolver(ctrl)
	signal := domain.NewPendingSignal("http://example.org/common.rng")
	entities.EXPECT().ResolveEntity(gomock.Any(), domain.Identifier{
		SystemID:     "common.rng",
		BaseLocation: "http://example.org/main.rng",
	}).Return(nil, &domain.BusyDownloadingError{URI: "http://example.org/common.rng", Signal: signal})

	_, err := rng.ParseBytes(context.Background(), "http://example.org/main.rng", []byte(`
<grammar xmlns="http://relaxng.org/ns/structure/1.0">
  <include href="common.rng"/>
  <start><element name="a"><empty/></element></start>
</grammar>`), entities)
	require.ErrorIs(t, err, domain.ErrBusyDownloading)
}

func TestParse_Errors(t *testing.T) {
	for _, file := range []string{"not-a-grammar.rng", "broken.rnc"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join("testdata", file)
			_, err := rng.NewProvider().Parse(context.Background(), domain.FileURI(path), path, nil)
			require.Error(t, err)
		})
	}

	_, err := rng.NewProvider().Parse(context.Background(), "file:///nope.rng", filepath.Join(t.TempDir(), "nope.rng"), nil)
	require.ErrorContains(t, err, domain.ErrResourceUnavailable.Error())
}

func TestProvider_Binding(t *testing.T) {
	doc, err := dom.NewParser().Parse("file:///work/doc.xml", strings.NewReader(
		`<?xml-model href="library.rnc" type="application/relax-ng-compact-syntax"?><library/>`))
	require.NoError(t, err)

	p := rng.NewProvider()
	assert.False(t, p.Adopts(doc))
	assert.Empty(t, p.Identifiers(doc, ""))
	assert.True(t, p.AcceptsURI("file:///a/b.rnc"))
	assert.True(t, p.AcceptsURI("http://example.org/b.RNG"))
	assert.False(t, p.AcceptsURI("http://example.org/b.xsd"))
}
