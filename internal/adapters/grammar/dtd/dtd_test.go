package dtd_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/dom"
	"go.trai.ch/xmlres/internal/adapters/grammar/dtd"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func parseBook(t *testing.T) ports.CMDocument {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", "book.dtd"))
	require.NoError(t, err)
	doc, err := dtd.NewProvider().Parse(context.Background(), domain.FileURI(path), path, nil)
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

func TestParse_Elements(t *testing.T) {
	doc := parseBook(t)

	assert.Equal(t, domain.GrammarDTD, doc.Kind())
	assert.Empty(t, doc.TargetNamespace())
	assert.Equal(t,
		[]string{"title", "author", "book", "chapter", "appendix", "para", "note", "em", "code", "br"},
		names(doc.Elements()))
	assert.Nil(t, doc.FindElement("ignored", ""))
}

func TestParse_ContentKinds(t *testing.T) {
	doc := parseBook(t)

	tests := []struct {
		element string
		want    domain.ContentKind
	}{
		{"book", domain.ContentElements},
		{"title", domain.ContentText},
		{"para", domain.ContentMixed},
		{"note", domain.ContentAny},
		{"appendix", domain.ContentAny},
		{"br", domain.ContentEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.element, func(t *testing.T) {
			e := doc.FindElement(tt.element, "")
			require.NotNil(t, e)
			assert.Equal(t, tt.want, e.Content())
		})
	}
}

func TestParse_ChildrenAndRequired(t *testing.T) {
	doc := parseBook(t)

	book := doc.FindElement("book", "")
	require.NotNil(t, book)
	assert.Equal(t, []string{"title", "author", "chapter", "appendix"}, names(book.Children()))
	assert.Equal(t, []string{"title", "author"}, names(book.RequiredChildren()))

	chapter := doc.FindElement("chapter", "")
	require.NotNil(t, chapter)
	assert.Equal(t, []string{"title", "para", "note"}, names(chapter.Children()))
	assert.Equal(t, []string{"title"}, names(chapter.RequiredChildren()))

	para := doc.FindElement("para", "")
	require.NotNil(t, para)
	assert.Equal(t, []string{"em", "code"}, names(para.Children()))
	assert.Empty(t, para.RequiredChildren())
}

func TestParse_Attributes(t *testing.T) {
	doc := parseBook(t)
	book := doc.FindElement("book", "")
	require.NotNil(t, book)

	assert.Equal(t, []string{"id", "status", "lang"}, names(book.Attributes()))

	id := book.FindAttribute("id", "")
	require.NotNil(t, id)
	assert.True(t, id.Required())

	status := book.FindAttribute("status", "")
	require.NotNil(t, status)
	assert.False(t, status.Required())
	assert.Equal(t, "draft", status.DefaultValue())
	assert.Equal(t, []string{"draft", "final"}, status.Enumeration())

	assert.NotNil(t, book.FindAttribute("lang", domain.XMLNamespace))
	assert.Nil(t, book.FindAttribute("lang", ""))
	assert.Nil(t, book.FindAttribute("xmlns", ""))

	chapter := doc.FindElement("chapter", "")
	require.NotNil(t, chapter)
	assert.Equal(t, []string{"ref"}, names(chapter.Attributes()))
}

func TestParse_NamespacePrefixesIgnored(t *testing.T) {
	doc := parseBook(t)

	assert.NotNil(t, doc.FindElement("book", "urn:example:book"))
	book := doc.FindElement("book", "")
	require.NotNil(t, book)
	assert.NotNil(t, book.FindChild("title", "urn:example:book"))
}

func TestParse_ExternalParameterEntityIsDependency(t *testing.T) {
	doc := parseBook(t)
	dir, err := filepath.Abs("testdata")
	require.NoError(t, err)

	assert.Equal(t, []string{domain.FileURI(filepath.Join(dir, "common.ent"))}, doc.Dependencies())
}

func TestParse_ParameterEntityThroughEntityResolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	entities := mocks.NewMockEntityResolver(ctrl)
	entities.EXPECT().ResolveEntity(gomock.Any(), domain.Identifier{
		PublicID:     "-//Example//ENTITIES Inline//EN",
		SystemID:     "inline.ent",
		BaseLocation: "http://example.org/dtd/doc.dtd",
	}).Return(&domain.InputSource{
		SystemID: "http://example.org/dtd/inline.ent",
		Body:     []byte(`<!ELEMENT b (#PCDATA)>`),
	}, nil)

	doc, err := dtd.ParseText(context.Background(), "http://example.org/dtd/doc.dtd", "http://example.org/dtd/doc.dtd", `
<!ENTITY % inline PUBLIC "-//Example//ENTITIES Inline//EN" "inline.ent">
%inline;
<!ELEMENT a (b)>`, entities)
	require.NoError(t, err)

	assert.Equal(t, []string{"b", "a"}, names(doc.Elements()))
	assert.Equal(t, []string{"http://example.org/dtd/inline.ent"}, doc.Dependencies())
}

func TestParse_BusyEntityAbortsBuild(t *testing.T) {
	ctrl := gomock.NewController(t)
	entities := mocks.NewMockEntityResolver(ctrl)
	signal := domain.NewPendingSignal("http://example.org/dtd/inline.ent")
	entities.EXPECT().ResolveEntity(gomock.Any(), gomock.Any()).
		Return(nil, &domain.BusyDownloadingError{URI: "http://example.org/dtd/inline.ent", Signal: signal})

	_, err := dtd.ParseText(context.Background(), "http://example.org/dtd/doc.dtd", "http://example.org/dtd/doc.dtd", `
<!ENTITY % inline SYSTEM "inline.ent">
%inline;`, entities)
	require.ErrorIs(t, err, domain.ErrBusyDownloading)
}

func TestParse_Errors(t *testing.T) {
	path := filepath.Join("testdata", "broken.dtd")
	_, err := dtd.NewProvider().Parse(context.Background(), domain.FileURI(path), path, nil)
	require.ErrorIs(t, err, domain.ErrGrammarSyntax)

	_, err = dtd.NewProvider().Parse(context.Background(), "file:///nope.dtd", filepath.Join(t.TempDir(), "nope.dtd"), nil)
	require.ErrorContains(t, err, domain.ErrResourceUnavailable.Error())
}

func TestProvider_Binding(t *testing.T) {
	parser := dom.NewParser()
	p := dtd.NewProvider()

	tests := []struct {
		name   string
		xml    string
		adopts bool
		ids    []domain.Identifier
	}{
		{
			name:   "public and system",
			xml:    `<!DOCTYPE book PUBLIC "-//Example//DTD Book//EN" "book.dtd"><book/>`,
			adopts: true,
			ids:    []domain.Identifier{{PublicID: "-//Example//DTD Book//EN", SystemID: "book.dtd", BaseLocation: "file:///work/doc.xml"}},
		},
		{
			name:   "system only",
			xml:    `<!DOCTYPE book SYSTEM "book.dtd"><book/>`,
			adopts: true,
			ids:    []domain.Identifier{{SystemID: "book.dtd", BaseLocation: "file:///work/doc.xml"}},
		},
		{
			name:   "internal subset",
			xml:    `<!DOCTYPE book [<!ELEMENT book EMPTY>]><book/>`,
			adopts: true,
		},
		{
			name: "name only",
			xml:  `<!DOCTYPE book><book/>`,
		},
		{
			name: "no doctype",
			xml:  `<book/>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse("file:///work/doc.xml", strings.NewReader(tt.xml))
			require.NoError(t, err)
			assert.Equal(t, tt.adopts, p.Adopts(doc))
			assert.Equal(t, tt.ids, p.Identifiers(doc, "urn:any"))
		})
	}

	assert.True(t, p.AcceptsURI("http://example.org/a.DTD"))
	assert.True(t, p.AcceptsURI("file:///a/b.ent"))
	assert.False(t, p.AcceptsURI("http://example.org/a.xsd"))
}

func TestProvider_ParseInline(t *testing.T) {
	parser := dom.NewParser()
	p := dtd.NewProvider()

	doc, err := parser.Parse("file:///work/note.xml", strings.NewReader(`<!DOCTYPE note [
  <!ELEMENT note (to, body)>
  <!ELEMENT to (#PCDATA)>
  <!ELEMENT body (#PCDATA)>
  <!ATTLIST note priority (low | high) #IMPLIED>
]>
<note><to>a</to><body>b</body></note>`))
	require.NoError(t, err)

	cm, err := p.ParseInline(context.Background(), doc, nil)
	require.NoError(t, err)
	require.NotNil(t, cm)
	assert.Equal(t, "file:///work/note.xml", cm.URI())
	note := cm.FindElement("note", "")
	require.NotNil(t, note)
	assert.Equal(t, []string{"to", "body"}, names(note.RequiredChildren()))
	assert.Equal(t, []string{"low", "high"}, note.FindAttribute("priority", "").Enumeration())

	external, err := parser.Parse("file:///work/book.xml", strings.NewReader(`<!DOCTYPE book SYSTEM "book.dtd" [<!ELEMENT x EMPTY>]><book/>`))
	require.NoError(t, err)
	cm, err = p.ParseInline(context.Background(), external, nil)
	require.NoError(t, err)
	assert.Nil(t, cm)
}
