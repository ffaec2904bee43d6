package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/dom"
	"go.trai.ch/xmlres/internal/adapters/registry"
	"go.trai.ch/xmlres/internal/adapters/resolver"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const orderXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  targetNamespace="urn:order" xmlns="urn:order" elementFormDefault="qualified">
  <xs:include schemaLocation="types.xsd"/>
  <xs:element name="order">
    <xs:complexType>
      <xs:sequence>
        <xs:element name="item" maxOccurs="unbounded">
          <xs:complexType>
            <xs:sequence>
              <xs:element name="sku" type="xs:string"/>
            </xs:sequence>
          </xs:complexType>
        </xs:element>
      </xs:sequence>
    </xs:complexType>
  </xs:element>
</xs:schema>`

const typesXSD = `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
  <xs:simpleType name="sku"><xs:restriction base="xs:string"/></xs:simpleType>
</xs:schema>`

type fixture struct {
	dir      string
	chain    *resolver.Chain
	registry *registry.Registry
}

func newQuietLogger(t *testing.T) *mocks.MockLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()
	return logger
}

func newFixture(t *testing.T, cache ports.ResourceCache, resolvers ...ports.URIResolver) *fixture {
	t.Helper()
	chain, err := resolver.NewChain(resolvers...)
	require.NoError(t, err)
	reg, err := registry.New(chain, cache, newQuietLogger(t), registry.DefaultProviders())
	require.NoError(t, err)
	return &fixture{dir: t.TempDir(), chain: chain, registry: reg}
}

func (f *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (f *fixture) parse(t *testing.T, name, content string) ports.Document {
	t.Helper()
	path := f.write(t, name, content)
	doc, err := dom.NewParser().Parse(domain.FileURI(path), strings.NewReader(content))
	require.NoError(t, err)
	return doc
}

func touch(t *testing.T, path string) {
	t.Helper()
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
}

const orderDoc = `<order xmlns="urn:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:order order.xsd"><item><sku>a</sku></item></order>`

func TestRegistry_MemoizesUntilGrammarChanges(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, "order.xsd", orderXSD)
	types := f.write(t, "types.xsd", typesXSD)
	doc := f.parse(t, "doc.xml", orderDoc)
	ctx := context.Background()

	first, err := f.registry.CreateContentModel(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, "urn:order", first.TargetNamespace())

	second, err := f.registry.CreateContentModel(ctx, doc)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, f.registry.Stats().Models)

	touch(t, types)
	third, err := f.registry.CreateContentModel(ctx, doc)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestRegistry_DependsOnAndInvalidate(t *testing.T) {
	f := newFixture(t, nil)
	order := f.write(t, "order.xsd", orderXSD)
	types := f.write(t, "types.xsd", typesXSD)
	doc := f.parse(t, "doc.xml", orderDoc)

	_, err := f.registry.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, f.registry.DependsOnGrammar(doc, domain.FileURI(order)))
	assert.True(t, f.registry.DependsOnGrammar(doc, domain.FileURI(types)))
	assert.False(t, f.registry.DependsOnGrammar(doc, "file:///elsewhere.xsd"))

	f.registry.Invalidate(domain.FileURI(types))
	assert.Equal(t, 0, f.registry.Stats().Models)

	f.registry.Forget(doc.URI())
	assert.False(t, f.registry.DependsOnGrammar(doc, domain.FileURI(order)))
}

func TestRegistry_GrammarFiles(t *testing.T) {
	f := newFixture(t, nil)
	order := f.write(t, "order.xsd", orderXSD)
	types := f.write(t, "types.xsd", typesXSD)
	doc := f.parse(t, "doc.xml", orderDoc)

	assert.Empty(t, f.registry.GrammarFiles(doc.URI()))

	_, err := f.registry.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{domain.FileURI(order), domain.FileURI(types)}, f.registry.GrammarFiles(doc.URI()))
}

func TestRegistry_SkipsUnavailableIdentifiers(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, "order.xsd", orderXSD)
	f.write(t, "types.xsd", typesXSD)
	doc := f.parse(t, "doc.xml", `<order xmlns="urn:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:order missing.xsd urn:order order.xsd"/>`)

	cm, err := f.registry.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, domain.FileURI(filepath.Join(f.dir, "order.xsd")), cm.URI())
}

func TestRegistry_NoGrammarLoadable(t *testing.T) {
	f := newFixture(t, nil)
	doc := f.parse(t, "doc.xml", `<order xmlns="urn:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:order missing.xsd"/>`)

	_, err := f.registry.CreateContentModel(context.Background(), doc)
	require.ErrorIs(t, err, domain.ErrResourceUnavailable)
}

func TestRegistry_NoApplicableProvider(t *testing.T) {
	f := newFixture(t, nil)
	doc := f.parse(t, "doc.xml", `<plain/>`)

	_, err := f.registry.CreateContentModel(context.Background(), doc)
	require.ErrorIs(t, err, domain.ErrNoApplicableProvider)

	other := f.parse(t, "other.xml", orderDoc)
	_, err = f.registry.FindContentModel(context.Background(), other, "urn:unrelated")
	require.ErrorIs(t, err, domain.ErrNoApplicableProvider)
}

func TestRegistry_SyntaxErrorIsNotMemoized(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, "order.xsd", `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"><xs:element`)
	doc := f.parse(t, "doc.xml", orderDoc)

	_, err := f.registry.CreateContentModel(context.Background(), doc)
	require.ErrorIs(t, err, domain.ErrGrammarSyntax)
	var syntax *domain.GrammarSyntaxError
	require.True(t, errors.As(err, &syntax))
	assert.Equal(t, domain.FileURI(filepath.Join(f.dir, "order.xsd")), syntax.URI)
	assert.Equal(t, 0, f.registry.Stats().Models)
}

func TestRegistry_BusyGrammarStopsTheSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockResourceCache(ctrl)
	signal := domain.NewPendingSignal("http://example.org/order.xsd")
	cache.EXPECT().CanUseCache("http://example.org/order.xsd").Return(true)
	cache.EXPECT().GetResource(gomock.Any(), "http://example.org/order.xsd").
		Return("", &domain.BusyDownloadingError{URI: "http://example.org/order.xsd", Signal: signal})

	f := newFixture(t, cache)
	f.write(t, "local.xsd", orderXSD)
	doc := f.parse(t, "doc.xml", `<order xmlns="urn:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:order http://example.org/order.xsd urn:order local.xsd"/>`)

	_, err := f.registry.CreateContentModel(context.Background(), doc)
	var busy *domain.BusyDownloadingError
	require.True(t, errors.As(err, &busy))
	assert.Same(t, signal, busy.Signal)
}

func TestRegistry_RemoteGrammarThroughCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockResourceCache(ctrl)
	f := newFixture(t, cache)
	cached := f.write(t, "cache/http/example.org/order.xsd", `<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema"
  targetNamespace="urn:order"><xs:element name="order"/></xs:schema>`)

	cache.EXPECT().CanUseCache(gomock.Any()).DoAndReturn(func(uri string) bool {
		return strings.HasPrefix(uri, "http://")
	}).AnyTimes()
	cache.EXPECT().GetResource(gomock.Any(), "http://example.org/order.xsd").Return(cached, nil).Times(2)
	cache.EXPECT().CachePath("http://example.org/order.xsd").Return(cached, nil)

	doc := f.parse(t, "doc.xml", `<order xmlns="urn:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:order http://example.org/order.xsd"/>`)

	first, err := f.registry.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/order.xsd", first.URI())

	second, err := f.registry.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.True(t, f.registry.DependsOnGrammar(doc, domain.FileURI(cached)))
}

func TestRegistry_FileAssociation(t *testing.T) {
	dir := t.TempDir()
	fa, err := resolver.NewFileAssociations(domain.FileURI(dir), []domain.FileAssociation{
		{Pattern: "**/*.note.xml", SystemID: "note.rnc"},
	})
	require.NoError(t, err)
	f := newFixture(t, nil, fa)
	f.dir = dir
	f.write(t, "note.rnc", `element note { element body { text } }`)
	doc := f.parse(t, "a.note.xml", `<note><body>x</body></note>`)

	cm, err := f.registry.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, domain.GrammarRelaxNG, cm.Kind())

	refs := f.registry.ReferencedGrammars(doc)
	require.Len(t, refs, 1)
	assert.Equal(t, domain.BindingFileAssociation, refs[0].Binding)
	assert.Equal(t, domain.GrammarRelaxNG, refs[0].Kind)
	assert.Equal(t, resolver.FileAssociationsName, refs[0].Resolver)
}

func TestRegistry_InternalSubset(t *testing.T) {
	f := newFixture(t, nil)
	doc := f.parse(t, "note.xml", `<!DOCTYPE note [
  <!ELEMENT note (body)>
  <!ELEMENT body (#PCDATA)>
]>
<note><body>x</body></note>`)

	cm, err := f.registry.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, domain.GrammarDTD, cm.Kind())
	assert.NotNil(t, cm.FindElement("note", ""))

	refs := f.registry.ReferencedGrammars(doc)
	require.Len(t, refs, 1)
	assert.Equal(t, domain.BindingInternalSubset, refs[0].Binding)
}

func TestRegistry_DoctypeTakesPrecedence(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, "note.dtd", `<!ELEMENT note (#PCDATA)>`)
	f.write(t, "order.xsd", orderXSD)
	doc := f.parse(t, "doc.xml", `<!DOCTYPE note SYSTEM "note.dtd">
<note xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xsi:noNamespaceSchemaLocation="order.xsd">x</note>`)

	cm, err := f.registry.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, domain.GrammarDTD, cm.Kind())
}

func TestRegistry_GetIdentifiers(t *testing.T) {
	f := newFixture(t, nil)
	doc := f.parse(t, "doc.xml", `<?xml version="1.0"?>
<?xml-model href="first.rng"?>
<!DOCTYPE order PUBLIC "-//Example//DTD Order//EN" "order.dtd">
<?xml-model href="second.xsd" schematypens="http://www.w3.org/2001/XMLSchema"?>
<order xmlns="urn:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:order order.xsd urn:other other.xsd urn:order order.xsd"
  xsi:noNamespaceSchemaLocation="plain.xsd"/>`)
	base := doc.URI()

	assert.Equal(t, []domain.Identifier{
		{SystemID: "first.rng", BaseLocation: base},
		{PublicID: "-//Example//DTD Order//EN", SystemID: "order.dtd", BaseLocation: base},
		{SystemID: "second.xsd", BaseLocation: base},
		{PublicID: "urn:order", SystemID: "order.xsd", BaseLocation: base},
		{PublicID: "urn:order", SystemID: "order.xsd", BaseLocation: base},
	}, f.registry.GetIdentifiers(doc, "urn:order"))

	assert.Equal(t, []domain.Identifier{
		{SystemID: "first.rng", BaseLocation: base},
		{PublicID: "-//Example//DTD Order//EN", SystemID: "order.dtd", BaseLocation: base},
		{SystemID: "second.xsd", BaseLocation: base},
		{SystemID: "plain.xsd", BaseLocation: base},
	}, f.registry.GetIdentifiers(doc, ""))

	refs := f.registry.ReferencedGrammars(doc)
	kinds := make([]domain.GrammarKind, len(refs))
	bindings := make([]domain.Binding, len(refs))
	for i, r := range refs {
		kinds[i] = r.Kind
		bindings[i] = r.Binding
	}
	assert.Equal(t, []domain.GrammarKind{
		domain.GrammarRelaxNG, domain.GrammarDTD, domain.GrammarXSD,
		domain.GrammarXSD, domain.GrammarXSD, domain.GrammarXSD, domain.GrammarXSD,
	}, kinds)
	assert.Equal(t, []domain.Binding{
		domain.BindingXMLModel, domain.BindingDoctype, domain.BindingXMLModel,
		domain.BindingSchemaLocation, domain.BindingSchemaLocation, domain.BindingSchemaLocation,
		domain.BindingNoNamespace,
	}, bindings)
	assert.Equal(t, domain.FileURI(filepath.Join(f.dir, "order.dtd")), refs[1].ResolvedURI)
}

func TestRegistry_FindCMElement(t *testing.T) {
	f := newFixture(t, nil)
	f.write(t, "order.xsd", orderXSD)
	f.write(t, "types.xsd", typesXSD)
	doc := f.parse(t, "doc.xml", `<order xmlns="urn:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:order order.xsd"><item><sku>a</sku><bogus><sku/></bogus></item></order>`)
	ctx := context.Background()

	item := doc.Root().Children()[0]
	sku := item.Children()[0]
	el, err := f.registry.FindCMElement(ctx, doc, sku)
	require.NoError(t, err)
	require.NotNil(t, el)
	assert.Equal(t, "sku", el.Name())
	assert.Equal(t, domain.ContentText, el.Content())

	nested := item.Children()[1].Children()[0]
	el, err = f.registry.FindCMElement(ctx, doc, nested)
	require.NoError(t, err)
	assert.Nil(t, el)
}

func TestRegistry_FindCMElementStopsAtFirstUnknownLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	root := mocks.NewMockCMElement(ctrl)
	cm := mocks.NewMockCMDocument(ctrl)
	provider := mocks.NewMockGrammarProvider(ctrl)

	provider.EXPECT().Kind().Return(domain.GrammarXSD).AnyTimes()
	provider.EXPECT().Adopts(gomock.Any()).Return(true).AnyTimes()
	provider.EXPECT().Identifiers(gomock.Any(), "urn:order").DoAndReturn(
		func(doc ports.Document, _ string) []domain.Identifier {
			return []domain.Identifier{{SystemID: "order.xsd", BaseLocation: doc.URI()}}
		})
	provider.EXPECT().Parse(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(cm, nil)
	cm.EXPECT().Dependencies().Return(nil)
	cm.EXPECT().FindElement("order", "urn:order").Return(root)
	// Only the first level below the document element is looked up.
	root.EXPECT().FindChild("item", "urn:order").Return(nil).Times(1)

	chain, err := resolver.NewChain()
	require.NoError(t, err)
	reg, err := registry.New(chain, nil, newQuietLogger(t), []ports.GrammarProvider{provider})
	require.NoError(t, err)
	f := &fixture{dir: t.TempDir(), chain: chain, registry: reg}
	f.write(t, "order.xsd", orderXSD)
	doc := f.parse(t, "doc.xml", `<order xmlns="urn:order"><item><sku><code/></sku></item></order>`)

	code := doc.Root().Children()[0].Children()[0].Children()[0]
	el, err := reg.FindCMElement(context.Background(), doc, code)
	require.NoError(t, err)
	assert.Nil(t, el)
}

func TestRegistry_GrammarEditedWhileParsingIsRebuilt(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockGrammarProvider(ctrl)
	f := &fixture{dir: t.TempDir()}
	grammar := f.write(t, "order.xsd", orderXSD)

	provider.EXPECT().Kind().Return(domain.GrammarXSD).AnyTimes()
	provider.EXPECT().Adopts(gomock.Any()).Return(true).AnyTimes()
	provider.EXPECT().Identifiers(gomock.Any(), gomock.Any()).DoAndReturn(
		func(doc ports.Document, _ string) []domain.Identifier {
			return []domain.Identifier{{SystemID: "order.xsd", BaseLocation: doc.URI()}}
		}).AnyTimes()
	first := mocks.NewMockCMDocument(ctrl)
	first.EXPECT().Dependencies().Return(nil)
	second := mocks.NewMockCMDocument(ctrl)
	second.EXPECT().Dependencies().Return(nil)
	gomock.InOrder(
		provider.EXPECT().Parse(gomock.Any(), gomock.Any(), grammar, gomock.Any()).
			DoAndReturn(func(context.Context, string, string, ports.EntityResolver) (ports.CMDocument, error) {
				touch(t, grammar)
				return first, nil
			}),
		provider.EXPECT().Parse(gomock.Any(), gomock.Any(), grammar, gomock.Any()).Return(second, nil),
	)

	chain, err := resolver.NewChain()
	require.NoError(t, err)
	reg, err := registry.New(chain, nil, newQuietLogger(t), []ports.GrammarProvider{provider})
	require.NoError(t, err)
	doc := f.parse(t, "doc.xml", orderDoc)

	got, err := reg.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, first, got)

	got, err = reg.CreateContentModel(context.Background(), doc)
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestRegistry_RegisterNilProvider(t *testing.T) {
	f := newFixture(t, nil)
	require.ErrorIs(t, f.registry.Register(nil), domain.ErrNilProvider)
	before := len(f.registry.Providers())
	require.NoError(t, f.registry.Register(registry.DefaultProviders()[0]))
	assert.Len(t, f.registry.Providers(), before)
}
