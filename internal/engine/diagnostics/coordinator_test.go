package diagnostics_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/xmlres/internal/adapters/dom"
	"go.trai.ch/xmlres/internal/adapters/grammar/model"
	"go.trai.ch/xmlres/internal/adapters/registry"
	"go.trai.ch/xmlres/internal/adapters/resolver"
	"go.trai.ch/xmlres/internal/adapters/telemetry"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"go.trai.ch/xmlres/internal/core/ports/mocks"
	"go.trai.ch/xmlres/internal/engine/diagnostics"
	"go.trai.ch/xmlres/internal/engine/validation"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const docURI = "file:///work/order.xml"

const orderNS = "urn:example:order"

func newCoordinator(t *testing.T) (*diagnostics.Coordinator, *mocks.MockGrammarRegistry) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reg := mocks.NewMockGrammarRegistry(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	c := diagnostics.NewCoordinator(reg, validation.New(), dom.NewParser(), logger, telemetry.NewNoOpTracer())
	return c, reg
}

func parse(t *testing.T, src string) ports.Document {
	t.Helper()
	doc, err := dom.NewParser().Parse(docURI, strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func orderModel() *model.Document {
	doc := model.NewDocument("file:///grammars/order.xsd", domain.GrammarXSD, orderNS)
	item := model.NewElement("item", orderNS)
	item.SetContent(domain.ContentEmpty)
	order := model.NewElement("order", orderNS)
	order.AddChild(item, true)
	doc.AddElement(order)
	item.SetOwner(doc)
	return doc
}

func codes(r *domain.DiagnosticsResult) []string {
	out := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		out[i] = d.Code
	}
	return out
}

func TestValidate_NoGrammar(t *testing.T) {
	c, reg := newCoordinator(t)
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), "").
		Return(nil, domain.ErrNoApplicableProvider)

	res, err := c.Validate(t.Context(), parse(t, `<note/>`))
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, domain.CodeNoGrammar, d.Code)
	assert.Equal(t, domain.SeverityInformation, d.Severity)
	assert.Equal(t, diagnostics.NoGrammarMessage, d.Message)
	assert.Equal(t, "xml", d.Source)
	assert.False(t, res.HasPending())
	assert.Equal(t, diagnostics.StateComplete, c.State(docURI))
}

func TestValidate_UnavailableGrammarDegradesToNoGrammar(t *testing.T) {
	c, reg := newCoordinator(t)
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), orderNS).
		Return(nil, zerr.With(zerr.Wrap(domain.ErrResourceUnavailable, "no identifier could be loaded"), "uri", docURI))

	res, err := c.Validate(t.Context(), parse(t, `<order xmlns="urn:example:order"/>`))
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CodeNoGrammar}, codes(res))
}

func TestValidate_StructuralDiagnostics(t *testing.T) {
	c, reg := newCoordinator(t)
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), orderNS).Return(orderModel(), nil)

	res, err := c.Validate(t.Context(), parse(t, `<order xmlns="urn:example:order"><gift/></order>`))
	require.NoError(t, err)
	assert.Equal(t, []string{domain.CodeUnknownElement, domain.CodeMissingChild}, codes(res))
	assert.True(t, res.HasErrors())
}

func TestValidate_PendingDownloadsAreDeduplicated(t *testing.T) {
	c, reg := newCoordinator(t)
	signal := domain.NewPendingSignal("http://example.com/order.xsd")
	busy := &domain.BusyDownloadingError{URI: signal.URI(), Signal: signal}
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, busy).Times(2)

	doc := parse(t, `<order xmlns="urn:example:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:example:order http://example.com/order.xsd urn:example:extra http://example.com/order.xsd"/>`)
	res, err := c.Validate(t.Context(), doc)
	require.NoError(t, err)

	require.Len(t, res.Pending, 1)
	assert.Same(t, signal, res.Pending[0])
	assert.Equal(t, []string{domain.CodeDownloadInProgress}, codes(res))
	assert.Contains(t, res.Diagnostics[0].Message, "http://example.com/order.xsd")
	assert.Equal(t, diagnostics.StateCompleteWithPending, c.State(docURI))
	assert.Equal(t, []*domain.PendingSignal{signal}, c.Pending(docURI))

	signal.Complete(nil)
	require.NoError(t, res.Wait(t.Context()))
}

func TestValidate_GrammarSyntaxError(t *testing.T) {
	c, reg := newCoordinator(t)
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), orderNS).
		Return(nil, &domain.GrammarSyntaxError{URI: "file:///grammars/order.xsd", Err: errors.New("unexpected token")})

	res, err := c.Validate(t.Context(), parse(t, `<order xmlns="urn:example:order"/>`))
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, domain.CodeGrammarSyntax, d.Code)
	assert.Equal(t, domain.SeverityError, d.Severity)
	assert.Contains(t, d.Message, "file:///grammars/order.xsd")
	assert.Contains(t, d.Message, "unexpected token")
}

func TestValidate_LookupsFollowNamespaceOrder(t *testing.T) {
	doc := parse(t, `<order xmlns="urn:example:order"
  xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"
  xsi:schemaLocation="urn:b b.xsd urn:example:order order.xsd urn:a a.xsd"/>`)

	assert.Equal(t, []string{orderNS, "urn:b", "urn:a"}, diagnostics.Namespaces(doc))
}

func TestValidate_LastRequestWins(t *testing.T) {
	c, reg := newCoordinator(t)
	doc := parse(t, `<order xmlns="urn:example:order"><item/></order>`)

	entered := make(chan struct{})
	var calls atomic.Int32
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), orderNS).
		DoAndReturn(func(ctx context.Context, _ ports.Document, _ string) (ports.CMDocument, error) {
			if calls.Add(1) == 1 {
				close(entered)
				<-ctx.Done()
				return nil, ctx.Err()
			}
			return orderModel(), nil
		}).Times(2)

	first := make(chan error, 1)
	go func() {
		_, err := c.Validate(t.Context(), doc)
		first <- err
	}()
	<-entered

	res, err := c.Validate(t.Context(), doc)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)

	require.ErrorIs(t, <-first, domain.ErrValidationSuperseded)
	assert.Equal(t, diagnostics.StateComplete, c.State(docURI))
}

// slowProvider adopts every document and blocks in Parse until release is closed.
type slowProvider struct {
	entered chan struct{}
	release chan struct{}
	calls   atomic.Int32
}

func (p *slowProvider) Kind() domain.GrammarKind { return domain.GrammarXSD }
func (p *slowProvider) Adopts(ports.Document) bool { return true }
func (p *slowProvider) AcceptsURI(string) bool { return true }
func (p *slowProvider) Identifiers(doc ports.Document, _ string) []domain.Identifier {
	return []domain.Identifier{{SystemID: "order.xsd", BaseLocation: doc.URI()}}
}

func (p *slowProvider) Parse(ctx context.Context, _, _ string, _ ports.EntityResolver) (ports.CMDocument, error) {
	if p.calls.Add(1) == 1 {
		close(p.entered)
	}
	select {
	case <-p.release:
		return orderModel(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestValidate_NewerPassSharesSupersededBuild(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order.xsd"), []byte("<schema/>"), 0o600))
	uri := domain.FileURI(filepath.Join(dir, "order.xml"))
	src := `<order xmlns="urn:example:order"><item/></order>`

	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Info(gomock.Any()).AnyTimes()
		logger.EXPECT().Warn(gomock.Any()).AnyTimes()

		chain, err := resolver.NewChain()
		require.NoError(t, err)
		provider := &slowProvider{entered: make(chan struct{}), release: make(chan struct{})}
		reg, err := registry.New(chain, nil, logger, []ports.GrammarProvider{provider})
		require.NoError(t, err)
		c := diagnostics.NewCoordinator(reg, validation.New(), dom.NewParser(), logger, telemetry.NewNoOpTracer())

		older := make(chan error, 1)
		go func() {
			_, err := c.ValidateText(t.Context(), uri, strings.NewReader(src))
			older <- err
		}()
		<-provider.entered

		type outcome struct {
			res *domain.DiagnosticsResult
			err error
		}
		newer := make(chan outcome, 1)
		go func() {
			res, err := c.ValidateText(t.Context(), uri, strings.NewReader(src))
			newer <- outcome{res, err}
		}()

		synctest.Wait()
		require.ErrorIs(t, <-older, domain.ErrValidationSuperseded)

		close(provider.release)
		got := <-newer
		require.NoError(t, got.err)
		assert.Empty(t, codes(got.res))
		assert.Equal(t, int32(1), provider.calls.Load())
		assert.Equal(t, diagnostics.StateComplete, c.State(uri))
	})
}

func TestValidate_UnclassifiedLookupFailure(t *testing.T) {
	c, reg := newCoordinator(t)
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), orderNS).
		Return(nil, errors.New("read order.xsd: input/output error"))

	res, err := c.Validate(t.Context(), parse(t, `<order xmlns="urn:example:order"/>`))
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
}

func TestValidate_Cancelled(t *testing.T) {
	c, reg := newCoordinator(t)
	ctx, cancel := context.WithCancel(t.Context())
	signal := domain.NewPendingSignal("http://example.com/order.xsd")
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), orderNS).
		DoAndReturn(func(context.Context, ports.Document, string) (ports.CMDocument, error) {
			cancel()
			return nil, &domain.BusyDownloadingError{URI: signal.URI(), Signal: signal}
		})

	_, err := c.Validate(ctx, parse(t, `<order xmlns="urn:example:order"/>`))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, diagnostics.StateIdle, c.State(docURI))
	assert.Empty(t, c.Pending(docURI))
}

func TestValidateText_SyntaxError(t *testing.T) {
	c, _ := newCoordinator(t)

	res, err := c.ValidateText(t.Context(), docURI, strings.NewReader("<order>\n  <item>\n</order>"))
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, domain.CodeXMLSyntax, d.Code)
	assert.Equal(t, domain.SeverityError, d.Severity)
	assert.Equal(t, 2, d.Range.Start.Line)
	assert.False(t, d.IsSchemaBased())
	assert.Equal(t, diagnostics.StateComplete, c.State(docURI))
}

func TestValidateText_WellFormed(t *testing.T) {
	c, reg := newCoordinator(t)
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), orderNS).Return(orderModel(), nil)

	res, err := c.ValidateText(t.Context(), docURI, strings.NewReader(`<order xmlns="urn:example:order"><item/></order>`))
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, docURI, res.URI)
}

func TestForget(t *testing.T) {
	c, reg := newCoordinator(t)
	reg.EXPECT().FindContentModel(gomock.Any(), gomock.Any(), "").Return(nil, domain.ErrNoApplicableProvider)

	_, err := c.Validate(t.Context(), parse(t, `<note/>`))
	require.NoError(t, err)
	require.Equal(t, diagnostics.StateComplete, c.State(docURI))

	c.Forget(docURI)
	assert.Equal(t, diagnostics.StateIdle, c.State(docURI))
	assert.Nil(t, c.Pending(docURI))
}
