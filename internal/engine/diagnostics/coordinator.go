// Package diagnostics runs validation passes over documents. A pass resolves
// the content models a document binds, reports what can be checked now and
// hands back the downloads that were still in flight. A newer pass for the
// same document supersedes an older one.
package diagnostics

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"time"

	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// State is the validation state of a document.
type State string

const (
	// StateIdle indicates the document was never validated or was forgotten.
	StateIdle State = "Idle"
	// StateValidating indicates a pass is in flight.
	StateValidating State = "Validating"
	// StateComplete indicates the last pass saw every grammar it needed.
	StateComplete State = "Complete"
	// StateCompleteWithPending indicates the last pass ran while grammars were downloading.
	StateCompleteWithPending State = "CompleteWithPending"
)

// NoGrammarMessage is reported on documents that bind no grammar.
const NoGrammarMessage = "No grammar constraints (DTD or XML Schema) referenced in the document."

// Checker reports structural violations of a document against content models
// keyed by namespace URI.
type Checker interface {
	Validate(doc ports.Document, models map[string]ports.CMDocument) []domain.Diagnostic
}

type docState struct {
	generation uint64
	cancel     context.CancelFunc
	state      State
	pending    []*domain.PendingSignal
}

// Coordinator implements ports.Validator.
type Coordinator struct {
	registry ports.GrammarRegistry
	checker  Checker
	parser   ports.DocumentParser
	logger   ports.Logger
	tracer   ports.Tracer

	mu         sync.Mutex
	generation uint64
	docs       map[string]*docState
}

var _ ports.Validator = (*Coordinator)(nil)

// NewCoordinator creates a Coordinator with the given dependencies.
func NewCoordinator(
	registry ports.GrammarRegistry,
	checker Checker,
	parser ports.DocumentParser,
	logger ports.Logger,
	tracer ports.Tracer,
) *Coordinator {
	return &Coordinator{
		registry: registry,
		checker:  checker,
		parser:   parser,
		logger:   logger,
		tracer:   tracer,
		docs:     make(map[string]*docState),
	}
}

// Validate runs a validation pass over doc. It never blocks on downloads:
// grammars still downloading are returned as pending signals.
//
// A pass superseded by a newer one for the same URI fails with
// domain.ErrValidationSuperseded; a cancelled ctx yields ctx.Err().
func (c *Coordinator) Validate(ctx context.Context, doc ports.Document) (*domain.DiagnosticsResult, error) {
	return c.run(ctx, doc.URI(), func(ctx context.Context) (*domain.DiagnosticsResult, error) {
		return c.validate(ctx, doc)
	})
}

// ValidateText parses r and validates the resulting document. A document that
// is not well-formed yields an xml-syntax diagnostic rather than an error.
func (c *Coordinator) ValidateText(ctx context.Context, uri string, r io.Reader) (*domain.DiagnosticsResult, error) {
	doc, err := c.parser.Parse(uri, r)
	if err == nil {
		return c.Validate(ctx, doc)
	}
	var syntax *domain.XMLSyntaxError
	if !errors.As(err, &syntax) {
		return nil, err
	}
	return c.run(ctx, uri, func(context.Context) (*domain.DiagnosticsResult, error) {
		line := max(syntax.Line, 0)
		return &domain.DiagnosticsResult{
			URI: uri,
			Diagnostics: []domain.Diagnostic{{
				Range: domain.Range{
					Start: domain.Position{Line: line},
					End:   domain.Position{Line: line},
				},
				Severity: domain.SeverityError,
				Code:     domain.CodeXMLSyntax,
				Source:   domain.DiagnosticSource,
				Message:  syntax.Msg,
			}},
		}, nil
	})
}

func (c *Coordinator) run(
	ctx context.Context,
	uri string,
	pass func(context.Context) (*domain.DiagnosticsResult, error),
) (*domain.DiagnosticsResult, error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "diagnostics.validate", ports.WithAttribute("uri", uri))
	defer span.End()

	ctx, gen, cancel := c.begin(ctx, uri)
	defer cancel()

	result, err := pass(ctx)
	result, outcome, err := c.finish(ctx, uri, gen, result, err)

	validationsTotal.WithLabelValues(outcome).Inc()
	validationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttribute("diagnostics", len(result.Diagnostics))
	span.SetAttribute("pending", len(result.Pending))
	return result, nil
}

// begin starts a new generation for uri and cancels the pass it replaces.
func (c *Coordinator) begin(ctx context.Context, uri string) (context.Context, uint64, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	st, ok := c.docs[uri]
	if !ok {
		st = &docState{}
		c.docs[uri] = st
	}
	if st.cancel != nil {
		st.cancel()
	}
	st.generation = c.generation
	st.cancel = cancel
	st.state = StateValidating
	return ctx, c.generation, cancel
}

// finish publishes the outcome of a pass unless a newer pass or Forget
// replaced it meanwhile. The pending signals of a dropped pass are discarded.
func (c *Coordinator) finish(
	ctx context.Context,
	uri string,
	gen uint64,
	result *domain.DiagnosticsResult,
	err error,
) (*domain.DiagnosticsResult, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.docs[uri]
	if !ok || st.generation != gen {
		return nil, outcomeSuperseded, domain.ErrValidationSuperseded
	}
	st.cancel = nil
	if ctxErr := ctx.Err(); ctxErr != nil {
		st.state = StateIdle
		st.pending = nil
		return nil, outcomeCancelled, ctxErr
	}
	if err != nil {
		st.state = StateIdle
		st.pending = nil
		return nil, outcomeFailed, err
	}
	st.pending = slices.Clone(result.Pending)
	if result.HasPending() {
		st.state = StateCompleteWithPending
		return result, outcomePending, nil
	}
	st.state = StateComplete
	return result, outcomeComplete, nil
}

type lookup struct {
	namespace string
	model     ports.CMDocument
	err       error
}

func (c *Coordinator) validate(ctx context.Context, doc ports.Document) (*domain.DiagnosticsResult, error) {
	result := &domain.DiagnosticsResult{URI: doc.URI()}
	root := doc.Root()
	if root == nil {
		return result, nil
	}

	namespaces := Namespaces(doc)
	lookups := make([]lookup, len(namespaces))
	g, gctx := errgroup.WithContext(ctx)
	for i, ns := range namespaces {
		g.Go(func() error {
			cm, err := c.registry.FindContentModel(gctx, doc, ns)
			if err != nil && gctx.Err() != nil {
				return gctx.Err()
			}
			lookups[i] = lookup{namespace: ns, model: cm, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	models := make(map[string]ports.CMDocument)
	seenSignals := make(map[string]bool)
	seenSyntax := make(map[string]bool)
	var syntaxDiags []domain.Diagnostic
	failed := false
	for _, l := range lookups {
		var busy *domain.BusyDownloadingError
		var syntax *domain.GrammarSyntaxError
		switch {
		case l.err == nil && l.model != nil:
			if _, ok := models[l.namespace]; !ok {
				models[l.namespace] = l.model
			}
		case errors.As(l.err, &busy):
			if busy.Signal != nil && !seenSignals[busy.Signal.ID()] {
				seenSignals[busy.Signal.ID()] = true
				result.Pending = append(result.Pending, busy.Signal)
			}
		case errors.As(l.err, &syntax):
			if !seenSyntax[syntax.URI] {
				seenSyntax[syntax.URI] = true
				syntaxDiags = append(syntaxDiags, diagnostic(root, domain.SeverityError, domain.CodeGrammarSyntax,
					"The grammar '"+syntax.URI+"' has syntax errors: "+syntax.Err.Error()))
			}
		case errors.Is(l.err, domain.ErrResourceUnavailable), errors.Is(l.err, domain.ErrNoApplicableProvider):
		case l.err != nil:
			failed = true
			c.logger.Warn("grammar lookup for namespace " + quoteNS(l.namespace) + " of " + doc.URI() + " failed: " + l.err.Error())
		}
	}

	result.Diagnostics = append(result.Diagnostics, syntaxDiags...)
	if len(models) > 0 {
		result.Diagnostics = append(result.Diagnostics, c.checker.Validate(doc, models)...)
	}
	// Unclassified lookup failures do not mean the document binds no grammar.
	if len(models) == 0 && len(result.Pending) == 0 && len(syntaxDiags) == 0 && !failed {
		result.Diagnostics = append(result.Diagnostics,
			diagnostic(root, domain.SeverityInformation, domain.CodeNoGrammar, NoGrammarMessage))
	}
	for _, s := range result.Pending {
		result.Diagnostics = append(result.Diagnostics, diagnostic(root, domain.SeverityInformation,
			domain.CodeDownloadInProgress, "The resource '"+s.URI()+"' is downloading."))
	}
	return result, nil
}

// Namespaces returns the namespace of the document element followed by the
// namespaces of xsi:schemaLocation, without duplicates.
func Namespaces(doc ports.Document) []string {
	var out []string
	if root := doc.Root(); root != nil {
		out = append(out, root.NamespaceURI())
	}
	for _, loc := range doc.SchemaLocations() {
		if !slices.Contains(out, loc.Namespace) {
			out = append(out, loc.Namespace)
		}
	}
	return out
}

// Forget drops the state kept for uri and cancels its pass in flight.
func (c *Coordinator) Forget(uri string) {
	c.mu.Lock()
	if st, ok := c.docs[uri]; ok {
		if st.cancel != nil {
			st.cancel()
		}
		delete(c.docs, uri)
	}
	c.mu.Unlock()

	if f, ok := c.registry.(interface{ Forget(string) }); ok {
		f.Forget(uri)
	}
}

// State returns the validation state of uri.
func (c *Coordinator) State(uri string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.docs[uri]; ok {
		return st.state
	}
	return StateIdle
}

// Pending returns the signals the last completed pass over uri observed.
func (c *Coordinator) Pending(uri string) []*domain.PendingSignal {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.docs[uri]; ok {
		return slices.Clone(st.pending)
	}
	return nil
}

func diagnostic(n ports.Node, severity domain.Severity, code, msg string) domain.Diagnostic {
	return domain.Diagnostic{
		Range:    n.Range(),
		Severity: severity,
		Code:     code,
		Source:   domain.DiagnosticSource,
		Message:  msg,
	}
}

func quoteNS(ns string) string {
	if ns == "" {
		return "(none)"
	}
	return ns
}
