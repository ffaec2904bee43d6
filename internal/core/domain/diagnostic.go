package domain

import (
	"context"
	"fmt"
)

// Severity ranks a diagnostic. Values follow the LSP numbering.
type Severity int

const (
	// SeverityError marks a constraint violation.
	SeverityError Severity = iota + 1
	// SeverityWarning marks a suspicious construct.
	SeverityWarning
	// SeverityInformation marks an informational note.
	SeverityInformation
	// SeverityHint marks a hint.
	SeverityHint
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Position is a zero-based line and character offset.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range spans two positions in a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Diagnostic codes emitted by the coordinator and the structural validator.
const (
	CodeNoGrammar          = "no-grammar"
	CodeDownloadInProgress = "download-in-progress"
	CodeGrammarSyntax      = "grammar-syntax"
	CodeXMLSyntax          = "xml-syntax"
	CodeUnknownRoot        = "unknown-root-element"
	CodeUnknownElement     = "unknown-element"
	CodeMissingAttribute   = "missing-attribute"
	CodeUnknownAttribute   = "unknown-attribute"
	CodeMissingChild       = "missing-child-element"
	CodeEmptyContent       = "empty-content"
	CodeTextNotAllowed     = "text-not-allowed"
	CodeDoctypeMismatch    = "doctype-root-mismatch"
)

// DiagnosticSource is the source reported on every diagnostic.
const DiagnosticSource = "xml"

// Diagnostic is a problem found in a document.
type Diagnostic struct {
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Source   string   `json:"source"`
	Message  string   `json:"message"`
}

// IsSchemaBased reports whether the diagnostic comes from grammar constraints.
func (d Diagnostic) IsSchemaBased() bool {
	switch d.Code {
	case CodeNoGrammar, CodeDownloadInProgress, CodeXMLSyntax, CodeGrammarSyntax:
		return false
	default:
		return true
	}
}

// DiagnosticsResult is the outcome of a validation pass: the diagnostics
// computable now and the downloads that were still in flight.
type DiagnosticsResult struct {
	URI         string
	Diagnostics []Diagnostic
	Pending     []*PendingSignal
}

// HasPending reports whether any download was still in flight.
func (r *DiagnosticsResult) HasPending() bool {
	return len(r.Pending) > 0
}

// HasErrors reports whether any diagnostic has error severity.
func (r *DiagnosticsResult) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Wait blocks until every pending signal settles or ctx is done.
func (r *DiagnosticsResult) Wait(ctx context.Context) error {
	for _, s := range r.Pending {
		if err := s.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}
