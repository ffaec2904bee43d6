// Package report prints validation results for people and for machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/xmlres/internal/adapters/detector"
	"go.trai.ch/xmlres/internal/core/domain"
	"go.trai.ch/xmlres/internal/ui/output"
	"go.trai.ch/xmlres/internal/ui/style"
)

// Summary counts what a run reported.
type Summary struct {
	Documents int `json:"documents"`
	Errors    int `json:"errors"`
	Warnings  int `json:"warnings"`
	Pending   int `json:"pending"`
}

// Add counts the diagnostics and pending downloads of res.
func (s *Summary) Add(res *domain.DiagnosticsResult) {
	s.Documents++
	s.Pending += len(res.Pending)
	for _, d := range res.Diagnostics {
		switch d.Severity {
		case domain.SeverityError:
			s.Errors++
		case domain.SeverityWarning:
			s.Warnings++
		}
	}
}

// Renderer writes results in one format. It is safe for concurrent use;
// each result is written as a unit.
type Renderer struct {
	mu     sync.Mutex
	w      io.Writer
	format detector.Format
	base   string
	lg     *lipgloss.Renderer
}

// NewRenderer creates a renderer writing to w, os.Stdout when nil. Paths are
// shown relative to base when base is not empty. FormatAuto is resolved
// against w.
func NewRenderer(w io.Writer, format detector.Format, base string) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	format = detector.Resolve(detector.Detect(w), format)
	profile := output.ColorProfile()
	if format == detector.FormatPlain {
		profile = output.ColorProfileANSI()
	}
	return &Renderer{
		w:      w,
		format: format,
		base:   base,
		lg:     output.Renderer(w, profile),
	}
}

// Format returns the resolved format.
func (r *Renderer) Format() detector.Format {
	return r.format
}

// Result writes the diagnostics of one document.
func (r *Renderer) Result(res *domain.DiagnosticsResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.format {
	case detector.FormatJSON:
		r.writeJSON(newResultJSON(res))
	case detector.FormatPretty:
		r.pretty(res)
	default:
		r.plain(res)
	}
}

// Summary writes the totals of a run. JSON output has no summary line.
func (r *Renderer) Summary(s Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.format == detector.FormatJSON {
		return
	}
	line := fmt.Sprintf("%d document(s), %d error(s), %d warning(s)", s.Documents, s.Errors, s.Warnings)
	if s.Pending > 0 {
		line += fmt.Sprintf(", %d download(s) pending", s.Pending)
	}
	color := style.Green
	switch {
	case s.Errors > 0:
		color = style.Red
	case s.Warnings > 0 || s.Pending > 0:
		color = style.Yellow
	}
	_, _ = fmt.Fprintln(r.w, r.lg.NewStyle().Foreground(color).Render(line))
}

// Error writes a failure to validate a document.
func (r *Renderer) Error(uri string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.format == detector.FormatJSON {
		r.writeJSON(struct {
			URI   string `json:"uri"`
			Error string `json:"error"`
		}{uri, err.Error()})
		return
	}
	msg := r.display(uri) + ": " + err.Error()
	_, _ = fmt.Fprintln(r.w, r.lg.NewStyle().Foreground(style.Red).Render(style.Cross+" "+msg))
}

func (r *Renderer) pretty(res *domain.DiagnosticsResult) {
	header := r.lg.NewStyle().Bold(true)
	icon := r.lg.NewStyle().Foreground(style.Green).Render(style.Check)
	if res.HasErrors() {
		icon = r.lg.NewStyle().Foreground(style.Red).Render(style.Cross)
	} else if res.HasPending() {
		icon = r.lg.NewStyle().Foreground(style.Yellow).Render(style.Circle)
	}
	_, _ = fmt.Fprintf(r.w, "%s %s\n", icon, header.Render(r.display(res.URI)))

	faint := r.lg.NewStyle().Foreground(style.Slate)
	for _, d := range res.Diagnostics {
		sev := r.lg.NewStyle().Foreground(style.SeverityColor(d.Severity)).
			Render(fmt.Sprintf("%-5s", d.Severity.String()))
		pos := fmt.Sprintf("%d:%d", d.Range.Start.Line+1, d.Range.Start.Character+1)
		_, _ = fmt.Fprintf(r.w, "  %-8s %s %s %s\n", pos, sev, d.Message, faint.Render("["+d.Code+"]"))
	}
}

func (r *Renderer) plain(res *domain.DiagnosticsResult) {
	path := r.display(res.URI)
	for _, d := range res.Diagnostics {
		_, _ = fmt.Fprintf(r.w, "%s:%d:%d: %s: %s [%s]\n",
			path, d.Range.Start.Line+1, d.Range.Start.Character+1, d.Severity, d.Message, d.Code)
	}
}

func (r *Renderer) writeJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = r.w.Write(append(data, '\n'))
}

// display shows file URIs as paths, relative to base when possible.
func (r *Renderer) display(uri string) string {
	path, ok := domain.PathFromURI(uri)
	if !ok {
		return uri
	}
	if r.base != "" {
		if rel, err := filepath.Rel(r.base, path); err == nil && !strings.HasPrefix(rel, "..") {
			return rel
		}
	}
	return path
}

type pendingJSON struct {
	ID  string `json:"id"`
	URI string `json:"uri"`
}

type resultJSON struct {
	URI         string              `json:"uri"`
	Diagnostics []domain.Diagnostic `json:"diagnostics"`
	Pending     []pendingJSON       `json:"pending"`
}

func newResultJSON(res *domain.DiagnosticsResult) resultJSON {
	out := resultJSON{
		URI:         res.URI,
		Diagnostics: res.Diagnostics,
		Pending:     make([]pendingJSON, 0, len(res.Pending)),
	}
	if out.Diagnostics == nil {
		out.Diagnostics = []domain.Diagnostic{}
	}
	for _, s := range res.Pending {
		out.Pending = append(out.Pending, pendingJSON{ID: s.ID(), URI: s.URI()})
	}
	return out
}

// MarshalResult encodes a result the way the JSON format writes it.
func MarshalResult(res *domain.DiagnosticsResult) ([]byte, error) {
	return json.Marshal(newResultJSON(res))
}
