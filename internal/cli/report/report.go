// Package report renders a resolution summary as a terminal table, Markdown
// or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"

	"bibbrev/internal/common"
	"bibbrev/internal/diagnostic"
	"bibbrev/internal/resolve"
)

// Format selects the summary rendering.
type Format string

// Supported formats.
const (
	FormatNone     Format = "none"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// Styles used in styled text output.
type Styles struct {
	Header    lipgloss.Style
	Matched   lipgloss.Style
	Unmatched lipgloss.Style
	Muted     lipgloss.Style
}

// DefaultStyles returns the terminal palette.
func DefaultStyles() *Styles {
	return &Styles{
		Header:    lipgloss.NewStyle().Bold(true),
		Matched:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Unmatched: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Muted:     lipgloss.NewStyle().Faint(true),
	}
}

// Renderer writes summaries to w.
type Renderer struct {
	w      io.Writer
	format Format
	styles *Styles // nil when w is not a terminal
	diags  *diagnostic.Diagnostics
}

// NewRenderer creates a renderer, styling text output when w is a terminal.
func NewRenderer(w io.Writer, format Format) *Renderer {
	return NewRendererWithTTY(w, format, isTerminal(w))
}

// NewRendererWithTTY creates a renderer with explicit terminal detection.
func NewRendererWithTTY(w io.Writer, format Format, isTTY bool) *Renderer {
	r := &Renderer{w: w, format: format}
	if isTTY {
		r.styles = DefaultStyles()
	}

	return r
}

// WithDiagnostics adds the warnings collected during the run to the summary.
func (r *Renderer) WithDiagnostics(d *diagnostic.Diagnostics) *Renderer {
	r.diags = d
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Render writes rep in the renderer's format. FormatNone writes nothing.
func (r *Renderer) Render(rep *resolve.Report) error {
	switch r.format {
	case FormatNone, "":
		return nil
	case FormatText:
		return r.renderText(rep)
	case FormatMarkdown:
		return r.renderMarkdown(rep)
	case FormatJSON:
		return r.renderJSON(rep)
	default:
		return fmt.Errorf("unknown report format %q", r.format)
	}
}

// attemptsTable builds the per-record table. Results are colored only when
// styled is set and w is a terminal.
func (r *Renderer) attemptsTable(rep *resolve.Report, styled bool) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Key", "Journal", "Result", "Replacement", "Score"})

	for _, a := range rep.Attempts {
		result := outcomeLabel(a.Outcome)
		if styled && r.styles != nil {
			if a.Outcome == resolve.Matched {
				result = r.styles.Matched.Render(result)
			} else {
				result = r.styles.Unmatched.Render(result)
			}
		}

		score := ""
		if a.Scored {
			score = strconv.Itoa(a.Score)
		}

		t.AppendRow(table.Row{a.RecordKey, a.Original, result, a.Replacement, score})
	}

	return t
}

func (r *Renderer) renderText(rep *resolve.Report) error {
	title, summary := "Journal resolution", r.summaryLine(rep)
	if r.styles != nil {
		title = r.styles.Header.Render(title)
		summary = r.styles.Muted.Render(summary)
	}

	_, _ = fmt.Fprintln(r.w, title)

	if !common.IsEmpty(rep.Attempts) {
		r.attemptsTable(rep, true).Render()
	}

	_, err := fmt.Fprintln(r.w, summary)

	return err
}

func (r *Renderer) renderMarkdown(rep *resolve.Report) error {
	_, _ = fmt.Fprintln(r.w, "## Journal resolution")
	_, _ = fmt.Fprintln(r.w)

	if !common.IsEmpty(rep.Attempts) {
		r.attemptsTable(rep, false).RenderMarkdown()
		_, _ = fmt.Fprintln(r.w)
	}

	_, err := fmt.Fprintln(r.w, r.summaryLine(rep))

	return err
}

func (r *Renderer) summaryLine(rep *resolve.Report) string {
	line := fmt.Sprintf("Total: %d  Eligible: %d  Matched: %d  Unmatched: %d  Skipped: %d",
		rep.Total, rep.Eligible(), rep.Matched, rep.Unmatched, rep.Skipped)
	if r.diags != nil {
		line += fmt.Sprintf("  Warnings: %d", len(r.diags.Warnings))
	}

	return line
}

func outcomeLabel(o resolve.Outcome) string {
	if o == resolve.Matched {
		return "matched"
	}

	return "not found"
}

// jsonAttempt is the JSON form of one attempt.
type jsonAttempt struct {
	Key         string `json:"key"`
	Journal     string `json:"journal"`
	Normalized  string `json:"normalized"`
	Matched     bool   `json:"matched"`
	Candidate   string `json:"candidate,omitempty"`
	Score       *int   `json:"score,omitempty"`
	Replacement string `json:"replacement,omitempty"`
}

type jsonReport struct {
	Total     int           `json:"total"`
	Eligible  int           `json:"eligible"`
	Skipped   int           `json:"skipped"`
	Matched   int           `json:"matched"`
	Unmatched int           `json:"unmatched"`
	Attempts  []jsonAttempt `json:"attempts"`
	Warnings  []string      `json:"warnings,omitempty"`
}

func (r *Renderer) renderJSON(rep *resolve.Report) error {
	out := jsonReport{
		Total:     rep.Total,
		Eligible:  rep.Eligible(),
		Skipped:   rep.Skipped,
		Matched:   rep.Matched,
		Unmatched: rep.Unmatched,
		Attempts:  make([]jsonAttempt, 0, len(rep.Attempts)),
	}

	for _, a := range rep.Attempts {
		ja := jsonAttempt{
			Key:         a.RecordKey,
			Journal:     a.Original,
			Normalized:  a.Normalized,
			Matched:     a.Outcome == resolve.Matched,
			Replacement: a.Replacement,
		}
		if a.HasCandidate {
			ja.Candidate = a.Candidate
		}

		if a.Scored {
			score := a.Score
			ja.Score = &score
		}

		out.Attempts = append(out.Attempts, ja)
	}

	if r.diags != nil {
		for _, w := range r.diags.Warnings {
			out.Warnings = append(out.Warnings, w.Message())
		}
	}

	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
