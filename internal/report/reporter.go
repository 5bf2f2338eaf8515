package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/golden/internal/compare"
)

// Options configures a Reporter.
type Options struct {
	// Color enables styling when the writer supports it.
	Color bool

	// Verbose adds the tool command and a structural diff to failures.
	Verbose bool
}

// Reporter writes the human-readable run report.
type Reporter struct {
	w    io.Writer
	opts Options

	header lipgloss.Style
	ok     lipgloss.Style
	ko     lipgloss.Style
	dim    lipgloss.Style
}

// NewReporter creates a Reporter writing to w.
func NewReporter(w io.Writer, opts Options) *Reporter {
	renderer := lipgloss.NewRenderer(w)
	r := &Reporter{
		w:      w,
		opts:   opts,
		header: renderer.NewStyle(),
		ok:     renderer.NewStyle(),
		ko:     renderer.NewStyle(),
		dim:    renderer.NewStyle(),
	}

	if opts.Color {
		r.header = r.header.Foreground(lipgloss.Color("3"))
		r.ok = r.ok.Foreground(lipgloss.Color("2")).Bold(true)
		r.ko = r.ko.Foreground(lipgloss.Color("1")).Bold(true)
		r.dim = r.dim.Foreground(lipgloss.Color("241"))
	}

	return r
}

// Banner opens the report.
func (r *Reporter) Banner(language string) {
	fmt.Fprintf(r.w, "\t\t%s\n", r.header.Render(fmt.Sprintf("Launching tests for %s language", language)))
}

// Suite announces a suite and its case count.
func (r *Reporter) Suite(name string, cases int) {
	fmt.Fprintf(r.w, "\n\tTesting folder: %s\n\n", r.header.Render(name))
	fmt.Fprintf(r.w, "running %d tests\n", cases)
}

// Case prints the verdict line for o and, on failure, what went wrong.
func (r *Reporter) Case(o Outcome) {
	verdict := r.ok.Render("Ok")
	if !o.Passed() {
		verdict = r.ko.Render("Ko")
	}
	fmt.Fprintf(r.w, "testing %s... %s\n", o.ID(), verdict)

	if o.Passed() {
		return
	}

	if o.Fault != nil {
		fmt.Fprintf(r.w, "Fault:\n%v\n", o.Fault)
	} else {
		for _, m := range o.Result.Mismatches() {
			label := ""
			if m.Channel == compare.ChannelErrors {
				label = " errors"
			}
			fmt.Fprintf(r.w, "Expected%s:\n%s\n", label, formatList(m.Expected))
			fmt.Fprintf(r.w, "Got%s:\n%s\n", label, formatList(m.Observed))
		}
	}

	if r.opts.Verbose {
		if o.Command != "" {
			fmt.Fprintf(r.w, "%s\n", r.dim.Render("command: "+o.Command))
		}
		if o.Fault == nil {
			if diff := o.Result.Diff(); diff != "" {
				fmt.Fprintf(r.w, "diff (-expected +got):\n%s", diff)
			}
		}
	}

	fmt.Fprintln(r.w)
}

// Summary closes the report with the run totals.
func (r *Reporter) Summary(stats Stats) {
	fmt.Fprintf(r.w, "\n\n\t\t%s\n\n", r.header.Render("Statistics"))
	fmt.Fprintf(r.w, "Total tests: %d\n", stats.Total)
	fmt.Fprintf(r.w, "Total Ok: %s\n", r.ok.Render(fmt.Sprint(stats.OK)))
	fmt.Fprintf(r.w, "Total Ko: %s\n", r.ko.Render(fmt.Sprint(stats.KO)))
	fmt.Fprintln(r.w)
}

// formatList renders a sequence as ["a", "b"] so empty strings and
// surrounding spaces stay visible.
func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
