package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	bannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 1).
			Bold(true)

	titleCaser = cases.Title(language.English)
)

// Reporter renders verification progress and the final summary to a writer.
// All report output goes through the Reporter so tests can capture it.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a Reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Banner prints the top-level banner for a run.
func (r *Reporter) Banner(title string) {
	if IsColorEnabled() {
		fmt.Fprintln(r.out, bannerStyle.Render(title))
	} else {
		fmt.Fprintln(r.out, title)
	}
	fmt.Fprintln(r.out)
}

// Section prints a header announcing the next step.
func (r *Reporter) Section(step string) {
	fmt.Fprintln(r.out, Header("==> Running "+titleCaser.String(step)))
}

// StepPassed prints the pass line for a step.
func (r *Reporter) StepPassed(step string) {
	fmt.Fprintln(r.out, StatusSuccess(step+" passed"))
}

// StepFailed prints the failure line for a step along with its captured
// output, if any.
func (r *Reporter) StepFailed(step, output string) {
	fmt.Fprintln(r.out, StatusError(step+" failed"))
	if strings.TrimSpace(output) != "" {
		fmt.Fprintln(r.out, Warning("Output:"))
		fmt.Fprintln(r.out, output)
	}
}

// SummaryHeader prints the summary section divider.
func (r *Reporter) SummaryHeader() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, Header("==> Verification Summary"))
}

// SummaryLine prints one step's aggregate line: its name and a
// PASSED/FAILED marker.
func (r *Reporter) SummaryLine(step string, passed bool) {
	marker := Success(SymbolSuccess + " PASSED")
	if !passed {
		marker = Error(SymbolError + " FAILED")
	}
	fmt.Fprintf(r.out, "%-12s %s\n", step, marker)
}

// Verdict prints the final overall result line.
func (r *Reporter) Verdict(allPassed bool) {
	fmt.Fprintln(r.out)
	if allPassed {
		fmt.Fprintln(r.out, Success(Bold("All checks passed")))
	} else {
		fmt.Fprintln(r.out, Error(Bold("Some checks failed")))
	}
}

// Fatal prints an orchestrator-level fatal message, distinct from a step
// failure.
func (r *Reporter) Fatal(msg string) {
	fmt.Fprintln(r.out, Error(Bold("ERROR: "+msg)))
}

// Warnf prints a formatted warning line.
func (r *Reporter) Warnf(format string, args ...any) {
	fmt.Fprintln(r.out, StatusWarning(fmt.Sprintf(format, args...)))
}

// Infof prints a formatted informational line.
func (r *Reporter) Infof(format string, args ...any) {
	fmt.Fprintln(r.out, fmt.Sprintf(format, args...))
}
