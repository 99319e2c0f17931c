package diagnostic

import (
	"fmt"
	"io"
	"strings"
)

// SetupGuide is the document the user is pointed at when nothing works.
const SetupGuide = "GOOGLE_SHEETS_SETUP_GUIDE.md"

// NextSteps are printed when the connection is working.
var NextSteps = []string{
	"Update your .streamlit/secrets.toml with the spreadsheet ID",
	"Run: streamlit run streamlit_ui.py",
	"Login as admin and check the storage type",
}

// SummaryRow is one line of the summary table.
type SummaryRow struct {
	Label string
	OK    bool
}

// Summary is the aggregated outcome of a run.
type Summary struct {
	Rows []SummaryRow

	// Working is true when the secrets are configured or the live
	// connection succeeded
	Working bool
}

// Summarize aggregates the three check outcomes.
func Summarize(secretsOK, credentialsOK, connectionOK bool) Summary {
	return Summary{
		Rows: []SummaryRow{
			{Label: "Secrets.toml configured", OK: secretsOK},
			{Label: "Service account file", OK: credentialsOK},
			{Label: "Manual connection", OK: connectionOK},
		},
		Working: secretsOK || connectionOK,
	}
}

// Reporter writes the human-readable report. Write errors are ignored.
type Reporter struct {
	w io.Writer
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) println(args ...interface{}) {
	_, _ = fmt.Fprintln(r.w, args...)
}

// Banner prints the title block.
func (r *Reporter) Banner() {
	r.println("🔍 Google Sheets Connection Diagnostic Tool")
	r.println(strings.Repeat("=", 50))
}

// Section prints a blank line and a section heading.
func (r *Reporter) Section(glyph, title string) {
	r.println()
	r.println(glyph + " " + title)
}

// Line prints a single status line.
func (r *Reporter) Line(glyph, text string) {
	r.println(glyph + " " + text)
}

// Result prints a check result and its detail lines.
func (r *Reporter) Result(res Result) {
	r.Line(res.Status.Glyph(), res.Message)
	for _, d := range res.Details {
		r.println(d)
	}
}

// PackagesInstalled prints the gate success line and linked versions.
func (r *Reporter) PackagesInstalled(statuses []CapabilityStatus) {
	r.Line(StatusPass.Glyph(), "Required packages are installed")
	for _, s := range statuses {
		if s.Version == "" {
			continue
		}
		r.println(fmt.Sprintf("   - %s: %s %s", s.Name, s.Module, s.Version))
	}
}

// MissingPackage prints the gate failure.
func (r *Reporter) MissingPackage(err error) {
	r.Line(StatusFail.Glyph(), fmt.Sprintf("Missing package: %v", err))
	r.println(InstallHint)
}

// Summary prints the summary table, the verdict and what to do next.
func (r *Reporter) Summary(s Summary) {
	r.Section("📊", "Summary:")
	for _, row := range s.Rows {
		r.println(fmt.Sprintf("   %s: %s", row.Label, glyphFor(row.OK)))
	}

	if s.Working {
		r.println()
		r.println("🎉 Google Sheets connection is working!")
		r.Section("📋", "Next steps:")
		for i, step := range NextSteps {
			r.println(fmt.Sprintf("%d. %s", i+1, step))
		}
		return
	}

	r.println()
	r.Line(StatusFail.Glyph(), "Google Sheets connection is not working")
	r.Section("📋", "Follow the setup guide: "+SetupGuide)
}

func glyphFor(ok bool) string {
	if ok {
		return StatusPass.Glyph()
	}
	return StatusFail.Glyph()
}
