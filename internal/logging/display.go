// Package logging prints the command line tool's messages: diagnostics,
// generation phases and the closing summary.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"numgen/internal/diagnostic"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = pterm.FgLightCyan
	InfoStyleBG    = pterm.NewStyle(pterm.BgLightCyan, pterm.FgBlack)
)

var titleCaser = cases.Title(language.English)

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console.
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// severityTitle returns the banner title of a severity, e.g. "Warning".
func severityTitle(s diagnostic.DiagnosticSeverity) string {
	return titleCaser.String(s.String())
}

// displayDiagnostic prints one diagnostic under a banner naming the job file.
func displayDiagnostic(d diagnostic.Diagnostic, file string) {
	title := severityTitle(d.Severity)

	switch d.Severity {
	case diagnostic.DiagnosticError:
		ErrorStyleBG.Print(title)
	case diagnostic.DiagnosticWarning:
		WarnStyleBG.Print(title)
	default:
		InfoStyleBG.Print(title)
	}

	fmt.Print(" " + banner(title, file) + " ")
	InfoColorFG.Println(file)
	fmt.Println(FormatDiagnostic(d))
}

// maxBannerLength caps the dashed line between a title and the file name.
const maxBannerLength = 50

func banner(title, file string) string {
	n := min(pterm.GetTerminalWidth()/2, maxBannerLength) - len(title) - len(file) - 2

	return strings.Repeat("-", max(n, 2))
}

// FormatDiagnostic renders a diagnostic without styling.
func FormatDiagnostic(d diagnostic.Diagnostic) string {
	var b strings.Builder

	if d.Item != "" {
		b.WriteString(d.Item)

		if d.Field != "" {
			b.WriteString(" (" + d.Field + ")")
		}

		b.WriteString(": ")
	}

	b.WriteString(d.Message)

	if d.Code != "" {
		b.WriteString(" [" + d.Code + "]")
	}

	for _, s := range d.Suggestions {
		b.WriteString(fmt.Sprintf("\n  did you mean %q?", s))
	}

	return b.String()
}

func displayFatalError(err error) {
	fmt.Print("\n")
	PrintErrorMessage("Fatal Error", err)
}

// count renders n followed by the singular or plural of noun.
func count(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}

	return fmt.Sprintf("%d %ss", n, noun)
}

// Summary renders the closing line of a run.
func Summary(success bool, errorCount, warningCount int) string {
	lead := "All done!"
	if !success {
		lead = "Oh no!"
	}

	return fmt.Sprintf("%s (%s, %s)", lead, count(errorCount, "error"), count(warningCount, "warning"))
}

func displayFinished(success bool, errorCount, warningCount int) {
	fmt.Print("\n")

	if success {
		SuccessColorFG.Println(Summary(success, errorCount, warningCount))
	} else {
		ErrorColorFG.Println(Summary(success, errorCount, warningCount))
	}
}

var ErrUnknownLogLevel = errors.New("unknown log level")
