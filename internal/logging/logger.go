package logging

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pterm/pterm"

	"numgen/internal/diagnostic"
)

// Enumeration of the different log levels.
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and the closing summary
	LogLevelWarning        // errors, warnings and the closing summary
	LogLevelVerbose        // everything, including phases (DEFAULT)
)

// LogLevels lists the level names accepted by ParseLogLevel, by value.
var LogLevels = []string{"silent", "error", "warning", "verbose"}

// ParseLogLevel converts a level name into its value.
func ParseLogLevel(name string) (int, error) {
	for i, n := range LogLevels {
		if n == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, name)
}

// Logger prints diagnostics and progress for one command.
type Logger struct {
	LogLevel int

	errorCount   int
	warningCount int

	phase      string
	phaseStart time.Time

	m sync.Mutex
}

func NewLogger(logLevel int) *Logger {
	return &Logger{LogLevel: logLevel}
}

// Diagnostics prints every diagnostic the level allows and counts them.
func (l *Logger) Diagnostics(d *diagnostic.Diagnostics, file string) {
	l.m.Lock()
	defer l.m.Unlock()

	l.errorCount += len(d.Errors)
	l.warningCount += len(d.Warnings)

	for _, diag := range d.All() {
		if l.allows(diag.Severity) {
			displayDiagnostic(diag, file)
		}
	}
}

func (l *Logger) allows(s diagnostic.DiagnosticSeverity) bool {
	switch s {
	case diagnostic.DiagnosticError:
		return l.LogLevel >= LogLevelError
	case diagnostic.DiagnosticWarning:
		return l.LogLevel >= LogLevelWarning
	default:
		return l.LogLevel >= LogLevelVerbose
	}
}

// Fatal prints an error that stops the command.
func (l *Logger) Fatal(err error) {
	l.m.Lock()
	defer l.m.Unlock()

	l.errorCount++

	if l.LogLevel > LogLevelSilent {
		displayFatalError(err)
	}
}

// Info prints a tagged note in verbose mode.
func (l *Logger) Info(tag, msg string) {
	if l.LogLevel >= LogLevelVerbose {
		PrintInfoMessage(tag, msg)
	}
}

const maxPhaseLength = len("Generating")

// BeginPhase announces a step of the run.
func (l *Logger) BeginPhase(phase string) {
	l.phase = phase
	l.phaseStart = time.Now()
}

// EndPhase reports the outcome of the current step with its duration.
func (l *Logger) EndPhase(success bool) {
	if l.phase == "" {
		return
	}

	phase := l.phase
	l.phase = ""

	if l.LogLevel < LogLevelVerbose {
		return
	}

	padded := phase + strings.Repeat(" ", max(maxPhaseLength-len(phase), 0)+2)
	printer := pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix:       pterm.Prefix{Style: SuccessStyleBG, Text: "Done"},
	}

	if !success {
		printer.Prefix = pterm.Prefix{Style: ErrorStyleBG, Text: "Fail"}
		printer.Println(padded)

		return
	}

	printer.Println(padded + fmt.Sprintf("(%.3fs)", time.Since(l.phaseStart).Seconds()))
}

// Finish prints the closing summary and reports whether the run succeeded.
func (l *Logger) Finish() bool {
	l.m.Lock()
	defer l.m.Unlock()

	success := l.errorCount == 0
	if l.LogLevel > LogLevelSilent {
		displayFinished(success, l.errorCount, l.warningCount)
	}

	return success
}

// Counts returns the errors and warnings seen so far.
func (l *Logger) Counts() (errors, warnings int) {
	l.m.Lock()
	defer l.m.Unlock()

	return l.errorCount, l.warningCount
}
