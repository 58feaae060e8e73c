package output

import (
	"fmt"
	"io"
	"os"

	"github.com/Backland-Labs/wbpeek/internal/runs"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Printer handles colored output
type Printer struct {
	out      io.Writer
	err      io.Writer
	useColor bool
}

// NewPrinter creates a new printer with color support
func NewPrinter() *Printer {
	return &Printer{
		out:      os.Stdout,
		err:      os.Stderr,
		useColor: isTerminal(os.Stdout),
	}
}

// NewPrinterWithWriters creates a printer with custom writers (for testing)
func NewPrinterWithWriters(out, err io.Writer, useColor bool) *Printer {
	return &Printer{
		out:      out,
		err:      err,
		useColor: useColor,
	}
}

// Out returns the writer for regular output
func (p *Printer) Out() io.Writer {
	return p.out
}

// style returns a color honoring the printer's color setting rather than the
// package-global one
func (p *Printer) style(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// paint renders s with attrs
func (p *Printer) paint(s string, attrs ...color.Attribute) string {
	if len(attrs) == 0 {
		return s
	}
	return p.style(attrs...).Sprint(s)
}

// Success prints a success message in green
func (p *Printer) Success(format string, args ...interface{}) {
	_, _ = p.style(color.FgGreen).Fprintf(p.out, format+"\n", args...)
}

// Error prints an error message in red
func (p *Printer) Error(format string, args ...interface{}) {
	_, _ = p.style(color.FgRed).Fprintf(p.err, format+"\n", args...)
}

// Notice prints a red message on regular output, for outcomes that are not
// failures of the command itself
func (p *Printer) Notice(format string, args ...interface{}) {
	_, _ = p.style(color.FgRed).Fprintf(p.out, format+"\n", args...)
}

// Warning prints a warning message in yellow
func (p *Printer) Warning(format string, args ...interface{}) {
	_, _ = p.style(color.FgYellow).Fprintf(p.err, format+"\n", args...)
}

// Title prints a bold heading
func (p *Printer) Title(format string, args ...interface{}) {
	_, _ = p.style(color.Bold).Fprintf(p.out, format+"\n", args...)
}

// Print prints a plain message without color
func (p *Printer) Print(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Println prints a plain message with newline
func (p *Printer) Println(args ...interface{}) {
	_, _ = fmt.Fprintln(p.out, args...)
}

// StateColor returns the color attributes used for a run state
func StateColor(state runs.State) []color.Attribute {
	switch state {
	case runs.StateFinished:
		return []color.Attribute{color.FgGreen}
	case runs.StateRunning:
		return []color.Attribute{color.FgYellow}
	case runs.StateCrashed, runs.StateFailed:
		return []color.Attribute{color.FgRed}
	case runs.StateKilled, runs.StatePreempted:
		return []color.Attribute{color.FgMagenta}
	case runs.StateQueued:
		return []color.Attribute{color.FgBlue}
	default:
		return []color.Attribute{color.FgWhite}
	}
}

// isTerminal checks if f is a terminal
func isTerminal(f *os.File) bool {
	// Check if NO_COLOR env var is set
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
