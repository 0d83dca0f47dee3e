// Package ui provides colored console status output.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	// Colors
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
)

var out io.Writer = os.Stdout

// SetOutput redirects all status output to w.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	out = w
}

// Output returns the current status writer.
func Output() io.Writer {
	return out
}

// DetectColor disables colors unless w is a terminal.
func DetectColor(w io.Writer) {
	f, ok := w.(*os.File)
	color.NoColor = !ok || !term.IsTerminal(int(f.Fd())) || os.Getenv("NO_COLOR") != ""
}

// Success prints a green success message with checkmark.
func Success(format string, args ...any) {
	Green.Fprintf(out, "✓ "+format+"\n", args...)
}

// Error prints a red error message with X.
func Error(format string, args ...any) {
	Red.Fprintf(out, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning message.
func Warning(format string, args ...any) {
	Yellow.Fprintf(out, "⚠ "+format+"\n", args...)
}

// Info prints a blue info message.
func Info(format string, args ...any) {
	Blue.Fprintf(out, format+"\n", args...)
}

// Header prints a bold header.
func Header(format string, args ...any) {
	Bold.Fprintf(out, format+"\n", args...)
}

// Plain prints an uncolored line.
func Plain(format string, args ...any) {
	fmt.Fprintf(out, format+"\n", args...)
}

// Status lines for the merge pipeline
func Merging(format string, args ...any) {
	Cyan.Fprintf(out, "🔄 "+format+"\n", args...)
}

func Pin(format string, args ...any) {
	Blue.Fprintf(out, "📌 "+format+"\n", args...)
}

func Created(format string, args ...any) {
	Green.Fprintf(out, "✅ "+format+"\n", args...)
}

func Failed(format string, args ...any) {
	Red.Fprintf(out, "❌ "+format+"\n", args...)
}
