package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Color codes using ANSI escape sequences
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

// colorsEnabled determines if color output is enabled
var colorsEnabled = true

func init() {
	// Disable colors if NO_COLOR environment variable is set
	if os.Getenv("NO_COLOR") != "" {
		colorsEnabled = false
	}
}

// Color wraps text with ANSI color codes if colors are enabled
func Color(text, color string) string {
	if !colorsEnabled {
		return text
	}
	return color + text + colorReset
}

// colorize applies color to text, with a fallback if colors are disabled
func colorize(text, color string) string {
	return Color(text, color)
}

// Success writes a message with a green checkmark
func Success(w io.Writer, format string, args ...interface{}) {
	status(w, colorize("✓", colorGreen), "", format, args...)
}

// Error writes an error message with a red X. Commands pass their stderr.
func Error(w io.Writer, format string, args ...interface{}) {
	status(w, colorize("✗", colorRed), "Error: ", format, args...)
}

// Warning writes a warning message with a yellow warning sign
func Warning(w io.Writer, format string, args ...interface{}) {
	status(w, colorize("⚠", colorYellow), "Warning: ", format, args...)
}

// Info writes a plain informational line
func Info(w io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(w, fmt.Sprintf(format, args...))
}

// status writes "<icon> <prefix><message>" on its own line.
func status(w io.Writer, icon, prefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s%s\n", icon, prefix, msg)
}

// Header writes a section header with an underline
func Header(w io.Writer, text string) {
	_, _ = fmt.Fprintln(w, colorize(text, colorBold))
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(text)))
}

// Field writes a labeled field (key-value pair)
func Field(w io.Writer, label, value string) {
	labelFormatted := fmt.Sprintf("%-16s", label+":")
	_, _ = fmt.Fprintf(w, "%s %s\n", colorize(labelFormatted, colorGray), value)
}

// PrintNumberedList writes a numbered list
func PrintNumberedList(w io.Writer, items []string) {
	for i, item := range items {
		_, _ = fmt.Fprintf(w, "  %d. %s\n", i+1, item)
	}
}

// JSON marshals and writes data as indented JSON
func JSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// EnableColors enables color output
func EnableColors() {
	colorsEnabled = true
}

// DisableColors disables color output
func DisableColors() {
	colorsEnabled = false
}
