// Package printer provides human-readable text printers for command output.
package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
)

const separator = "────────────────────────────────────────────"

// hooks holds the optional header and footer functions shared by every printer.
type hooks[T any] struct {
	headerFunc output.WriteFunc[T]
	footerFunc output.WriteFunc[T]
}

// Header writes the configured header, if any.
func (h *hooks[T]) Header(w io.Writer, count int) {
	if h.headerFunc != nil {
		h.headerFunc(w, count)
	}
}

// SetHeader configures the header function.
func (h *hooks[T]) SetHeader(fn output.WriteFunc[T]) {
	h.headerFunc = fn
}

// Footer writes the configured footer, if any.
func (h *hooks[T]) Footer(w io.Writer, count int) {
	if h.footerFunc != nil {
		h.footerFunc(w, count)
	}
}

// SetFooter configures the footer function.
func (h *hooks[T]) SetFooter(fn output.WriteFunc[T]) {
	h.footerFunc = fn
}

// Plural returns "s" unless count is exactly one.
func Plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

func writeSeparator(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\n%s\n\n", separator)
	return err
}

// writeLine prints a labelled line, skipping empty values.
func writeLine(w io.Writer, format string, value string) error {
	if value == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, format, value)
	return err
}
