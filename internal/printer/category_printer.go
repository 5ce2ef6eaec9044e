package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
)

var _ output.Printer[string] = (*CategoryPrinter)(nil)

// CategoryPrinter prints one catalog category per line.
type CategoryPrinter struct {
	hooks[string]
}

func NewCategoryPrinter() *CategoryPrinter {
	p := &CategoryPrinter{}
	p.SetHeader(func(w io.Writer, _ int) {
		_, _ = fmt.Fprintln(w, "📂 Categories:")
	})
	return p
}

func (p *CategoryPrinter) Item(w io.Writer, category string) error {
	_, err := fmt.Fprintf(w, "  • %s\n", category)
	return err
}
