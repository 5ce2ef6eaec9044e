package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
)

var _ output.Printer[catalog.Entry] = (*EntryPrinter)(nil)

// EntryPrinter prints catalog entries.
type EntryPrinter struct {
	hooks[catalog.Entry]
	opts Options
}

// NewEntryPrinter creates an EntryPrinter with the "Catalog results" header and a count footer.
func NewEntryPrinter(opt ...Option) (*EntryPrinter, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	p := &EntryPrinter{opts: opts}
	p.SetHeader(DefaultEntriesHeader())
	p.SetFooter(DefaultEntriesFooter())

	return p, nil
}

func (p *EntryPrinter) Item(w io.Writer, e catalog.Entry) error {
	if err := p.printDetails(w, e); err != nil {
		return err
	}

	if p.opts.showSeparator {
		return writeSeparator(w)
	}

	return nil
}

func (p *EntryPrinter) printDetails(w io.Writer, e catalog.Entry) error {
	if _, err := fmt.Fprintf(w, "  🆔 %d\n", e.ID); err != nil {
		return err
	}

	name := e.Name
	if e.Verified {
		name += " ✅"
	}
	if err := writeLine(w, "  🏷️ Name: %s\n", name); err != nil {
		return err
	}
	if err := writeLine(w, "  ℹ️ Description: %s\n", e.Description); err != nil {
		return err
	}
	if err := writeLine(w, "  📂 Category: %s\n", e.Category); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  ⭐ Rating: %.1f\n", e.Rating); err != nil {
		return err
	}
	if err := writeLine(w, "  📥 Downloads: %s\n", e.Downloads); err != nil {
		return err
	}

	if !p.opts.showDetails {
		return nil
	}

	if err := writeLine(w, "  🔖 Tags: %s\n", strings.Join(e.Tags, ", ")); err != nil {
		return err
	}
	if err := writeLine(w, "  👤 Author: %s\n", e.Author); err != nil {
		return err
	}
	if err := writeLine(w, "  🕒 Updated: %s\n", e.LastUpdated); err != nil {
		return err
	}
	if err := writeLine(w, "  💾 Size: %s\n", e.Size); err != nil {
		return err
	}

	return nil
}

func DefaultEntriesHeader() output.WriteFunc[catalog.Entry] {
	return func(w io.Writer, _ int) {
		_, _ = fmt.Fprintln(w, "")
		_, _ = fmt.Fprintln(w, "🔎 Catalog results...")
		_ = writeSeparator(w)
	}
}

func DefaultEntriesFooter() output.WriteFunc[catalog.Entry] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "📦 Found %d MCP%s\n", count, Plural(count))
		_, _ = fmt.Fprintln(w, "")
	}
}

// ShowingFooter reports how many of the catalog's entries are shown, e.g. "Showing 3 of 12 MCPs".
func ShowingFooter(total int) output.WriteFunc[catalog.Entry] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "📦 Showing %d of %d MCP%s\n", count, total, Plural(total))
		_, _ = fmt.Fprintln(w, "")
	}
}
