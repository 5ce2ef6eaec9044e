package printer

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
	"github.com/mozilla-ai/mcpdir/internal/packages"
)

var _ output.Printer[packages.Package] = (*PackagePrinter)(nil)

// PackagePrinter prints packages and the entries they contain.
type PackagePrinter struct {
	hooks[packages.Package]
	opts Options
	now  func() time.Time
}

// NewPackagePrinter creates a PackagePrinter with the "Saved packages" header and a count footer.
func NewPackagePrinter(opt ...Option) (*PackagePrinter, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	p := &PackagePrinter{opts: opts, now: time.Now}
	p.SetHeader(DefaultPackagesHeader())
	p.SetFooter(DefaultPackagesFooter())

	return p, nil
}

func (p *PackagePrinter) Item(w io.Writer, pkg packages.Package) error {
	if _, err := fmt.Fprintf(w, "  🆔 %s\n", pkg.ID); err != nil {
		return err
	}
	if err := writeLine(w, "  🏷️ Name: %s\n", pkg.Name); err != nil {
		return err
	}
	if err := writeLine(w, "  ℹ️ Description: %s\n", pkg.Description); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  📦 MCPs: %d\n", pkg.Len()); err != nil {
		return err
	}

	if p.opts.showDetails {
		for _, e := range pkg.Entries {
			if _, err := fmt.Fprintf(w, "    • %s (%d)\n", e.Name, e.ID); err != nil {
				return err
			}
		}
		if !pkg.CreatedAt.IsZero() {
			if _, err := fmt.Fprintf(w, "  🕒 Created: %s\n", humanize.RelTime(pkg.CreatedAt, p.now(), "ago", "from now")); err != nil {
				return err
			}
		}
	}

	if p.opts.showSeparator {
		return writeSeparator(w)
	}

	return nil
}

func DefaultPackagesHeader() output.WriteFunc[packages.Package] {
	return func(w io.Writer, _ int) {
		_, _ = fmt.Fprintln(w, "")
		_, _ = fmt.Fprintln(w, "💾 Saved packages...")
		_ = writeSeparator(w)
	}
}

func DefaultPackagesFooter() output.WriteFunc[packages.Package] {
	return func(w io.Writer, count int) {
		_, _ = fmt.Fprintf(w, "📦 Found %d package%s\n", count, Plural(count))
		_, _ = fmt.Fprintln(w, "")
	}
}
