package printer

import (
	"fmt"
	"io"

	"github.com/mozilla-ai/mcpdir/internal/cmd/output"
	"github.com/mozilla-ai/mcpdir/internal/packages"
)

var _ output.Printer[packages.Stats] = (*StatsPrinter)(nil)

// StatsPrinter prints package statistics.
type StatsPrinter struct {
	hooks[packages.Stats]
}

func (p *StatsPrinter) Item(w io.Writer, s packages.Stats) error {
	status := "⚠️ Empty, add MCPs before saving"
	if s.Ready {
		status = "✅ Ready"
	}

	_, err := fmt.Fprintf(
		w,
		"  📦 MCPs: %d\n  💾 Total size: %s\n  ⏱️ Estimated install time: %d min\n  %s\n",
		s.Entries,
		s.TotalSize,
		s.EstimatedInstallMinutes,
		status,
	)
	return err
}
