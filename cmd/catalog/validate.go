package catalog

import (
	stdErrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/catalog"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/printer"
)

type ValidateCmd struct {
	*cmd.BaseCmd
}

func NewValidateCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	if _, err := cmdopts.NewOptions(opt...); err != nil {
		return nil, err
	}

	c := &ValidateCmd{BaseCmd: baseCmd}

	cobraCmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a catalog document",
		Long:  `Validate a catalog JSON document against the catalog schema and check that entry IDs are unique`,
		RunE:  c.run,
		Args:  cobra.ExactArgs(1),
	}

	return cobraCmd, nil
}

func (c *ValidateCmd) run(cmd *cobra.Command, args []string) error {
	path := strings.TrimSpace(args[0])

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	entries, err := catalog.Parse(data)
	if err != nil {
		var verr *catalog.ValidationError
		if stdErrors.As(err, &verr) {
			n := len(verr.Problems)
			_, _ = fmt.Fprintf(cmd.OutOrStderr(), "✗ Catalog validation failed (%d problem%s):\n", n, printer.Plural(n))
			for _, p := range verr.Problems {
				_, _ = fmt.Fprintf(cmd.OutOrStderr(), "  - %s\n", p)
			}
		}
		c.Logger().Error("Catalog validation failed", "path", path, "error", err)
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ Catalog is valid (%d entr%s)\n", len(entries), entrySuffix(len(entries)))
	return nil
}

func entrySuffix(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
