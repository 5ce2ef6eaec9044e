package packages

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	pkgs "github.com/mozilla-ai/mcpdir/internal/packages"
)

// DeleteCmd represents the 'package delete' command.
type DeleteCmd struct {
	managerCmd
}

// NewDeleteCmd creates a newly configured (Cobra) command.
func NewDeleteCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &DeleteCmd{managerCmd: newManagerCmd(baseCmd, opts)}

	cobraCmd := &cobra.Command{
		Use:     "delete <package-id>",
		Aliases: []string{"rm", "remove"},
		Short:   "Deletes a saved package",
		RunE:    c.run,
		Args:    cobra.ExactArgs(1),
	}

	return cobraCmd, nil
}

func (c *DeleteCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])

	return c.withManager(func(_ *config.Config, mgr *pkgs.Manager) error {
		pkg, ok := mgr.SavedPackage(id)
		if !ok {
			return fmt.Errorf("%w: %s", errors.ErrPackageNotFound, id)
		}

		if _, err := mgr.Delete(id); err != nil {
			return err
		}

		_, err := fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Deleted package '%s' (%s)\n", pkg.Name, pkg.ID)
		return err
	})
}
