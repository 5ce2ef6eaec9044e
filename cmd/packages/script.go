package packages

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/config"
	"github.com/mozilla-ai/mcpdir/internal/errors"
	pkgs "github.com/mozilla-ai/mcpdir/internal/packages"
	"github.com/mozilla-ai/mcpdir/internal/perms"
)

// ScriptCmd represents the 'package script' command.
type ScriptCmd struct {
	managerCmd
	Output string
}

// NewScriptCmd creates a newly configured (Cobra) command.
func NewScriptCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ScriptCmd{managerCmd: newManagerCmd(baseCmd, opts)}

	cobraCmd := &cobra.Command{
		Use:   "script <package-id> [--output <file>]",
		Short: "Generates the bash install script for a saved package",
		Long: "Generates the bash install script for a saved package. " +
			"The script is written to stdout unless --output names a file, which is created executable.",
		RunE: c.run,
		Args: cobra.ExactArgs(1),
	}

	cobraCmd.Flags().StringVarP(
		&c.Output,
		"output",
		"o",
		"",
		"Write the script to this file instead of stdout",
	)

	return cobraCmd, nil
}

func (c *ScriptCmd) run(cobraCmd *cobra.Command, args []string) error {
	id := strings.TrimSpace(args[0])

	return c.withManager(func(_ *config.Config, mgr *pkgs.Manager) error {
		if !mgr.Load(id) {
			return fmt.Errorf("%w: %s", errors.ErrPackageNotFound, id)
		}

		script := mgr.GenerateScript()

		path := strings.TrimSpace(c.Output)
		if path == "" {
			_, err := io.WriteString(cobraCmd.OutOrStdout(), script)
			return err
		}

		if err := os.WriteFile(path, []byte(script), perms.ExecutableFile); err != nil {
			return fmt.Errorf("failed to write script to %s: %w", path, err)
		}

		_, err := fmt.Fprintf(cobraCmd.OutOrStdout(), "✓ Install script written to %s\n", path)
		return err
	})
}
