package catalog

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
)

// NewCmd creates the parent catalog command.
func NewCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with catalog documents",
	}

	// Sub-commands for: mcpdir catalog.
	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewValidateCmd, // validate
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCmd.AddCommand(tempCmd)
	}

	return cobraCmd, nil
}
