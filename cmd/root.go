package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	catalogcmd "github.com/mozilla-ai/mcpdir/cmd/catalog"
	packagecmd "github.com/mozilla-ai/mcpdir/cmd/packages"
	"github.com/mozilla-ai/mcpdir/internal/cmd"
	cmdopts "github.com/mozilla-ai/mcpdir/internal/cmd/options"
	"github.com/mozilla-ai/mcpdir/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute builds the root command and runs it.
func Execute() error {
	rootCmd, err := NewRootCmd(&cmd.BaseCmd{})
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

// NewRootCmd creates the root command with every sub-command attached.
func NewRootCmd(c *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rc := &RootCmd{BaseCmd: c}

	rootCmd := &cobra.Command{
		Use:          fmt.Sprintf("%s <command> [args]", cmd.AppName()),
		Short:        fmt.Sprintf("'%s' browses a catalog of MCPs and bundles them into installable packages.", cmd.AppName()),
		Long:         rc.longDescription(),
		SilenceUsage: true,
		Version:      cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewBrowseCmd,      // browse
		NewCategoriesCmd,  // categories
		NewInitCmd,        // init
		NewMCPCmd,         // mcp
		NewServeCmd,       // serve
		NewShowCmd,        // show
		catalogcmd.NewCmd, // catalog
		packagecmd.NewCmd, // package
	}

	for _, fn := range fns {
		tempCmd, err := fn(c, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return fmt.Sprintf(`The '%[1]s' CLI browses a catalog of integration configurations (MCPs), builds
packages from selected entries and generates bash scripts that install them.

Saved packages are shared by the CLI, the HTTP API ('%[1]s serve') and the MCP server ('%[1]s mcp').`, cmd.AppName())
}
