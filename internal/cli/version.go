package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the tmplsync release.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/tmplsync"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tmplsync version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "tmplsync v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
