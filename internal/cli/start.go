package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tmplsync/internal/hooks"
	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

func newStartCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Run the server start lifecycle",
		Long: "Emit server.start: bootstrap the template table if it does not exist,\n" +
			"then synchronize the destination directory. Failures are logged;\n" +
			"the command still exits successfully, as the host would.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			reg, _ := a.host()
			if err := reg.Emit(cmd.Context(), hooks.Meta{Event: types.EventServerStart, Database: db}); err != nil {
				return fmt.Errorf("%s: %w", types.EventServerStart, err)
			}
			return nil
		},
	}
}
