package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tmplsync/internal/config"
	"github.com/mesh-intelligence/tmplsync/internal/logging"
)

func newInitCmd(a *app) *cobra.Command {
	var destination string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create configuration and the host database",
		Long: "Write config.yaml if it is missing and create the host database.\n" +
			"The template table itself is created on the first start.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wrote, err := config.WriteFile(a.configDir, config.File{
				DataDir:     a.dataDir,
				Destination: destination,
				Log:         logging.DefaultConfig(),
			})
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "tmplsync initialized")
			fmt.Fprintln(out, "  config:  ", a.configDir)
			fmt.Fprintln(out, "  database:", db.Path())
			if !wrote {
				fmt.Fprintln(out, "  (existing config.yaml kept)")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&destination, "dest", "", "destination directory to record in config.yaml")
	return cmd
}
