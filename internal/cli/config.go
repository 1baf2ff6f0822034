package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tmplsync/internal/config"
	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: "Print the data directory and destination as the next pass would see\n" +
			"them. Exits non-zero when either is missing.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, err := a.resolveDataDir()
			if err != nil {
				return fmt.Errorf("resolve data dir: %w", err)
			}
			cfg := types.Config{
				DataDir:     dataDir,
				Destination: config.NewEnv(a.v).Destination(),
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# config dir: %s\n%s", a.configDir, out)

			if err := cfg.Validate(); err != nil {
				return userError{err}
			}
			return nil
		},
	}
}
