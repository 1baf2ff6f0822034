package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// syncReport is the --json output of the sync command.
type syncReport struct {
	Pass        string   `json:"pass"`
	Destination string   `json:"destination"`
	Written     []string `json:"written"`
	Pruned      []string `json:"pruned"`
	Error       string   `json:"error,omitempty"`
}

func newSyncCmd(a *app) *cobra.Command {
	var jsonMode bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one reconciliation pass",
		Long: "Write every template row into the destination directory and remove\n" +
			"files no row names. Exits non-zero when the pass fails.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			_, ext := a.host()
			res := ext.Sync(cmd.Context(), db)

			out := cmd.OutOrStdout()
			if jsonMode {
				report := syncReport{
					Pass:        res.PassID,
					Destination: res.Destination,
					Written:     res.Written,
					Pruned:      res.Pruned,
				}
				if res.Err != nil {
					report.Error = res.Err.Error()
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else if res.OK() {
				fmt.Fprintf(out, "synced %s: %d written, %d pruned\n",
					res.Destination, len(res.Written), len(res.Pruned))
			}

			if res.Err != nil {
				err := fmt.Errorf("sync: %w", res.Err)
				if errors.Is(err, types.ErrDestinationUnset) {
					return userError{err}
				}
				return storeError(err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output the pass result as JSON")
	return cmd
}
