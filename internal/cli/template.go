package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tmplsync/internal/hooks"
	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

func newTemplateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage template rows",
	}
	cmd.AddCommand(newTemplateListCmd(a))
	cmd.AddCommand(newTemplateGetCmd(a))
	cmd.AddCommand(newTemplateSetCmd(a))
	cmd.AddCommand(newTemplateDeleteCmd(a))
	return cmd
}

func newTemplateListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List template filenames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := db.Templates(cmd.Context())
			if err != nil {
				return storeError(err)
			}
			names := types.Filenames(records)
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTemplateGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file>",
		Short: "Print the body of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			rec, err := db.Template(cmd.Context(), args[0])
			if err != nil {
				return storeError(fmt.Errorf("template %q: %w", args[0], err))
			}
			_, err = cmd.OutOrStdout().Write(rec.Body)
			return err
		},
	}
}

func newTemplateSetCmd(a *app) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "set <file>",
		Short: "Create or update a template",
		Long: "Store a template body, read from --from or standard input, then emit\n" +
			"the matching items.create or items.update event.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			if err := types.ValidateFilename(file); err != nil {
				return userError{fmt.Errorf("%w: %q", err, file)}
			}

			body, err := readBody(cmd, from)
			if err != nil {
				return err
			}

			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx := cmd.Context()
			rec := types.TemplateRecord{File: file, Body: body}
			event := types.EventItemsUpdate
			err = db.UpdateTemplate(ctx, rec)
			if errors.Is(err, types.ErrNotFound) {
				event = types.EventItemsCreate
				err = db.CreateTemplate(ctx, rec)
			}
			if err != nil {
				return storeError(err)
			}

			reg, _ := a.host()
			return reg.Emit(ctx, hooks.Meta{Event: event, Database: db, Keys: []string{file}})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "read the body from this file instead of stdin")
	return cmd
}

func newTemplateDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file>",
		Short: "Delete a template row",
		Long: "Delete a template row. No event is emitted, so the file stays in the\n" +
			"destination until the next start, create, or update.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.DeleteTemplate(cmd.Context(), args[0]); err != nil {
				return storeError(fmt.Errorf("template %q: %w", args[0], err))
			}
			return nil
		},
	}
}

func readBody(cmd *cobra.Command, from string) ([]byte, error) {
	if from != "" {
		body, err := os.ReadFile(from)
		if err != nil {
			return nil, userError{fmt.Errorf("read body: %w", err)}
		}
		return body, nil
	}
	return io.ReadAll(cmd.InOrStdin())
}

// storeError marks lookups of missing rows or a missing table as user errors.
func storeError(err error) error {
	switch {
	case errors.Is(err, types.ErrTableMissing):
		return userError{fmt.Errorf("%w (run tmplsync start first)", err)}
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrTemplateExists):
		return userError{err}
	}
	return err
}
