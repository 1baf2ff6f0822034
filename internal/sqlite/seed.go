// Package sqlite implements the host database for tmplsync.
// This file implements the one-time bootstrap of the template table.
package sqlite

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// Bootstrap creates the template table, registers it as a hidden,
// non-singleton collection, registers its two fields, and inserts the seed
// rows, all in one transaction. On any failure the transaction is rolled back
// and nothing is left behind. A failed rollback is reported together with the
// cause.
func (b *Backend) Bootstrap(ctx context.Context, seed []types.TemplateRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning bootstrap transaction: %w", err)
	}

	if err := bootstrapTx(ctx, tx, seed); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return multierror.Append(err, fmt.Errorf("rolling back bootstrap: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return &types.OpError{Op: types.OpCommit, Err: err}
	}
	return nil
}

func bootstrapTx(ctx context.Context, tx execer, seed []types.TemplateRecord) error {
	if _, err := tx.ExecContext(ctx, createTemplates); err != nil {
		return &types.OpError{Op: types.OpSchema, Path: types.TemplatesTable, Err: err}
	}

	_, err := tx.ExecContext(ctx,
		"INSERT INTO directus_collections (collection, hidden, singleton) VALUES (?, ?, ?)",
		types.TemplatesTable, true, false,
	)
	if err != nil {
		return &types.OpError{Op: types.OpMetadata, Path: types.CollectionsTable, Err: err}
	}

	fields, err := types.TemplateFields(types.Filenames(seed))
	if err != nil {
		return &types.OpError{Op: types.OpMetadata, Path: types.FieldsTable, Err: err}
	}
	for _, f := range fields {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO directus_fields (collection, field, interface, sort, options) VALUES (?, ?, ?, ?, ?)",
			f.Collection, f.Field, f.Interface, f.Sort, string(f.Options),
		)
		if err != nil {
			return &types.OpError{Op: types.OpMetadata, Path: types.FieldsTable, Err: err}
		}
	}

	if err := insertTemplates(ctx, tx, seed); err != nil {
		return &types.OpError{Op: types.OpInsert, Path: types.TemplatesTable, Err: err}
	}
	return nil
}
