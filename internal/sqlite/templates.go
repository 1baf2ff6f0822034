// Package sqlite implements the host database for tmplsync.
// This file implements the generic record operations on the template table.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// Templates reads every row of the template table. There is no filtering and
// no pagination. Returns ErrTableMissing if the table was never created.
func (b *Backend) Templates(ctx context.Context) ([]types.TemplateRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}
	if err := requireTable(ctx, db); err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, "SELECT template_file, template_body FROM "+types.TemplatesTable)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer rows.Close()

	var records []types.TemplateRecord
	for rows.Next() {
		var rec types.TemplateRecord
		var body sql.NullString
		if err := rows.Scan(&rec.File, &body); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		rec.Body = []byte(body.String)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return records, nil
}

// Template returns the row with the given filename.
func (b *Backend) Template(ctx context.Context, file string) (types.TemplateRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return types.TemplateRecord{}, err
	}
	if err := requireTable(ctx, db); err != nil {
		return types.TemplateRecord{}, err
	}

	var body sql.NullString
	err = db.QueryRowContext(ctx,
		"SELECT template_body FROM "+types.TemplatesTable+" WHERE template_file = ?", file,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return types.TemplateRecord{}, types.ErrNotFound
	}
	if err != nil {
		return types.TemplateRecord{}, fmt.Errorf("reading template %s: %w", file, err)
	}
	return types.TemplateRecord{File: file, Body: []byte(body.String)}, nil
}

// CreateTemplate inserts a new row. Returns ErrTemplateExists if a row with
// the same filename is already present.
func (b *Backend) CreateTemplate(ctx context.Context, rec types.TemplateRecord) error {
	if err := types.ValidateFilename(rec.File); err != nil {
		return fmt.Errorf("%w: %q", err, rec.File)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning create transaction: %w", err)
	}
	defer tx.Rollback()

	if err := requireTable(ctx, tx); err != nil {
		return err
	}

	var count int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+types.TemplatesTable+" WHERE template_file = ?", rec.File,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("checking template %s: %w", rec.File, err)
	}
	if count > 0 {
		return types.ErrTemplateExists
	}

	if err := insertTemplates(ctx, tx, []types.TemplateRecord{rec}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing create transaction: %w", err)
	}
	return nil
}

// UpdateTemplate replaces the body of an existing row. Returns ErrNotFound if
// no row has the given filename.
func (b *Backend) UpdateTemplate(ctx context.Context, rec types.TemplateRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.conn()
	if err != nil {
		return err
	}
	if err := requireTable(ctx, db); err != nil {
		return err
	}

	res, err := db.ExecContext(ctx,
		"UPDATE "+types.TemplatesTable+" SET template_body = ? WHERE template_file = ?",
		string(rec.Body), rec.File,
	)
	if err != nil {
		return fmt.Errorf("updating template %s: %w", rec.File, err)
	}
	return expectOneRow(res)
}

// DeleteTemplate removes a row. Returns ErrNotFound if no row has the given
// filename.
func (b *Backend) DeleteTemplate(ctx context.Context, file string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	db, err := b.conn()
	if err != nil {
		return err
	}
	if err := requireTable(ctx, db); err != nil {
		return err
	}

	res, err := db.ExecContext(ctx,
		"DELETE FROM "+types.TemplatesTable+" WHERE template_file = ?", file,
	)
	if err != nil {
		return fmt.Errorf("deleting template %s: %w", file, err)
	}
	return expectOneRow(res)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTemplates(ctx context.Context, tx execer, records []types.TemplateRecord) error {
	for _, rec := range records {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO "+types.TemplatesTable+" (template_file, template_body) VALUES (?, ?)",
			rec.File, string(rec.Body),
		)
		if err != nil {
			return fmt.Errorf("inserting template %s: %w", rec.File, err)
		}
	}
	return nil
}

func requireTable(ctx context.Context, q queryer) error {
	ok, err := hasTable(ctx, q, types.TemplatesTable)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrTableMissing
	}
	return nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}
