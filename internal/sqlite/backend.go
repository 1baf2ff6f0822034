// Package sqlite implements the host database for tmplsync: the template
// table, the host's collection and field registries, and the one-time
// bootstrap transaction that creates and seeds them.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "tmplsync.db"

// Backend is the host database handle passed to every lifecycle event.
type Backend struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

// Open creates dataDir if needed, opens the database file inside it, and
// applies the host metadata schema. The template table is not created here;
// that is the job of Bootstrap.
func Open(dataDir string) (*Backend, error) {
	if dataDir == "" {
		return nil, types.ErrDataDirEmpty
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}

	for _, ddl := range hostDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("applying host schema: %w", err)
		}
	}

	return &Backend{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (b *Backend) Path() string {
	return b.path
}

// Close releases the database connection. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.db == nil {
		return nil
	}
	err := b.db.Close()
	b.db = nil
	return err
}

// conn returns the open database or ErrStoreClosed. The caller must hold b.mu.
func (b *Backend) conn() (*sql.DB, error) {
	if b.db == nil {
		return nil, types.ErrStoreClosed
	}
	return b.db, nil
}

// HasTable reports whether a table with the given name exists.
func (b *Backend) HasTable(ctx context.Context, name string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return false, err
	}
	return hasTable(ctx, db, name)
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func hasTable(ctx context.Context, q queryer, name string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking table %s: %w", name, err)
	}
	return count > 0, nil
}

// Collection returns the registry row for the named collection.
func (b *Backend) Collection(ctx context.Context, name string) (types.Collection, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return types.Collection{}, err
	}

	c := types.Collection{Name: name}
	err = db.QueryRowContext(ctx,
		"SELECT hidden, singleton FROM directus_collections WHERE collection = ?", name,
	).Scan(&c.Hidden, &c.Singleton)
	if err == sql.ErrNoRows {
		return types.Collection{}, types.ErrNotFound
	}
	if err != nil {
		return types.Collection{}, fmt.Errorf("reading collection %s: %w", name, err)
	}
	return c, nil
}

// Fields returns the field registry rows of a collection ordered by sort.
func (b *Backend) Fields(ctx context.Context, collection string) ([]types.Field, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT field, interface, sort, options FROM directus_fields WHERE collection = ? ORDER BY sort",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("querying fields of %s: %w", collection, err)
	}
	defer rows.Close()

	var fields []types.Field
	for rows.Next() {
		f := types.Field{Collection: collection}
		var iface, options sql.NullString
		var sort sql.NullInt64
		if err := rows.Scan(&f.Field, &iface, &sort, &options); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		f.Interface = iface.String
		f.Sort = int(sort.Int64)
		if options.Valid {
			f.Options = []byte(options.String)
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}
