// Package sqlite implements the host database for tmplsync.
// This file holds the DDL for the host metadata tables and the template table.
package sqlite

// Host metadata DDL, applied on every Open.
const (
	createCollections = `CREATE TABLE IF NOT EXISTS directus_collections (
    collection TEXT PRIMARY KEY,
    hidden INTEGER NOT NULL DEFAULT 0,
    singleton INTEGER NOT NULL DEFAULT 0
);`

	createFields = `CREATE TABLE IF NOT EXISTS directus_fields (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    collection TEXT NOT NULL,
    field TEXT NOT NULL,
    interface TEXT,
    sort INTEGER,
    options TEXT,
    UNIQUE (collection, field)
);`
)

// createTemplates is only run inside the bootstrap transaction. It has no
// IF NOT EXISTS clause so a concurrent bootstrap fails and rolls back.
const createTemplates = `CREATE TABLE directus_ext_email_template (
    template_file TEXT PRIMARY KEY,
    template_body TEXT
);`

// hostDDL lists the statements Open applies in order.
var hostDDL = []string{
	createCollections,
	createFields,
}
