// Package builtin holds the mail templates that seed the template table the
// first time it is created, and the loader that turns a directory of files
// into template records.
package builtin

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// Dir is the directory inside FS holding the built-in templates.
const Dir = "templates"

// FS is the embedded built-in template directory.
//
//go:embed templates/*
var FS embed.FS

// Templates returns one record per built-in template file.
func Templates() ([]types.TemplateRecord, error) {
	return Load(FS, Dir)
}

// Load reads every regular file directly inside dir. Subdirectories are not
// descended into. Each file becomes one record whose body is the raw file
// content. Records are returned in filename order.
func Load(fsys fs.FS, dir string) ([]types.TemplateRecord, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	records := make([]types.TemplateRecord, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		body, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		records = append(records, types.TemplateRecord{File: e.Name(), Body: body})
	}
	return records, nil
}
