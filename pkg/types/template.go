package types

import (
	"errors"
	"path/filepath"
	"strings"
)

// Host table names.
const (
	TemplatesTable   = "directus_ext_email_template"
	CollectionsTable = "directus_collections"
	FieldsTable      = "directus_fields"
)

// Template table columns.
const (
	FieldTemplateFile = "template_file"
	FieldTemplateBody = "template_body"
)

// Field interface identifiers understood by the host record UI.
const (
	InterfaceSelectDropdown = "select-dropdown"
	InterfaceInputCode      = "input-code"
)

// Host lifecycle events the extension subscribes to.
const (
	EventItemsCreate = TemplatesTable + ".items.create"
	EventItemsUpdate = TemplatesTable + ".items.update"
	EventServerStart = "server.start"
)

// Template errors.
var (
	ErrInvalidFilename = errors.New("invalid template filename")
	ErrTemplateExists  = errors.New("template already exists")
	ErrNotFound        = errors.New("template not found")
	ErrTableMissing    = errors.New("template table does not exist")
	ErrStoreClosed     = errors.New("store is closed")
)

// TemplateRecord is one row of the template table: the desired content of
// one file in the destination directory.
type TemplateRecord struct {
	File string `json:"template_file" yaml:"template_file"`
	Body []byte `json:"template_body" yaml:"template_body"`
}

// ValidateFilename reports whether name can be used as a file inside the
// destination directory. Only plain base names are accepted.
func ValidateFilename(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return ErrInvalidFilename
	case strings.ContainsAny(name, `/\`):
		return ErrInvalidFilename
	case filepath.Base(name) != name:
		return ErrInvalidFilename
	}
	return nil
}

// Filenames returns the File of each record in order.
func Filenames(records []TemplateRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.File)
	}
	return names
}
