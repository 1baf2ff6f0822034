package types

import "errors"

// Config holds the locations tmplsync works with.
type Config struct {
	// DataDir holds the host database file.
	DataDir string `json:"data_dir" yaml:"data_dir"`
	// Destination is the directory kept equal to the template table.
	Destination string `json:"email_templates_path" yaml:"email_templates_path"`
}

// Config validation errors.
var (
	ErrDataDirEmpty     = errors.New("data directory must not be empty")
	ErrDestinationUnset = errors.New("EMAIL_TEMPLATES_PATH is not set")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.Destination == "" {
		return ErrDestinationUnset
	}
	return nil
}
