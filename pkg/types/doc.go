// Package types defines the template record, configuration, typed results,
// and standard errors shared by the tmplsync host database, synchronizer,
// and extension wiring.
package types
