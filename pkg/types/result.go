package types

import "fmt"

// Reconciliation and bootstrap operation names used in OpError.
const (
	OpResolve  = "resolve"
	OpMkdir    = "mkdir"
	OpRead     = "read"
	OpList     = "list"
	OpWrite    = "write"
	OpRemove   = "remove"
	OpSeed     = "seed"
	OpSchema   = "schema"
	OpMetadata = "metadata"
	OpInsert   = "insert"
	OpCommit   = "commit"
)

// OpError records the step and path that stopped a bootstrap or
// reconciliation pass.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// SyncResult is the outcome of one reconciliation pass.
// Written and Pruned list the filenames touched before the pass ended,
// so a failed pass still reports its partial progress.
type SyncResult struct {
	PassID      string
	Destination string
	Written     []string
	Pruned      []string
	Err         error
}

// OK reports whether the pass completed.
func (r SyncResult) OK() bool { return r.Err == nil }

// BootstrapResult is the outcome of the one-time table bootstrap.
// Skipped is set when the table already existed and nothing was done.
type BootstrapResult struct {
	Seeded  []string
	Skipped bool
	Err     error
}

// OK reports whether the bootstrap committed or was not needed.
func (r BootstrapResult) OK() bool { return r.Err == nil }
