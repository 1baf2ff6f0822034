// Package reconcile keeps a destination directory equal to the rows of the
// template table.
//
// A reconciliation pass:
//  1. Resolves the destination to an absolute path and creates it if missing
//  2. Reads every template row
//  3. Writes each row's body to <destination>/<template_file>, replacing any
//     existing file
//  4. Removes every file in the destination that no row names
//
// Passes on the same destination are serialized; passes on different
// destinations run independently. A pass stops at the first failure and
// reports it in the returned types.SyncResult. Work done before the failure
// is kept.
//
// Subdirectories of the destination are never removed.
package reconcile
