package reconcile

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// dirPerm is the mode used when creating the destination directory.
const dirPerm = 0o755

// TemplateSource supplies the full set of template rows for a pass.
type TemplateSource interface {
	Templates(ctx context.Context) ([]types.TemplateRecord, error)
}

// Synchronizer runs reconciliation passes against a filesystem.
// A Synchronizer is safe for concurrent use.
type Synchronizer struct {
	fs    afero.Fs
	log   logrus.FieldLogger
	locks pathLocks
}

// New returns a Synchronizer writing through fsys. A nil log discards
// per-file debug output.
func New(fsys afero.Fs, log logrus.FieldLogger) *Synchronizer {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Synchronizer{fs: fsys, log: log}
}

// NewOS returns a Synchronizer on the real filesystem.
func NewOS(log logrus.FieldLogger) *Synchronizer {
	return New(afero.NewOsFs(), log)
}

// Sync runs one reconciliation pass making destination hold exactly one file
// per row of src, each with the row's body.
//
// destination is taken as given on every call; an empty value fails the pass
// with ErrDestinationUnset. Overlapping calls for the same destination run
// one after another.
func (s *Synchronizer) Sync(ctx context.Context, src TemplateSource, destination string) types.SyncResult {
	res := types.SyncResult{PassID: newPassID(), Destination: destination}

	if destination == "" {
		res.Err = &types.OpError{Op: types.OpResolve, Err: types.ErrDestinationUnset}
		return res
	}
	dest, err := filepath.Abs(destination)
	if err != nil {
		res.Err = &types.OpError{Op: types.OpResolve, Path: destination, Err: err}
		return res
	}
	res.Destination = dest

	unlock := s.locks.lock(dest)
	defer unlock()

	log := s.log.WithFields(logrus.Fields{"pass": res.PassID, "destination": dest})
	res.Err = s.pass(ctx, log, src, &res)
	return res
}

func (s *Synchronizer) pass(ctx context.Context, log logrus.FieldLogger, src TemplateSource, res *types.SyncResult) error {
	dest := res.Destination

	if err := s.ensureDir(dest); err != nil {
		return &types.OpError{Op: types.OpMkdir, Path: dest, Err: err}
	}

	records, err := src.Templates(ctx)
	if err != nil {
		return &types.OpError{Op: types.OpRead, Path: types.TemplatesTable, Err: err}
	}

	wanted := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if err := types.ValidateFilename(rec.File); err != nil {
			return &types.OpError{Op: types.OpWrite, Path: rec.File, Err: err}
		}
		wanted[rec.File] = struct{}{}
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return &types.OpError{Op: types.OpWrite, Path: dest, Err: err}
		}
		path := filepath.Join(dest, rec.File)
		if err := writeFileAtomic(s.fs, path, rec.Body); err != nil {
			return &types.OpError{Op: types.OpWrite, Path: path, Err: err}
		}
		res.Written = append(res.Written, rec.File)
		log.WithField("file", rec.File).Debug("wrote template")
	}

	entries, err := afero.ReadDir(s.fs, dest)
	if err != nil {
		return &types.OpError{Op: types.OpList, Path: dest, Err: err}
	}
	for _, e := range entries {
		if _, ok := wanted[e.Name()]; ok {
			continue
		}
		if e.IsDir() {
			log.WithField("dir", e.Name()).Debug("leaving subdirectory in place")
			continue
		}
		if err := ctx.Err(); err != nil {
			return &types.OpError{Op: types.OpRemove, Path: dest, Err: err}
		}
		path := filepath.Join(dest, e.Name())
		if err := s.fs.Remove(path); err != nil {
			return &types.OpError{Op: types.OpRemove, Path: path, Err: err}
		}
		res.Pruned = append(res.Pruned, e.Name())
		log.WithField("file", e.Name()).Debug("pruned file")
	}
	return nil
}

// ensureDir creates dir and its parents if needed and checks that it is a
// directory.
func (s *Synchronizer) ensureDir(dir string) error {
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return err
	}
	fi, err := s.fs.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// newPassID returns a time-ordered identifier for log correlation.
func newPassID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
