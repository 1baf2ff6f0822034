// Package extension wires the template bootstrapper and synchronizer into the
// host's lifecycle events.
//
// Control flow:
//
//	server.start                       -> table missing? -> Setup -> Sync
//	                                      (failed Setup syncs only if the table now exists)
//	directus_ext_email_template.items.create -> Sync
//	directus_ext_email_template.items.update -> Sync
//
// Setup and Sync return typed results. The event actions log those results
// and never hand an error back to the host.
package extension

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/tmplsync/internal/builtin"
	"github.com/mesh-intelligence/tmplsync/internal/hooks"
	"github.com/mesh-intelligence/tmplsync/internal/reconcile"
	"github.com/mesh-intelligence/tmplsync/pkg/types"
)

// Name tags every log line the extension emits.
const Name = "tmplsync"

// Environment supplies the destination directory. It is consulted on every
// pass.
type Environment interface {
	Destination() string
}

// SeedFunc returns the records inserted when the template table is created.
type SeedFunc func() ([]types.TemplateRecord, error)

// Extension holds the collaborators of the lifecycle actions.
type Extension struct {
	env  Environment
	sync *reconcile.Synchronizer
	seed SeedFunc
	log  logrus.FieldLogger
}

// Option configures an Extension.
type Option func(*Extension)

// WithSeed replaces the built-in seed templates.
func WithSeed(fn SeedFunc) Option {
	return func(e *Extension) { e.seed = fn }
}

// New returns an Extension. log must not be nil.
func New(env Environment, s *reconcile.Synchronizer, log logrus.FieldLogger, opts ...Option) *Extension {
	e := &Extension{
		env:  env,
		sync: s,
		seed: builtin.Templates,
		log:  log.WithField("extension", Name),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register subscribes the extension's actions.
func (e *Extension) Register(r *hooks.Registry) {
	r.Action(types.EventItemsCreate, e.onItemsWritten)
	r.Action(types.EventItemsUpdate, e.onItemsWritten)
	r.Action(types.EventServerStart, e.onServerStart)
}

func (e *Extension) onItemsWritten(ctx context.Context, meta hooks.Meta) error {
	e.log.WithFields(logrus.Fields{"event": meta.Event, "keys": meta.Keys}).Debug("records written")
	e.Sync(ctx, meta.Database)
	return nil
}

func (e *Extension) onServerStart(ctx context.Context, meta hooks.Meta) error {
	if res := e.Setup(ctx, meta.Database); !res.OK() {
		// Another instance may have created the table first; that table is
		// still worth syncing.
		exists, err := meta.Database.HasTable(ctx, types.TemplatesTable)
		if err != nil || !exists {
			e.log.Warn("skipping sync after failed setup")
			return nil
		}
	}
	e.Sync(ctx, meta.Database)
	return nil
}

// Setup bootstraps the template table when it does not exist yet. The
// outcome is logged and returned.
func (e *Extension) Setup(ctx context.Context, db hooks.Database) types.BootstrapResult {
	var res types.BootstrapResult

	exists, err := db.HasTable(ctx, types.TemplatesTable)
	if err != nil {
		res.Err = &types.OpError{Op: types.OpSchema, Path: types.TemplatesTable, Err: err}
		e.log.WithError(res.Err).Error("setup failed")
		return res
	}
	if exists {
		res.Skipped = true
		return res
	}

	seed, err := e.seed()
	if err != nil {
		res.Err = &types.OpError{Op: types.OpSeed, Path: builtin.Dir, Err: err}
		e.log.WithError(res.Err).Error("setup failed")
		return res
	}

	if err := db.Bootstrap(ctx, seed); err != nil {
		res.Err = err
		e.log.WithError(err).Error("setup failed")
		return res
	}

	res.Seeded = types.Filenames(seed)
	e.log.WithField("seeded", len(res.Seeded)).Info("setup done")
	return res
}

// Sync runs one reconciliation pass into the current destination. The
// outcome is logged and returned.
func (e *Extension) Sync(ctx context.Context, src reconcile.TemplateSource) types.SyncResult {
	res := e.sync.Sync(ctx, src, e.env.Destination())

	log := e.log.WithFields(logrus.Fields{
		"pass":        res.PassID,
		"destination": res.Destination,
		"written":     len(res.Written),
		"pruned":      len(res.Pruned),
	})
	if !res.OK() {
		log.WithError(res.Err).Error("sync failed")
		return res
	}
	log.Info("sync done")
	return res
}
