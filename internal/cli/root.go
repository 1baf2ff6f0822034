// Package cli implements the tmplsync command-line host. It stands in for the
// host platform: it owns the database handle, the environment accessor, and
// the event registry, and emits lifecycle events to the extension.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/tmplsync/internal/config"
	"github.com/mesh-intelligence/tmplsync/internal/extension"
	"github.com/mesh-intelligence/tmplsync/internal/hooks"
	"github.com/mesh-intelligence/tmplsync/internal/logging"
	"github.com/mesh-intelligence/tmplsync/internal/paths"
	"github.com/mesh-intelligence/tmplsync/internal/reconcile"
	"github.com/mesh-intelligence/tmplsync/internal/sqlite"
)

// Exit codes.
const (
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and the state set up before each command.
type app struct {
	configDir string
	dataDir   string

	v      *viper.Viper
	log    *logrus.Logger
	closer io.Closer
}

// NewRootCmd creates the top-level "tmplsync" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "tmplsync",
		Short: "Keep a directory of mail templates equal to a database table",
		Long: "tmplsync stores mail templates as rows of a database table and mirrors\n" +
			"them into the directory named by EMAIL_TEMPLATES_PATH.",
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.tmplsync)")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newConfigCmd(a))
	root.AddCommand(newStartCmd(a))
	root.AddCommand(newSyncCmd(a))
	root.AddCommand(newTemplateCmd(a))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	a := &app{}
	root := newRootCmd(a)
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tmplsync:", err)
		os.Exit(exitCode(err))
	}
}

// userError marks failures caused by bad input rather than the system.
type userError struct{ error }

func (e userError) Unwrap() error { return e.error }

func exitCode(err error) int {
	var ue userError
	if errors.As(err, &ue) {
		return exitUserError
	}
	return exitSysError
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	a.configDir = configDir

	v, err := config.Load(configDir)
	if err != nil {
		return err
	}
	a.v = v

	logCfg := config.Logging(v)
	if err := logCfg.Validate(); err != nil {
		return userError{fmt.Errorf("log config: %w", err)}
	}
	log, closer, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	a.log, a.closer = log, closer
	return nil
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// resolveDataDir applies flag > config.yaml > TMPLSYNC_DATA_DIR > default.
func (a *app) resolveDataDir() (string, error) {
	return paths.ResolveDataDir(a.dataDir, config.NewEnv(a.v).DataDir())
}

// openDB opens the host database. The caller must Close it.
func (a *app) openDB() (*sqlite.Backend, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	db, err := sqlite.Open(dataDir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

// host builds the event registry with the extension registered.
func (a *app) host() (*hooks.Registry, *extension.Extension) {
	env := config.NewEnv(a.v)
	sync := reconcile.NewOS(a.log.WithField("extension", extension.Name))
	ext := extension.New(env, sync, a.log)

	reg := hooks.NewRegistry()
	ext.Register(reg)
	return reg, ext
}
