package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tmplsync/internal/logging"
)

func TestLoadMissingConfig(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	v, err := Load(configDir)
	require.NoError(t, err)

	_, err = os.Stat(configDir)
	assert.True(t, os.IsNotExist(err), "Load must not create the config dir")

	assert.Equal(t, "info", v.GetString(KeyLogLevel))
	assert.True(t, v.GetBool(KeyLogColor))
}

func TestLoadKeepsExistingConfig(t *testing.T) {
	configDir := t.TempDir()
	custom := "data_dir: /custom/data\nemail_templates_path: /custom/out\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileExt), []byte(custom), 0o644))
	t.Setenv(EnvDestination, "")

	v, err := Load(configDir)
	require.NoError(t, err)

	assert.Equal(t, "/custom/data", v.GetString(KeyDataDir))
	assert.Equal(t, "debug", Logging(v).Level)

	env := NewEnv(v)
	assert.Equal(t, "/custom/data", env.DataDir())
	// An empty env var does not shadow the config file value.
	assert.Equal(t, "/custom/out", env.Destination())
}

func TestLoadMalformedConfig(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileExt), []byte("log: [unclosed"), 0o644))

	_, err := Load(configDir)
	assert.Error(t, err)
}

func TestEnvDestinationReadFresh(t *testing.T) {
	env := NewEnv(nil)

	t.Setenv(EnvDestination, "/first")
	assert.Equal(t, "/first", env.Destination())

	t.Setenv(EnvDestination, "/second")
	assert.Equal(t, "/second", env.Destination(), "destination must not be cached")
}

func TestEnvOverridesConfigFile(t *testing.T) {
	configDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(configDir, configFileExt),
		[]byte("email_templates_path: /from/file\n"), 0o644))
	t.Setenv(EnvDestination, "/from/env")

	v, err := Load(configDir)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", NewEnv(v).Destination())
}

func TestLogEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFile, "/var/log/tmplsync.log")

	v, err := Load(t.TempDir())
	require.NoError(t, err)
	c := Logging(v)
	assert.Equal(t, "warn", c.Level)
	assert.Equal(t, "/var/log/tmplsync.log", c.File)
}

func TestDataDirIgnoresEnv(t *testing.T) {
	t.Setenv("TMPLSYNC_DATA_DIR", "/env/data")

	v, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, NewEnv(v).DataDir())
}

func TestWriteFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "cfg")
	f := File{DataDir: "/data", Destination: "/out", Log: logging.DefaultConfig()}

	wrote, err := WriteFile(configDir, f)
	require.NoError(t, err)
	assert.True(t, wrote)

	data, err := os.ReadFile(filepath.Join(configDir, configFileExt))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), configHeader))

	v, err := Load(configDir)
	require.NoError(t, err)
	assert.Equal(t, "/data", v.GetString(KeyDataDir))
	assert.Equal(t, f.Log, Logging(v))

	var got File
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, f, got)

	wrote, err = WriteFile(configDir, File{DataDir: "/other"})
	require.NoError(t, err)
	assert.False(t, wrote, "existing config must not be overwritten")
}
