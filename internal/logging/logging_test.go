package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	c := DefaultConfig()
	c.Level = "loud"
	assert.Error(t, c.Validate())
}

func TestNewLevel(t *testing.T) {
	c := DefaultConfig()
	c.Level = "debug"

	l, closer, err := New(c)
	require.NoError(t, err)
	defer closer.Close()
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestNewInvalidLevel(t *testing.T) {
	c := DefaultConfig()
	c.Level = "loud"

	_, _, err := New(c)
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tmplsync.log")
	c := DefaultConfig()
	c.File = path

	l, closer, err := New(c)
	require.NoError(t, err)

	l.WithField("extension", "tmplsync").Info("Sync done!")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sync done!")
	assert.Contains(t, string(data), "extension=tmplsync")
	assert.NotContains(t, string(data), "\x1b[", "log file must not contain color codes")
}
