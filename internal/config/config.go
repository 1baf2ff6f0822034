// Package config loads config.yaml and the host environment with Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tmplsync/internal/logging"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
)

// Config keys.
const (
	KeyDataDir     = "data_dir"
	KeyDestination = "email_templates_path"
	KeyLogLevel    = "log.level"
	KeyLogColor    = "log.color"
	KeyLogFile     = "log.file"
	KeyLogMaxSize  = "log.max_size_mb"
	KeyLogBackups  = "log.max_backups"
)

// EnvDestination names the destination directory of synchronized templates.
// It is looked up on every read so a running process picks up changes.
const EnvDestination = "EMAIL_TEMPLATES_PATH"

// Environment overrides for the logger.
const (
	EnvLogLevel = "TMPLSYNC_LOG_LEVEL"
	EnvLogFile  = "TMPLSYNC_LOG_FILE"
)

// configHeader is written above the YAML body of a new config.yaml.
const configHeader = `# tmplsync configuration
# EMAIL_TEMPLATES_PATH in the environment takes precedence over
# email_templates_path below.
`

// File is the structure of config.yaml.
type File struct {
	DataDir     string         `yaml:"data_dir,omitempty"`
	Destination string         `yaml:"email_templates_path,omitempty"`
	Log         logging.Config `yaml:"log"`
}

// Load reads config.yaml from configDir. A missing directory or file is not
// an error; defaults and the environment still apply.
func Load(configDir string) (*viper.Viper, error) {
	v := newViper()
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func newViper() *viper.Viper {
	def := logging.DefaultConfig()

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.SetDefault(KeyLogLevel, def.Level)
	v.SetDefault(KeyLogColor, def.Color)
	v.SetDefault(KeyLogMaxSize, def.MaxSizeMB)
	v.SetDefault(KeyLogBackups, def.MaxBackups)
	// data_dir has no env binding here; paths.ResolveDataDir consults
	// TMPLSYNC_DATA_DIR after the config file value.
	_ = v.BindEnv(KeyDestination, EnvDestination)
	_ = v.BindEnv(KeyLogLevel, EnvLogLevel)
	_ = v.BindEnv(KeyLogFile, EnvLogFile)
	return v
}

// WriteFile writes f to config.yaml in configDir unless the file already
// exists. It reports whether it wrote anything.
func WriteFile(configDir string, f File) (bool, error) {
	path := filepath.Join(configDir, configFileExt)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, err
	}
	data = append([]byte(configHeader), data...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// Logging returns the logger configuration held by v.
func Logging(v *viper.Viper) logging.Config {
	c := logging.DefaultConfig()
	c.Level = v.GetString(KeyLogLevel)
	c.Color = v.GetBool(KeyLogColor)
	c.File = v.GetString(KeyLogFile)
	c.MaxSizeMB = v.GetInt(KeyLogMaxSize)
	c.MaxBackups = v.GetInt(KeyLogBackups)
	return c
}
