package config

import "github.com/spf13/viper"

// Env is the host's environment accessor. Every call reads the current
// value; nothing is cached between reconciliation passes.
type Env struct {
	v *viper.Viper
}

// NewEnv wraps a loaded Viper instance. A nil v reads the process
// environment only.
func NewEnv(v *viper.Viper) *Env {
	if v == nil {
		v = newViper()
	}
	return &Env{v: v}
}

// Destination returns EMAIL_TEMPLATES_PATH, falling back to
// email_templates_path from config.yaml.
func (e *Env) Destination() string {
	return e.v.GetString(KeyDestination)
}

// DataDir returns data_dir from config.yaml.
func (e *Env) DataDir() string {
	return e.v.GetString(KeyDataDir)
}
