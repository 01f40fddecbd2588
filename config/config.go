// SPDX-License-Identifier: MIT

package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. LVLTRACE_CACHE_BACKEND.
const EnvPrefix = "LVLTRACE"

// ErrInvalidConfig wraps every load and validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full runtime configuration.
type Config struct {
	Cache     Cache     `mapstructure:"cache"`
	Synthesis Synthesis `mapstructure:"synthesis"`
	Log       Log       `mapstructure:"log"`
}

// Cache selects the similarity cache backend.
type Cache struct {
	Enabled bool   `mapstructure:"enabled"`
	Backend string `mapstructure:"backend" validate:"oneof=file badger"`
	Dir     string `mapstructure:"dir" validate:"required_if=Enabled true"`
}

// Synthesis tunes missing-trace synthesis.
type Synthesis struct {
	Method string `mapstructure:"method" validate:"oneof=MAX SUM PCA"`
	Rounds int    `mapstructure:"rounds" validate:"min=0"`
}

// Log controls the process logger.
type Log struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// SetDefaults registers the built-in defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.dir", ".cache/lvltrace")
	v.SetDefault("synthesis.method", "MAX")
	v.SetDefault("synthesis.rounds", 5)
	v.SetDefault("log.json", false)
	v.SetDefault("log.level", "info")
}

// Load builds a Config from defaults, the optional file at path and
// LVLTRACE_* environment variables, in increasing precedence.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(ErrInvalidConfig, "read %s: %v", path, err)
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper unmarshals and validates an already prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	cfg.Synthesis.Method = strings.ToUpper(cfg.Synthesis.Method)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(ErrInvalidConfig, err.Error())
	}

	return nil
}
