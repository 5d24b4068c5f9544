// Package config loads jsfuse settings from a config file, JSFUSE_*
// environment variables and command line flags.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/deepnoodle-ai/jsfuse/errz"
	"github.com/deepnoodle-ai/jsfuse/transform/composition"
)

const (
	// EnvPrefix prefixes environment variables, e.g. JSFUSE_LOG_LEVEL or
	// JSFUSE_NAMES_APPLY2.
	EnvPrefix = "JSFUSE"

	// DefaultFile is the config file looked up in the home directory.
	DefaultFile = ".jsfuse.yaml"

	// DefaultLogLevel hides the info-level run summary.
	DefaultLogLevel = "warn"
)

// Config is the resolved configuration.
type Config struct {
	Names    composition.Names `mapstructure:"names"`
	LogLevel string            `mapstructure:"log_level"`
	NoColor  bool              `mapstructure:"no_color"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Names:    composition.DefaultNames(),
		LogLevel: DefaultLogLevel,
	}
}

// SetDefaults registers every key with its default value. Keys must be
// known to v for environment variables to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	def := Default()
	v.SetDefault("names.apply2", def.Names.Apply2)
	v.SetDefault("names.apply3", def.Names.Apply3)
	v.SetDefault("names.compose_left", def.Names.ComposeLeft)
	v.SetDefault("names.compose_right", def.Names.ComposeRight)
	v.SetDefault("names.param_prefix", def.Names.ParamPrefix)
	v.SetDefault("names.decl_prefix", def.Names.DeclPrefix)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("no_color", def.NoColor)
}

// DefaultPath returns the path of the config file in the home directory.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultFile), nil
}

// Load resolves the configuration held by v. If path is empty the default
// file is read when it exists; an explicit path must exist. Values set
// directly on v or bound flags take precedence over the environment, which
// takes precedence over the file.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("no_color", EnvPrefix+"_NO_COLOR", "NO_COLOR")

	if path == "" {
		if def, err := DefaultPath(); err == nil {
			if _, err := os.Stat(def); err == nil {
				path = def
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errz.New(errz.ErrConfig, errz.SourceLocation{},
				"reading %s: %v", path, err).WithCause(err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errz.New(errz.ErrConfig, errz.SourceLocation{},
			"decoding configuration: %v", err).WithCause(err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the names and the log level.
func (c Config) Validate() error {
	if err := c.Names.Validate(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level disables logging.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.Disabled, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.NoLevel, errz.New(errz.ErrConfig, errz.SourceLocation{},
			"log_level: unknown level %q", c.LogLevel).WithCause(err)
	}
	return level, nil
}
