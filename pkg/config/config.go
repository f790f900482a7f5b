// Package config loads the tool's settings through viper: defaults, an
// optional YAML file, DOXYNG_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"braces.dev/errtrace"
	"github.com/spf13/viper"

	"doxy-next-gen/pkg/formatter"
	"doxy-next-gen/pkg/frontend"
)

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. DOXYNG_REPORT_FORMAT=json.
const EnvPrefix = "DOXYNG"

// DefaultFile is the config file looked up in the working directory when no
// --config flag is given.
const DefaultFile = ".doxy-next-gen"

// Config holds the complete configuration.
type Config struct {
	Frontend string       `mapstructure:"frontend"`
	Jobs     int          `mapstructure:"jobs"`
	Report   ReportConfig `mapstructure:"report"`
	Match    MatchConfig  `mapstructure:"match"`
	Model    ModelConfig  `mapstructure:"model"`
	Log      LogConfig    `mapstructure:"log"`
}

// ReportConfig controls how the documentation model is rendered.
type ReportConfig struct {
	Format    string `mapstructure:"format"`
	Delimiter string `mapstructure:"delimiter"`
}

// MatchConfig controls comment matching.
type MatchConfig struct {
	// Consume removes a comment from candidacy once a declaration took it.
	Consume bool `mapstructure:"consume"`
}

// ModelConfig controls post-processing of the model.
type ModelConfig struct {
	// Merge drops undocumented entries that have a documented twin.
	Merge bool `mapstructure:"merge"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	levels    = []string{"trace", "debug", "info", "warn", "error", "disabled"}
	logFormat = []string{"console", "json"}
)

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("frontend", "native")
	v.SetDefault("jobs", 4)
	v.SetDefault("report.format", "text")
	v.SetDefault("report.delimiter", "---")
	v.SetDefault("match.consume", false)
	v.SetDefault("model.merge", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// Load prepares v with defaults, the environment and the config file. An
// empty file means DefaultFile in the working directory, which may be
// missing.
func Load(v *viper.Viper, file string) error {
	SetDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(DefaultFile)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return errtrace.Wrap(fmt.Errorf("read config: %w", err))
		}
	}
	return nil
}

// New creates a Config from v and validates it.
func New(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("unable to decode config: %w", err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("invalid configuration: %w", err))
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if frontends := frontend.Names(); !oneOf(c.Frontend, frontends) {
		return fmt.Errorf("frontend must be one of %s, got %q", strings.Join(frontends, ", "), c.Frontend)
	}
	if formats := formatter.Formats(); !oneOf(c.Report.Format, formats) {
		return fmt.Errorf("report.format must be one of %s, got %q", strings.Join(formats, ", "), c.Report.Format)
	}
	if !oneOf(c.Log.Level, levels) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(levels, ", "), c.Log.Level)
	}
	if !oneOf(c.Log.Format, logFormat) {
		return fmt.Errorf("log.format must be one of %s, got %q", strings.Join(logFormat, ", "), c.Log.Format)
	}
	if c.Jobs < 1 {
		return errors.New("jobs must be at least 1")
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
