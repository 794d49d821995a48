package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the smartme-decode settings.
type Config struct {
	Schema struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"schema"`
	Decode struct {
		AdjustEpoch bool `mapstructure:"adjust_epoch"`
	} `mapstructure:"decode"`
	Output struct {
		Format string `mapstructure:"format"`
	} `mapstructure:"output"`
	Metrics struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"metrics"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
}

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"schema":       "schema.path",
	"adjust-epoch": "decode.adjust_epoch",
	"format":       "output.format",
	"metrics-addr": "metrics.addr",
	"log-level":    "logging.level",
}

// Load reads configuration from path (or ./smartme.yaml when path is empty
// and the file exists), SMARTME_* environment variables and any flags in fs
// that were set explicitly.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("schema.path", "")
	v.SetDefault("decode.adjust_epoch", false)
	v.SetDefault("output.format", FormatJSON)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("logging.level", "info")

	v.SetEnvPrefix("SMARTME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("smartme")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatJSON, FormatYAML, c.Output.Format)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

// LogLevel returns the parsed logging level.
func (c *Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Logging.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
