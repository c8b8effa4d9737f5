// Package config loads and validates tablepull configuration via Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config captures all tool configuration knobs loaded via Viper.
type Config struct {
	API     APIConfig                `mapstructure:"api"`
	Output  OutputConfig             `mapstructure:"output"`
	Logging LoggingConfig            `mapstructure:"logging"`
	Queries map[string]QueryOverride `mapstructure:"queries"`
}

// APIConfig controls the outbound PXWeb API client.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
}

// OutputConfig sets where cleaned tables and PX files land.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// QueryOverride points a dataset at a non-default query spec file.
type QueryOverride struct {
	Path string `mapstructure:"path"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TABLEPULL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://api.scb.se/OV0104/v1/doris/en/ssd/START")
	v.SetDefault("api.timeout_seconds", 30)
	v.SetDefault("api.user_agent", "tablepull/0.1")
	v.SetDefault("output.dir", "data")
	v.SetDefault("logging.development", true)
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive, got %d", c.API.TimeoutSeconds)
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output.dir must not be empty")
	}
	return nil
}

// QueryPath returns the configured query spec path for a dataset, or the
// empty string when no override is set.
func (c Config) QueryPath(dataset string) string {
	if o, ok := c.Queries[dataset]; ok {
		return o.Path
	}
	return ""
}
