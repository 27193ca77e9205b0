// Package config loads the peq settings from defaults, an optional YAML
// file, PEQ_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/internal/logging"
)

// EnvPrefix is prepended to every environment override, e.g.
// PEQ_AUDIO_SAMPLE_RATE.
const EnvPrefix = "PEQ"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Audio describes the stream the engine is prepared for.
type Audio struct {
	SampleRate float64 `mapstructure:"sample_rate"`
	BlockSize  int     `mapstructure:"block_size"`
	Channels   int     `mapstructure:"channels"`
	Device     string  `mapstructure:"device"`
}

// Metrics controls the Prometheus endpoint of the live command.
type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
}

// Config is the complete application configuration.
type Config struct {
	Audio   Audio          `mapstructure:"audio"`
	Preset  string         `mapstructure:"preset"`
	Log     logging.Config `mapstructure:"log"`
	Metrics Metrics        `mapstructure:"metrics"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("audio.sample_rate", 48000.0)
	v.SetDefault("audio.block_size", 512)
	v.SetDefault("audio.channels", 2)
	v.SetDefault("audio.device", "")
	v.SetDefault("preset", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatText)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen", ":9464")
}

// New returns a viper instance with defaults and environment overrides
// configured. Callers bind flags and then call Load.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags maps flag names to configuration keys, e.g.
// {"sample-rate": "audio.sample_rate"}. Unknown flags are an error.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("config: unknown flag %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads the configuration. When file is empty, peq.yaml is searched
// in the working directory and $HOME/.config/peq; a missing file is not an
// error. An explicitly named file must exist.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("peq")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/peq")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the engine cannot be prepared with.
func (c *Config) Validate() error {
	if err := c.Processor().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return fmt.Errorf("%w: metrics enabled without listen address", ErrInvalidConfig)
	}
	return nil
}

// Processor returns the engine configuration of the audio section.
func (c *Config) Processor() core.ProcessorConfig {
	return core.ProcessorConfig{
		SampleRate: c.Audio.SampleRate,
		BlockSize:  c.Audio.BlockSize,
		Channels:   c.Audio.Channels,
	}
}
