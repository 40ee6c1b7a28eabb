// Package config loads multijson defaults from a config file and the
// environment and applies them to an Engine.
//
// A config file named multijson.yaml (or .json, .toml) is searched for in the
// given directories:
//
//	adapter: gojson
//	load_options:
//	  use_number: true
//	dump_options:
//	  pretty: true
//	  escape_html: false
//
// MULTIJSON_ADAPTER overrides the file's adapter.
package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/zoobzio/multijson"
)

const (
	configFileName = "multijson"
	envPrefix      = "MULTIJSON"

	KeyAdapter     = "adapter"
	KeyLoadOptions = "load_options"
	KeyDumpOptions = "dump_options"
)

// Config holds engine defaults.
type Config struct {
	Adapter     string
	LoadOptions multijson.Options
	DumpOptions multijson.Options
}

// Load reads multijson.* from the first directory that has one and overlays
// the environment. A missing config file is not an error.
func Load(dirs ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configFileName)
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv(KeyAdapter); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if len(dirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return FromViper(v), nil
}

// LoadFile reads an explicit config file and overlays the environment.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	if err := v.BindEnv(KeyAdapter); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return FromViper(v), nil
}

// FromViper extracts a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Adapter:     v.GetString(KeyAdapter),
		LoadOptions: options(v, KeyLoadOptions),
		DumpOptions: options(v, KeyDumpOptions),
	}
}

func options(v *viper.Viper, key string) multijson.Options {
	if !v.IsSet(key) {
		return nil
	}
	return multijson.Options(v.GetStringMap(key))
}

// Apply sets the engine's default adapter and option defaults. Unset fields
// leave the engine unchanged. An unknown adapter fails before any option is
// applied.
func (c *Config) Apply(ctx context.Context, e *multijson.Engine) error {
	if c.Adapter != "" {
		if _, err := e.Use(ctx, c.Adapter); err != nil {
			return fmt.Errorf("apply adapter: %w", err)
		}
	}
	if c.LoadOptions != nil {
		e.SetLoadOptions(c.LoadOptions)
	}
	if c.DumpOptions != nil {
		e.SetDumpOptions(c.DumpOptions)
	}
	return nil
}
