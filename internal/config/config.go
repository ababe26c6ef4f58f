// file: internal/config/config.go
// version: 2.0.0
// guid: 3c5d7e9f-1a2b-3c4d-5e6f-7a8b9c0d1e2f

// Package config loads the application configuration once at startup. The
// resulting Config value is passed explicitly into the components that need
// it; nothing reads configuration state after Load returns.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Lookup holds the confidence thresholds of the matching pipeline.
type Lookup struct {
	AcceptScore       int // auto-accept at or above
	SuggestScore      int // interactive default flips to yes above
	ShortCircuitScore int // high-trust provider pre-empts the rest at or above
}

// Limits holds the per-component path length budgets.
type Limits struct {
	MaxAuthorLen int
	MaxSeriesLen int
	MaxTitleLen  int
}

// Flags are process-wide feature toggles loaded from the persisted
// configuration. Unknown flags return the caller-supplied default.
type Flags map[string]bool

// IsOn reports whether a named flag is enabled, falling back to def when the
// flag was never configured.
func (f Flags) IsOn(name string, def bool) bool {
	if v, ok := f[strings.ToLower(name)]; ok {
		return v
	}
	return def
}

// Config is the full application configuration.
type Config struct {
	Lookup Lookup
	Limits Limits
	Flags  Flags
}

// Load reads the configuration file (explicit path, or .abtools.yaml in the
// home directory and the working directory) and returns the resulting
// Config. A missing file yields the defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("lookup.accept_score", 70)
	v.SetDefault("lookup.suggest_score", 80)
	v.SetDefault("lookup.shortcircuit_score", 80)
	v.SetDefault("limits.max_author_len", 50)
	v.SetDefault("limits.max_series_len", 50)
	v.SetDefault("limits.max_title_len", 50)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".abtools")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		// Default search paths: a missing file is fine, a broken one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		Lookup: Lookup{
			AcceptScore:       v.GetInt("lookup.accept_score"),
			SuggestScore:      v.GetInt("lookup.suggest_score"),
			ShortCircuitScore: v.GetInt("lookup.shortcircuit_score"),
		},
		Limits: Limits{
			MaxAuthorLen: v.GetInt("limits.max_author_len"),
			MaxSeriesLen: v.GetInt("limits.max_series_len"),
			MaxTitleLen:  v.GetInt("limits.max_title_len"),
		},
		Flags: Flags{},
	}
	for name, raw := range v.GetStringMap("flags") {
		if b, ok := raw.(bool); ok {
			cfg.Flags[strings.ToLower(name)] = b
		}
	}
	return cfg, nil
}
