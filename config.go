package rl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownKeyName is returned for an alias naming a key that does not exist.
var ErrUnknownKeyName = errors.New("unknown key name")

// ErrConfigFormat is returned for a config file that is neither TOML nor YAML.
var ErrConfigFormat = errors.New("unsupported config file format")

// AliasConfig is an identifier alias as written in a config file.
type AliasConfig struct {
	Location int    `toml:"location" yaml:"location"`
	Raw      string `toml:"raw" yaml:"raw"`
	Key      string `toml:"key" yaml:"key"`
}

// Config configures the input pipeline.
type Config struct {
	// Punctuation is "fallback" (the default) or "distinct".
	Punctuation string        `toml:"punctuation" yaml:"punctuation"`
	Aliases     []AliasConfig `toml:"alias" yaml:"aliases"`
	Debug       bool          `toml:"debug" yaml:"debug"`
	// TTY is the terminal device the tools read from. Empty means autodetect.
	TTY string `toml:"tty" yaml:"tty"`
}

// DefaultConfig returns the configuration used when nothing is configured.
func DefaultConfig() Config {
	return Config{Punctuation: PunctuationFallback.String()}
}

// LoadConfig reads a .toml, .yaml or .yml file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrConfigFormat, path)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from RL_PUNCTUATION, RL_DEBUG and RL_TTY.
func (c *Config) ApplyEnv() {
	c.Punctuation = env.Str("RL_PUNCTUATION", c.Punctuation)
	if env.Has("RL_DEBUG") {
		c.Debug = env.Bool("RL_DEBUG")
	}
	c.TTY = env.Str("RL_TTY", c.TTY)
}

// Load returns the defaults, overlaid with the file named by RL_CONFIG (if
// set) and then with the environment.
func Load() (Config, error) {
	cfg := DefaultConfig()
	if path := env.Str("RL_CONFIG"); path != "" {
		var err error
		if cfg, err = LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Table builds the identifier table the configuration describes.
func (c Config) Table() (*Table, error) {
	policy, err := ParsePunctuationPolicy(c.Punctuation)
	if err != nil {
		return nil, err
	}
	aliases := make([]Alias, 0, len(c.Aliases))
	for _, a := range c.Aliases {
		k, ok := ParseKey(a.Key)
		if !ok || k == KeyChar {
			return nil, fmt.Errorf("alias %q: %w: %q", a.Raw, ErrUnknownKeyName, a.Key)
		}
		if a.Location < 0 || a.Location >= int(locationCount) {
			return nil, fmt.Errorf("alias %q: %w: %d", a.Raw, ErrBadLocation, a.Location)
		}
		aliases = append(aliases, Alias{Location: Location(a.Location), Raw: a.Raw, Key: k})
	}
	return NewTable(policy, aliases...)
}
