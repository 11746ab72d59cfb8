// Package config loads the optional rox configuration file.
//
// The file is looked up in this order: an explicit path, the ROX_CONFIG
// environment variable, then rox.toml in the working directory. The format
// follows the extension: .yaml and .yml are YAML, everything else is TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable holding a config file path.
const EnvVar = "ROX_CONFIG"

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "rox.toml"

// Output formats accepted by the parse command.
const (
	FormatSExpr = "sexpr"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Config is the decoded configuration file.
type Config struct {
	Log   LogConfig   `toml:"log" yaml:"log"`
	Parse ParseConfig `toml:"parse" yaml:"parse"`
	REPL  REPLConfig  `toml:"repl" yaml:"repl"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// LogConfig sets the minimum level the CLI logs at.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// ParseConfig sets the default output format of the parse command.
type ParseConfig struct {
	Format string `toml:"format" yaml:"format"`
}

// REPLConfig controls the interactive prompt. History caps both the
// remembered inputs and the rendered results.
type REPLConfig struct {
	Prompt     string `toml:"prompt" yaml:"prompt"`
	History    int    `toml:"history" yaml:"history"`
	ShowTokens bool   `toml:"show_tokens" yaml:"show_tokens"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Log:   LogConfig{Level: "info"},
		Parse: ParseConfig{Format: FormatSExpr},
		REPL:  REPLConfig{Prompt: "rox> ", History: 100},
	}
}

// Load resolves and reads the configuration file. An explicit path or one
// from the environment must exist; the default file is optional.
func Load(path string) (Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		path = DefaultFile
		explicit = false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data, path)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes data on top of the defaults. name selects the format by its
// extension.
func Parse(data []byte, name string) (Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse %s: %w", name, err)
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", name, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("parse %s: unknown key %q", name, undecoded[0].String())
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", name, err)
	}
	return cfg, nil
}

var levels = []string{"debug", "info", "warn", "error"}

var formats = []string{FormatSExpr, FormatJSON, FormatYAML}

// Validate checks field values.
func (c Config) Validate() error {
	var errs []error
	if !slices.Contains(levels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of %s, got %q", strings.Join(levels, ", "), c.Log.Level))
	}
	if !slices.Contains(formats, c.Parse.Format) {
		errs = append(errs, fmt.Errorf("parse.format must be one of %s, got %q", strings.Join(formats, ", "), c.Parse.Format))
	}
	if c.REPL.History <= 0 {
		errs = append(errs, fmt.Errorf("repl.history must be positive, got %d", c.REPL.History))
	}
	return errors.Join(errs...)
}
