package config

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "RULOX_CONFIG"

// Config holds the settings of the rulox command line front end
type Config struct {
	Prompt      string `toml:"prompt" yaml:"prompt"`
	HistoryFile string `toml:"history_file" yaml:"history_file"`
	// Color is "auto" (style diagnostics on terminals) or "never"
	Color      string `toml:"color" yaml:"color"`
	LogLevel   string `toml:"log_level" yaml:"log_level"`
	DumpTokens bool   `toml:"dump_tokens" yaml:"dump_tokens"`
	DumpAST    bool   `toml:"dump_ast" yaml:"dump_ast"`

	path string
}

type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "toml"
	}
}

// Default returns the configuration used when no file is found
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()

	return cfg
}

// Load reads the configuration file at path. The format is chosen from the
// file extension; anything but .yaml and .yml is read as TOML.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	cfg, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}

	cfg.path = path
	return cfg, nil
}

// Parse decodes configuration content and applies defaults
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Wrap(err, "YAML parse error")
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Wrap(err, "TOML parse error")
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("unknown config key %q", undecoded[0].String())
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Resolve finds the configuration to use: the explicit path when given,
// then $RULOX_CONFIG, then the default locations. No file at all is not an
// error and yields Default().
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}

	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}

	for _, p := range defaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

func defaultPaths() []string {
	paths := []string{
		"./rulox.toml",
		"./rulox.yaml",
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "rulox", "config.toml"))
	}

	return paths
}

// DetectFormat determines the configuration format from the file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func (c *Config) applyDefaults() {
	if c.Prompt == "" {
		c.Prompt = "> "
	}
	if c.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.HistoryFile = filepath.Join(home, ".rulox_history")
		}
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "never":
	default:
		return errors.Errorf("invalid color mode %q", c.Color)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// Level returns the slog level named by LogLevel
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.Wrapf(err, "invalid log level %q", s)
	}

	return level, nil
}
