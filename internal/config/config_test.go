package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		expect  Config
	}{
		{
			"toml",
			"rulox.toml",
			"prompt = \"lox> \"\nhistory_file = \"/tmp/h\"\ncolor = \"never\"\nlog_level = \"debug\"\ndump_tokens = true\n",
			Config{Prompt: "lox> ", HistoryFile: "/tmp/h", Color: "never", LogLevel: "debug", DumpTokens: true},
		},
		{
			"yaml",
			"rulox.yaml",
			"prompt: \">> \"\nhistory_file: /tmp/h\ndump_ast: true\n",
			Config{Prompt: ">> ", HistoryFile: "/tmp/h", Color: "auto", LogLevel: "warn", DumpAST: true},
		},
		{
			"yml defaults",
			"rulox.yml",
			"history_file: /tmp/h\n",
			Config{Prompt: "> ", HistoryFile: "/tmp/h", Color: "auto", LogLevel: "warn"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeFile(t, c.file, c.content)

			cfg, err := Load(path)
			require.NoError(t, err)

			c.expect.path = path
			assert.Equal(t, &c.expect, cfg)
			assert.Equal(t, path, cfg.Path())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		expect  string
	}{
		{"bad toml", "c.toml", "prompt = ", "TOML parse error"},
		{"bad yaml", "c.yaml", "prompt: [", "YAML parse error"},
		{"unknown toml key", "c.toml", "colour = \"never\"\n", "unknown config key \"colour\""},
		{"unknown yaml key", "c.yaml", "colour: never\n", "YAML parse error"},
		{"bad color", "c.toml", "color = \"sometimes\"\n", "invalid color mode"},
		{"bad level", "c.toml", "log_level = \"loud\"\n", "invalid log level"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeFile(t, c.file, c.content))
			assert.ErrorContains(t, err, c.expect)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestResolve(t *testing.T) {
	path := writeFile(t, "env.toml", "prompt = \"env> \"\n")
	t.Setenv(EnvVar, path)

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "env> ", cfg.Prompt)

	explicit := writeFile(t, "explicit.yaml", "prompt: \"explicit> \"\n")
	cfg, err = Resolve(explicit)
	require.NoError(t, err)
	assert.Equal(t, "explicit> ", cfg.Prompt)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "> ", cfg.Prompt)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, slog.LevelWarn, cfg.Level())
	assert.Empty(t, cfg.Path())
	assert.NoError(t, cfg.Validate())
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("a.YML"))
	assert.Equal(t, FormatYAML, DetectFormat("a.yaml"))
	assert.Equal(t, FormatTOML, DetectFormat("a.toml"))
	assert.Equal(t, FormatTOML, DetectFormat("noext"))
	assert.Equal(t, "yaml", FormatYAML.String())
}
