package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rox.toml", `
[log]
level = "debug"

[parse]
format = "yaml"

[repl]
prompt = "> "
show_tokens = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Parse.Format != FormatYAML {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.REPL.Prompt != "> " || !cfg.REPL.ShowTokens {
		t.Fatalf("unexpected repl config %+v", cfg.REPL)
	}
	if cfg.REPL.History != 100 {
		t.Fatalf("missing keys should keep defaults, got history %d", cfg.REPL.History)
	}
	if cfg.Path != path {
		t.Fatalf("expected path %q, got %q", path, cfg.Path)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rox.yml", `
parse:
  format: json
repl:
  history: 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Parse.Format != FormatJSON || cfg.REPL.History != 5 || cfg.Log.Level != "info" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseEmptyYAMLUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil, "empty.yaml")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Parse.Format != FormatSExpr || cfg.REPL.Prompt != "rox> " {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.toml", "[log]\nlevel = \"warn\"\n")
	t.Setenv(EnvVar, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected level from env file, got %q", cfg.Log.Level)
	}
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Path != "" || cfg.Log.Level != "info" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("[log]\nlevl = \"debug\"\n"), "rox.toml"); err == nil || !strings.Contains(err.Error(), "log.levl") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
	if _, err := Parse([]byte("repl:\n  colour: true\n"), "rox.yaml"); err == nil {
		t.Fatalf("expected unknown yaml field error")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	cfg.Log.Level = "trace"
	cfg.Parse.Format = "xml"
	cfg.REPL.History = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	for _, want := range []string{"log.level", "parse.format", "repl.history"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}
