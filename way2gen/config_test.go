package way2gen

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/cyuria/way2/way2gen/provider"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "way2.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !slices.Equal(cfg.Formatter, []string{"zig", "fmt", "--stdin"}) {
		t.Errorf("Formatter = %q", cfg.Formatter)
	}
	if cfg.OnMismatch != provider.MismatchSkip {
		t.Errorf("OnMismatch = %q", cfg.OnMismatch)
	}
	if cfg.TypesUnit != "types" || cfg.IndexUnit != "proto" {
		t.Errorf("units = %q, %q", cfg.TypesUnit, cfg.IndexUnit)
	}
	if len(cfg.SkipInterfaces) != 0 {
		t.Errorf("SkipInterfaces = %q, want none", cfg.SkipInterfaces)
	}

	// The default formatter command is a copy.
	cfg.Formatter[0] = "changed"
	if DefaultConfig().Formatter[0] != "zig" {
		t.Error("DefaultConfig shares its formatter slice")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.OutDir = "out"
		cfg.Roots = []string{"/usr/share/wayland"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "dry run without out dir", mutate: func(c *Config) { c.OutDir = ""; c.DryRun = true }},
		{name: "no format without command", mutate: func(c *Config) { c.Formatter = nil; c.NoFormat = true }},
		{name: "type mappings", mutate: func(c *Config) { c.TypeMappings = map[string]string{"fixed": "types.Fixed"} }},
		{name: "missing out dir", mutate: func(c *Config) { c.OutDir = "" }, wantErr: "out_dir is required"},
		{name: "no roots", mutate: func(c *Config) { c.Roots = nil }, wantErr: "roots needs at least 1 entries"},
		{name: "empty root", mutate: func(c *Config) { c.Roots = []string{""} }, wantErr: "is required"},
		{name: "no formatter", mutate: func(c *Config) { c.Formatter = nil }, wantErr: "formatter is required"},
		{name: "bad policy", mutate: func(c *Config) { c.OnMismatch = "ignore" }, wantErr: `on_mismatch must be one of [skip warn error], got "ignore"`},
		{name: "fd mapping", mutate: func(c *Config) { c.TypeMappings = map[string]string{"fd": "i32"} }, wantErr: "must be one of"},
		{name: "empty mapping", mutate: func(c *Config) { c.TypeMappings = map[string]string{"int": ""} }, wantErr: "is required"},
		{name: "bad unit name", mutate: func(c *Config) { c.IndexUnit = "my-index" }, wantErr: `index_unit "my-index" is not a valid unit name`},
		{name: "digit first", mutate: func(c *Config) { c.TypesUnit = "9types" }, wantErr: "not a valid unit name"},
		{name: "same unit names", mutate: func(c *Config) { c.IndexUnit = "types" }, wantErr: "types_unit must differ from index_unit"},
		{name: "indent", mutate: func(c *Config) { c.IndentSize = 0 }, wantErr: "indent_size must be between 1 and 16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
out_dir = "gen"
roots = ["protocols", "/usr/share/wayland"]
on_mismatch = "warn"
skip_interfaces = ["wl_shell", "wl_shell_surface"]
events_only_index = true
index_unit = "index"

[type_mappings]
fixed = "types.Fixed"
`)
	dir := filepath.Dir(path)

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.OutDir != filepath.Join(dir, "gen") {
		t.Errorf("OutDir = %q", cfg.OutDir)
	}
	if !slices.Equal(cfg.Roots, []string{filepath.Join(dir, "protocols"), "/usr/share/wayland"}) {
		t.Errorf("Roots = %q", cfg.Roots)
	}
	if cfg.OnMismatch != provider.MismatchWarn {
		t.Errorf("OnMismatch = %q", cfg.OnMismatch)
	}
	if !slices.Equal(cfg.SkipInterfaces, []string{"wl_shell", "wl_shell_surface"}) {
		t.Errorf("SkipInterfaces = %q", cfg.SkipInterfaces)
	}
	if !cfg.EventsOnlyIndex || cfg.IndexUnit != "index" {
		t.Errorf("EventsOnlyIndex = %v, IndexUnit = %q", cfg.EventsOnlyIndex, cfg.IndexUnit)
	}
	if cfg.TypeMappings["fixed"] != "types.Fixed" {
		t.Errorf("TypeMappings = %v", cfg.TypeMappings)
	}

	// Keys absent from the file keep their defaults.
	if cfg.TypesUnit != "types" || cfg.IndentSize != 4 || !slices.Equal(cfg.Formatter, []string{"zig", "fmt", "--stdin"}) {
		t.Errorf("defaults not kept: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "unknown key", body: "out_dir = \"x\"\ncolour = true\n", wantErr: "unknown keys colour"},
		{name: "syntax", body: "out_dir = \n", wantErr: "load config"},
		{name: "wrong type", body: "roots = \"one\"\n", wantErr: "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfigFile(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadConfigFile() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
