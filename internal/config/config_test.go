package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Decorator != DecoratorName {
		t.Errorf("decorator = %q, want %q", cfg.Decorator, DecoratorName)
	}
	if cfg.Filters != FilterReject {
		t.Errorf("filters = %q, want reject", cfg.Filters)
	}
	if cfg.Names.Bind != BindFuncName || cfg.Names.Unit != UnitFuncName || cfg.Names.Guard != GuardFuncName {
		t.Errorf("unexpected names %+v", cfg.Names)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("color = %q, want auto", cfg.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestParseConfig_Full(t *testing.T) {
	yaml := `
decorator: monadic
filters: guard
color: never
names:
  bind: flatMap
  unit: pure
  guard: when
`
	cfg, err := ParseConfig([]byte(yaml), "mcomp.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Decorator != "monadic" {
		t.Errorf("decorator = %q, want monadic", cfg.Decorator)
	}
	if cfg.Filters != FilterGuard {
		t.Errorf("filters = %q, want guard", cfg.Filters)
	}
	if cfg.Color != ColorNever {
		t.Errorf("color = %q, want never", cfg.Color)
	}
	if cfg.Names != (NamesConfig{Bind: "flatMap", Unit: "pure", Guard: "when"}) {
		t.Errorf("names = %+v", cfg.Names)
	}
}

func TestParseConfig_PartialKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("names:\n  bind: andThen\n"), "mcomp.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Names.Bind != "andThen" {
		t.Errorf("bind = %q, want andThen", cfg.Names.Bind)
	}
	if cfg.Names.Unit != UnitFuncName {
		t.Errorf("unit = %q, want %q", cfg.Names.Unit, UnitFuncName)
	}
	if cfg.Decorator != DecoratorName {
		t.Errorf("decorator = %q, want %q", cfg.Decorator, DecoratorName)
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad_yaml", "decorator: [", "parsing config"},
		{"unknown_filter", "filters: skip", `filters: unknown mode "skip"`},
		{"unknown_color", "color: rainbow", `color: unknown mode "rainbow"`},
		{"bad_decorator", "decorator: \"1st\"", `decorator: "1st" is not a valid identifier`},
		{"bad_name", "names:\n  unit: \"a-b\"", `names.unit: "a-b" is not a valid identifier`},
		{"duplicate_name", "names:\n  bind: go\n  unit: go", `names.unit: "go" is already used by names.bind`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "bad.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
			if !strings.Contains(err.Error(), "bad.yaml") {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestParseConfig_ReportsAllProblems(t *testing.T) {
	_, err := ParseConfig([]byte("filters: x\ncolor: y\n"), "bad.yaml")
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"filters:", "color:"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err, want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte("filters: guard\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Filters != FilterGuard {
		t.Errorf("filters = %q, want guard", cfg.Filters)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v, want fs.ErrNotExist", err)
	}
}

func TestLoadOptional(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOptional(filepath.Join(dir, DefaultConfigFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}

	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("filters: nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(path); err == nil {
		t.Error("invalid file should still be an error")
	}
}
