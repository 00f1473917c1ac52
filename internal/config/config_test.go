package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generator.Count != 1000 {
		t.Errorf("expected default count 1000, got %d", cfg.Generator.Count)
	}
	if cfg.Generator.WindowDays != 90 {
		t.Errorf("expected default window 90, got %d", cfg.Generator.WindowDays)
	}
	if cfg.Output.Path != "test_events.csv" {
		t.Errorf("expected default output path, got %s", cfg.Output.Path)
	}
	if cfg.Database.Path != "" {
		t.Errorf("expected database sink disabled, got %s", cfg.Database.Path)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
generator:
  count: 25
  window_days: 7
  seed: 99
output:
  path: out.csv
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generator.Count != 25 || cfg.Generator.WindowDays != 7 || cfg.Generator.Seed != 99 {
		t.Errorf("unexpected generator config: %+v", cfg.Generator)
	}
	if cfg.Output.Path != "out.csv" {
		t.Errorf("expected output path out.csv, got %s", cfg.Output.Path)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SEEDER_GENERATOR_COUNT", "5")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generator.Count != 5 {
		t.Errorf("expected env override count 5, got %d", cfg.Generator.Count)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero count allowed", func(c *Config) { c.Generator.Count = 0 }, false},
		{"negative count", func(c *Config) { c.Generator.Count = -1 }, true},
		{"zero window", func(c *Config) { c.Generator.WindowDays = 0 }, true},
		{"empty output path", func(c *Config) { c.Output.Path = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Generator: GeneratorConfig{Count: 1000, WindowDays: 90},
				Output:    OutputConfig{Path: "test_events.csv"},
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
