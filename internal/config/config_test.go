package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.OptimizeOrDefault() {
		t.Error("missing config should fall back to DefaultOptimize")
	}
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ciriusrc.yaml")
	contents := "output_dir: build\noptimize: false\nverbose: true\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write fixture config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "build" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "build")
	}
	if cfg.OptimizeOrDefault() {
		t.Error("explicit optimize: false should not fall back to the default")
	}
	if !cfg.Verbose {
		t.Error("Verbose = false, want true")
	}
}

func TestOptimizeOrDefaultOnNilConfig(t *testing.T) {
	var cfg *Config
	if !cfg.OptimizeOrDefault() {
		t.Error("nil *Config should report DefaultOptimize")
	}
}
