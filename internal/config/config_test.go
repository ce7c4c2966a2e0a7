package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "voxview.yaml")
	data := []byte(`
sector:
  size: 16
streaming:
  workers: 2
  drain_budget: 8ms
world_gen:
  seed: 99
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sector.Size != 16 {
		t.Errorf("Expected sector size 16, got %d", cfg.Sector.Size)
	}
	if cfg.Sector.Padding != 1 {
		t.Errorf("Expected default padding 1, got %d", cfg.Sector.Padding)
	}
	if cfg.Streaming.Workers != 2 {
		t.Errorf("Expected 2 workers, got %d", cfg.Streaming.Workers)
	}
	if got := cfg.Streaming.DrainBudget.Std(); got != 8*time.Millisecond {
		t.Errorf("Expected drain budget 8ms, got %v", got)
	}
	if cfg.WorldGen.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", cfg.WorldGen.Seed)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("streaming:\n  drain_budget: soon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for bad duration")
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"zero size":           func(c *Config) { c.Sector.Size = 0 },
		"no workers":          func(c *Config) { c.Streaming.Workers = 0 },
		"retention too small": func(c *Config) { c.Streaming.RetentionRadius = c.Streaming.GenerationRadius },
		"margin too large":    func(c *Config) { c.Player.CollisionMargin = 0.5 },
		"negative fps limit":  func(c *Config) { c.Render.FPSLimit = -1 },
		"loam below stone":    func(c *Config) { c.WorldGen.LoamDepth = c.WorldGen.LimestoneDepth + 1 },
		"canopy past margin":  func(c *Config) { c.WorldGen.CanopyRadius = c.WorldGen.TreeEdgeMargin + 1 },
		"canopy at margin":    func(c *Config) { c.WorldGen.CanopyRadius = c.WorldGen.TreeEdgeMargin },
		"zero tree margin":    func(c *Config) { c.WorldGen.TreeEdgeMargin, c.WorldGen.CanopyRadius = 0, 0 },
		"zero idle sleep":     func(c *Config) { c.Streaming.WorkerIdleSleep = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}
