package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestConfigOrReportLogsWithoutExiting(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sector:\n  size: -4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := configOrReport(path, log); ok {
		t.Fatal("expected invalid config to be rejected")
	}
	entries := logs.FilterMessage("config").All()
	if len(entries) != 1 || entries[0].Level != zapcore.ErrorLevel {
		t.Fatalf("Expected one error entry, got %+v", entries)
	}
}

func TestConfigOrReportDefaults(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg, ok := configOrReport("", zap.New(core))
	if !ok {
		t.Fatal("default config rejected")
	}
	if cfg.Sector.Size == 0 {
		t.Error("Expected default sector size")
	}
	if logs.Len() != 0 {
		t.Errorf("Expected no log output, got %d entries", logs.Len())
	}
}
