package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the defaults the tool falls back to.
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Resize.Workers < 1 {
		t.Errorf("default workers = %d, want >= 1", cfg.Resize.Workers)
	}
	if cfg.Resize.Filter != "lanczos3" {
		t.Errorf("default filter = %q, want lanczos3", cfg.Resize.Filter)
	}
	if cfg.Resize.Algorithm != "convolution" {
		t.Errorf("default algorithm = %q, want convolution", cfg.Resize.Algorithm)
	}
	if cfg.Output.JPEGQuality != 90 {
		t.Errorf("default JPEG quality = %d, want 90", cfg.Output.JPEGQuality)
	}
}

// TestLoadConfigMissingFile verifies that a missing file yields defaults
// without an error.
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig of missing file failed: %v", err)
	}
	if cfg.Resize.Filter != DefaultConfig().Resize.Filter {
		t.Error("missing file did not fall back to defaults")
	}
}

// TestSaveLoadRoundTrip verifies YAML persistence.
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "fastresize.yaml")
	cfg := DefaultConfig()
	cfg.Resize.Workers = 3
	cfg.Resize.Filter = "box"
	cfg.Resize.PremultiplyAlpha = false
	cfg.Output.JPEGQuality = 75

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Resize.Workers != 3 || loaded.Resize.Filter != "box" {
		t.Errorf("round trip lost resize settings: %+v", loaded.Resize)
	}
	if loaded.Resize.PremultiplyAlpha {
		t.Error("round trip lost premultiplyAlpha = false")
	}
	if loaded.Output.JPEGQuality != 75 {
		t.Errorf("round trip JPEG quality = %d, want 75", loaded.Output.JPEGQuality)
	}
}

// TestLoadConfigInvalidYAML verifies parse errors are surfaced.
func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("resize: ["), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig of broken YAML succeeded, want error")
	}
}
