package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
geocoder:
  base_url: https://nominatim.example.org
  user_agent: test-agent/1.0
  min_interval: 2s
  timeout: 5s
remote:
  base_url: https://demo-rtdb.example.com
snapshot:
  path: /tmp/apps.db
stats:
  default_dimension: status
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Geocoder.BaseURL != "https://nominatim.example.org" {
		t.Errorf("BaseURL = %q", cfg.Geocoder.BaseURL)
	}
	if cfg.Geocoder.MinInterval != 2*time.Second {
		t.Errorf("MinInterval = %v, want 2s", cfg.Geocoder.MinInterval)
	}
	if cfg.Remote.BaseURL != "https://demo-rtdb.example.com" {
		t.Errorf("Remote.BaseURL = %q", cfg.Remote.BaseURL)
	}
	if cfg.Snapshot.Path != "/tmp/apps.db" {
		t.Errorf("Snapshot.Path = %q", cfg.Snapshot.Path)
	}
	if cfg.Stats.DefaultDimension != "status" {
		t.Errorf("DefaultDimension = %q", cfg.Stats.DefaultDimension)
	}
}

func TestLoad_DefaultsFillOmittedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("remote:\n  base_url: https://x.example.com\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Geocoder.MinInterval != def.Geocoder.MinInterval {
		t.Errorf("MinInterval = %v, want default %v", cfg.Geocoder.MinInterval, def.Geocoder.MinInterval)
	}
	if cfg.Geocoder.BaseURL != def.Geocoder.BaseURL {
		t.Errorf("BaseURL = %q, want default", cfg.Geocoder.BaseURL)
	}
	if !cfg.Geocoder.RetryTransport {
		t.Error("RetryTransport should default to true")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidDimension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("stats:\n  default_dimension: salary\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown dimension")
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("JOBVIEW_TEST_REMOTE", "https://env.example.com")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("remote:\n  base_url: ${JOBVIEW_TEST_REMOTE}\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Remote.BaseURL != "https://env.example.com" {
		t.Errorf("Remote.BaseURL = %q", cfg.Remote.BaseURL)
	}
}
