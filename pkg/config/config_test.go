package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Data.Root == "" {
		t.Error("default data root is empty")
	}
	if len(cfg.Data.Regions) == 0 {
		t.Error("default regions are empty")
	}
	if cfg.Batch.Count <= 0 {
		t.Errorf("default batch count = %d", cfg.Batch.Count)
	}
	if cfg.Batch.ErrorPolicy != "quarantine" {
		t.Errorf("default error policy = %q, want quarantine", cfg.Batch.ErrorPolicy)
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry should default to disabled")
	}
}

func TestLoadFileMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
data:
  root: /srv/datasets
batch:
  compression: zstd
  workers: 4
telemetry:
  enabled: true
  endpoint: collector:4317
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.loadFile(path); err != nil {
		t.Fatalf("loadFile: %v", err)
	}

	cfg := m.Get()
	if cfg.Data.Root != "/srv/datasets" {
		t.Errorf("Data.Root = %q, want /srv/datasets", cfg.Data.Root)
	}
	if cfg.Batch.Compression != "zstd" {
		t.Errorf("Batch.Compression = %q, want zstd", cfg.Batch.Compression)
	}
	if cfg.Batch.Workers != 4 {
		t.Errorf("Batch.Workers = %d, want 4", cfg.Batch.Workers)
	}
	// Unset fields keep their defaults.
	if cfg.Batch.Count != Default().Batch.Count {
		t.Errorf("Batch.Count = %d, want default %d", cfg.Batch.Count, Default().Batch.Count)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Endpoint != "collector:4317" {
		t.Errorf("Telemetry = %+v, want enabled with endpoint", cfg.Telemetry)
	}
}

func TestLoadFileRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("batch: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	if err := m.loadFile(path); err == nil {
		t.Fatal("malformed yaml should error")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GPTILT_DATA_ROOT", "/env/root")
	t.Setenv("GPTILT_COMPRESSION", "gzip")
	t.Setenv("GPTILT_WORKERS", "12")
	t.Setenv("GPTILT_ERROR_POLICY", "strict")
	t.Setenv("GPTILT_TELEMETRY_ENDPOINT", "collector:4317")

	m := NewManager()
	m.loadEnv()

	cfg := m.Get()
	if cfg.Data.Root != "/env/root" {
		t.Errorf("Data.Root = %q, want /env/root", cfg.Data.Root)
	}
	if cfg.Batch.Compression != "gzip" {
		t.Errorf("Batch.Compression = %q, want gzip", cfg.Batch.Compression)
	}
	if cfg.Batch.Workers != 12 {
		t.Errorf("Batch.Workers = %d, want 12", cfg.Batch.Workers)
	}
	if cfg.Batch.ErrorPolicy != "strict" {
		t.Errorf("Batch.ErrorPolicy = %q, want strict", cfg.Batch.ErrorPolicy)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("telemetry endpoint in env should enable telemetry")
	}
}
