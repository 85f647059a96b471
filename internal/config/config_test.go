package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/eleven-am/envcheck/internal/validate"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Ports) != 2 || cfg.Ports[0] != 5432 || cfg.Ports[1] != 443 {
		t.Errorf("expected ports [5432 443], got %v", cfg.Ports)
	}
	if cfg.MinFreeIPs != 5 {
		t.Errorf("expected min_free_ips 5, got %d", cfg.MinFreeIPs)
	}
	if cfg.Timeout != 2*time.Minute {
		t.Errorf("expected timeout 2m, got %s", cfg.Timeout)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envcheck.yaml")
	content := "region: eu-west-1\nprofile: ops\nmin_free_ips: 10\ntimeout: 30s\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("expected eu-west-1, got %s", cfg.Region)
	}
	if cfg.Profile != "ops" {
		t.Errorf("expected ops, got %s", cfg.Profile)
	}
	if cfg.MinFreeIPs != 10 {
		t.Errorf("expected 10, got %d", cfg.MinFreeIPs)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("expected 30s, got %s", cfg.Timeout)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "envcheck.yaml")
	if err := os.WriteFile(path, []byte("region: eu-west-1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ENVCHECK_REGION", "us-west-2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Region != "us-west-2" {
		t.Errorf("expected us-west-2, got %s", cfg.Region)
	}
}

func TestLoad_InvalidRegion(t *testing.T) {
	t.Setenv("ENVCHECK_REGION", "mars-north-1")

	_, err := Load("")
	if !errors.Is(err, validate.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
