package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "environment: test\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("unexpected port %d", c.Server.Port)
	}
	if c.Remote.ScanLimit != 20 {
		t.Fatalf("unexpected scan limit %d", c.Remote.ScanLimit)
	}
	if c.Pipeline.RecencyWindow != 24*time.Hour {
		t.Fatalf("unexpected recency window %v", c.Pipeline.RecencyWindow)
	}
	if c.Pipeline.DemoRefetchDelay != 2*time.Second || c.Pipeline.LiveRefetchDelay != 180*time.Second {
		t.Fatalf("unexpected refetch delays %v/%v", c.Pipeline.DemoRefetchDelay, c.Pipeline.LiveRefetchDelay)
	}
	if c.Notify.Transport != "log" {
		t.Fatalf("unexpected transport %s", c.Notify.Transport)
	}
}

func TestValidateScanLimit(t *testing.T) {
	path := writeConfig(t, "environment: test\nremote:\n  scan_limit: 50\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected scan limit rejection")
	}
}

func TestValidateKafkaBrokers(t *testing.T) {
	path := writeConfig(t, "environment: test\nnotify:\n  transport: kafka\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected broker requirement")
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	path := writeConfig(t, "environment: test\n")
	t.Setenv("REMOTE_ENDPOINT", "https://api.example.com")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Remote.Endpoint != "https://api.example.com" {
		t.Fatalf("unexpected endpoint %s", c.Remote.Endpoint)
	}
}
