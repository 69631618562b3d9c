package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	if config.Server.Port != 8370 {
		t.Errorf("default port = %d", config.Server.Port)
	}
	if config.Clients.Brapi.BaseURL != "https://brapi.dev/api" {
		t.Errorf("default brapi url = %s", config.Clients.Brapi.BaseURL)
	}
	if !config.Refresh.Enabled {
		t.Error("refresh should default to enabled")
	}
	if config.IsProduction() {
		t.Error("default environment should not be production")
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig("/nonexistent/fiitrack.toml")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Server.Port != 8370 {
		t.Errorf("port = %d, want default", config.Server.Port)
	}
}

func TestLoadConfigFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fiitrack.toml")
	content := `
environment = "production"

[server]
port = 9000

[clients.brapi]
token = "file-token"
timeout = "5s"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Server.Port != 9000 {
		t.Errorf("port = %d", config.Server.Port)
	}
	if !config.IsProduction() {
		t.Error("environment should be production")
	}
	if config.Clients.Brapi.Token != "file-token" {
		t.Errorf("token = %q", config.Clients.Brapi.Token)
	}
	if config.Clients.Brapi.GetTimeout() != 5*time.Second {
		t.Errorf("timeout = %v", config.Clients.Brapi.GetTimeout())
	}
	// Untouched sections keep defaults.
	if config.Server.Host != "127.0.0.1" {
		t.Errorf("host = %q", config.Server.Host)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("FIITRACK_PORT", "9999")
	t.Setenv("BRAPI_TOKEN", "env-token")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.Server.Port != 9999 {
		t.Errorf("port = %d, want env override", config.Server.Port)
	}
	if config.Clients.Brapi.Token != "env-token" {
		t.Errorf("token = %q, want env override", config.Clients.Brapi.Token)
	}
}

func TestBrapiTimeoutFallback(t *testing.T) {
	c := BrapiConfig{Timeout: "not-a-duration"}
	if c.GetTimeout() != 30*time.Second {
		t.Errorf("timeout fallback = %v", c.GetTimeout())
	}
}

func TestIsFresh(t *testing.T) {
	if IsFresh(time.Time{}, time.Hour) {
		t.Error("zero timestamp is never fresh")
	}
	if !IsFresh(time.Now().Add(-5*time.Minute), FreshnessQuote) {
		t.Error("5 minutes old is inside the quote window")
	}
	if IsFresh(time.Now().Add(-20*time.Minute), FreshnessQuote) {
		t.Error("20 minutes old is outside the quote window")
	}
}
