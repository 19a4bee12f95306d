//go:build !integration

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
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  url: postgres://localhost/app
`)
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("origins = %v, want [*]", cfg.Server.AllowedOrigins)
	}
	if cfg.Poll.Interval != time.Second {
		t.Errorf("poll interval = %v, want 1s", cfg.Poll.Interval)
	}
	if cfg.Poll.MaxWait != 4*time.Minute {
		t.Errorf("poll max_wait = %v, want 4m", cfg.Poll.MaxWait)
	}
	if cfg.Poll.Multiplier != 1.5 {
		t.Errorf("poll multiplier = %v, want 1.5", cfg.Poll.Multiplier)
	}
	if cfg.Jobs.Queue != cfg.Jobs.Workers*4 {
		t.Errorf("queue = %d, want workers*4", cfg.Jobs.Queue)
	}
	if len(cfg.Secrets.Manifest) != len(DefaultSecretManifest) {
		t.Errorf("manifest = %d entries, want built-in list", len(cfg.Secrets.Manifest))
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	path := writeConfig(t, `server: {port: 9999}`)
	if _, err := LoadConfig(path, false); err == nil {
		t.Fatal("expected error without database.url")
	}
}

func TestLoadConfigEnvFallbacks(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/app")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("ADMIN_JWT_SECRET", "hush")

	path := writeConfig(t, `log: {level: debug}`)
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.URL != "postgres://env/app" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
	if cfg.AI.OpenAIKey != "sk-env" {
		t.Errorf("openai key not read from environment")
	}
	if cfg.Admin.JWTSecret != "hush" {
		t.Errorf("jwt secret not read from environment")
	}
}

func TestLoadConfigYAMLWinsOverEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	path := writeConfig(t, `
database: {url: postgres://localhost/app}
ai: {openai_key: sk-yaml}
`)
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.AI.OpenAIKey != "sk-yaml" {
		t.Errorf("key = %q, want the yaml override", cfg.AI.OpenAIKey)
	}
}

func TestLoadConfigManifestOverride(t *testing.T) {
	path := writeConfig(t, `
database: {url: postgres://localhost/app}
secrets:
  manifest: [FOO_API_KEY, BAR_TOKEN]
`)
	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Secrets.Manifest) != 2 || cfg.Secrets.Manifest[0] != "FOO_API_KEY" {
		t.Errorf("manifest = %v", cfg.Secrets.Manifest)
	}
}

func TestLoadConfigDevFlag(t *testing.T) {
	path := writeConfig(t, `database: {url: postgres://localhost/app}`)
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Runtime.Dev {
		t.Error("dev flag not carried into runtime config")
	}
}
