package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.ContactEndpoint() != "" {
		t.Errorf("expected simulated contact by default, got endpoint %q", cfg.ContactEndpoint())
	}
	if got := cfg.InquiriesPath(); got != filepath.Join("data", "inquiries.json") {
		t.Errorf("unexpected inquiries path %q", got)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != defaultListenAddr {
		t.Errorf("listen: got %q, want %q", cfg.Listen, defaultListenAddr)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yml")
	yml := `listen: ":9000"
contact:
  mode: http
  allowed_origins:
    - https://cloudhub.example
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("SITE_LISTEN", ":9100")
	t.Setenv("SITE_DATA__DIR", "/var/lib/site")
	t.Setenv("SITE_ADMIN_TOKEN", "s3cret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Listen != ":9100" {
		t.Errorf("listen: env should win, got %q", cfg.Listen)
	}
	if cfg.Contact.Mode != ModeHTTP || cfg.ContactEndpoint() != "/api/contact" {
		t.Errorf("contact: got %+v", cfg.Contact)
	}
	if len(cfg.Contact.AllowedOrigins) != 1 || cfg.Contact.AllowedOrigins[0] != "https://cloudhub.example" {
		t.Errorf("allowed origins: got %v", cfg.Contact.AllowedOrigins)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level: got %q", cfg.Log.Level)
	}
	if cfg.InquiriesPath() != "/var/lib/site/inquiries.json" {
		t.Errorf("inquiries path: got %q", cfg.InquiriesPath())
	}
	if cfg.AdminToken != "s3cret" {
		t.Errorf("admin token: got %q", cfg.AdminToken)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config invalid: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"empty listen":  func(c *Config) { c.Listen = "" },
		"bad mode":      func(c *Config) { c.Contact.Mode = "smtp" },
		"relative path": func(c *Config) { c.Contact.Mode = ModeHTTP; c.Contact.Path = "api/contact" },
		"bad level":     func(c *Config) { c.Log.Level = "chatty" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
