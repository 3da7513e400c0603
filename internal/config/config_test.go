package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SITE_TITLE", "BASE_URL", "SITE_AUTHOR", "OUTPUT_DIR", "MEDIA_DIR", "STYLESHEET", "INTRO_FILE", "PORT"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "poemgen.toml")
	contents := `site_title = "Small Hours"
base_url = "https://poems.example.org/musings"
media_dir = "/media/"
port = "9000"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SiteTitle != "Small Hours" {
		t.Errorf("expected title from file, got %q", cfg.SiteTitle)
	}
	if cfg.BaseURL != "https://poems.example.org/musings/" {
		t.Errorf("expected trailing slash on base url, got %q", cfg.BaseURL)
	}
	if cfg.MediaDir != "media" {
		t.Errorf("expected media dir trimmed, got %q", cfg.MediaDir)
	}
	if cfg.Port != "9100" {
		t.Errorf("expected env to override file, got %q", cfg.Port)
	}
	if cfg.Author != "Anonymous" {
		t.Errorf("expected default author, got %q", cfg.Author)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "poemgen.toml")
	if err := os.WriteFile(path, []byte("page_size = 10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"relative base url", func(c *Config) { c.BaseURL = "/poems/" }, true},
		{"ftp base url", func(c *Config) { c.BaseURL = "ftp://example.org/" }, true},
		{"empty base url", func(c *Config) { c.BaseURL = "" }, true},
		{"empty author", func(c *Config) { c.Author = " " }, true},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tc.name, tc.wantErr, err)
		}
	}
}
