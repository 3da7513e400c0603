package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	// Site identity
	SiteTitle string `toml:"site_title"`
	BaseURL   string `toml:"base_url"`
	Author    string `toml:"author"`

	// Layout of the output directory
	OutputDir  string `toml:"output_dir"`
	MediaDir   string `toml:"media_dir"`
	Stylesheet string `toml:"stylesheet"`

	// Optional Markdown shown above the table of contents
	IntroFile string `toml:"intro_file"`

	// Preview server
	Port string `toml:"port"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SiteTitle:  "Everyday Majestic Musings",
		BaseURL:    "https://example.org/",
		Author:     "Anonymous",
		OutputDir:  ".",
		MediaDir:   "images",
		Stylesheet: "style.css",
		Port:       "8090",
	}
}

// Load applies an optional TOML file and then environment overrides on top of
// the defaults. A missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return cfg, fmt.Errorf("config file not found: %s", path)
			}
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.SiteTitle = envOr("SITE_TITLE", cfg.SiteTitle)
	cfg.BaseURL = envOr("BASE_URL", cfg.BaseURL)
	cfg.Author = envOr("SITE_AUTHOR", cfg.Author)
	cfg.OutputDir = envOr("OUTPUT_DIR", cfg.OutputDir)
	cfg.MediaDir = envOr("MEDIA_DIR", cfg.MediaDir)
	cfg.Stylesheet = envOr("STYLESHEET", cfg.Stylesheet)
	cfg.IntroFile = envOr("INTRO_FILE", cfg.IntroFile)
	cfg.Port = envOr("PORT", cfg.Port)

	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	def := Default()
	if strings.TrimSpace(c.SiteTitle) == "" {
		c.SiteTitle = def.SiteTitle
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.Stylesheet == "" {
		c.Stylesheet = def.Stylesheet
	}
	if c.Port == "" {
		c.Port = def.Port
	}
	c.MediaDir = strings.Trim(c.MediaDir, "/")
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
}

func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("BASE_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("BASE_URL is invalid: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BASE_URL must be an absolute http(s) URL, got %q", c.BaseURL)
	}
	if strings.TrimSpace(c.Author) == "" {
		return fmt.Errorf("SITE_AUTHOR is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
