// Package config loads the site server configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Its-donkey/cloudhub-site/logging"
)

const (
	defaultListenAddr   = "127.0.0.1:4173"
	defaultAssetsDir    = "web"
	defaultDataDir      = "data"
	defaultInquiries    = "inquiries.json"
	defaultContactPath  = "/api/contact"
	defaultLogLevel     = "info"
	defaultLogMaxSizeMB = 10
	defaultLogMaxFiles  = 5

	// EnvPrefix marks environment overrides, e.g. SITE_LISTEN or
	// SITE_CONTACT__MODE.
	EnvPrefix = "SITE_"
)

// Contact submission modes.
const (
	ModeSimulated = "simulated"
	ModeHTTP      = "http"
)

// Config captures runtime settings for the site server.
type Config struct {
	Listen  string        `koanf:"listen"`
	Assets  string        `koanf:"assets"`
	Data    DataConfig    `koanf:"data"`
	Log     LogConfig     `koanf:"log"`
	Contact ContactConfig `koanf:"contact"`
	// AdminToken guards the inquiry listing. Empty disables it.
	AdminToken string `koanf:"admin_token"`
}

// DataConfig locates persisted inquiries.
type DataConfig struct {
	Dir       string `koanf:"dir"`
	Inquiries string `koanf:"inquiries"`
}

// LogConfig controls server logging.
type LogConfig struct {
	Level     string `koanf:"level"`
	Dir       string `koanf:"dir"`
	MaxSizeMB int    `koanf:"max_size_mb"`
	MaxFiles  int    `koanf:"max_files"`
}

// ContactConfig selects how the page delivers the contact form.
type ContactConfig struct {
	Mode string `koanf:"mode"`
	Path string `koanf:"path"`
	// AllowedOrigins lists origins that may post to the endpoint from a
	// page hosted elsewhere.
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Listen: defaultListenAddr,
		Assets: defaultAssetsDir,
		Data: DataConfig{
			Dir:       defaultDataDir,
			Inquiries: defaultInquiries,
		},
		Log: LogConfig{
			Level:     defaultLogLevel,
			MaxSizeMB: defaultLogMaxSizeMB,
			MaxFiles:  defaultLogMaxFiles,
		},
		Contact: ContactConfig{
			Mode: ModeSimulated,
			Path: defaultContactPath,
		},
	}
}

// Load reads defaults, then the optional YAML file at path, then SITE_*
// environment overrides. Nested keys use a double underscore:
// SITE_CONTACT__MODE=http sets contact.mode.
func Load(path string) (Config, error) {
	cfg := Default()
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// Validate ensures the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("config: listen address is required")
	}
	if strings.TrimSpace(c.Assets) == "" {
		return fmt.Errorf("config: assets directory is required")
	}
	if strings.TrimSpace(c.Data.Inquiries) == "" {
		return fmt.Errorf("config: inquiries file is required")
	}
	switch c.Contact.Mode {
	case ModeSimulated:
	case ModeHTTP:
		if !strings.HasPrefix(c.Contact.Path, "/") {
			return fmt.Errorf("config: contact path %q must start with /", c.Contact.Path)
		}
	default:
		return fmt.Errorf("config: invalid contact mode %q: must be %s or %s", c.Contact.Mode, ModeSimulated, ModeHTTP)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// InquiriesPath resolves the inquiries file against the data directory.
func (c Config) InquiriesPath() string {
	if filepath.IsAbs(c.Data.Inquiries) || c.Data.Dir == "" {
		return c.Data.Inquiries
	}
	return filepath.Join(c.Data.Dir, c.Data.Inquiries)
}

// ContactEndpoint is the path injected into the page, or "" for the
// simulated flow.
func (c Config) ContactEndpoint() string {
	if c.Contact.Mode != ModeHTTP {
		return ""
	}
	return c.Contact.Path
}
