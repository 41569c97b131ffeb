package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/coursecomment/coursecomment/internal/buildinfo"
	"github.com/coursecomment/coursecomment/internal/client/api"
	"github.com/coursecomment/coursecomment/internal/logging"
	"github.com/coursecomment/coursecomment/internal/posts"
	"github.com/spf13/pflag"
)

// Config holds runtime settings for the course-review CLI.
//
// Fields:
//   - Environment: "production" or "development"; selects the default API URL.
//   - APIBaseURL: base URL of the REST API. Empty means the environment default.
//   - DBPath: sqlite file holding the persisted session (":memory:" keeps nothing).
//   - LogLevel / LogFormat: see logging.New.
//   - RequestTimeout: per-command deadline; zero means none.
//   - S3: optional bucket for publishing post images.
type Config struct {
	Environment    string
	APIBaseURL     string
	DBPath         string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
	S3             posts.S3Config
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Environment = buildinfo.Environment
	c.APIBaseURL = ""
	c.DBPath = defaultDBPath()
	c.LogLevel = "info"
	c.LogFormat = logging.FormatText
	c.RequestTimeout = 0
	c.S3 = posts.S3Config{}
}

// IsProduction reports whether the production API is the default target.
func (c *Config) IsProduction() bool {
	return c.Environment == buildinfo.EnvProduction
}

// BaseURL returns APIBaseURL, or the environment default when it is unset.
func (c *Config) BaseURL() string {
	if c.APIBaseURL != "" {
		return c.APIBaseURL
	}
	return api.BaseURLFor(c.IsProduction())
}

// Validate normalises case-insensitive values and checks those that would
// otherwise fail late.
func (c *Config) Validate() error {
	c.Environment = normalize(c.Environment)
	c.LogFormat = normalize(c.LogFormat)
	c.LogLevel = normalize(c.LogLevel)

	switch c.Environment {
	case buildinfo.EnvProduction, buildinfo.EnvDevelopment:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.DBPath == "" {
		return errors.New("db path is empty")
	}
	if c.RequestTimeout < 0 {
		return errors.New("request timeout must not be negative")
	}
	return nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if any), the environment and the .env file, and finally
// the command-line flags that were set explicitly. Later sources take
// precedence over earlier ones.
//
// fs must have been prepared with BindFlags; it may be nil.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	path := configFilePath(fs, os.LookupEnv)
	if path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}
	if err := parseEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, fs); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "coursecomment.db"
	}
	return filepath.Join(dir, "coursecomment", "client.db")
}
