// Package config loads nexus settings from a YAML file, a .env file and
// the environment, and builds a configured Connector from them.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/onurkarakus/nexus/provider/twitter"
)

// Config holds the settings for the configured providers.
type Config struct {
	LogLevel string        `yaml:"log_level"`
	GitHub   GitHubConfig  `yaml:"github"`
	Twitter  TwitterConfig `yaml:"twitter"`
}

// GitHubConfig selects the repository the GitHub provider is bound to.
type GitHubConfig struct {
	Owner   string `yaml:"owner"`
	Repo    string `yaml:"repo"`
	BaseURL string `yaml:"base_url"`

	// Token is read from GITHUB_TOKEN or GH_PAT only.
	Token string `yaml:"-"`
}

// TwitterConfig holds the Twitter endpoint and OAuth keys.
type TwitterConfig struct {
	BaseURL string `yaml:"base_url"`

	// Credentials are read from the environment only.
	Credentials twitter.Credentials `yaml:"-"`
}

// DefaultPath returns the default config file location,
// $XDG_CONFIG_HOME/nexus/config.yaml or its platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "nexus", "config.yaml")
}

// Load reads configuration. A .env file in the working directory is
// loaded first if present. When path is empty the default location is
// used and a missing file is not an error. Environment variables
// override file values.
func Load(path string) (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{LogLevel: "info"}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration without consulting the environment.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{LogLevel: "info"}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnvOrDefault("NEXUS_LOG_LEVEL", c.LogLevel)

	c.GitHub.Owner = getEnvOrDefault("NEXUS_GITHUB_OWNER", c.GitHub.Owner)
	c.GitHub.Repo = getEnvOrDefault("NEXUS_GITHUB_REPO", c.GitHub.Repo)
	c.GitHub.BaseURL = getEnvOrDefault("NEXUS_GITHUB_BASE_URL", c.GitHub.BaseURL)
	c.GitHub.Token = getEnvOrDefault("GITHUB_TOKEN", os.Getenv("GH_PAT"))

	c.Twitter.BaseURL = getEnvOrDefault("NEXUS_TWITTER_BASE_URL", c.Twitter.BaseURL)
	c.Twitter.Credentials = twitter.Credentials{
		APIKey:            os.Getenv("TWITTER_API_KEY"),
		APISecret:         os.Getenv("TWITTER_API_SECRET"),
		AccessToken:       os.Getenv("TWITTER_ACCESS_TOKEN"),
		AccessTokenSecret: os.Getenv("TWITTER_ACCESS_TOKEN_SECRET"),
	}
}

// Validate checks that each provider is either fully configured or not
// configured at all.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	owner, repo := strings.TrimSpace(c.GitHub.Owner) != "", strings.TrimSpace(c.GitHub.Repo) != ""
	if owner != repo {
		return fmt.Errorf("github: owner and repo must be set together (NEXUS_GITHUB_OWNER, NEXUS_GITHUB_REPO)")
	}

	creds := c.Twitter.Credentials
	set := 0
	for _, v := range []string{creds.APIKey, creds.APISecret, creds.AccessToken, creds.AccessTokenSecret} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set != 0 && set != 4 {
		return fmt.Errorf("twitter: TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_TOKEN_SECRET must all be set")
	}

	return nil
}

// GitHubEnabled reports whether a repository is configured. Blank owner
// and repo values count as unset.
func (c *Config) GitHubEnabled() bool {
	return strings.TrimSpace(c.GitHub.Owner) != "" && strings.TrimSpace(c.GitHub.Repo) != ""
}

// TwitterEnabled reports whether all four Twitter keys are configured.
func (c *Config) TwitterEnabled() bool {
	return c.Twitter.Credentials.Validate() == nil
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (debug, info, warn, error)", s)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
