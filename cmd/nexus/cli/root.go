// Package cli implements the nexus command-line interface using Cobra.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/onurkarakus/nexus"
	"github.com/onurkarakus/nexus/internal/config"
	"github.com/onurkarakus/nexus/internal/credential"
)

var (
	verbose    bool
	jsonOut    bool
	configPath string
)

// Set up lazily by commands that talk to providers.
var (
	cfg       *config.Config
	connector *nexus.Connector
	store     = credential.New()
)

var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "Nexus - one pipeline for GitHub issues and Twitter posts",
	Long: `Nexus runs every operation through the same chain:
connect to a provider, authenticate, cast to a capability, call it.

Providers are enabled by configuration. GitHub needs a repository
(NEXUS_GITHUB_OWNER, NEXUS_GITHUB_REPO) and a token (GITHUB_TOKEN, or one
stored with "nexus auth login"). Twitter needs TWITTER_API_KEY,
TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_TOKEN_SECRET.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")
}

// setup loads configuration and builds the connector. Logs go to stderr
// so stdout stays clean for command output and the MCP transport.
func setup(cmd *cobra.Command) (*nexus.Connector, error) {
	if connector != nil {
		return connector, nil
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := loaded.Level()
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	c, err := config.NewConnector(loaded,
		config.WithLogger(logger),
		config.WithTokenSource(store),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring providers: %w", err)
	}

	cfg, connector = loaded, c
	logger.Debug("connector ready", "providers", c.Registry().IDs())
	return connector, nil
}
