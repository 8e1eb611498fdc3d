package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/onurkarakus/nexus/mcp"
	"github.com/onurkarakus/nexus/tool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve provider operations as MCP tools over stdio",
	Long: `Serve every configured provider operation as a Model Context Protocol
tool on stdin/stdout. Each tool call runs its own connect, authenticate
and cast chain. Logs are written to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := setup(cmd)
		if err != nil {
			return err
		}
		registry := tool.NewConnectorRegistry(c)
		slog.Info("serving MCP tools", "tools", registry.Names())
		return mcp.ServeStdio(registry,
			mcp.WithVersion(version),
			mcp.WithLogger(slog.Default()),
		)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
