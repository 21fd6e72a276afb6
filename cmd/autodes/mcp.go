package main

import (
	autodesmcp "github.com/RodrigoDSVDF/autodes/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for coding agent integration",
	Long: `Start a Model Context Protocol (MCP) server over stdio.

This lets coding agents log days and read analytics directly.

Configuration in Claude Code (~/.claude/claude_desktop_config.json):

  {
    "mcpServers": {
      "autodes": {
        "command": "autodes",
        "args": ["mcp"],
        "env": {
          "AUTODES_DB_PATH": "/path/to/autodes.db"
        }
      }
    }
  }

Environment variables:
  AUTODES_DB_PATH    Path to local SQLite database (default: ~/.autodes/autodes.db)
  AUTODES_CACHE_TTL  Read cache lifetime (default: 60s)
  AUTODES_DEBUG      Enable debug logging (1/true)
  AUTODES_DEBUG_LOG  Debug log destination (default: stderr)`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	// The client persists for the server lifetime.
	client, err := openClient()
	if err != nil {
		return err
	}
	defer client.Close()

	server := autodesmcp.NewServer(client)
	return server.Run()
}
