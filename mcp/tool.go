// Package mcp serves nexus tools over the Model Context Protocol.
//
// Each tool in a [tool.Registry] is registered with an MCP server, so MCP
// clients can discover the provider operations and call them:
//
//	connector, _ := config.NewConnector(cfg)
//	registry := tool.NewConnectorRegistry(connector)
//
//	if err := mcp.ServeStdio(registry, mcp.WithName("nexus")); err != nil {
//	    log.Fatal(err)
//	}
//
// Tool failures, including nexus errors such as a rejected credential,
// are returned as MCP error results rather than protocol errors.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/onurkarakus/nexus/tool"
)

// ToMCPTool converts a tool definition to an MCP tool. The parameter
// schema is passed through as the raw input schema.
func ToMCPTool(t tool.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// ToMCPTools converts a slice of tool definitions.
func ToMCPTools(tools []tool.Tool) []mcp.Tool {
	result := make([]mcp.Tool, len(tools))
	for i, t := range tools {
		result[i] = ToMCPTool(t)
	}
	return result
}

// ToMCPCallToolResult converts a tool result to an MCP result.
func ToMCPCallToolResult(result tool.Result) *mcp.CallToolResult {
	if result.IsError {
		return mcp.NewToolResultError(result.Content)
	}
	return mcp.NewToolResultText(result.Content)
}
