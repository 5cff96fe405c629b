package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hpungsan/scout/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"session_init": {
		def:     initToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleInit },
	},
	"session_continue": {
		def:     continueToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleContinue },
	},
	"session_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"session_log_url": {
		def:     logURLToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleLogURL },
	},
	"session_status": {
		def:     statusToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleStatus },
	},
	"session_push": {
		def:     pushToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePush },
	},
	"session_pull": {
		def:     pullToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePull },
	},
	"session_archive": {
		def:     archiveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleArchive },
	},
	"session_report": {
		def:     reportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleReport },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with scout tools registered.
func NewServer(rt ops.Runtime, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"scout",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(rt)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(rt ops.Runtime, version string) error {
	s := NewServer(rt, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
