package mcpserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
)

// SetTransport replaces the stdio transport.
func (s *Server) SetTransport(t mcp.Transport) {
	s.transport = t
}

// Build returns the MCP server Serve would run.
func (s *Server) Build(catalog ports.Catalog, defaults domain.ResolveOptions) *mcp.Server {
	return s.build(catalog, defaults)
}
