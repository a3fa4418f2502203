// Package mcpserver exposes the catalog as tools over the Model Context Protocol.
package mcpserver

import (
	"context"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.trai.ch/biofind/internal/build"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ToolServer = (*Server)(nil)

// Server serves the catalog on a single MCP session.
type Server struct {
	logger    ports.Logger
	transport mcp.Transport
}

// NewServer creates a server speaking MCP over stdin and stdout.
func NewServer(logger ports.Logger) *Server {
	return &Server{logger: logger, transport: &mcp.StdioTransport{}}
}

// Serve answers tool calls until the client disconnects or ctx is done.
func (s *Server) Serve(ctx context.Context, catalog ports.Catalog, defaults domain.ResolveOptions) error {
	if err := defaults.Validate(); err != nil {
		return err
	}

	s.logger.Info("serving catalog over stdio")
	err := s.build(catalog, defaults).Run(ctx, s.transport)
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	return zerr.Wrap(err, "tool server stopped")
}

func (s *Server) build(catalog ports.Catalog, defaults domain.ResolveOptions) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "biofind", Version: build.Version}, nil)
	h := &handlers{catalog: catalog, defaults: defaults}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_tools",
		Description: "Check which tool names exist in the repository and suggest close matches for the rest.",
	}, h.resolveTools)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_tool",
		Description: "Look up one tool by name and list its available versions.",
	}, h.findTool)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_versions",
		Description: "List every stored entry of a tool.",
	}, h.getVersions)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tools",
		Description: "List the tool names in the repository in sorted order.",
	}, h.listTools)

	return server
}

type handlers struct {
	catalog  ports.Catalog
	defaults domain.ResolveOptions
}

// ResolveArgs are the arguments of resolve_tools.
type ResolveArgs struct {
	Names  []string `json:"names" jsonschema:"tool names to look up"`
	Limit  *int     `json:"limit,omitempty" jsonschema:"maximum suggestions per missing name"`
	Cutoff *float64 `json:"cutoff,omitempty" jsonschema:"minimum similarity of a suggestion, between 0 and 1"`
}

func (h *handlers) resolveTools(
	_ context.Context, _ *mcp.CallToolRequest, args ResolveArgs,
) (*mcp.CallToolResult, domain.ResolutionResult, error) {
	opts := h.defaults
	if args.Limit != nil {
		opts.Limit = *args.Limit
	}
	if args.Cutoff != nil {
		opts.Cutoff = *args.Cutoff
	}

	res, err := h.catalog.Resolve(args.Names, opts)
	if err != nil {
		return nil, domain.ResolutionResult{}, err
	}
	return nil, res, nil
}

// ToolArgs name a single tool.
type ToolArgs struct {
	ToolName string `json:"tool_name" jsonschema:"tool name, matched case-insensitively"`
}

// FindResult is the answer of find_tool.
type FindResult struct {
	ToolName    string   `json:"tool_name"`
	Found       bool     `json:"found"`
	Versions    []string `json:"versions"`
	Suggestions []string `json:"suggestions"`
}

func (h *handlers) findTool(
	_ context.Context, _ *mcp.CallToolRequest, args ToolArgs,
) (*mcp.CallToolResult, FindResult, error) {
	name, err := toolName(args.ToolName)
	if err != nil {
		return nil, FindResult{}, err
	}

	res, err := h.catalog.Resolve([]string{name}, h.defaults)
	if err != nil {
		return nil, FindResult{}, err
	}

	out := FindResult{
		ToolName:    name,
		Found:       len(res.Found) > 0,
		Versions:    make([]string, 0, len(res.Entries)),
		Suggestions: []string{},
	}
	for _, e := range res.Entries {
		out.Versions = append(out.Versions, e.EntryName)
	}
	if s, ok := res.Suggestions[name]; ok {
		out.Suggestions = s
	}
	return nil, out, nil
}

// VersionsResult is the answer of get_versions.
type VersionsResult struct {
	ToolName string         `json:"tool_name"`
	Versions []domain.Entry `json:"versions"`
	Count    int            `json:"count"`
}

func (h *handlers) getVersions(
	_ context.Context, _ *mcp.CallToolRequest, args ToolArgs,
) (*mcp.CallToolResult, VersionsResult, error) {
	name, err := toolName(args.ToolName)
	if err != nil {
		return nil, VersionsResult{}, err
	}

	snap, err := h.catalog.Snapshot()
	if err != nil {
		return nil, VersionsResult{}, err
	}

	versions := snap.Versions(name)
	if versions == nil {
		versions = []domain.Entry{}
	}
	return nil, VersionsResult{ToolName: name, Versions: versions, Count: len(versions)}, nil
}

// ListArgs are the arguments of list_tools.
type ListArgs struct {
	Limit *int `json:"limit,omitempty" jsonschema:"maximum number of names, 0 for all"`
}

// ListResult is the answer of list_tools.
type ListResult struct {
	Tools []string `json:"tools"`
	Total int      `json:"total"`
}

func (h *handlers) listTools(
	_ context.Context, _ *mcp.CallToolRequest, args ListArgs,
) (*mcp.CallToolResult, ListResult, error) {
	limit := domain.DefaultListLimit
	if args.Limit != nil {
		limit = *args.Limit
	}
	if limit < 0 {
		return nil, ListResult{}, domain.Kind(domain.ErrValidation,
			zerr.With(zerr.New("limit must not be negative"), "limit", limit))
	}

	snap, err := h.catalog.Snapshot()
	if err != nil {
		return nil, ListResult{}, err
	}
	return nil, ListResult{Tools: snap.ListToolNames(limit), Total: len(snap.ToolNames)}, nil
}

func toolName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", domain.Kind(domain.ErrValidation, zerr.New("tool_name must not be empty"))
	}
	return name, nil
}
