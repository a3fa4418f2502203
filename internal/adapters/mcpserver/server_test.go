package mcpserver_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/biofind/internal/adapters/mcpserver"
	"go.trai.ch/biofind/internal/core/domain"
	"go.trai.ch/biofind/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func testSnapshot() *domain.Snapshot {
	names := []string{"samtools:1.21", "samtools:1.9", "bwa:0.7.17", "star:2.7.11a", "bowtie2:2.5.4", "README"}
	entries := make([]domain.Entry, len(names))
	for i, n := range names {
		entries[i] = domain.NewEntry(n, "/repo/"+n, int64(i), time.Unix(1700000000, 0))
	}
	return domain.NewSnapshot("/repo", entries, time.Unix(1700000000, 0))
}

// catalogOf returns a mock catalog serving snap, or ErrNoSnapshot when snap is nil.
func catalogOf(t *testing.T, snap *domain.Snapshot) *mocks.MockCatalog {
	t.Helper()
	cat := mocks.NewMockCatalog(gomock.NewController(t))
	cat.EXPECT().Snapshot().DoAndReturn(func() (*domain.Snapshot, error) {
		if snap == nil {
			return nil, domain.ErrNoSnapshot
		}
		return snap, nil
	}).AnyTimes()
	cat.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(queries []string, opts domain.ResolveOptions) (domain.ResolutionResult, error) {
			return domain.Resolve(queries, snap, opts)
		}).AnyTimes()
	return cat
}

func connect(t *testing.T, cat *mocks.MockCatalog) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	log := mocks.NewMockLogger(gomock.NewController(t))

	server := mcpserver.NewServer(log).Build(cat, domain.DefaultResolveOptions())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func call(t *testing.T, session *mcp.ClientSession, name string, args map[string]any, out any) *mcp.CallToolResult {
	t.Helper()
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	if out != nil && !res.IsError {
		raw, err := json.Marshal(res.StructuredContent)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return res
}

func errorText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_ListsTools(t *testing.T) {
	session := connect(t, catalogOf(t, testSnapshot()))

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"resolve_tools", "find_tool", "get_versions", "list_tools"}, names)
}

func TestServer_ResolveTools(t *testing.T) {
	session := connect(t, catalogOf(t, testSnapshot()))

	var out domain.ResolutionResult
	res := call(t, session, "resolve_tools", map[string]any{
		"names": []string{"SAMTOOLS", "samtool", "zzz"},
	}, &out)
	require.False(t, res.IsError)

	assert.Equal(t, []string{"SAMTOOLS"}, out.Found)
	assert.Equal(t, []string{"samtool", "zzz"}, out.Missing)
	assert.Equal(t, 3, out.Count)
	assert.Equal(t, map[string][]string{"samtool": {"samtools"}}, out.Suggestions)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, "samtools:1.21", out.Entries[0].EntryName)
	assert.Equal(t, "samtools:1.9", out.Entries[1].EntryName)
}

func TestServer_ResolveToolsOverrides(t *testing.T) {
	session := connect(t, catalogOf(t, testSnapshot()))

	var out domain.ResolutionResult
	call(t, session, "resolve_tools", map[string]any{
		"names": []string{"samtool"},
		"limit": 0,
	}, &out)
	assert.Empty(t, out.Suggestions)

	res := call(t, session, "resolve_tools", map[string]any{
		"names":  []string{"samtool"},
		"cutoff": 1.5,
	}, nil)
	assert.Contains(t, errorText(t, res), "cutoff must be within [0, 1]")
}

func TestServer_FindTool(t *testing.T) {
	session := connect(t, catalogOf(t, testSnapshot()))

	t.Run("Found", func(t *testing.T) {
		var out mcpserver.FindResult
		call(t, session, "find_tool", map[string]any{"tool_name": "Samtools"}, &out)

		assert.True(t, out.Found)
		assert.Equal(t, "Samtools", out.ToolName)
		assert.Equal(t, []string{"samtools:1.21", "samtools:1.9"}, out.Versions)
		assert.Empty(t, out.Suggestions)
	})

	t.Run("Missing", func(t *testing.T) {
		var out mcpserver.FindResult
		call(t, session, "find_tool", map[string]any{"tool_name": "bowtie"}, &out)

		assert.False(t, out.Found)
		assert.Empty(t, out.Versions)
		assert.Equal(t, []string{"bowtie2"}, out.Suggestions)
	})

	t.Run("Blank", func(t *testing.T) {
		res := call(t, session, "find_tool", map[string]any{"tool_name": "  "}, nil)
		assert.Contains(t, errorText(t, res), "tool_name must not be empty")
	})
}

func TestServer_GetVersions(t *testing.T) {
	session := connect(t, catalogOf(t, testSnapshot()))

	var out mcpserver.VersionsResult
	call(t, session, "get_versions", map[string]any{"tool_name": "samtools"}, &out)
	assert.Equal(t, 2, out.Count)
	require.Len(t, out.Versions, 2)
	assert.Equal(t, "1.21", out.Versions[0].TagOrEmpty())

	var none mcpserver.VersionsResult
	call(t, session, "get_versions", map[string]any{"tool_name": "unknown"}, &none)
	assert.Zero(t, none.Count)
	assert.NotNil(t, none.Versions)
}

func TestServer_ListToolNames(t *testing.T) {
	session := connect(t, catalogOf(t, testSnapshot()))

	var all mcpserver.ListResult
	call(t, session, "list_tools", map[string]any{}, &all)
	assert.Equal(t, []string{"README", "bowtie2", "bwa", "samtools", "star"}, all.Tools)
	assert.Equal(t, 5, all.Total)

	var two mcpserver.ListResult
	call(t, session, "list_tools", map[string]any{"limit": 2}, &two)
	assert.Equal(t, []string{"README", "bowtie2"}, two.Tools)
	assert.Equal(t, 5, two.Total)

	res := call(t, session, "list_tools", map[string]any{"limit": -1}, nil)
	assert.Contains(t, errorText(t, res), "limit must not be negative")
}

func TestServer_NoSnapshot(t *testing.T) {
	session := connect(t, catalogOf(t, nil))

	res := call(t, session, "list_tools", map[string]any{}, nil)
	assert.Contains(t, errorText(t, res), domain.ErrNoSnapshot.Error())

	res = call(t, session, "resolve_tools", map[string]any{"names": []string{"bwa"}}, nil)
	assert.Contains(t, errorText(t, res), domain.ErrNoSnapshot.Error())
}

func TestServer_Serve(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	server := mcpserver.NewServer(log)
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	server.SetTransport(serverTransport)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, catalogOf(t, testSnapshot()), domain.DefaultResolveOptions())
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	require.NoError(t, err)
	defer func() { _ = session.Close() }()

	var out mcpserver.ListResult
	call(t, session, "list_tools", map[string]any{"limit": 1}, &out)
	assert.Equal(t, []string{"README"}, out.Tools)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestServer_ServeInvalidDefaults(t *testing.T) {
	server := mcpserver.NewServer(mocks.NewMockLogger(gomock.NewController(t)))

	err := server.Serve(context.Background(), catalogOf(t, nil), domain.ResolveOptions{Limit: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
