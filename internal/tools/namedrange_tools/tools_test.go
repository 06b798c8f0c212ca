package namedrange_tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	docs "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"

	"github.com/docsforge/google-docs-mcp/internal/server"
)

func newTestContext(t *testing.T, handler http.HandlerFunc) (*server.ServerContext, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	sc, err := server.NewServerContext(context.Background(),
		server.WithStaticToken("test-token"),
		server.WithClientOptions(option.WithEndpoint(ts.URL)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })

	return sc, &calls
}

func callRequest(name string, args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	tc, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok)
	return tc.Text
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestDeleteNamedRangeRequiresAnIdentifier(t *testing.T) {
	sc, calls := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected API call")
	})

	result, err := handleDeleteNamedRange(context.Background(),
		callRequest("docs_delete_named_range", map[string]interface{}{"documentId": "doc-1"}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "at least one of namedRangeId or name")
	assert.Equal(t, int64(0), calls.Load(), "precondition failures must not reach the API")
}

func TestReplaceNamedRangeRequiresAnIdentifier(t *testing.T) {
	sc, calls := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected API call")
	})

	result, err := handleReplaceNamedRange(context.Background(),
		callRequest("docs_replace_named_range", map[string]interface{}{
			"documentId": "doc-1",
			"text":       "updated",
		}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "at least one of namedRangeId or name")
	assert.Equal(t, int64(0), calls.Load())
}

func TestListNamedRanges(t *testing.T) {
	sc, _ := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		writeJSON(t, w, &docs.Document{
			DocumentId: "doc-1",
			NamedRanges: map[string]docs.NamedRanges{
				"chapter": {NamedRanges: []*docs.NamedRange{
					{NamedRangeId: "nr-1", Name: "chapter"},
					{NamedRangeId: "nr-2", Name: "chapter"},
				}},
				"footer": {NamedRanges: []*docs.NamedRange{
					{NamedRangeId: "nr-3", Name: "footer"},
				}},
			},
		})
	})

	result, err := handleListNamedRanges(context.Background(),
		callRequest("docs_list_named_ranges", map[string]interface{}{"documentId": "doc-1"}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "3 named ranges under 2 names")
	assert.Contains(t, text, "nr-2")
}

func TestCreateNamedRangeReturnsID(t *testing.T) {
	sc, _ := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		var req docs.BatchUpdateDocumentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)

		create := req.Requests[0].CreateNamedRange
		require.NotNil(t, create)
		assert.Equal(t, "chapter", create.Name)
		assert.Equal(t, int64(1), create.Range.StartIndex)
		assert.Equal(t, int64(50), create.Range.EndIndex)

		writeJSON(t, w, &docs.BatchUpdateDocumentResponse{
			DocumentId: "doc-1",
			Replies: []*docs.Response{
				{CreateNamedRange: &docs.CreateNamedRangeResponse{NamedRangeId: "nr-9"}},
			},
		})
	})

	result, err := handleCreateNamedRange(context.Background(),
		callRequest("docs_create_named_range", map[string]interface{}{
			"documentId": "doc-1",
			"name":       "chapter",
			"startIndex": 1.0,
			"endIndex":   50.0,
		}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "nr-9")
}

func TestDeleteNamedRangeByName(t *testing.T) {
	sc, _ := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		var req docs.BatchUpdateDocumentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)

		del := req.Requests[0].DeleteNamedRange
		require.NotNil(t, del)
		assert.Empty(t, del.NamedRangeId)
		assert.Equal(t, "chapter", del.Name)

		writeJSON(t, w, &docs.BatchUpdateDocumentResponse{DocumentId: "doc-1"})
	})

	result, err := handleDeleteNamedRange(context.Background(),
		callRequest("docs_delete_named_range", map[string]interface{}{
			"documentId": "doc-1",
			"name":       "chapter",
		}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var envelope struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &envelope))
	assert.Equal(t, `Deleted named range "chapter"`, envelope.Message)
}

func TestDeleteNamedRangePrefersID(t *testing.T) {
	sc, _ := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		var req docs.BatchUpdateDocumentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		del := req.Requests[0].DeleteNamedRange
		require.NotNil(t, del)
		assert.Equal(t, "nr-1", del.NamedRangeId)
		assert.Empty(t, del.Name)

		writeJSON(t, w, &docs.BatchUpdateDocumentResponse{DocumentId: "doc-1"})
	})

	result, err := handleDeleteNamedRange(context.Background(),
		callRequest("docs_delete_named_range", map[string]interface{}{
			"documentId":   "doc-1",
			"namedRangeId": "nr-1",
			"name":         "chapter",
		}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
}
