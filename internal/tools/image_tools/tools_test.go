package image_tools

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

func TestValidImageURI(t *testing.T) {
	assert.NoError(t, validImageURI("https://example.com/cat.png"))
	assert.NoError(t, validImageURI("http://example.com/cat.png"))

	for _, bad := range []string{"ftp://example.com/cat.png", "file:///etc/passwd", "not a url at all://", "/relative/path"} {
		assert.Error(t, validImageURI(bad), "uri %q", bad)
	}
}

func TestInsertImageValidation(t *testing.T) {
	sc, calls := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected API call")
	})

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"bad scheme", map[string]interface{}{"documentId": "doc-1", "uri": "ftp://example.com/a.png", "index": 1.0}, "http or https"},
		{"index zero", map[string]interface{}{"documentId": "doc-1", "uri": "https://example.com/a.png", "index": 0.0}, "index must be at least 1"},
		{"zero width", map[string]interface{}{"documentId": "doc-1", "uri": "https://example.com/a.png", "index": 1.0, "width": 0.0, "height": 100.0}, "width must be greater than 0"},
		{"negative height", map[string]interface{}{"documentId": "doc-1", "uri": "https://example.com/a.png", "index": 1.0, "width": 200.0, "height": -10.0}, "height must be greater than 0"},
		{"width without height", map[string]interface{}{"documentId": "doc-1", "uri": "https://example.com/a.png", "index": 1.0, "width": 200.0}, "width and height must be provided together"},
		{"height without width", map[string]interface{}{"documentId": "doc-1", "uri": "https://example.com/a.png", "index": 1.0, "height": 100.0}, "width and height must be provided together"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handleInsertImage(context.Background(), callRequest("docs_insert_image", tt.args), sc)
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
	assert.Equal(t, int64(0), calls.Load())
}

func TestInsertImageWithSize(t *testing.T) {
	sc, _ := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		var req docs.BatchUpdateDocumentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)

		insert := req.Requests[0].InsertInlineImage
		require.NotNil(t, insert)
		assert.Equal(t, "https://example.com/logo.png", insert.Uri)
		assert.Equal(t, int64(5), insert.Location.Index)
		require.NotNil(t, insert.ObjectSize)
		assert.Equal(t, 200.0, insert.ObjectSize.Width.Magnitude)
		assert.Equal(t, 100.0, insert.ObjectSize.Height.Magnitude)

		writeJSON(t, w, &docs.BatchUpdateDocumentResponse{DocumentId: "doc-1"})
	})

	result, err := handleInsertImage(context.Background(),
		callRequest("docs_insert_image", map[string]interface{}{
			"documentId": "doc-1",
			"uri":        "https://example.com/logo.png",
			"index":      5.0,
			"width":      200.0,
			"height":     100.0,
		}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Inserted image at index 5")
}

func TestReplaceImage(t *testing.T) {
	sc, _ := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		var req docs.BatchUpdateDocumentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)

		replace := req.Requests[0].ReplaceImage
		require.NotNil(t, replace)
		assert.Equal(t, "kix.img1", replace.ImageObjectId)
		assert.Equal(t, "https://example.com/new.png", replace.Uri)

		writeJSON(t, w, &docs.BatchUpdateDocumentResponse{DocumentId: "doc-1"})
	})

	result, err := handleReplaceImage(context.Background(),
		callRequest("docs_replace_image", map[string]interface{}{
			"documentId":    "doc-1",
			"imageObjectId": "kix.img1",
			"uri":           "https://example.com/new.png",
		}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
}

func TestDeleteObject(t *testing.T) {
	sc, calls := newTestContext(t, func(w http.ResponseWriter, r *http.Request) {
		var req docs.BatchUpdateDocumentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Requests, 1)

		del := req.Requests[0].DeletePositionedObject
		require.NotNil(t, del)
		assert.Equal(t, "kix.obj1", del.ObjectId)

		writeJSON(t, w, &docs.BatchUpdateDocumentResponse{DocumentId: "doc-1"})
	})

	result, err := handleDeleteObject(context.Background(),
		callRequest("docs_delete_object", map[string]interface{}{
			"documentId": "doc-1",
			"objectId":   "kix.obj1",
		}), sc)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, int64(1), calls.Load())

	result, err = handleDeleteObject(context.Background(),
		callRequest("docs_delete_object", map[string]interface{}{"documentId": "doc-1"}), sc)
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, int64(1), calls.Load())
}
