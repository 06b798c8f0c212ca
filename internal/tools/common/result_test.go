package common

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsforge/google-docs-mcp/internal/gdocs"
)

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("result content is not text: %T", result.Content[0])
	}
	return text.Text
}

func TestSuccessResultEnvelope(t *testing.T) {
	result, err := SuccessResult("Inserted text", map[string]interface{}{
		"documentId": "doc-1",
		"replies":    1,
	})
	if err != nil {
		t.Fatalf("SuccessResult() error = %v", err)
	}
	if result.IsError {
		t.Fatal("SuccessResult() produced an error result")
	}

	var payload struct {
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("result is not valid JSON: %v", err)
	}
	if payload.Message != "Inserted text" {
		t.Errorf("message = %q, want %q", payload.Message, "Inserted text")
	}
	if payload.Data["documentId"] != "doc-1" {
		t.Errorf("data.documentId = %v, want doc-1", payload.Data["documentId"])
	}
}

func TestClientErrorResult(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantSub string
	}{
		{
			name:    "rate limit carries retry delay",
			err:     &gdocs.RateLimitError{RetryAfter: 30 * time.Second, Message: "quota exceeded"},
			wantSub: "retry after 30s",
		},
		{
			name:    "authentication failure",
			err:     &gdocs.AuthenticationError{StatusCode: 401, Message: "invalid credentials"},
			wantSub: "Authentication failed (HTTP 401)",
		},
		{
			name:    "api error keeps service message",
			err:     &gdocs.APIError{StatusCode: 400, Message: "Invalid requests[0].insertText"},
			wantSub: "Invalid requests[0].insertText",
		},
		{
			name:    "unclassified error",
			err:     errors.New("connection reset"),
			wantSub: "Request failed: connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ClientErrorResult(tt.err)
			if !result.IsError {
				t.Fatal("ClientErrorResult() did not produce an error result")
			}
			if text := resultText(t, result); !strings.Contains(text, tt.wantSub) {
				t.Errorf("error text = %q, want substring %q", text, tt.wantSub)
			}
		})
	}
}
