package logging

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "test_operation")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithTool(t *testing.T) {
	logger := slog.Default()
	result := WithTool(logger, "docs_insert_text")
	if result == nil {
		t.Error("WithTool returned nil")
	}
}

func TestWithDocument(t *testing.T) {
	logger := slog.Default()
	result := WithDocument(logger, "doc-123")
	if result == nil {
		t.Error("WithDocument returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("test_op")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "test_op" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "test_op")
	}
}

func TestToolAttr(t *testing.T) {
	attr := Tool("docs_append_text")
	if attr.Key != KeyTool {
		t.Errorf("Tool key = %q, want %q", attr.Key, KeyTool)
	}
	if attr.Value.String() != "docs_append_text" {
		t.Errorf("Tool value = %q, want %q", attr.Value.String(), "docs_append_text")
	}
}

func TestDocumentAttr(t *testing.T) {
	attr := Document("doc-123")
	if attr.Key != KeyDocument {
		t.Errorf("Document key = %q, want %q", attr.Key, KeyDocument)
	}
	if attr.Value.String() != "doc-123" {
		t.Errorf("Document value = %q, want %q", attr.Value.String(), "doc-123")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != "success" {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), "success")
	}
}

func TestDurationAttr(t *testing.T) {
	attr := Duration(250 * time.Millisecond)
	if attr.Key != KeyDuration {
		t.Errorf("Duration key = %q, want %q", attr.Key, KeyDuration)
	}
	if attr.Value.Duration() != 250*time.Millisecond {
		t.Errorf("Duration value = %v, want %v", attr.Value.Duration(), 250*time.Millisecond)
	}
}

func TestTransportAttr(t *testing.T) {
	attr := Transport("stdio")
	if attr.Key != KeyTransport {
		t.Errorf("Transport key = %q, want %q", attr.Key, KeyTransport)
	}
	if attr.Value.String() != "stdio" {
		t.Errorf("Transport value = %q, want %q", attr.Value.String(), "stdio")
	}
}

func TestErr(t *testing.T) {
	t.Run("nil error returns empty group", func(t *testing.T) {
		attr := Err(nil)
		if attr.Key != "" {
			t.Errorf("Err(nil) key = %q, want empty", attr.Key)
		}
	})

	t.Run("non-nil error returns error attribute", func(t *testing.T) {
		attr := Err(errors.New("boom"))
		if attr.Key != KeyError {
			t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
		}
		if attr.Value.String() != "boom" {
			t.Errorf("Err value = %q, want %q", attr.Value.String(), "boom")
		}
	})
}

func TestSanitizeToken(t *testing.T) {
	tests := []struct {
		token    string
		expected string
	}{
		{"", "<empty>"},
		{"abc123", "[token:6 chars]"},
		{"a_very_long_token_string", "[token:24 chars]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := SanitizeToken(tt.token)
			if result != tt.expected {
				t.Errorf("SanitizeToken(%q) = %q, want %q", tt.token, result, tt.expected)
			}
		})
	}
}

func TestStatusConstants(t *testing.T) {
	if StatusSuccess != "success" {
		t.Errorf("StatusSuccess = %q, want %q", StatusSuccess, "success")
	}
	if StatusError != "error" {
		t.Errorf("StatusError = %q, want %q", StatusError, "error")
	}
}
