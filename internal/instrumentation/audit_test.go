package instrumentation

import (
	"errors"
	"log/slog"
	"testing"
)

// Test constants to reduce string repetition and satisfy goconst
const (
	testDocumentID = "1aBcDeFgHiJkLmNoPqRsTuVwXyZ"
	testTraceID    = "abc123def456"
	testToolInsert = "docs_insert_text"
	testToolCreate = "docs_create_document"
	testToolGet    = "docs_get_document"
)

func TestToolInvocation_NewAndComplete(t *testing.T) {
	ti := NewToolInvocation(testToolInsert)

	// Verify initial state
	if ti.Tool != testToolInsert {
		t.Errorf("Tool = %q, want %q", ti.Tool, testToolInsert)
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should not be zero")
	}

	// Complete the invocation - duration should be calculated from StartTime
	ti.CompleteSuccess()

	if !ti.Success {
		t.Error("Success should be true")
	}
	// Duration is calculated from StartTime, so it should be >= 0
	// We don't check for > 0 as the test may complete instantly
	if ti.Duration < 0 {
		t.Error("Duration should not be negative")
	}
	if ti.Error != "" {
		t.Errorf("Error should be empty, got %q", ti.Error)
	}
}

func TestToolInvocation_CompleteWithError(t *testing.T) {
	ti := NewToolInvocation(testToolCreate)
	err := errors.New("permission denied")

	ti.CompleteWithError(err)

	if ti.Success {
		t.Error("Success should be false")
	}
	if ti.Error != "permission denied" {
		t.Errorf("Error = %q, want %q", ti.Error, "permission denied")
	}
}

func TestToolInvocation_WithDocument(t *testing.T) {
	ti := NewToolInvocation(testToolInsert)
	ti.WithDocument(testDocumentID)

	if ti.DocumentID != testDocumentID {
		t.Errorf("DocumentID = %q, want %q", ti.DocumentID, testDocumentID)
	}
}

func TestToolInvocation_WithOperation(t *testing.T) {
	ti := NewToolInvocation(testToolInsert)
	ti.WithOperation(OperationBatchUpdate)

	if ti.Operation != OperationBatchUpdate {
		t.Errorf("Operation = %q, want %q", ti.Operation, OperationBatchUpdate)
	}
}

func TestToolInvocation_Status(t *testing.T) {
	ti := NewToolInvocation("test")

	ti.Success = true
	if status := ti.Status(); status != StatusSuccess {
		t.Errorf("Status() = %q, want %q", status, StatusSuccess)
	}

	ti.Success = false
	if status := ti.Status(); status != StatusError {
		t.Errorf("Status() = %q, want %q", status, StatusError)
	}
}

func attrsToMap(attrs []slog.Attr) map[string]slog.Value {
	m := make(map[string]slog.Value, len(attrs))
	for _, attr := range attrs {
		m[attr.Key] = attr.Value
	}
	return m
}

func TestToolInvocation_LogAttrs(t *testing.T) {
	ti := NewToolInvocation(testToolGet)
	ti.WithDocument(testDocumentID).
		WithOperation(OperationGet).
		CompleteSuccess()
	ti.TraceID = testTraceID

	m := attrsToMap(ti.LogAttrs())

	if got := m["tool"].String(); got != testToolGet {
		t.Errorf("tool attr = %q, want %q", got, testToolGet)
	}
	if got := m["operation"].String(); got != OperationGet {
		t.Errorf("operation attr = %q, want %q", got, OperationGet)
	}
	if got := m["trace_id"].String(); got != testTraceID {
		t.Errorf("trace_id attr = %q, want %q", got, testTraceID)
	}
	// LogAttrs must not expose the document ID
	if _, ok := m["document_id"]; ok {
		t.Error("LogAttrs should not include document_id")
	}
}

func TestToolInvocation_LogAuditAttrs(t *testing.T) {
	ti := NewToolInvocation(testToolInsert)
	ti.WithDocument(testDocumentID).
		WithOperation(OperationBatchUpdate).
		CompleteWithError(errors.New("range out of bounds"))

	m := attrsToMap(ti.LogAuditAttrs())

	if got := m["document_id"].String(); got != testDocumentID {
		t.Errorf("document_id attr = %q, want %q", got, testDocumentID)
	}
	if got := m["error"].String(); got != "range out of bounds" {
		t.Errorf("error attr = %q, want %q", got, "range out of bounds")
	}
	if got := m["success"].Bool(); got {
		t.Error("success attr should be false")
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	logger := NewAuditLoggerWithConfig(slog.Default(), AuditLoggingConfig{
		Enabled: false,
	})

	// Should not panic and should be a no-op
	ti := NewToolInvocation(testToolInsert).CompleteSuccess()
	logger.LogToolInvocation(ti)
	logger.LogToolAudit(ti)
}

func TestAuditLogger_NilLoggerDefaults(t *testing.T) {
	logger := NewAuditLogger(nil)
	if logger == nil {
		t.Fatal("NewAuditLogger returned nil")
	}

	ti := NewToolInvocation(testToolCreate).CompleteSuccess()
	// Should not panic with the default logger
	logger.LogToolInvocation(ti)
}

func TestAuditLogger_IncludeDocumentIDsToggle(t *testing.T) {
	logger := NewAuditLoggerWithConfig(slog.Default(), AuditLoggingConfig{
		Enabled:            true,
		IncludeDocumentIDs: false,
	})

	ti := NewToolInvocation(testToolInsert).
		WithDocument(testDocumentID).
		CompleteSuccess()

	// Should not panic; attribute selection is covered by the LogAttrs tests
	logger.LogToolInvocation(ti)

	logger.SetIncludeDocumentIDs(true)
	logger.LogToolInvocation(ti)
}
