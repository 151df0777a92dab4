package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeEmptyBatch, status: http.StatusUnprocessableEntity, publicMsg: "batch is empty"},
		{code: CodeInvariant, status: http.StatusInternalServerError, publicMsg: "internal invariant violated"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestWithDetailsLeavesSentinelUntouched(t *testing.T) {
	sentinel := New(CodeValidation, "media cap reached")
	detailed := sentinel.WithDetails(map[string]any{"limit": 5})

	if sentinel.Details() != nil {
		t.Fatalf("sentinel details mutated: %v", sentinel.Details())
	}
	if detailed.Details() == nil {
		t.Fatalf("details should be preserved on the copy")
	}
	if !stdErrors.Is(detailed, sentinel) {
		t.Fatalf("detailed copy should match its sentinel")
	}
	if !stdErrors.Is(fmt.Errorf("outer: %w", detailed), sentinel) {
		t.Fatalf("wrapped copy should match its sentinel")
	}
	if stdErrors.Is(detailed, New(CodeValidation, "something else")) {
		t.Fatalf("different message should not match")
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeNotFound, "no entry"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
	if !HasCode(err, CodeNotFound) {
		t.Fatalf("HasCode should find code in chain")
	}
}

func TestDumpFlagsInvariantAsDefect(t *testing.T) {
	dump := Dump(fmt.Errorf("submit: %w", Invariant("duplicate item %s", "abc")))
	if dump.Code != CodeInvariant {
		t.Fatalf("expected invariant code, got %s", dump.Code)
	}
	if !dump.Defect {
		t.Fatalf("expected defect flag")
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %d", len(dump.Chain))
	}
	fields := dump.Fields()
	if _, ok := fields["pg_code"]; ok {
		t.Fatalf("pg fields should be omitted without a postgres error")
	}
}

func TestExposeMessageOnlyForRejections(t *testing.T) {
	for code, meta := range metadataByCode {
		if meta.ExposeMessage != (meta.HTTPStatus < http.StatusInternalServerError) {
			t.Fatalf("code %s: expose=%v for status %d", code, meta.ExposeMessage, meta.HTTPStatus)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(nil) {
		t.Fatal("nil error is not retryable")
	}
	if IsRetryable(New(CodeEmptyBatch, "empty")) {
		t.Fatal("empty batch must not be retried")
	}
	if !IsRetryable(fmt.Errorf("publish: %w", New(CodeDependency, "pubsub down"))) {
		t.Fatal("wrapped dependency error should be retryable")
	}
	if !IsRetryable(stdErrors.New("untyped")) {
		t.Fatal("untyped errors default to retryable internal")
	}
	if got := Newf(CodeNotFound, "product %d", 9).Message(); got != "product 9" {
		t.Fatalf("unexpected Newf message %q", got)
	}
}
