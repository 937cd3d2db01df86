package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/cognitiondigest/digest-backend/pkg/errors"
)

type sampleBody struct {
	Email string `json:"email" validate:"required,email"`
	Note  string `json:"note,omitempty"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"user@example.com"}`))

	var body sampleBody
	if err := DecodeJSONBody(r, &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Email != "user@example.com" {
		t.Fatalf("unexpected email %q", body.Email)
	}
}

func TestDecodeJSONBodyRejectsUnknownKeys(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"user@example.com","foo":1}`))

	var body sampleBody
	err := DecodeJSONBody(r, &body)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{`))

	var body sampleBody
	if appErr := pkgerrors.As(DecodeJSONBody(r, &body)); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatal("expected validation error for malformed JSON")
	}
}

func TestDecodeJSONBodyRunsStructValidation(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email":"not-an-email"}`))

	var body sampleBody
	err := DecodeJSONBody(r, &body)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(appErr.Message(), "email") {
		t.Fatalf("expected field name in message, got %q", appErr.Message())
	}
}
