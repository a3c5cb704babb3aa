package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := "abc-123"

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}

func TestRequestIDFromHeader(t *testing.T) {
	t.Run("valid header reused", func(t *testing.T) {
		want := "6f1c2a7e-4a44-4f1e-9a53-0c4f7b2d9e10"
		r := httptest.NewRequest(http.MethodGet, "/calculator/sessions", nil)
		r.Header.Set(RequestIDHeader, want)

		if got := RequestIDFromHeader(r); got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	})

	t.Run("invalid header replaced", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/calculator/sessions", nil)
		r.Header.Set(RequestIDHeader, "not-a-uuid")

		got := RequestIDFromHeader(r)
		if got == "not-a-uuid" {
			t.Fatal("expected invalid header to be replaced")
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected valid UUID, got %q: %v", got, err)
		}
	})
}
