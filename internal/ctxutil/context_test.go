package ctxutil

import (
	"context"
	"testing"
)

func TestSessionID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if got := GetSessionID(ctx); got != "" {
		t.Errorf("GetSessionID on empty context = %q, want empty", got)
	}

	ctx = WithSessionID(ctx, "session-123")
	if got := GetSessionID(ctx); got != "session-123" {
		t.Errorf("GetSessionID = %q, want %q", got, "session-123")
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID on empty context = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "req-abc")
	if got := GetRequestID(ctx); got != "req-abc" {
		t.Errorf("GetRequestID = %q, want %q", got, "req-abc")
	}
}

func TestKeysDoNotCollide(t *testing.T) {
	t.Parallel()

	ctx := WithSessionID(context.Background(), "s")
	ctx = WithRequestID(ctx, "r")

	if got := GetSessionID(ctx); got != "s" {
		t.Errorf("GetSessionID = %q, want %q", got, "s")
	}
	if got := GetRequestID(ctx); got != "r" {
		t.Errorf("GetRequestID = %q, want %q", got, "r")
	}
}

func TestEmptyValueIgnored(t *testing.T) {
	t.Parallel()

	ctx := WithSessionID(context.Background(), "")
	if got := GetSessionID(ctx); got != "" {
		t.Errorf("GetSessionID = %q, want empty", got)
	}
}
