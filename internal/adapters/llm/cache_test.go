package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"nickguard/internal/ports"
)

func TestCache_HitsWithinTTL(t *testing.T) {
	next := &stubClient{out: "reply"}
	c := NewCache(next, 50*time.Millisecond)

	for i := 0; i < 3; i++ {
		out, err := c.Complete(context.Background(), "s", "u")
		if err != nil || out != "reply" {
			t.Fatalf("got %q, %v", out, err)
		}
	}
	if got := next.calls.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}

	if _, err := c.Complete(context.Background(), "s", "other"); err != nil {
		t.Fatal(err)
	}
	if got := next.calls.Load(); got != 2 {
		t.Errorf("different prompt should miss: calls = %d", got)
	}

	time.Sleep(100 * time.Millisecond)
	if _, err := c.Complete(context.Background(), "s", "u"); err != nil {
		t.Fatal(err)
	}
	if got := next.calls.Load(); got != 3 {
		t.Errorf("expired entry should miss: calls = %d", got)
	}
}

func TestCache_DoesNotStoreFailures(t *testing.T) {
	next := &stubClient{err: &ports.TransientError{Provider: "x", Err: errors.New("boom")}}
	c := NewCache(next, time.Minute)

	for i := 0; i < 2; i++ {
		if _, err := c.Complete(context.Background(), "s", "u"); err == nil {
			t.Fatal("expected error")
		}
	}
	if got := next.calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestCache_Disabled(t *testing.T) {
	next := &stubClient{out: "reply"}
	c := NewCache(next, 0)
	c.Complete(context.Background(), "s", "u")
	c.Complete(context.Background(), "s", "u")
	if got := next.calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestCacheKey_SeparatesFields(t *testing.T) {
	if cacheKey("ab", "c") == cacheKey("a", "bc") {
		t.Error("keys must not collide across the field boundary")
	}
}
