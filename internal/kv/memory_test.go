package kv

import (
	"context"
	"testing"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := m.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || string(v) != `{"a":1}` {
		t.Fatalf("get: %q ok=%v err=%v", v, ok, err)
	}

	// Writes are full replacements.
	if err := m.Set(ctx, "k", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = m.Get(ctx, "k")
	if string(v) != `{"a":2}` {
		t.Fatalf("overwrite not observed: %q", v)
	}

	// Returned slices must not alias the stored value.
	v[0] = 'X'
	v2, _, _ := m.Get(ctx, "k")
	if string(v2) != `{"a":2}` {
		t.Fatalf("stored value was mutated through the returned slice")
	}
}
