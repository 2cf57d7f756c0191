package insertbuffer

import (
	"context"
	"testing"
)

func TestBuffer_FlushesAtCapacity(t *testing.T) {
	var batches [][]int
	buf := New(3, func(ctx context.Context, batch []int) error {
		batches = append(batches, batch)
		return nil
	})

	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		if err := buf.Add(ctx, i); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if len(batches) != 1 {
		t.Fatalf("expected 1 flushed batch, got %d: %v", len(batches), batches)
	}
	if len(batches[0]) != 3 {
		t.Errorf("batch size = %d, want 3", len(batches[0]))
	}
	if buf.Len() != 2 {
		t.Errorf("remaining buffered = %d, want 2", buf.Len())
	}
}

func TestBuffer_FlushDrainsPartialBatch(t *testing.T) {
	var batches [][]int
	buf := New(3, func(ctx context.Context, batch []int) error {
		batches = append(batches, batch)
		return nil
	})

	ctx := context.Background()
	buf.Add(ctx, 1)
	buf.Add(ctx, 2)

	if err := buf.Flush(ctx); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	if len(batches) != 1 || len(batches[0]) != 2 {
		t.Fatalf("batches = %v", batches)
	}
	if buf.Len() != 0 {
		t.Errorf("expected empty buffer after flush, got %d", buf.Len())
	}
}

func TestBuffer_FlushOnEmptyIsNoop(t *testing.T) {
	called := false
	buf := New(3, func(ctx context.Context, batch []int) error {
		called = true
		return nil
	})

	if err := buf.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if called {
		t.Error("expected insert callback not to be called on empty buffer")
	}
}
