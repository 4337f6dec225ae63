package service

import (
	"context"
	"errors"
	"testing"
)

func TestColumnCreateListDelete(t *testing.T) {
	repo := newStubRepo()
	svc := NewColumnService(repo, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, "  Setup Grade  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "Setup Grade" {
		t.Fatalf("name not trimmed: %q", created.Name)
	}

	if _, err := svc.Create(ctx, "Setup Grade"); !errors.Is(err, ErrDuplicateColumn) {
		t.Fatalf("duplicate should fail, got %v", err)
	}

	var ve *ValidationError
	if _, err := svc.Create(ctx, "   "); !errors.As(err, &ve) {
		t.Fatalf("blank name should fail validation, got %v", err)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 column, got %d", len(items))
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("double delete should report not found, got %v", err)
	}
}
