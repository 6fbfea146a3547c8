package branchmock

import (
	"context"
	"testing"

	domain "support-desk/internal/domain/branch"
)

func TestRepo_First(t *testing.T) {
	ctx := context.Background()
	want := &domain.Branch{Name: "Jayanagar"}

	called := false
	m := &Repo{FirstFn: func(context.Context) (*domain.Branch, error) {
		called = true
		return want, nil
	}}
	got, err := m.First(ctx)
	if err != nil || got != want {
		t.Fatalf("First: got %+v, %v", got, err)
	}
	if !called {
		t.Fatalf("FirstFn not called")
	}

	// Default (nil func) → context.Canceled
	m = &Repo{}
	if _, err := m.First(ctx); err != context.Canceled {
		t.Fatalf("First default: want context.Canceled, got %v", err)
	}
}

func TestRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if err := m.Create(ctx, &domain.Branch{Name: "Koramangala"}); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if _, err := m.GetByID(ctx, "B-1"); err != context.Canceled {
		t.Fatalf("GetByID default: want context.Canceled, got %v", err)
	}

	want := &domain.Branch{ID: "B-1"}
	m = &Repo{GetByIDFn: func(_ context.Context, id string) (*domain.Branch, error) { return want, nil }}
	if got, _ := m.GetByID(ctx, "B-1"); got != want {
		t.Fatalf("GetByID: want %+v, got %+v", want, got)
	}
}
