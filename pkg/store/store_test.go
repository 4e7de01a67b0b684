package store

import (
	"context"
	"testing"
	"time"

	"github.com/floweave/floweave/pkg/validate"
)

func TestNewRecordAssignsID(t *testing.T) {
	a := NewRecord("demo", "app: {}", validate.Result{IsValid: true})
	b := NewRecord("demo", "app: {}", validate.Result{IsValid: true})
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if a.CreatedAt.IsZero() || !a.CreatedAt.Equal(a.UpdatedAt) {
		t.Error("new record should have matching creation and update times")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	rec := NewRecord("demo", "app: {}", validate.Result{IsValid: true})
	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "demo" || got.Text != "app: {}" {
		t.Errorf("unexpected record: %+v", got)
	}

	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != ErrNotFound {
		t.Errorf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStorePutPreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := NewRecord("demo", "v1", validate.Result{IsValid: true})
	if err := s.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}
	created := rec.CreatedAt

	time.Sleep(time.Millisecond)
	rec.Text = "v2"
	if err := s.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Error("replace should keep the original creation time")
	}
	if !got.UpdatedAt.After(created) {
		t.Error("replace should bump the update time")
	}
	if got.Text != "v2" {
		t.Errorf("text = %q, want v2", got.Text)
	}
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	first := NewRecord("a", "1", validate.Result{IsValid: true})
	if err := s.Put(ctx, first); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	second := NewRecord("b", "2", validate.Result{IsValid: true})
	if err := s.Put(ctx, second); err != nil {
		t.Fatal(err)
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].ID != second.ID {
		t.Error("newest record should come first")
	}
}
