package store

import (
	"context"
	"errors"
	"testing"

	"github.com/wj-stack/NetFlow/internal/strategy"
)

func docWithID(id string) strategy.PolicyDocument {
	form := strategy.NewFormState()
	form.ID = id
	return strategy.Encode(form)
}

func TestMemoryStore_UpsertAndGet(t *testing.T) {
	st := NewMemoryStore()
	defer st.Close()
	ctx := context.Background()

	if err := st.Upsert(ctx, docWithID("s1")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	doc, err := st.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if doc.StrategyID() != "s1" {
		t.Errorf("got strategy id %q, want s1", doc.StrategyID())
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	_, err := st.Get(ctx, "absent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_ListOrder(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		if err := st.Upsert(ctx, docWithID(id)); err != nil {
			t.Fatalf("Upsert(%s): %v", id, err)
		}
	}

	docs, err := st.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"c", "a", "b"}
	if len(docs) != len(want) {
		t.Fatalf("got %d docs, want %d", len(docs), len(want))
	}
	for i, id := range want {
		if docs[i].StrategyID() != id {
			t.Errorf("docs[%d] = %s, want %s", i, docs[i].StrategyID(), id)
		}
	}
}

func TestMemoryStore_UpsertPreservesPosition(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := st.Upsert(ctx, docWithID(id)); err != nil {
			t.Fatalf("Upsert(%s): %v", id, err)
		}
	}

	// Replace the middle document; it must keep its slot
	replacement := docWithID("b")
	replacement.Filter.Desc = "updated"
	if err := st.Upsert(ctx, replacement); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	docs, _ := st.List(ctx)
	if docs[1].StrategyID() != "b" {
		t.Errorf("replaced doc moved: position 1 holds %s", docs[1].StrategyID())
	}
	if docs[1].Filter.Desc != "updated" {
		t.Errorf("replacement not applied: desc = %q", docs[1].Filter.Desc)
	}
}

func TestMemoryStore_DeleteIsIdempotent(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.Upsert(ctx, docWithID("s1")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := st.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := st.Delete(ctx, "s1"); err != nil {
		t.Errorf("second Delete errored: %v", err)
	}
	if err := st.Delete(ctx, "never-there"); err != nil {
		t.Errorf("Delete of unknown id errored: %v", err)
	}

	if st.Len() != 0 {
		t.Errorf("store holds %d docs after deletes, want 0", st.Len())
	}
}

func TestMemoryStore_Replace(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.Upsert(ctx, docWithID("old")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := st.Replace(ctx, []strategy.PolicyDocument{
		docWithID("n1"), docWithID("n2"),
	}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	docs, _ := st.List(ctx)
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].StrategyID() != "n1" || docs[1].StrategyID() != "n2" {
		t.Errorf("unexpected order: %s, %s", docs[0].StrategyID(), docs[1].StrategyID())
	}
	if _, err := st.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Error("old document survived Replace")
	}
}

func TestMemoryStore_ReplaceDuplicateIDs(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	first := docWithID("dup")
	first.Filter.Desc = "first"
	second := docWithID("dup")
	second.Filter.Desc = "second"

	if err := st.Replace(ctx, []strategy.PolicyDocument{first, docWithID("other"), second}); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	docs, _ := st.List(ctx)
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	// The later duplicate wins but keeps the earlier position
	if docs[0].StrategyID() != "dup" || docs[0].Filter.Desc != "second" {
		t.Errorf("dup doc = %s/%q", docs[0].StrategyID(), docs[0].Filter.Desc)
	}
}

func TestMemoryStore_ReplaceEmpty(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	if err := st.Upsert(ctx, docWithID("s1")); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := st.Replace(ctx, nil); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	docs, _ := st.List(ctx)
	if len(docs) != 0 {
		t.Errorf("got %d docs after empty Replace, want 0", len(docs))
	}
}
