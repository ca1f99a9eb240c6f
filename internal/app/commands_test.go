package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"flex_reviews/internal/app"
	"flex_reviews/internal/domain"
)

func TestToggle_OnEmptyDocument(t *testing.T) {
	fs := &fakeStore{}
	sel := app.NewSelectionService(fs)
	ctx := context.Background()

	selected, err := sel.Toggle(ctx, 42)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !selected {
		t.Fatalf("expected toggle on")
	}

	data := sel.GetAll(ctx)
	if len(data.Selections) != 1 || data.Selections[0].ReviewID != 42 {
		t.Fatalf("unexpected document: %+v", data)
	}
	if data.Selections[0].SelectedAt == "" || data.LastUpdated == "" {
		t.Fatalf("timestamps not set: %+v", data)
	}
}

func TestToggle_TwiceRestoresCount(t *testing.T) {
	fs := &fakeStore{}
	sel := app.NewSelectionService(fs)
	ctx := context.Background()

	if err := sel.BulkSet(ctx, []int64{1, 2}, true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	before := len(sel.GetAll(ctx).Selections)

	on, err := sel.Toggle(ctx, 99)
	if err != nil || !on {
		t.Fatalf("first toggle: %v %v", on, err)
	}
	off, err := sel.Toggle(ctx, 99)
	if err != nil || off {
		t.Fatalf("second toggle: %v %v", off, err)
	}

	if after := len(sel.GetAll(ctx).Selections); after != before {
		t.Fatalf("entry count changed: %d -> %d", before, after)
	}
}

func TestBulkSet_SelectIsIdempotent(t *testing.T) {
	fs := &fakeStore{}
	sel := app.NewSelectionService(fs)
	ctx := context.Background()

	if err := sel.BulkSet(ctx, []int64{1, 2}, true); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := sel.BulkSet(ctx, []int64{1, 2}, true); err != nil {
		t.Fatalf("err: %v", err)
	}
	data := sel.GetAll(ctx)
	if len(data.Selections) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(data.Selections))
	}
}

func TestBulkSet_UnselectIgnoresMissingIDs(t *testing.T) {
	fs := &fakeStore{}
	sel := app.NewSelectionService(fs)
	ctx := context.Background()

	if err := sel.BulkSet(ctx, []int64{1, 2, 3}, true); err != nil {
		t.Fatalf("seed: %v", err)
	}
	// 99 was never selected; no error, no effect
	if err := sel.BulkSet(ctx, []int64{2, 99}, false); err != nil {
		t.Fatalf("err: %v", err)
	}
	ids := sel.SelectedIDs(ctx)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("got %v", ids)
	}
}

func TestGetAll_CorruptDocumentDegradesToFresh(t *testing.T) {
	fs := &fakeStore{loadErr: errors.New("bad payload")}
	sel := app.NewSelectionService(fs)

	data := sel.GetAll(context.Background())
	if data.Selections == nil || len(data.Selections) != 0 {
		t.Fatalf("expected fresh empty document, got %+v", data)
	}
	if data.LastUpdated == "" {
		t.Fatalf("fresh document needs a lastUpdated stamp")
	}
}

func TestMutation_WriteFailureSurfaces(t *testing.T) {
	fs := &fakeStore{writeErr: errors.New("disk full")}
	sel := app.NewSelectionService(fs)
	ctx := context.Background()

	if _, err := sel.Toggle(ctx, 1); err == nil {
		t.Fatalf("expected toggle to surface write failure")
	}
	if err := sel.BulkSet(ctx, []int64{1}, true); err == nil {
		t.Fatalf("expected bulkSet to surface write failure")
	}
}

func TestToggle_ConcurrentCallersLoseNoUpdates(t *testing.T) {
	fs := &fakeStore{}
	sel := app.NewSelectionService(fs)
	ctx := context.Background()

	const n = 64
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := sel.Toggle(ctx, id); err != nil {
				t.Errorf("toggle %d: %v", id, err)
			}
		}(int64(i))
	}
	wg.Wait()

	if got := len(sel.GetAll(ctx).Selections); got != n {
		t.Fatalf("lost updates: expected %d entries, got %d", n, got)
	}
}

func TestSelectedSet(t *testing.T) {
	fs := &fakeStore{}
	sel := app.NewSelectionService(fs)
	ctx := context.Background()

	if err := sel.BulkSet(ctx, []int64{5, 7}, true); err != nil {
		t.Fatalf("err: %v", err)
	}
	set := sel.SelectedSet(ctx)
	if !set[5] || !set[7] || set[6] {
		t.Fatalf("got %v", set)
	}
	// selections document is the only thing the fake saw
	var doc domain.ReviewSelectionsData
	if err := fs.Load(ctx, domain.DocSelections, &doc); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Selections) != 2 {
		t.Fatalf("persisted document: %+v", doc)
	}
}
