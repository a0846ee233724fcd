package modules

import (
	"context"
	"errors"
	"testing"
)

func seedModule(t *testing.T, svc *Service, courtID, title string, order int) Module {
	t.Helper()
	m, err := svc.Create(context.Background(), courtID, CreateModuleRequest{Title: title, OrderIndex: order})
	if err != nil {
		t.Fatalf("create %q: %v", title, err)
	}
	return m
}

func TestCreateAndListOrdered(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	seedModule(t, svc, "court-1", "Third", 3)
	seedModule(t, svc, "court-1", "First", 1)
	seedModule(t, svc, "court-1", "Second", 2)
	seedModule(t, svc, "court-2", "Other court", 1)

	out, err := svc.ListByCourt(ctx, "court-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 modules, got %d", len(out))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if out[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, out[i].Title)
		}
	}
}

func TestCreateRejectsDuplicateOrderIndex(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	seedModule(t, svc, "court-1", "First", 1)
	if _, err := svc.Create(context.Background(), "court-1", CreateModuleRequest{Title: "Clash", OrderIndex: 1}); !errors.Is(err, ErrOrderTaken) {
		t.Fatalf("expected ErrOrderTaken, got %v", err)
	}
}

func TestUpdatePartial(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	m := seedModule(t, svc, "court-1", "Original", 1)

	title := "Renamed"
	updated, err := svc.Update(ctx, m.ID, UpdateModuleRequest{Title: &title})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Renamed" || updated.OrderIndex != 1 {
		t.Fatalf("expected partial update, got %+v", updated)
	}

	if _, err := svc.Update(ctx, "missing-id", UpdateModuleRequest{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	m := seedModule(t, svc, "court-1", "Doomed", 1)
	if err := svc.Delete(ctx, m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func seedItem(t *testing.T, svc *Service, moduleID, title string, position int) ModuleItem {
	t.Helper()
	it, err := svc.CreateItem(context.Background(), moduleID, CreateItemRequest{
		Title:    title,
		URL:      "https://example.com/" + title,
		Position: position,
	})
	if err != nil {
		t.Fatalf("create item %q: %v", title, err)
	}
	return it
}

func TestItemsListedByPosition(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	m := seedModule(t, svc, "court-1", "Lesson", 1)
	other := seedModule(t, svc, "court-1", "Other lesson", 2)

	seedItem(t, svc, m.ID, "Wrap-up", 3)
	seedItem(t, svc, m.ID, "Intro", 1)
	seedItem(t, svc, m.ID, "Deep dive", 2)
	seedItem(t, svc, other.ID, "Elsewhere", 1)

	out, err := svc.ListItems(ctx, m.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 items, got %d", len(out))
	}
	for i, want := range []string{"Intro", "Deep dive", "Wrap-up"} {
		if out[i].Title != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, out[i].Title)
		}
	}
}

func TestCreateItemRejectsDuplicatePosition(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	m := seedModule(t, svc, "court-1", "Lesson", 1)
	seedItem(t, svc, m.ID, "Intro", 1)

	_, err := svc.CreateItem(context.Background(), m.ID, CreateItemRequest{
		Title: "Clash", URL: "https://example.com/clash", Position: 1,
	})
	if !errors.Is(err, ErrPositionTaken) {
		t.Fatalf("expected ErrPositionTaken, got %v", err)
	}
}

func TestCreateItemRequiresModule(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	_, err := svc.CreateItem(context.Background(), "missing-module", CreateItemRequest{
		Title: "Orphan", URL: "https://example.com/orphan", Position: 1,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	m := seedModule(t, svc, "court-1", "Lesson", 1)
	it := seedItem(t, svc, m.ID, "Intro", 1)

	pos := 5
	updated, err := svc.UpdateItem(ctx, it.ID, UpdateItemRequest{Position: &pos})
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if updated.Position != 5 || updated.Title != "Intro" || updated.URL != it.URL {
		t.Fatalf("expected partial update, got %+v", updated)
	}

	if _, err := svc.UpdateItem(ctx, "missing-id", UpdateItemRequest{Position: &pos}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteItem(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	m := seedModule(t, svc, "court-1", "Lesson", 1)
	it := seedItem(t, svc, m.ID, "Doomed", 1)

	if err := svc.DeleteItem(ctx, it.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if err := svc.DeleteItem(ctx, it.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCompleteIsIdempotent(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	m := seedModule(t, svc, "court-1", "Lesson", 1)

	if err := svc.Complete(ctx, "a@x.com", m.ID); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	if err := svc.Complete(ctx, "a@x.com", m.ID); err != nil {
		t.Fatalf("second complete: %v", err)
	}
	if repo.CompletionCount() != 1 {
		t.Fatalf("expected a single completion row, got %d", repo.CompletionCount())
	}

	if err := svc.Complete(ctx, "a@x.com", "missing-module"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown module, got %v", err)
	}
}
