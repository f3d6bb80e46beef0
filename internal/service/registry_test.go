package service

import (
	"context"
	"errors"
	"testing"

	"github.com/giftwell/giftwell/internal/repository"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateList(t *testing.T) {
	svc := NewRegistryService(newFakeStore())

	list, err := svc.CreateList(context.Background(), 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if list.Name != "Birthday" || list.OwnerID != 1 {
		t.Errorf("unexpected list: %+v", list)
	}
	if list.Items == nil || len(list.Items) != 0 {
		t.Error("new list must carry an empty, non-nil items slice")
	}
	if list.LastUpdated.IsZero() {
		t.Error("expected last_updated to be set")
	}
}

func TestCreateListRequiresName(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	if _, err := svc.CreateList(context.Background(), 1, ""); !errors.Is(err, ErrListNameRequired) {
		t.Errorf("expected ErrListNameRequired, got %v", err)
	}
}

func TestListListsEmbedsItems(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	birthday, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	holiday, err := svc.CreateList(ctx, 1, "Holiday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := svc.CreateList(ctx, 2, "Someone else's"); err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if _, err := svc.AddItem(ctx, 1, birthday.ID, AddItemInput{Name: "Book", Link: "http://x"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	lists, err := svc.ListLists(ctx, 1)
	if err != nil {
		t.Fatalf("ListLists: %v", err)
	}

	if len(lists) != 2 {
		t.Fatalf("expected 2 lists, got %d", len(lists))
	}
	for _, list := range lists {
		if list.Items == nil {
			t.Errorf("list %d: items slice must not be nil", list.ID)
		}
	}
	if len(lists[0].Items) != 1 || lists[0].Items[0].Name != "Book" {
		t.Errorf("expected Book embedded in %q, got %+v", birthday.Name, lists[0].Items)
	}
	if len(lists[1].Items) != 0 {
		t.Errorf("expected %q empty, got %+v", holiday.Name, lists[1].Items)
	}
}

func TestUpdateList(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	list, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	updated, err := svc.UpdateList(ctx, 1, list.ID, "Birthday 2026")
	if err != nil {
		t.Fatalf("UpdateList: %v", err)
	}
	if updated.Name != "Birthday 2026" {
		t.Errorf("expected renamed list, got %q", updated.Name)
	}
	if updated.Items == nil {
		t.Error("updated list must carry its items")
	}
}

func TestListOwnershipHidesForeignLists(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	list, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	// User 2 must see user 1's list exactly like a missing one.
	if _, err := svc.UpdateList(ctx, 2, list.ID, "Hijacked"); !errors.Is(err, ErrListNotFound) {
		t.Errorf("UpdateList: expected ErrListNotFound, got %v", err)
	}
	if err := svc.DeleteList(ctx, 2, list.ID); !errors.Is(err, ErrListNotFound) {
		t.Errorf("DeleteList: expected ErrListNotFound, got %v", err)
	}
	if _, err := svc.ListItems(ctx, 2, list.ID); !errors.Is(err, ErrListNotFound) {
		t.Errorf("ListItems: expected ErrListNotFound, got %v", err)
	}
	if _, err := svc.AddItem(ctx, 2, list.ID, AddItemInput{Name: "Book", Link: "http://x"}); !errors.Is(err, ErrListNotFound) {
		t.Errorf("AddItem: expected ErrListNotFound, got %v", err)
	}
}

func TestDeleteListRemovesItems(t *testing.T) {
	store := newFakeStore()
	svc := NewRegistryService(store)
	ctx := context.Background()

	list, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if _, err := svc.AddItem(ctx, 1, list.ID, AddItemInput{Name: "Book", Link: "http://x"}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := svc.DeleteList(ctx, 1, list.ID); err != nil {
		t.Fatalf("DeleteList: %v", err)
	}

	if len(store.items) != 0 {
		t.Errorf("expected items removed with their list, %d remain", len(store.items))
	}
	if err := svc.DeleteList(ctx, 1, list.ID); !errors.Is(err, ErrListNotFound) {
		t.Errorf("second delete: expected ErrListNotFound, got %v", err)
	}
}

func TestAddItem(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	list, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	item, err := svc.AddItem(ctx, 1, list.ID, AddItemInput{
		Name:     "Book",
		Link:     "http://x",
		Size:     strPtr("L"),
		Quantity: intPtr(1),
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if item.ID == 0 || item.GiftListID != list.ID {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Size == nil || *item.Size != "L" {
		t.Error("expected size preserved")
	}
	if item.Color != nil || item.Note != nil {
		t.Error("unset optional fields must stay nil")
	}
}

func TestAddItemValidation(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	list, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}

	if _, err := svc.AddItem(ctx, 1, list.ID, AddItemInput{Link: "http://x"}); !errors.Is(err, ErrItemNameRequired) {
		t.Errorf("expected ErrItemNameRequired, got %v", err)
	}
	if _, err := svc.AddItem(ctx, 1, list.ID, AddItemInput{Name: "Book"}); !errors.Is(err, ErrItemLinkRequired) {
		t.Errorf("expected ErrItemLinkRequired, got %v", err)
	}
}

func TestUpdateItemPartial(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	list, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	item, err := svc.AddItem(ctx, 1, list.ID, AddItemInput{Name: "Book", Link: "http://x", Size: strPtr("L")})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	updated, err := svc.UpdateItem(ctx, 1, list.ID, item.ID, repository.ItemPatch{Quantity: intPtr(2)})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if updated.Quantity == nil || *updated.Quantity != 2 {
		t.Error("expected quantity updated to 2")
	}
	if updated.Name != "Book" || updated.Link != "http://x" {
		t.Error("untouched fields must be preserved")
	}
	if updated.Size == nil || *updated.Size != "L" {
		t.Error("untouched optional fields must be preserved")
	}
}

func TestUpdateItemRejectsBlankRequiredFields(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	list, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	item, err := svc.AddItem(ctx, 1, list.ID, AddItemInput{Name: "Book", Link: "http://x"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if _, err := svc.UpdateItem(ctx, 1, list.ID, item.ID, repository.ItemPatch{Name: strPtr("")}); !errors.Is(err, ErrItemNameRequired) {
		t.Errorf("expected ErrItemNameRequired, got %v", err)
	}
	if _, err := svc.UpdateItem(ctx, 1, list.ID, item.ID, repository.ItemPatch{Link: strPtr("")}); !errors.Is(err, ErrItemLinkRequired) {
		t.Errorf("expected ErrItemLinkRequired, got %v", err)
	}
}

func TestItemScopedToList(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	first, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	second, err := svc.CreateList(ctx, 1, "Holiday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	item, err := svc.AddItem(ctx, 1, first.ID, AddItemInput{Name: "Book", Link: "http://x"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	// Addressing the item through the wrong list must look like a miss.
	if _, err := svc.UpdateItem(ctx, 1, second.ID, item.ID, repository.ItemPatch{Quantity: intPtr(2)}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("UpdateItem: expected ErrItemNotFound, got %v", err)
	}
	if err := svc.RemoveItem(ctx, 1, second.ID, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("RemoveItem: expected ErrItemNotFound, got %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	svc := NewRegistryService(newFakeStore())
	ctx := context.Background()

	list, err := svc.CreateList(ctx, 1, "Birthday")
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	item, err := svc.AddItem(ctx, 1, list.ID, AddItemInput{Name: "Book", Link: "http://x"})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := svc.RemoveItem(ctx, 1, list.ID, item.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}

	items, err := svc.ListItems(ctx, 1, list.ID)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty list, got %d items", len(items))
	}

	if err := svc.RemoveItem(ctx, 1, list.ID, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("second remove: expected ErrItemNotFound, got %v", err)
	}
}
