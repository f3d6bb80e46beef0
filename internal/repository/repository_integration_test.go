//go:build integration

package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/giftwell/giftwell/internal/model"
	"github.com/giftwell/giftwell/internal/testutil"
)

// setupRepo connects to TEST_DATABASE_URL and resets the schema.
// Skips when the variable is not set.
func setupRepo(t *testing.T) *Repository {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release lock: %v", err)
		}
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return repo
}

func mustUser(t *testing.T, repo *Repository, email, username string) *model.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), email, username, "$argon2id$fake")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func mustList(t *testing.T, repo *Repository, name string, ownerID int64) *model.GiftList {
	t.Helper()
	list, err := repo.CreateGiftList(context.Background(), name, ownerID)
	if err != nil {
		t.Fatalf("create gift list: %v", err)
	}
	return list
}

func mustItem(t *testing.T, repo *Repository, listID int64, name, link string) *model.GiftListItem {
	t.Helper()
	item, err := repo.CreateItem(context.Background(), &model.GiftListItem{
		GiftListID: listID,
		Name:       name,
		Link:       link,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

func TestUserCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	created := mustUser(t, repo, "alice@example.com", "alice")
	if created.ID == 0 || created.CreatedAt.IsZero() {
		t.Errorf("expected populated row, got %+v", created)
	}

	byUsername, err := repo.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if byUsername.ID != created.ID || byUsername.HashedPassword != "$argon2id$fake" {
		t.Errorf("unexpected user: %+v", byUsername)
	}

	byID, err := repo.GetUserByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Errorf("unexpected user: %+v", byID)
	}

	if _, err := repo.GetUserByUsername(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserUniqueConstraints(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	mustUser(t, repo, "alice@example.com", "alice")

	if _, err := repo.CreateUser(ctx, "alice@example.com", "alice2", "h"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := repo.CreateUser(ctx, "alice2@example.com", "alice", "h"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestGiftListCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := mustUser(t, repo, "alice@example.com", "alice")
	bob := mustUser(t, repo, "bob@example.com", "bob")

	created := mustList(t, repo, "Birthday", alice.ID)
	if created.OwnerID != alice.ID || created.LastUpdated.IsZero() {
		t.Errorf("unexpected list: %+v", created)
	}
	mustList(t, repo, "Holiday", alice.ID)
	mustList(t, repo, "Bob's", bob.ID)

	lists, err := repo.ListGiftListsByOwner(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListGiftListsByOwner: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 lists for alice, got %d", len(lists))
	}
	if lists[0].ID > lists[1].ID {
		t.Error("expected lists ordered by id")
	}

	updated, err := repo.UpdateGiftListName(ctx, created.ID, "Birthday 2026")
	if err != nil {
		t.Fatalf("UpdateGiftListName: %v", err)
	}
	if updated.Name != "Birthday 2026" {
		t.Errorf("expected renamed list, got %q", updated.Name)
	}
	if !updated.LastUpdated.After(created.LastUpdated) {
		t.Error("expected last_updated to move forward on rename")
	}

	if _, err := repo.UpdateGiftListName(ctx, 99999, "x"); !errors.Is(err, ErrGiftListNotFound) {
		t.Errorf("expected ErrGiftListNotFound, got %v", err)
	}
}

func TestDeleteGiftListCascades(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := mustUser(t, repo, "alice@example.com", "alice")
	list := mustList(t, repo, "Birthday", alice.ID)
	item := mustItem(t, repo, list.ID, "Book", "http://x")

	if err := repo.DeleteGiftList(ctx, list.ID); err != nil {
		t.Fatalf("DeleteGiftList: %v", err)
	}

	if _, err := repo.GetGiftListByID(ctx, list.ID); !errors.Is(err, ErrGiftListNotFound) {
		t.Errorf("expected list gone, got %v", err)
	}
	if _, err := repo.GetItemByID(ctx, item.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected item gone with its list, got %v", err)
	}

	if err := repo.DeleteGiftList(ctx, list.ID); !errors.Is(err, ErrGiftListNotFound) {
		t.Errorf("second delete: expected ErrGiftListNotFound, got %v", err)
	}
}

func TestItemCRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := mustUser(t, repo, "alice@example.com", "alice")
	list := mustList(t, repo, "Birthday", alice.ID)

	size := "L"
	quantity := 1
	created, err := repo.CreateItem(ctx, &model.GiftListItem{
		GiftListID: list.ID,
		Name:       "Book",
		Link:       "http://x",
		Size:       &size,
		Quantity:   &quantity,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if created.Size == nil || *created.Size != "L" {
		t.Error("expected size stored")
	}
	if created.Color != nil || created.Note != nil {
		t.Error("unset optional columns must come back nil")
	}

	items, err := repo.ListItemsByGiftList(ctx, list.ID)
	if err != nil {
		t.Fatalf("ListItemsByGiftList: %v", err)
	}
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("unexpected items: %+v", items)
	}

	if err := repo.DeleteItem(ctx, created.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if err := repo.DeleteItem(ctx, created.ID); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("second delete: expected ErrItemNotFound, got %v", err)
	}
}

func TestUpdateItemPartialColumns(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := mustUser(t, repo, "alice@example.com", "alice")
	list := mustList(t, repo, "Birthday", alice.ID)

	size := "L"
	item, err := repo.CreateItem(ctx, &model.GiftListItem{
		GiftListID: list.ID,
		Name:       "Book",
		Link:       "http://x",
		Size:       &size,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	quantity := 2
	updated, err := repo.UpdateItem(ctx, item.ID, ItemPatch{Quantity: &quantity})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if updated.Quantity == nil || *updated.Quantity != 2 {
		t.Error("expected quantity written")
	}
	if updated.Name != "Book" || updated.Size == nil || *updated.Size != "L" {
		t.Error("columns outside the patch must be untouched")
	}

	// Empty patch reads the row back unchanged.
	same, err := repo.UpdateItem(ctx, item.ID, ItemPatch{})
	if err != nil {
		t.Fatalf("UpdateItem (empty patch): %v", err)
	}
	if same.Quantity == nil || *same.Quantity != 2 {
		t.Errorf("unexpected row after empty patch: %+v", same)
	}

	if _, err := repo.UpdateItem(ctx, 99999, ItemPatch{Quantity: &quantity}); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestListItemsByGiftListsGroups(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	alice := mustUser(t, repo, "alice@example.com", "alice")
	first := mustList(t, repo, "Birthday", alice.ID)
	second := mustList(t, repo, "Holiday", alice.ID)
	third := mustList(t, repo, "Empty", alice.ID)

	mustItem(t, repo, first.ID, "Book", "http://x")
	mustItem(t, repo, first.ID, "Socks", "http://y")
	mustItem(t, repo, second.ID, "Mug", "http://z")

	grouped, err := repo.ListItemsByGiftLists(ctx, []int64{first.ID, second.ID, third.ID})
	if err != nil {
		t.Fatalf("ListItemsByGiftLists: %v", err)
	}

	if len(grouped[first.ID]) != 2 {
		t.Errorf("expected 2 items for %q, got %d", first.Name, len(grouped[first.ID]))
	}
	if len(grouped[second.ID]) != 1 {
		t.Errorf("expected 1 item for %q, got %d", second.Name, len(grouped[second.ID]))
	}
	if _, ok := grouped[third.ID]; ok {
		t.Error("empty list must not appear in the grouping")
	}

	empty, err := repo.ListItemsByGiftLists(ctx, nil)
	if err != nil {
		t.Fatalf("ListItemsByGiftLists (no ids): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty map, got %v", empty)
	}
}
