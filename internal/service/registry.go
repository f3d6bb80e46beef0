package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/giftwell/giftwell/internal/model"
	"github.com/giftwell/giftwell/internal/repository"
)

// Service errors for gift list and item operations.
var (
	ErrListNameRequired = errors.New("gift list name is required")
	ErrItemNameRequired = errors.New("item name is required")
	ErrItemLinkRequired = errors.New("item link is required")

	// ErrListNotFound is returned both for missing lists and for lists
	// owned by someone else, so list ids cannot be probed.
	ErrListNotFound = errors.New("gift list not found")
	ErrItemNotFound = errors.New("gift list item not found")
)

// RegistryStore is the persistence surface the registry service depends on.
type RegistryStore interface {
	CreateGiftList(ctx context.Context, name string, ownerID int64) (*model.GiftList, error)
	GetGiftListByID(ctx context.Context, id int64) (*model.GiftList, error)
	ListGiftListsByOwner(ctx context.Context, ownerID int64) ([]*model.GiftList, error)
	UpdateGiftListName(ctx context.Context, id int64, name string) (*model.GiftList, error)
	DeleteGiftList(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item *model.GiftListItem) (*model.GiftListItem, error)
	GetItemByID(ctx context.Context, id int64) (*model.GiftListItem, error)
	ListItemsByGiftList(ctx context.Context, giftListID int64) ([]model.GiftListItem, error)
	ListItemsByGiftLists(ctx context.Context, giftListIDs []int64) (map[int64][]model.GiftListItem, error)
	UpdateItem(ctx context.Context, id int64, patch repository.ItemPatch) (*model.GiftListItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

// RegistryService handles gift list and item business logic.
// Every operation is scoped to the owning user; a list that exists but
// belongs to someone else behaves exactly like a missing one.
type RegistryService struct {
	store RegistryStore
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(store RegistryStore) *RegistryService {
	return &RegistryService{store: store}
}

// CreateList creates a gift list owned by the given user.
func (s *RegistryService) CreateList(ctx context.Context, ownerID int64, name string) (*model.GiftList, error) {
	if name == "" {
		return nil, ErrListNameRequired
	}

	list, err := s.store.CreateGiftList(ctx, name, ownerID)
	if err != nil {
		return nil, fmt.Errorf("create gift list: %w", err)
	}

	list.Items = []model.GiftListItem{}
	return list, nil
}

// ListLists returns all gift lists owned by the user with their items
// embedded.
func (s *RegistryService) ListLists(ctx context.Context, ownerID int64) ([]*model.GiftList, error) {
	lists, err := s.store.ListGiftListsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list gift lists: %w", err)
	}

	ids := make([]int64, len(lists))
	for i, list := range lists {
		ids[i] = list.ID
	}

	itemsByList, err := s.store.ListItemsByGiftLists(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load gift list items: %w", err)
	}

	for _, list := range lists {
		items := itemsByList[list.ID]
		if items == nil {
			items = []model.GiftListItem{}
		}
		list.Items = items
	}

	return lists, nil
}

// UpdateList replaces the name of an owned gift list.
// Unlike item updates, the name is always fully replaced.
func (s *RegistryService) UpdateList(ctx context.Context, ownerID, listID int64, name string) (*model.GiftList, error) {
	if name == "" {
		return nil, ErrListNameRequired
	}

	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}

	list, err := s.store.UpdateGiftListName(ctx, listID, name)
	if err != nil {
		if errors.Is(err, repository.ErrGiftListNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("update gift list: %w", err)
	}

	items, err := s.store.ListItemsByGiftList(ctx, list.ID)
	if err != nil {
		return nil, fmt.Errorf("load gift list items: %w", err)
	}
	list.Items = items

	return list, nil
}

// DeleteList deletes an owned gift list together with all of its items.
func (s *RegistryService) DeleteList(ctx context.Context, ownerID, listID int64) error {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return err
	}

	if err := s.store.DeleteGiftList(ctx, listID); err != nil {
		if errors.Is(err, repository.ErrGiftListNotFound) {
			return ErrListNotFound
		}
		return fmt.Errorf("delete gift list: %w", err)
	}

	return nil
}

// AddItemInput defines input for adding an item to a gift list.
type AddItemInput struct {
	Name     string
	Link     string
	Size     *string
	Color    *string
	Quantity *int
	Note     *string
}

// AddItem creates a new item under an owned gift list.
func (s *RegistryService) AddItem(ctx context.Context, ownerID, listID int64, input AddItemInput) (*model.GiftListItem, error) {
	if input.Name == "" {
		return nil, ErrItemNameRequired
	}
	if input.Link == "" {
		return nil, ErrItemLinkRequired
	}

	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}

	item, err := s.store.CreateItem(ctx, &model.GiftListItem{
		GiftListID: listID,
		Name:       input.Name,
		Link:       input.Link,
		Size:       input.Size,
		Color:      input.Color,
		Quantity:   input.Quantity,
		Note:       input.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("create gift list item: %w", err)
	}

	return item, nil
}

// ListItems returns all items of an owned gift list.
func (s *RegistryService) ListItems(ctx context.Context, ownerID, listID int64) ([]model.GiftListItem, error) {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return nil, err
	}

	items, err := s.store.ListItemsByGiftList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("list gift list items: %w", err)
	}

	return items, nil
}

// UpdateItem applies a partial update to an item of an owned gift list.
// Only fields present in the patch are changed.
func (s *RegistryService) UpdateItem(ctx context.Context, ownerID, listID, itemID int64, patch repository.ItemPatch) (*model.GiftListItem, error) {
	if patch.Name != nil && *patch.Name == "" {
		return nil, ErrItemNameRequired
	}
	if patch.Link != nil && *patch.Link == "" {
		return nil, ErrItemLinkRequired
	}

	if err := s.ownedItem(ctx, ownerID, listID, itemID); err != nil {
		return nil, err
	}

	item, err := s.store.UpdateItem(ctx, itemID, patch)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("update gift list item: %w", err)
	}

	return item, nil
}

// RemoveItem deletes an item of an owned gift list.
func (s *RegistryService) RemoveItem(ctx context.Context, ownerID, listID, itemID int64) error {
	if err := s.ownedItem(ctx, ownerID, listID, itemID); err != nil {
		return err
	}

	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("delete gift list item: %w", err)
	}

	return nil
}

// ownedList fetches a gift list and verifies it belongs to ownerID.
func (s *RegistryService) ownedList(ctx context.Context, ownerID, listID int64) (*model.GiftList, error) {
	list, err := s.store.GetGiftListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, repository.ErrGiftListNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("get gift list: %w", err)
	}
	if list.OwnerID != ownerID {
		return nil, ErrListNotFound
	}
	return list, nil
}

// ownedItem verifies the list is owned by ownerID and the item belongs
// to that list.
func (s *RegistryService) ownedItem(ctx context.Context, ownerID, listID, itemID int64) error {
	if _, err := s.ownedList(ctx, ownerID, listID); err != nil {
		return err
	}

	item, err := s.store.GetItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("get gift list item: %w", err)
	}
	if item.GiftListID != listID {
		return ErrItemNotFound
	}
	return nil
}
