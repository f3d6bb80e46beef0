package service

import (
	"context"
	"time"

	"github.com/giftwell/giftwell/internal/model"
	"github.com/giftwell/giftwell/internal/repository"
)

// fakeStore is an in-memory stand-in for *repository.Repository.
type fakeStore struct {
	nextID int64
	users  map[int64]*model.User
	lists  map[int64]*model.GiftList
	items  map[int64]*model.GiftListItem
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users: map[int64]*model.User{},
		lists: map[int64]*model.GiftList{},
		items: map[int64]*model.GiftListItem{},
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) CreateUser(_ context.Context, email, username, hashedPassword string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return nil, repository.ErrEmailTaken
		}
		if u.Username == username {
			return nil, repository.ErrUsernameTaken
		}
	}
	user := &model.User{
		ID:             f.id(),
		Email:          email,
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now(),
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) CreateGiftList(_ context.Context, name string, ownerID int64) (*model.GiftList, error) {
	list := &model.GiftList{
		ID:          f.id(),
		Name:        name,
		OwnerID:     ownerID,
		LastUpdated: time.Now(),
	}
	f.lists[list.ID] = list
	return copyList(list), nil
}

func (f *fakeStore) GetGiftListByID(_ context.Context, id int64) (*model.GiftList, error) {
	list, ok := f.lists[id]
	if !ok {
		return nil, repository.ErrGiftListNotFound
	}
	return copyList(list), nil
}

func (f *fakeStore) ListGiftListsByOwner(_ context.Context, ownerID int64) ([]*model.GiftList, error) {
	var out []*model.GiftList
	for id := int64(1); id <= f.nextID; id++ {
		if list, ok := f.lists[id]; ok && list.OwnerID == ownerID {
			out = append(out, copyList(list))
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateGiftListName(_ context.Context, id int64, name string) (*model.GiftList, error) {
	list, ok := f.lists[id]
	if !ok {
		return nil, repository.ErrGiftListNotFound
	}
	list.Name = name
	list.LastUpdated = time.Now()
	return copyList(list), nil
}

func (f *fakeStore) DeleteGiftList(_ context.Context, id int64) error {
	if _, ok := f.lists[id]; !ok {
		return repository.ErrGiftListNotFound
	}
	delete(f.lists, id)
	for itemID, item := range f.items {
		if item.GiftListID == id {
			delete(f.items, itemID)
		}
	}
	return nil
}

func (f *fakeStore) CreateItem(_ context.Context, item *model.GiftListItem) (*model.GiftListItem, error) {
	stored := *item
	stored.ID = f.id()
	f.items[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (f *fakeStore) GetItemByID(_ context.Context, id int64) (*model.GiftListItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	out := *item
	return &out, nil
}

func (f *fakeStore) ListItemsByGiftList(_ context.Context, giftListID int64) ([]model.GiftListItem, error) {
	items := []model.GiftListItem{}
	for id := int64(1); id <= f.nextID; id++ {
		if item, ok := f.items[id]; ok && item.GiftListID == giftListID {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (f *fakeStore) ListItemsByGiftLists(ctx context.Context, giftListIDs []int64) (map[int64][]model.GiftListItem, error) {
	out := map[int64][]model.GiftListItem{}
	for _, listID := range giftListIDs {
		items, err := f.ListItemsByGiftList(ctx, listID)
		if err != nil {
			return nil, err
		}
		if len(items) > 0 {
			out[listID] = items
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, id int64, patch repository.ItemPatch) (*model.GiftListItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Link != nil {
		item.Link = *patch.Link
	}
	if patch.Size != nil {
		item.Size = patch.Size
	}
	if patch.Color != nil {
		item.Color = patch.Color
	}
	if patch.Quantity != nil {
		item.Quantity = patch.Quantity
	}
	if patch.Note != nil {
		item.Note = patch.Note
	}
	out := *item
	return &out, nil
}

func (f *fakeStore) DeleteItem(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrItemNotFound
	}
	delete(f.items, id)
	return nil
}

func copyList(list *model.GiftList) *model.GiftList {
	out := *list
	out.Items = nil
	return &out
}
