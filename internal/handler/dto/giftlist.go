package dto

import (
	"time"

	"github.com/giftwell/giftwell/internal/model"
)

// CreateGiftListRequest represents the request body for creating a gift list.
type CreateGiftListRequest struct {
	Name string `json:"name"`
}

// UpdateGiftListRequest represents the request body for renaming a gift
// list. The name is always fully replaced.
type UpdateGiftListRequest struct {
	Name string `json:"name"`
}

// CreateGiftListItemRequest represents the request body for adding an item.
type CreateGiftListItemRequest struct {
	Name     string  `json:"name"`
	Link     string  `json:"link"`
	Size     *string `json:"size,omitempty"`
	Color    *string `json:"color,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// UpdateGiftListItemRequest represents a partial item update.
// Absent fields are left untouched.
type UpdateGiftListItemRequest struct {
	Name     *string `json:"name,omitempty"`
	Link     *string `json:"link,omitempty"`
	Size     *string `json:"size,omitempty"`
	Color    *string `json:"color,omitempty"`
	Quantity *int    `json:"quantity,omitempty"`
	Note     *string `json:"note,omitempty"`
}

// GiftListResponse represents a gift list in API responses, items included.
type GiftListResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	OwnerID     int64                  `json:"owner_id"`
	LastUpdated time.Time              `json:"last_updated"`
	Items       []GiftListItemResponse `json:"items"`
}

// GiftListItemResponse represents an item in API responses.
type GiftListItemResponse struct {
	ID         int64   `json:"id"`
	GiftListID int64   `json:"gift_list_id"`
	Name       string  `json:"name"`
	Link       string  `json:"link"`
	Size       *string `json:"size"`
	Color      *string `json:"color"`
	Quantity   *int    `json:"quantity"`
	Note       *string `json:"note"`
}

// ToGiftListResponse converts a GiftList model to its DTO.
func ToGiftListResponse(list *model.GiftList) *GiftListResponse {
	items := make([]GiftListItemResponse, len(list.Items))
	for i := range list.Items {
		items[i] = *ToGiftListItemResponse(&list.Items[i])
	}
	return &GiftListResponse{
		ID:          list.ID,
		Name:        list.Name,
		OwnerID:     list.OwnerID,
		LastUpdated: list.LastUpdated,
		Items:       items,
	}
}

// ToGiftListListResponse converts a slice of GiftList models.
func ToGiftListListResponse(lists []*model.GiftList) []GiftListResponse {
	responses := make([]GiftListResponse, len(lists))
	for i, list := range lists {
		responses[i] = *ToGiftListResponse(list)
	}
	return responses
}

// ToGiftListItemResponse converts a GiftListItem model to its DTO.
func ToGiftListItemResponse(item *model.GiftListItem) *GiftListItemResponse {
	return &GiftListItemResponse{
		ID:         item.ID,
		GiftListID: item.GiftListID,
		Name:       item.Name,
		Link:       item.Link,
		Size:       item.Size,
		Color:      item.Color,
		Quantity:   item.Quantity,
		Note:       item.Note,
	}
}

// ToGiftListItemListResponse converts a slice of GiftListItem models.
func ToGiftListItemListResponse(items []model.GiftListItem) []GiftListItemResponse {
	responses := make([]GiftListItemResponse, len(items))
	for i := range items {
		responses[i] = *ToGiftListItemResponse(&items[i])
	}
	return responses
}
