package model

import "time"

// GiftList is a named collection of gift ideas owned by a single user.
// LastUpdated is bumped on creation and on every update.
type GiftList struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	OwnerID     int64          `json:"owner_id"`
	LastUpdated time.Time      `json:"last_updated"`
	Items       []GiftListItem `json:"items"`
}

// GiftListItem is a single entry in a gift list. Size, color, quantity
// and note are optional; name and link are required at creation.
type GiftListItem struct {
	ID         int64   `json:"id"`
	GiftListID int64   `json:"gift_list_id"`
	Name       string  `json:"name"`
	Link       string  `json:"link"`
	Size       *string `json:"size"`
	Color      *string `json:"color"`
	Quantity   *int    `json:"quantity"`
	Note       *string `json:"note"`
}
