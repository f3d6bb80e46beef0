package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/giftwell/giftwell/internal/model"
)

// ErrItemNotFound indicates the referenced gift list item does not exist.
var ErrItemNotFound = errors.New("gift list item not found")

// ItemPatch carries a partial update for a gift list item.
// Only non-nil fields are written.
type ItemPatch struct {
	Name     *string
	Link     *string
	Size     *string
	Color    *string
	Quantity *int
	Note     *string
}

// CreateItem inserts a new item under a gift list and returns the
// stored row.
func (r *Repository) CreateItem(ctx context.Context, item *model.GiftListItem) (*model.GiftListItem, error) {
	query := `
		INSERT INTO gift_list_items (gift_list_id, name, link, size, color, quantity, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, gift_list_id, name, link, size, color, quantity, note
	`

	created, err := scanItem(r.pool.QueryRow(ctx, query,
		item.GiftListID,
		item.Name,
		item.Link,
		item.Size,
		item.Color,
		item.Quantity,
		item.Note,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create gift list item: %w", err)
	}

	return created, nil
}

// GetItemByID retrieves a gift list item by its ID.
func (r *Repository) GetItemByID(ctx context.Context, id int64) (*model.GiftListItem, error) {
	query := `
		SELECT id, gift_list_id, name, link, size, color, quantity, note
		FROM gift_list_items
		WHERE id = $1
	`

	item, err := scanItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get gift list item by ID: %w", err)
	}

	return item, nil
}

// ListItemsByGiftList retrieves all items of a gift list, oldest first.
func (r *Repository) ListItemsByGiftList(ctx context.Context, giftListID int64) ([]model.GiftListItem, error) {
	query := `
		SELECT id, gift_list_id, name, link, size, color, quantity, note
		FROM gift_list_items
		WHERE gift_list_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, giftListID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gift list items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListItemsByGiftLists retrieves the items of several gift lists in one
// query, grouped by gift list id. Used to embed items in list payloads
// without per-list round trips.
func (r *Repository) ListItemsByGiftLists(ctx context.Context, giftListIDs []int64) (map[int64][]model.GiftListItem, error) {
	grouped := make(map[int64][]model.GiftListItem, len(giftListIDs))
	if len(giftListIDs) == 0 {
		return grouped, nil
	}

	query := `
		SELECT id, gift_list_id, name, link, size, color, quantity, note
		FROM gift_list_items
		WHERE gift_list_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, giftListIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list gift list items: %w", err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		grouped[item.GiftListID] = append(grouped[item.GiftListID], item)
	}

	return grouped, nil
}

// UpdateItem applies a partial update, writing only the fields present
// in the patch, and returns the refreshed row. A patch with no fields
// set returns the current row unchanged.
func (r *Repository) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (*model.GiftListItem, error) {
	sets := make([]string, 0, 6)
	args := []any{id}
	argIndex := 2

	addSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if patch.Name != nil {
		addSet("name", *patch.Name)
	}
	if patch.Link != nil {
		addSet("link", *patch.Link)
	}
	if patch.Size != nil {
		addSet("size", *patch.Size)
	}
	if patch.Color != nil {
		addSet("color", *patch.Color)
	}
	if patch.Quantity != nil {
		addSet("quantity", *patch.Quantity)
	}
	if patch.Note != nil {
		addSet("note", *patch.Note)
	}

	if len(sets) == 0 {
		return r.GetItemByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE gift_list_items
		SET %s
		WHERE id = $1
		RETURNING id, gift_list_id, name, link, size, color, quantity, note
	`, strings.Join(sets, ", "))

	item, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to update gift list item: %w", err)
	}

	return item, nil
}

// DeleteItem permanently deletes a gift list item.
func (r *Repository) DeleteItem(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM gift_list_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gift list item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// scanItem scans a single row into a GiftListItem model.
func scanItem(row pgx.Row) (*model.GiftListItem, error) {
	var item model.GiftListItem
	err := row.Scan(
		&item.ID,
		&item.GiftListID,
		&item.Name,
		&item.Link,
		&item.Size,
		&item.Color,
		&item.Quantity,
		&item.Note,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// collectItems drains rows into a slice of items.
func collectItems(rows pgx.Rows) ([]model.GiftListItem, error) {
	items := make([]model.GiftListItem, 0)
	for rows.Next() {
		var item model.GiftListItem
		err := rows.Scan(
			&item.ID,
			&item.GiftListID,
			&item.Name,
			&item.Link,
			&item.Size,
			&item.Color,
			&item.Quantity,
			&item.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gift list item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gift list items: %w", err)
	}

	return items, nil
}
