package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/giftwell/giftwell/internal/model"
)

// ErrGiftListNotFound indicates the referenced gift list does not exist.
var ErrGiftListNotFound = errors.New("gift list not found")

// CreateGiftList inserts a new gift list and returns the stored row.
func (r *Repository) CreateGiftList(ctx context.Context, name string, ownerID int64) (*model.GiftList, error) {
	query := `
		INSERT INTO gift_lists (name, owner_id, last_updated)
		VALUES ($1, $2, $3)
		RETURNING id, name, owner_id, last_updated
	`

	list, err := scanGiftList(r.pool.QueryRow(ctx, query, name, ownerID, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gift list: %w", err)
	}

	return list, nil
}

// GetGiftListByID retrieves a gift list by its ID.
func (r *Repository) GetGiftListByID(ctx context.Context, id int64) (*model.GiftList, error) {
	query := `
		SELECT id, name, owner_id, last_updated
		FROM gift_lists
		WHERE id = $1
	`

	list, err := scanGiftList(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGiftListNotFound
		}
		return nil, fmt.Errorf("failed to get gift list by ID: %w", err)
	}

	return list, nil
}

// ListGiftListsByOwner retrieves all gift lists owned by a user,
// oldest first. Items are not loaded here.
func (r *Repository) ListGiftListsByOwner(ctx context.Context, ownerID int64) ([]*model.GiftList, error) {
	query := `
		SELECT id, name, owner_id, last_updated
		FROM gift_lists
		WHERE owner_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gift lists: %w", err)
	}
	defer rows.Close()

	lists := make([]*model.GiftList, 0)
	for rows.Next() {
		var list model.GiftList
		if err := rows.Scan(&list.ID, &list.Name, &list.OwnerID, &list.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan gift list: %w", err)
		}
		lists = append(lists, &list)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gift lists: %w", err)
	}

	return lists, nil
}

// UpdateGiftListName replaces the list name and bumps last_updated,
// returning the refreshed row.
func (r *Repository) UpdateGiftListName(ctx context.Context, id int64, name string) (*model.GiftList, error) {
	query := `
		UPDATE gift_lists
		SET name = $2, last_updated = $3
		WHERE id = $1
		RETURNING id, name, owner_id, last_updated
	`

	list, err := scanGiftList(r.pool.QueryRow(ctx, query, id, name, time.Now().UTC()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGiftListNotFound
		}
		return nil, fmt.Errorf("failed to update gift list: %w", err)
	}

	return list, nil
}

// DeleteGiftList permanently deletes a gift list and all of its items
// in a single transaction.
func (r *Repository) DeleteGiftList(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM gift_list_items WHERE gift_list_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete gift list items: %w", err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM gift_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gift list: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrGiftListNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}

// scanGiftList scans a single row into a GiftList model.
func scanGiftList(row pgx.Row) (*model.GiftList, error) {
	var list model.GiftList
	err := row.Scan(&list.ID, &list.Name, &list.OwnerID, &list.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &list, nil
}
