package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/giftwell/giftwell/internal/auth"
	"github.com/giftwell/giftwell/internal/handler/dto"
	"github.com/giftwell/giftwell/internal/repository"
	"github.com/giftwell/giftwell/internal/service"
)

// ItemHandler handles HTTP requests for gift list item operations.
type ItemHandler struct {
	svc    *service.RegistryService
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(svc *service.RegistryService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /gift-lists/{listID}/items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	var req dto.CreateGiftListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_JSON", "Invalid request body")
		return
	}

	caller := auth.MustUserFromContext(r.Context())

	item, err := h.svc.AddItem(r.Context(), caller.ID, listID, service.AddItemInput{
		Name:     req.Name,
		Link:     req.Link,
		Size:     req.Size,
		Color:    req.Color,
		Quantity: req.Quantity,
		Note:     req.Note,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("gift_list_item_created",
		"item_id", item.ID,
		"list_id", item.GiftListID,
	)

	writeJSON(w, http.StatusCreated, dto.ToGiftListItemResponse(item))
}

// List handles GET /gift-lists/{listID}/items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	caller := auth.MustUserFromContext(r.Context())

	items, err := h.svc.ListItems(r.Context(), caller.ID, listID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGiftListItemListResponse(items))
}

// Update handles PATCH /gift-lists/{listID}/items/{itemID}.
// Only fields present in the body are changed.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	var req dto.UpdateGiftListItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_JSON", "Invalid request body")
		return
	}

	caller := auth.MustUserFromContext(r.Context())

	item, err := h.svc.UpdateItem(r.Context(), caller.ID, listID, itemID, repository.ItemPatch{
		Name:     req.Name,
		Link:     req.Link,
		Size:     req.Size,
		Color:    req.Color,
		Quantity: req.Quantity,
		Note:     req.Note,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("gift_list_item_updated", "item_id", item.ID)

	writeJSON(w, http.StatusOK, dto.ToGiftListItemResponse(item))
}

// Delete handles DELETE /gift-lists/{listID}/items/{itemID}.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	caller := auth.MustUserFromContext(r.Context())

	if err := h.svc.RemoveItem(r.Context(), caller.ID, listID, itemID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("gift_list_item_deleted", "item_id", itemID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError reuses the registry error mapping.
func (h *ItemHandler) handleServiceError(w http.ResponseWriter, err error) {
	handleRegistryError(w, h.logger, err)
}
