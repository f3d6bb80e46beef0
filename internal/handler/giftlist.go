package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/giftwell/giftwell/internal/auth"
	"github.com/giftwell/giftwell/internal/handler/dto"
	"github.com/giftwell/giftwell/internal/service"
)

// GiftListHandler handles HTTP requests for gift list operations.
type GiftListHandler struct {
	svc    *service.RegistryService
	logger *slog.Logger
}

// NewGiftListHandler creates a new GiftListHandler.
func NewGiftListHandler(svc *service.RegistryService, logger *slog.Logger) *GiftListHandler {
	return &GiftListHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /gift-lists.
func (h *GiftListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGiftListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_JSON", "Invalid request body")
		return
	}

	caller := auth.MustUserFromContext(r.Context())

	list, err := h.svc.CreateList(r.Context(), caller.ID, req.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("gift_list_created",
		"list_id", list.ID,
		"owner_id", list.OwnerID,
	)

	writeJSON(w, http.StatusCreated, dto.ToGiftListResponse(list))
}

// List handles GET /gift-lists.
func (h *GiftListHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := auth.MustUserFromContext(r.Context())

	lists, err := h.svc.ListLists(r.Context(), caller.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToGiftListListResponse(lists))
}

// Update handles PATCH /gift-lists/{listID}.
func (h *GiftListHandler) Update(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	var req dto.UpdateGiftListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_JSON", "Invalid request body")
		return
	}

	caller := auth.MustUserFromContext(r.Context())

	list, err := h.svc.UpdateList(r.Context(), caller.ID, listID, req.Name)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("gift_list_updated", "list_id", list.ID)

	writeJSON(w, http.StatusOK, dto.ToGiftListResponse(list))
}

// Delete handles DELETE /gift-lists/{listID}.
// Items of the list are deleted with it.
func (h *GiftListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	caller := auth.MustUserFromContext(r.Context())

	if err := h.svc.DeleteList(r.Context(), caller.ID, listID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("gift_list_deleted", "list_id", listID)

	w.WriteHeader(http.StatusNoContent)
}

// handleServiceError maps registry service errors to HTTP responses.
func (h *GiftListHandler) handleServiceError(w http.ResponseWriter, err error) {
	handleRegistryError(w, h.logger, err)
}

// handleRegistryError maps registry service errors to HTTP responses.
// Shared by the gift list and item handlers.
func handleRegistryError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrListNotFound):
		writeError(w, http.StatusNotFound, "LIST_NOT_FOUND", "Gift list not found")
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "Gift list item not found")
	case errors.Is(err, service.ErrListNameRequired),
		errors.Is(err, service.ErrItemNameRequired),
		errors.Is(err, service.ErrItemLinkRequired):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED", err.Error())
	default:
		logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}

// pathID parses an integer id from a chi URL parameter, writing a 422
// response when it is not a valid id.
func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusUnprocessableEntity, "INVALID_ID", "Invalid "+param)
		return 0, false
	}
	return id, true
}
