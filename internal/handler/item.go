package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/repository"
)

type ItemHandler struct {
	repo   *repository.Repository
	logger *slog.Logger
}

func NewItemHandler(repo *repository.Repository, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{repo: repo, logger: logger}
}

type itemRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  string `json:"quantity"`
	Notes     string `json:"notes"`
	Completed bool   `json:"completed"`
}

// listAndItem resolves {list_id} and {id} and loads the item, writing the
// error response itself. The item must belong to the list.
func (h *ItemHandler) listAndItem(w http.ResponseWriter, r *http.Request) (int64, *model.Item, bool) {
	listID, err := parsePathInt(r, "list_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list_id")
		return 0, nil, false
	}
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, nil, false
	}

	item, err := h.repo.GetItem(id)
	if err != nil {
		h.logger.Error("get item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get item")
		return 0, nil, false
	}
	if item == nil || item.ListID != listID {
		writeError(w, http.StatusNotFound, "item not found")
		return 0, nil, false
	}
	return listID, item, true
}

func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	listID, err := parsePathInt(r, "list_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list_id")
		return
	}
	completed, err := parseCompleted(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid completed filter")
		return
	}

	var items []model.Item
	if completed != nil {
		items, err = h.repo.ItemsByCompletion(listID, *completed)
	} else {
		items, err = h.repo.Items(listID)
	}
	if err != nil {
		h.logger.Error("list items", "list_id", listID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	listID, err := parsePathInt(r, "list_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid list_id")
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, err := h.repo.AddItem(model.Item{
		ListID:    listID,
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		Completed: req.Completed,
	})
	switch {
	case errors.Is(err, repository.ErrInvalidName):
		writeError(w, http.StatusBadRequest, "name is required")
		return
	case errors.Is(err, repository.ErrListNotFound):
		writeError(w, http.StatusNotFound, "list not found")
		return
	case err != nil:
		h.logger.Error("create item", "list_id", listID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, existing, ok := h.listAndItem(w, r)
	if !ok {
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, err := h.repo.UpdateItem(model.Item{
		ID:        existing.ID,
		Name:      req.Name,
		Category:  req.Category,
		Quantity:  req.Quantity,
		Notes:     req.Notes,
		Completed: req.Completed,
	})
	if errors.Is(err, repository.ErrInvalidName) {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err != nil {
		h.logger.Error("update item", "id", existing.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, existing, ok := h.listAndItem(w, r)
	if !ok {
		return
	}

	if err := h.repo.DeleteItem(existing.ID); err != nil {
		h.logger.Error("delete item", "id", existing.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	_, existing, ok := h.listAndItem(w, r)
	if !ok {
		return
	}

	item, err := h.repo.ToggleItemCompleted(existing.ID)
	if err != nil {
		h.logger.Error("toggle item", "id", existing.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ItemHandler) MoveUp(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.repo.MoveItemUp)
}

func (h *ItemHandler) MoveDown(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.repo.MoveItemDown)
}

// move applies the reorder and responds with the list's items in their new
// order.
func (h *ItemHandler) move(w http.ResponseWriter, r *http.Request, fn func(listID, id int64) error) {
	listID, existing, ok := h.listAndItem(w, r)
	if !ok {
		return
	}

	if err := fn(listID, existing.ID); err != nil {
		h.logger.Error("move item", "id", existing.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to move item")
		return
	}

	items, err := h.repo.Items(listID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}
