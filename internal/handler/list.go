package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/smartcart/internal/model"
	"github.com/dukerupert/smartcart/internal/repository"
)

type ListHandler struct {
	repo   *repository.Repository
	logger *slog.Logger
}

func NewListHandler(repo *repository.Repository, logger *slog.Logger) *ListHandler {
	return &ListHandler{repo: repo, logger: logger}
}

type listRequest struct {
	Name string `json:"name"`
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	completed, err := parseCompleted(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid completed filter")
		return
	}

	lists, err := h.repo.Lists()
	if err != nil {
		h.logger.Error("list lists", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list lists")
		return
	}

	result := []model.ListSummary{}
	for _, l := range lists {
		if completed == nil || l.Completed == *completed {
			result = append(result, l)
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	id, err := h.repo.CreateList(req.Name)
	if errors.Is(err, repository.ErrInvalidName) {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err != nil {
		h.logger.Error("create list", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create list")
		return
	}

	l, err := h.repo.GetList(id)
	if err != nil || l == nil {
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	l, err := h.repo.GetList(id)
	if err != nil {
		h.logger.Error("get list", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if l == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	p, err := h.repo.Progress(id)
	if err != nil {
		h.logger.Error("list progress", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get progress")
		return
	}
	writeJSON(w, http.StatusOK, model.ListSummary{List: *l, Progress: p})
}

func (h *ListHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	l, err := h.repo.RenameList(id, req.Name)
	if errors.Is(err, repository.ErrInvalidName) {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if err != nil {
		h.logger.Error("rename list", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update list")
		return
	}
	if l == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// Complete sets the list's completed flag, or toggles it when the body
// carries no value.
func (h *ListHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Completed *bool `json:"completed"`
	}
	// Empty body means toggle.
	json.NewDecoder(r.Body).Decode(&req)

	var l *model.List
	if req.Completed != nil {
		l, err = h.repo.SetListCompleted(id, *req.Completed)
	} else {
		l, err = h.repo.ToggleListCompleted(id)
	}
	if err != nil {
		h.logger.Error("complete list", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update list")
		return
	}
	if l == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.repo.GetList(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	if err := h.repo.DeleteList(id); err != nil {
		h.logger.Error("delete list", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete list")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.repo.GetList(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get list")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	p, err := h.repo.Progress(id)
	if err != nil {
		h.logger.Error("list progress", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get progress")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Seed fills an empty store with built-in categories and sample lists.
func (h *ListHandler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.SeedIfEmpty()
	if err != nil {
		h.logger.Error("seed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to seed")
		return
	}
	writeJSON(w, http.StatusOK, res)
}
