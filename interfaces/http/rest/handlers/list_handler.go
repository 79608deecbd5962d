package handlers

import (
	"net/http"

	"github.com/Kian-Chen/DSADesign/application/services"
	"github.com/Kian-Chen/DSADesign/interfaces/visual"
	"github.com/Kian-Chen/DSADesign/pkg/common"
	pkgerrors "github.com/Kian-Chen/DSADesign/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ListHandler handles list session HTTP requests
type ListHandler struct {
	lists  *services.ListService
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(lists *services.ListService, errors *pkgerrors.ErrorHandler, logger *zap.Logger) *ListHandler {
	return &ListHandler{lists: lists, errors: errors, logger: logger}
}

// CreateListRequest represents the request body for creating a list
type CreateListRequest struct {
	Variant string `json:"variant" validate:"required,oneof=singly doubly circular"`
}

// InsertRequest represents the request body for inserting a value
type InsertRequest struct {
	Value    string       `json:"value" validate:"required,max=64"`
	Position PositionText `json:"position" validate:"max=32"`
}

// RemoveRequest represents the request body for removing a value
type RemoveRequest struct {
	Value string `json:"value" validate:"required,max=64"`
}

// CreateList handles POST /lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req CreateListRequest
	if err := decode(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	state, err := h.lists.Create(r.Context(), req.Variant)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, state)
}

// ListLists handles GET /lists
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"ids": h.lists.IDs(r.Context()),
	})
}

// GetList handles GET /lists/{listID}
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	state, err := h.lists.Get(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, state)
}

// DeleteList handles DELETE /lists/{listID}
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	if err := h.lists.Delete(r.Context(), chi.URLParam(r, "listID")); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Insert handles POST /lists/{listID}/insert
func (h *ListHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req InsertRequest
	if err := decode(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	state, err := h.lists.Insert(r.Context(), chi.URLParam(r, "listID"), req.Value, string(req.Position))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, state)
}

// Find handles GET /lists/{listID}/find?value=
func (h *ListHandler) Find(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	if value == "" {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("value is required"))
		return
	}

	result, err := h.lists.Find(r.Context(), chi.URLParam(r, "listID"), value)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Remove handles POST /lists/{listID}/remove
func (h *ListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req RemoveRequest
	if err := decode(w, r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.lists.Remove(r.Context(), chi.URLParam(r, "listID"), req.Value)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, result)
}

// Diagram handles GET /lists/{listID}/diagram
func (h *ListHandler) Diagram(w http.ResponseWriter, r *http.Request) {
	state, err := h.lists.Get(r.Context(), chi.URLParam(r, "listID"))
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, visual.NewListDiagram(state.Variant, state.Values))
}
