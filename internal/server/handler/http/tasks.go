package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autoshop/console/internal/middleware"
	"github.com/autoshop/console/internal/models"
	"github.com/autoshop/console/internal/store"
)

// TaskHandler handles work items.
type TaskHandler struct {
	Tasks *store.TaskStore
}

// CreateTaskRequest is the JSON payload for creating a task. AssignedTo and
// Vehicle are snapshots supplied by the caller; the server does not resolve
// them against the directory or the receptions.
type CreateTaskRequest struct {
	Title       string            `json:"title" validate:"required"`
	Description string            `json:"description"`
	Priority    models.Priority   `json:"priority" validate:"required,oneof=low medium high"`
	AssignedTo  models.Assignee   `json:"assignedTo" validate:"required"`
	Vehicle     models.VehicleRef `json:"vehicle"`
	DueDate     string            `json:"dueDate"`
}

// List returns the collection, newest first.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Tasks.List())
}

// Create adds a task with its creation history entry.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.AssignedTo.ID == "" || req.AssignedTo.Name == "" {
		writeError(w, http.StatusBadRequest, "assignedTo id and name are required")
		return
	}
	t := h.Tasks.Add(store.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		Vehicle:     req.Vehicle,
		DueDate:     req.DueDate,
	})
	writeJSON(w, http.StatusCreated, t)
}

// Update applies a partial update. The history attribution comes from the
// session user, not from the payload.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.TaskPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updatedBy := "unknown"
	if u, ok := middleware.SessionUserFromContext(r.Context()); ok {
		updatedBy = u.Name
	}

	if err := h.Tasks.Update(chi.URLParam(r, "id"), patch, updatedBy); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a task by id, history included.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Tasks.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
