package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autoshop/console/internal/models"
	"github.com/autoshop/console/internal/store"
)

// UserHandler handles the user directory.
type UserHandler struct {
	Users *store.UserStore
}

// CreateUserRequest is the JSON payload for creating a user.
type CreateUserRequest struct {
	Username       string             `json:"username" validate:"required"`
	Name           string             `json:"name" validate:"required"`
	Role           models.Role        `json:"role" validate:"required"`
	JobDescription string             `json:"jobDescription"`
	Active         bool               `json:"active"`
	Permissions    models.Permissions `json:"permissions"`
}

// List returns the directory.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Users.List())
}

// Create adds a user. The role-permission coupling is applied by the store:
// a receptionist comes back with all permissions regardless of the payload.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !models.ValidRole(req.Role) {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	u := h.Users.Add(store.UserInput{
		Username:       req.Username,
		Name:           req.Name,
		Role:           req.Role,
		JobDescription: req.JobDescription,
		Active:         req.Active,
		Permissions:    req.Permissions,
	})
	writeJSON(w, http.StatusCreated, u)
}

// Update applies a partial update to a user.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if patch.Role != nil && !models.ValidRole(*patch.Role) {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	if err := h.Users.Update(chi.URLParam(r, "id"), patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a user by id.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Users.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
