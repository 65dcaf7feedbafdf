package http

import (
	"errors"
	"net/http"

	"github.com/autoshop/console/internal/models"
	"github.com/autoshop/console/internal/store"
)

// AuthHandler handles login, logout and session settings.
type AuthHandler struct {
	Auth *store.AuthStore
}

// LoginRequest is the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login establishes the session. The failure message is deliberately
// generic: callers learn nothing about which part of the credentials was
// wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "wrong username or password")
			return
		}
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// Logout clears the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Auth.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the current session.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := h.Auth.Session()
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// UpdateSettings merges a settings patch into the current session.
func (h *AuthHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Auth.UpdateSettings(patch); err != nil {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
