package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autoshop/console/internal/middleware"
	"github.com/autoshop/console/internal/models"
	"github.com/autoshop/console/internal/store"
)

// MessageHandler handles internal mail.
type MessageHandler struct {
	Messages *store.MessageStore
}

// CreateMessageRequest is the JSON payload for sending a message. The
// sender is always the session user.
type CreateMessageRequest struct {
	To      string `json:"to" validate:"required"`
	Subject string `json:"subject" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// userParam resolves the target user for list-style endpoints: the ?user=
// query parameter when present, otherwise the session user.
func userParam(r *http.Request) string {
	if u := r.URL.Query().Get("user"); u != "" {
		return u
	}
	if u, ok := middleware.SessionUserFromContext(r.Context()); ok {
		return u.ID
	}
	return ""
}

// List returns every message the user sent or received, newest first.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := userParam(r)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user query parameter is required")
		return
	}
	msgs := h.Messages.UserMessages(userID)
	if msgs == nil {
		msgs = []models.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// Create sends a message from the session user.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from := ""
	if u, ok := middleware.SessionUserFromContext(r.Context()); ok {
		from = u.ID
	}
	m := h.Messages.Add(store.MessageInput{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Content: req.Content,
	})
	writeJSON(w, http.StatusCreated, m)
}

// MarkRead flips a message to read. Repeating the call is harmless.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	h.Messages.MarkAsRead(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a message by id.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Messages.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Unread returns the unread count for the user.
func (h *MessageHandler) Unread(w http.ResponseWriter, r *http.Request) {
	userID := userParam(r)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user query parameter is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": h.Messages.UnreadCount(userID)})
}
