package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/autoshop/console/internal/models"
	"github.com/autoshop/console/internal/store"
)

// CustomerHandler handles the customer collection.
type CustomerHandler struct {
	Customers *store.CustomerStore
}

// CreateCustomerRequest is the JSON payload for creating a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

// List returns the collection, newest first.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Customers.List())
}

// Create adds a customer and returns the created record, customer code
// included.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c := h.Customers.Add(store.CustomerInput{Name: req.Name, Phone: req.Phone})
	writeJSON(w, http.StatusCreated, c)
}

// Lookup finds a customer by phone. Phones are not unique; this returns the
// first match in list order.
func (h *CustomerHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		writeError(w, http.StatusBadRequest, "phone query parameter is required")
		return
	}
	c, ok := h.Customers.ByPhone(phone)
	if !ok {
		writeError(w, http.StatusNotFound, "customer not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// Update applies a partial update to a customer.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.CustomerPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Customers.Update(chi.URLParam(r, "id"), patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "customer not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a customer by id.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Customers.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
