package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/autoshop/console/internal/export"
	"github.com/autoshop/console/internal/models"
	"github.com/autoshop/console/internal/store"
)

// ReceptionHandler handles vehicle intake records. It also owns the
// UI-level rule that creating a reception resolves or creates the customer:
// the stores themselves hold no cross-references.
type ReceptionHandler struct {
	Receptions *store.ReceptionStore
	Customers  *store.CustomerStore
}

// CreateReceptionRequest is the JSON payload for creating a reception.
// Status is not accepted: new receptions are always pending.
type CreateReceptionRequest struct {
	CustomerInfo models.CustomerInfo `json:"customerInfo"`
	VehicleInfo  models.VehicleInfo  `json:"vehicleInfo"`
	ServiceInfo  models.ServiceInfo  `json:"serviceInfo"`
	Images       []string            `json:"images,omitempty"`
	Documents    []string            `json:"documents,omitempty"`
}

// List returns the collection, newest first.
func (h *ReceptionHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Receptions.List())
}

// Create adds a reception after resolving the customer by phone, creating
// one when no record matches.
func (h *ReceptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateReceptionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.CustomerInfo.Name == "" || req.CustomerInfo.Phone == "" {
		writeError(w, http.StatusBadRequest, "customer name and phone are required")
		return
	}
	if req.VehicleInfo.PlateNumber == "" {
		writeError(w, http.StatusBadRequest, "vehicle plate number is required")
		return
	}

	if _, ok := h.Customers.ByPhone(req.CustomerInfo.Phone); !ok {
		h.Customers.Add(store.CustomerInput{
			Name:  req.CustomerInfo.Name,
			Phone: req.CustomerInfo.Phone,
		})
	}

	rec := h.Receptions.Add(store.ReceptionInput{
		CustomerInfo: req.CustomerInfo,
		VehicleInfo:  req.VehicleInfo,
		ServiceInfo:  req.ServiceInfo,
		Images:       req.Images,
		Documents:    req.Documents,
	})
	writeJSON(w, http.StatusCreated, rec)
}

// Update applies a partial update. Nested info objects are replaced whole.
func (h *ReceptionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ReceptionPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Receptions.Update(chi.URLParam(r, "id"), patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reception not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "update failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a reception by id.
func (h *ReceptionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.Receptions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Document streams the printable intake document for a reception.
func (h *ReceptionHandler) Document(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.Receptions.ByID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "reception not found")
		return
	}
	doc, err := export.Document(rec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to render document")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(rec, time.Now())))
	_, _ = w.Write(doc)
}
