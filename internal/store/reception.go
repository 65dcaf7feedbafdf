package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/models"
)

const receptionNamespace = "reception-storage"

// receptionState is the persisted layout of the reception namespace.
type receptionState struct {
	Receptions []models.Reception `json:"receptions"`
}

// ReceptionStore owns the vehicle intake records.
type ReceptionStore struct {
	base
	receptions []models.Reception
}

// ReceptionInput is the caller-supplied part of a new reception. Status and
// creation date are assigned by the store, never by the caller.
type ReceptionInput struct {
	CustomerInfo models.CustomerInfo
	VehicleInfo  models.VehicleInfo
	ServiceInfo  models.ServiceInfo
	Images       []string
	Documents    []string
}

// NewReceptionStore rehydrates the collection from its namespace.
func NewReceptionStore(ctx context.Context, store kv.Store, log *zap.Logger) (*ReceptionStore, error) {
	s := &ReceptionStore{base: newBase(store, receptionNamespace, log)}
	var state receptionState
	found, err := s.load(ctx, &state)
	if err != nil {
		return nil, fmt.Errorf("load receptions: %w", err)
	}
	if found {
		s.receptions = state.Receptions
	}
	return s, nil
}

// Add creates a reception with status pending and a creation date stamp,
// prepended so the collection stays newest-first. Attachments are stored
// inline as encoded blobs with no size limit.
func (s *ReceptionStore) Add(input ReceptionInput) models.Reception {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := models.Reception{
		ID:           newID(s.now()),
		CustomerInfo: input.CustomerInfo,
		VehicleInfo:  input.VehicleInfo,
		ServiceInfo:  input.ServiceInfo,
		Status:       models.StatusPending,
		CreatedAt:    s.dateNow(),
		Images:       input.Images,
		Documents:    input.Documents,
	}
	s.receptions = append([]models.Reception{r}, s.receptions...)
	s.persist(receptionState{Receptions: s.receptions})
	return r
}

// Update merges the patch into the matching record. Nested info objects are
// replaced whole when present. The store enforces no status workflow: any
// transition, backward ones included, is accepted, and callers apply their
// own discipline.
func (s *ReceptionStore) Update(id string, patch models.ReceptionPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.receptions {
		if s.receptions[i].ID != id {
			continue
		}
		r := &s.receptions[i]
		if patch.CustomerInfo != nil {
			r.CustomerInfo = *patch.CustomerInfo
		}
		if patch.VehicleInfo != nil {
			r.VehicleInfo = *patch.VehicleInfo
		}
		if patch.ServiceInfo != nil {
			r.ServiceInfo = *patch.ServiceInfo
		}
		if patch.Status != nil {
			r.Status = *patch.Status
		}
		if patch.Images != nil {
			r.Images = *patch.Images
		}
		if patch.Documents != nil {
			r.Documents = *patch.Documents
		}
		s.persist(receptionState{Receptions: s.receptions})
		return nil
	}
	return ErrNotFound
}

// Delete removes the record with the given id, if present.
func (s *ReceptionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.receptions {
		if s.receptions[i].ID == id {
			s.receptions = append(s.receptions[:i], s.receptions[i+1:]...)
			s.persist(receptionState{Receptions: s.receptions})
			return
		}
	}
}

// List returns a copy of the collection in its maintained order.
func (s *ReceptionStore) List() []models.Reception {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reception, len(s.receptions))
	copy(out, s.receptions)
	return out
}

// ByID returns the reception with the given record id.
func (s *ReceptionStore) ByID(id string) (models.Reception, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.receptions {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reception{}, false
}
