package store

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/models"
)

const customerNamespace = "customer-storage"

// customerSeed is the counter value before the first issued customer code,
// so the first customer gets 7890.
const customerSeed = 7889

// customerState is the persisted layout of the customer namespace.
type customerState struct {
	Customers      []models.Customer `json:"customers"`
	LastCustomerID int               `json:"lastCustomerId"`
}

// CustomerStore owns the customer collection and customer code issuance.
type CustomerStore struct {
	base
	customers      []models.Customer
	lastCustomerID int
}

// CustomerInput is the caller-supplied part of a new customer.
type CustomerInput struct {
	Name  string
	Phone string
}

// NewCustomerStore rehydrates the customer collection from its namespace.
// An unwritten namespace yields an empty collection and the code seed.
func NewCustomerStore(ctx context.Context, store kv.Store, log *zap.Logger) (*CustomerStore, error) {
	s := &CustomerStore{
		base:           newBase(store, customerNamespace, log),
		lastCustomerID: customerSeed,
	}
	var state customerState
	found, err := s.load(ctx, &state)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	if found {
		s.customers = state.Customers
		s.lastCustomerID = state.LastCustomerID
	}
	return s, nil
}

// Add creates a customer with the next sequential customer code, the phone
// number as the initial password, and a creation date stamp. The new record
// is prepended so the collection stays newest-first.
func (s *CustomerStore) Add(input CustomerInput) models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastCustomerID++
	c := models.Customer{
		ID:         newID(s.now()),
		CustomerID: strconv.Itoa(s.lastCustomerID),
		Name:       input.Name,
		Phone:      input.Phone,
		Password:   input.Phone,
		CreatedAt:  s.dateNow(),
	}
	s.customers = append([]models.Customer{c}, s.customers...)
	s.persist(customerState{Customers: s.customers, LastCustomerID: s.lastCustomerID})
	return c
}

// Update merges the patch into the matching record. A phone change resets
// the password to the new phone, overriding a password supplied in the same
// patch; a password change without a phone change is honored.
func (s *CustomerStore) Update(id string, patch models.CustomerPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID != id {
			continue
		}
		c := &s.customers[i]
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Password != nil {
			c.Password = *patch.Password
		}
		if patch.Phone != nil {
			c.Phone = *patch.Phone
			c.Password = *patch.Phone
		}
		s.persist(customerState{Customers: s.customers, LastCustomerID: s.lastCustomerID})
		return nil
	}
	return ErrNotFound
}

// Delete removes the record with the given id, if present. The issued
// customer codes are never reused.
func (s *CustomerStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.customers {
		if s.customers[i].ID == id {
			s.customers = append(s.customers[:i], s.customers[i+1:]...)
			s.persist(customerState{Customers: s.customers, LastCustomerID: s.lastCustomerID})
			return
		}
	}
}

// List returns a copy of the collection in its maintained order.
func (s *CustomerStore) List() []models.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Customer, len(s.customers))
	copy(out, s.customers)
	return out
}

// ByPhone returns the first customer in list order with the given phone.
// Phone numbers are not unique; duplicates are possible and this returns
// whichever comes first.
func (s *CustomerStore) ByPhone(phone string) (models.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers {
		if c.Phone == phone {
			return c, true
		}
	}
	return models.Customer{}, false
}

// ByID returns the customer with the given record id.
func (s *CustomerStore) ByID(id string) (models.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}
