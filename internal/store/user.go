package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/models"
)

const userNamespace = "user-storage"

// userState is the persisted layout of the user namespace.
type userState struct {
	Users []models.User `json:"users"`
}

// seedUsers is the account set present on first start, with known
// credentials for initial access.
func seedUsers() []models.User {
	return []models.User{
		{
			ID:             "1",
			Username:       "admin",
			Name:           "System Manager",
			Role:           models.RoleAdmin,
			JobDescription: "Full system administration, settings and users",
			Active:         true,
			Permissions:    models.AllPermissions,
		},
		{
			ID:             "2",
			Username:       "tech1",
			Name:           "Lead Technician",
			Role:           models.RoleTechnician,
			JobDescription: "Vehicle repair and maintenance, work reports",
			Active:         true,
		},
		{
			ID:             "3",
			Username:       "reception1",
			Name:           "Front Desk",
			Role:           models.RoleReceptionist,
			JobDescription: "Vehicle intake, customer records, task creation",
			Active:         true,
			Permissions:    models.AllPermissions,
		},
	}
}

// UserStore owns the user directory and the role-permission coupling.
type UserStore struct {
	base
	users []models.User
}

// UserInput is the caller-supplied part of a new user.
type UserInput struct {
	Username       string
	Name           string
	Role           models.Role
	JobDescription string
	Active         bool
	Permissions    models.Permissions
}

// NewUserStore rehydrates the directory from its namespace. An unwritten
// namespace yields the fixed seed accounts.
func NewUserStore(ctx context.Context, store kv.Store, log *zap.Logger) (*UserStore, error) {
	s := &UserStore{base: newBase(store, userNamespace, log)}
	var state userState
	found, err := s.load(ctx, &state)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if found {
		s.users = state.Users
	} else {
		s.users = seedUsers()
	}
	return s, nil
}

// Add creates a user at the end of the directory. A receptionist always
// gets all three permissions, whatever the caller supplied; other roles keep
// the supplied permissions as given.
func (s *UserStore) Add(input UserInput) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := models.User{
		ID:             newID(s.now()),
		Username:       input.Username,
		Name:           input.Name,
		Role:           input.Role,
		JobDescription: input.JobDescription,
		Active:         input.Active,
		Permissions:    input.Permissions,
	}
	if u.Role == models.RoleReceptionist {
		u.Permissions = models.AllPermissions
	}
	s.users = append(s.users, u)
	s.persist(userState{Users: s.users})
	return u
}

// Update merges the patch into the matching record. If the record's role is
// receptionist after the merge, all three permissions are forced true,
// overriding a permissions object supplied in the same patch.
func (s *UserStore) Update(id string, patch models.UserPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID != id {
			continue
		}
		u := &s.users[i]
		if patch.Username != nil {
			u.Username = *patch.Username
		}
		if patch.Name != nil {
			u.Name = *patch.Name
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		if patch.JobDescription != nil {
			u.JobDescription = *patch.JobDescription
		}
		if patch.Active != nil {
			u.Active = *patch.Active
		}
		if patch.Permissions != nil {
			u.Permissions = *patch.Permissions
		}
		if u.Role == models.RoleReceptionist {
			u.Permissions = models.AllPermissions
		}
		s.persist(userState{Users: s.users})
		return nil
	}
	return ErrNotFound
}

// Delete removes the user with the given id, if present.
func (s *UserStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			s.persist(userState{Users: s.users})
			return
		}
	}
}

// List returns a copy of the directory in its maintained order.
func (s *UserStore) List() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out
}

// FindActiveByUsername returns the first active user with the given
// username. The password is accepted but deliberately not compared against
// anything: this reproduces the original demo authentication and must not
// be "fixed" in passing. Real credential verification is a separate,
// explicitly reviewed change.
func (s *UserStore) FindActiveByUsername(username, password string) (models.User, bool) {
	_ = password

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username && u.Active {
			return u, true
		}
	}
	return models.User{}, false
}

// ByID returns the user with the given record id.
func (s *UserStore) ByID(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}
