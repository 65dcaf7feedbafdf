package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/autoshop/console/internal/kv"
	"github.com/autoshop/console/internal/models"
)

const taskNamespace = "task-storage"

// taskState is the persisted layout of the task namespace.
type taskState struct {
	Tasks []models.Task `json:"tasks"`
}

// TaskStore owns the work items and their append-only history log.
type TaskStore struct {
	base
	tasks []models.Task
}

// TaskInput is the caller-supplied part of a new task. AssignedTo and
// Vehicle are denormalized snapshots taken at creation time; they are not
// kept in sync with the user directory or the reception afterwards.
type TaskInput struct {
	Title       string
	Description string
	Priority    models.Priority
	AssignedTo  models.Assignee
	Vehicle     models.VehicleRef
	DueDate     string
}

// NewTaskStore rehydrates the collection from its namespace.
func NewTaskStore(ctx context.Context, store kv.Store, log *zap.Logger) (*TaskStore, error) {
	s := &TaskStore{base: newBase(store, taskNamespace, log)}
	var state taskState
	found, err := s.load(ctx, &state)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if found {
		s.tasks = state.Tasks
	}
	return s, nil
}

func statusLabel(st models.Status) string {
	switch st {
	case models.StatusInProgress:
		return "in progress"
	case models.StatusCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// Add creates a task with status pending and a single creation history
// entry attributed to the assignee, prepended so the collection stays
// newest-first.
func (s *TaskStore) Add(input TaskInput) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.dateNow()
	t := models.Task{
		ID:          newID(s.now()),
		Title:       input.Title,
		Description: input.Description,
		Status:      models.StatusPending,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
		Vehicle:     input.Vehicle,
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     input.DueDate,
		History: []models.HistoryEntry{{
			Date:        now,
			Status:      models.StatusPending,
			Description: "Task created",
			UpdatedBy:   input.AssignedTo.Name,
		}},
	}
	s.tasks = append([]models.Task{t}, s.tasks...)
	s.persist(taskState{Tasks: s.tasks})
	return t
}

// Update merges the patch into the matching record and always refreshes
// UpdatedAt, whether or not a tracked field changed. A status change
// appends a history entry carrying the new status; a description change
// appends a separate "report updated" entry carrying the status the task
// had before this call. Both may fire in one call, status first.
func (s *TaskStore) Update(id string, patch models.TaskPatch, updatedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		t := &s.tasks[i]
		now := s.dateNow()
		prevStatus := t.Status

		if patch.Status != nil && *patch.Status != t.Status {
			t.History = append(t.History, models.HistoryEntry{
				Date:        now,
				Status:      *patch.Status,
				Description: fmt.Sprintf("Status changed to %s", statusLabel(*patch.Status)),
				UpdatedBy:   updatedBy,
			})
		}
		if patch.Description != nil && *patch.Description != t.Description {
			t.History = append(t.History, models.HistoryEntry{
				Date:        now,
				Status:      prevStatus,
				Description: "Work report updated",
				UpdatedBy:   updatedBy,
			})
		}

		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.Status != nil {
			t.Status = *patch.Status
		}
		if patch.Priority != nil {
			t.Priority = *patch.Priority
		}
		if patch.AssignedTo != nil {
			t.AssignedTo = *patch.AssignedTo
		}
		if patch.Vehicle != nil {
			t.Vehicle = *patch.Vehicle
		}
		if patch.DueDate != nil {
			t.DueDate = *patch.DueDate
		}
		t.UpdatedAt = now

		s.persist(taskState{Tasks: s.tasks})
		return nil
	}
	return ErrNotFound
}

// Delete removes the task with the given id, history included.
func (s *TaskStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.persist(taskState{Tasks: s.tasks})
			return
		}
	}
}

// List returns a copy of the collection in its maintained order.
func (s *TaskStore) List() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// ByID returns the task with the given record id.
func (s *TaskStore) ByID(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}
