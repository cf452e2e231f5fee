// Package tasks implements the task operations and the ownership policy
// guarding them.
package tasks

import (
	"context"
	"errors"

	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/models/dto"
	"github.com/dvegac/tasks-be/internal/storage"
)

// ErrNoAccess indicates the task exists but belongs to another user.
var ErrNoAccess = errors.New("you do not have access to this task")

// Service owns task CRUD with per-resource ownership enforcement.
type Service struct {
	store storage.TaskStore
}

// NewService constructs the task service.
func NewService(store storage.TaskStore) *Service {
	return &Service{store: store}
}

// Create stores a new task owned by ownerID. The owner always comes from the
// authenticated caller, never from the request body.
func (s *Service) Create(ctx context.Context, ownerID string, req dto.CreateTaskRequest) (models.Task, error) {
	status := req.Status
	if status == "" {
		status = models.TaskPending
	}
	return s.store.CreateTask(ctx, models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		UserID:      ownerID,
	})
}

// Find lists the caller's tasks. Ownership is a query-layer filter here, not
// a post-hoc check.
func (s *Service) Find(ctx context.Context, ownerID string, filter storage.TaskFilter) ([]models.Task, error) {
	return s.store.FindTasks(ctx, ownerID, filter)
}

// Get returns the task after asserting ownership.
func (s *Service) Get(ctx context.Context, id, callerID string) (models.Task, error) {
	return s.assertOwnership(ctx, id, callerID)
}

// Update applies the non-nil fields of req to the task, after asserting
// ownership. A missing task yields storage.ErrNotFound before any mutation,
// a foreign one ErrNoAccess.
func (s *Service) Update(ctx context.Context, id, callerID string, req dto.UpdateTaskRequest) (models.Task, error) {
	task, err := s.assertOwnership(ctx, id, callerID)
	if err != nil {
		return models.Task{}, err
	}
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	return s.store.UpdateTask(ctx, task)
}

// Delete removes the task after asserting ownership and returns the deleted
// record.
func (s *Service) Delete(ctx context.Context, id, callerID string) (models.Task, error) {
	task, err := s.assertOwnership(ctx, id, callerID)
	if err != nil {
		return models.Task{}, err
	}
	if err := s.store.DeleteTask(ctx, id); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// assertOwnership fetches the task and verifies it belongs to callerID.
// Missing tasks and foreign tasks fail differently on purpose: NotFound vs
// Forbidden is the documented contract of this API.
func (s *Service) assertOwnership(ctx context.Context, id, callerID string) (models.Task, error) {
	task, err := s.store.FindTaskByID(ctx, id)
	if err != nil {
		return models.Task{}, err
	}
	if task.UserID != callerID {
		return models.Task{}, ErrNoAccess
	}
	return task, nil
}
