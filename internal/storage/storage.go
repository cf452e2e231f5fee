package storage

import (
	"context"
	"errors"

	"github.com/dvegac/tasks-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// TaskFilter narrows FindTasks results. Title matches as a case-insensitive
// substring; Status matches exactly. Zero values mean "no filter".
type TaskFilter struct {
	Title  string
	Status models.TaskStatus
}

// UserStore captures user persistence operations needed by the services.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// TaskStore captures task persistence operations needed by the services.
// FindTasks applies ownership at the query layer: only rows belonging to
// ownerID are ever returned.
type TaskStore interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	FindTaskByID(ctx context.Context, id string) (models.Task, error)
	FindTasks(ctx context.Context, ownerID string, filter TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, task models.Task) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Store is the full persistence surface the server is wired with.
type Store interface {
	UserStore
	TaskStore
	Ping(ctx context.Context) error
	Close()
}
