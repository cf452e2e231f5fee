package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dvegac/tasks-be/internal/models"
	"github.com/dvegac/tasks-be/internal/storage"
)

const taskColumns = `id, title, description, status, user_id, created_at, updated_at`

// CreateTask inserts a new task row owned by task.UserID.
func (s *Store) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO tasks (id, title, description, status, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns
	row := s.pool.QueryRow(ctx, query, task.ID, task.Title, task.Description, task.Status, task.UserID)
	created, err := scanTask(row)
	if err != nil {
		return models.Task{}, translateError(err)
	}
	return created, nil
}

// FindTaskByID fetches a task by primary key, regardless of owner.
func (s *Store) FindTaskByID(ctx context.Context, id string) (models.Task, error) {
	const query = `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		return models.Task{}, translateError(err)
	}
	return task, nil
}

// FindTasks returns the owner's tasks, optionally narrowed by filter.
// Ownership is applied in the query itself, never as a post-hoc check.
func (s *Store) FindTasks(ctx context.Context, ownerID string, filter storage.TaskFilter) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{ownerID}

	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		query += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask overwrites the mutable columns of an existing task row.
// The owning user_id column is deliberately not part of the SET list.
func (s *Store) UpdateTask(ctx context.Context, task models.Task) (models.Task, error) {
	const query = `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns
	row := s.pool.QueryRow(ctx, query, task.ID, task.Title, task.Description, task.Status)
	updated, err := scanTask(row)
	if err != nil {
		return models.Task{}, translateError(err)
	}
	return updated, nil
}

// DeleteTask removes a task row by id.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}
