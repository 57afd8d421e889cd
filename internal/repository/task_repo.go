package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tasktracker/internal/models"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ Tasks = (*TaskRepository)(nil)

// Every read and write below is scoped by user_id, so a task owned by
// someone else is indistinguishable from a missing one.
const (
	insertTaskSQL        = `INSERT INTO tasks (name, description, registry_date, user_id) VALUES (?, ?, ?, ?)`
	selectTasksByUserSQL = `
		SELECT id, name, description, registry_date, user_id
		FROM tasks WHERE user_id = ? ORDER BY registry_date ASC, id ASC
	`
	selectTaskByIDSQL = `
		SELECT id, name, description, registry_date, user_id
		FROM tasks WHERE id = ? AND user_id = ?
	`
	updateTaskSQL = `UPDATE tasks SET name = ?, description = ? WHERE id = ? AND user_id = ?`
	deleteTaskSQL = `DELETE FROM tasks WHERE id = ? AND user_id = ?`
)

// Create inserts a new task and returns its ID. RegistryDate is set to
// now (UTC) when zero.
func (r *TaskRepository) Create(ctx context.Context, t models.Task) (int, error) {
	registered := t.RegistryDate
	if registered.IsZero() {
		registered = time.Now().UTC()
	} else {
		registered = registered.UTC()
	}

	res, err := r.db.ExecContext(ctx, insertTaskSQL, t.Name, t.Description, registered, t.UserID)
	if err != nil {
		return 0, fmt.Errorf("insert task %q: %w", t.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for task %q: %w", t.Name, err)
	}
	return int(lastID), nil
}

// ListByUser returns all tasks owned by userID, oldest first.
func (r *TaskRepository) ListByUser(ctx context.Context, userID int) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, selectTasksByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select tasks for user id=%d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Task, 0, 16)
	for rows.Next() {
		var t models.Task
		var desc sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &desc, &t.RegistryDate, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan task row: %w", err)
		}
		t.Description = desc.String
		t.RegistryDate = t.RegistryDate.UTC()
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate task rows: %w", err)
	}
	return out, nil
}

// GetByID fetches one task owned by userID. Returns (nil, nil) if the id
// does not exist or belongs to another user.
func (r *TaskRepository) GetByID(ctx context.Context, id, userID int) (*models.Task, error) {
	var t models.Task
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, selectTaskByIDSQL, id, userID).
		Scan(&t.ID, &t.Name, &desc, &t.RegistryDate, &t.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select task id=%d: %w", id, err)
	}
	t.Description = desc.String
	t.RegistryDate = t.RegistryDate.UTC()
	return &t, nil
}

// Update rewrites name/description of an owned task. Returns false when
// the task is absent or owned by another user.
func (r *TaskRepository) Update(ctx context.Context, t models.Task) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateTaskSQL, t.Name, t.Description, t.ID, t.UserID)
	if err != nil {
		return false, fmt.Errorf("update task id=%d: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for task id=%d: %w", t.ID, err)
	}
	return n > 0, nil
}

// Delete removes an owned task. Returns false when nothing was deleted.
func (r *TaskRepository) Delete(ctx context.Context, id, userID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteTaskSQL, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete task id=%d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for task id=%d: %w", id, err)
	}
	return n > 0, nil
}
