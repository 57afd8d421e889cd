package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tasktracker/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of the Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (name, password) VALUES (?, ?)`
	selectUserByNameSQL     = `SELECT id, name, password FROM users WHERE name = ?`
	selectUserByIDSQL       = `SELECT id, name, password FROM users WHERE id = ?`
	updateUserCredentialSQL = `UPDATE users SET password = ? WHERE id = ?`
	deleteUserSQL           = `DELETE FROM users WHERE id = ?`
)

// isUniqueViolation reports whether err is the sqlite UNIQUE constraint error.
// modernc.org/sqlite exposes no typed constraint error, so match the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Create inserts a new user and returns its ID.
// Returns ErrNameTaken if the name is already registered.
func (r *UserRepository) Create(ctx context.Context, name, credential string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertUserSQL, name, credential)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrNameTaken
		}
		return 0, fmt.Errorf("insert user %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", name, err)
	}
	return int(lastID), nil
}

// GetByName fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByName(ctx context.Context, name string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByNameSQL, name).Scan(&u.ID, &u.Name, &u.Credential)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", name, err)
	}
	return &u, nil
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, selectUserByIDSQL, id).Scan(&u.ID, &u.Name, &u.Credential)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user id=%d: %w", id, err)
	}
	return &u, nil
}

// UpdateCredential replaces the stored credential for a user
// (used to migrate legacy credentials to bcrypt on login).
func (r *UserRepository) UpdateCredential(ctx context.Context, id int, credential string) error {
	if _, err := r.db.ExecContext(ctx, updateUserCredentialSQL, credential, id); err != nil {
		return fmt.Errorf("update credential for user id=%d: %w", id, err)
	}
	return nil
}

// Delete removes a user row; owned tasks go with it via ON DELETE CASCADE.
// Returns false if no such user existed.
func (r *UserRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete user id=%d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for user id=%d: %w", id, err)
	}
	return n > 0, nil
}
