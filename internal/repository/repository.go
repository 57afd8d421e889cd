package repository

import (
	"context"
	"database/sql"
	"errors"

	"tasktracker/internal/models"
	"tasktracker/internal/repository/db"
)

// ErrNameTaken is returned by Users.Create when the username is already
// registered (maps the sqlite UNIQUE violation on users.name).
var ErrNameTaken = errors.New("username already taken")

type Users interface {
	Create(ctx context.Context, name, credential string) (int, error)
	GetByName(ctx context.Context, name string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	UpdateCredential(ctx context.Context, id int, credential string) error
	Delete(ctx context.Context, id int) (bool, error)
}

type Tasks interface {
	Create(ctx context.Context, t models.Task) (int, error)
	ListByUser(ctx context.Context, userID int) ([]models.Task, error)
	GetByID(ctx context.Context, id, userID int) (*models.Task, error)
	Update(ctx context.Context, t models.Task) (bool, error)
	Delete(ctx context.Context, id, userID int) (bool, error)
}

type Repository struct {
	Users Users
	Tasks Tasks
}

func NewRepository(database *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(database),
		Tasks: NewTaskRepository(database),
	}
}

// InitDB opens the SQLite file and bootstraps the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
