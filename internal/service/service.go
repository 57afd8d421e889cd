package service

import (
	"context"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

// TokenPair is the login/refresh response payload.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// TaskInput carries the caller-editable task fields.
type TaskInput struct {
	Name        string
	Description string
}

type Authorization interface {
	Register(ctx context.Context, name, password string) (models.User, error)
	Login(ctx context.Context, name, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Authenticate(ctx context.Context, accessToken string) (models.User, error)
	DeleteAccount(ctx context.Context, userID int) error
}

// Tasks exposes ownership-scoped CRUD: every call is bound to the caller's
// user id and can never observe another user's tasks.
type Tasks interface {
	Create(ctx context.Context, userID int, in TaskInput) (models.Task, error)
	List(ctx context.Context, userID int) ([]models.Task, error)
	GetByID(ctx context.Context, userID, taskID int) (models.Task, error)
	Update(ctx context.Context, userID, taskID int, in TaskInput) (models.Task, error)
	Delete(ctx context.Context, userID, taskID int) error
}

type Service struct {
	Authorization
	Tasks
}

func NewService(repos *repository.Repository, auth AuthConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, auth),
		Tasks:         NewTaskService(repos.Tasks),
	}
}
