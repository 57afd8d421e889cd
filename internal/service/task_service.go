package service

import (
	"context"
	"strings"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

type TaskService struct {
	taskRepo repository.Tasks
}

func NewTaskService(taskRepo repository.Tasks) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

const maxTaskNameLen = 100

func validateTaskInput(in TaskInput) (TaskInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(in.Name) > maxTaskNameLen {
		return in, &ValidationError{Field: "name", Reason: "too long"}
	}
	return in, nil
}

func (s *TaskService) Create(ctx context.Context, userID int, in TaskInput) (models.Task, error) {
	in, err := validateTaskInput(in)
	if err != nil {
		return models.Task{}, err
	}

	t := models.Task{
		Name:         in.Name,
		Description:  in.Description,
		RegistryDate: time.Now().UTC(),
		UserID:       userID,
	}
	id, err := s.taskRepo.Create(ctx, t)
	if err != nil {
		return models.Task{}, err
	}
	t.ID = id
	return t, nil
}

func (s *TaskService) List(ctx context.Context, userID int) ([]models.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

// GetByID returns an owned task. A task belonging to another user yields
// ErrTaskNotFound, same as a missing one.
func (s *TaskService) GetByID(ctx context.Context, userID, taskID int) (models.Task, error) {
	t, err := s.taskRepo.GetByID(ctx, taskID, userID)
	if err != nil {
		return models.Task{}, err
	}
	if t == nil {
		return models.Task{}, ErrTaskNotFound
	}
	return *t, nil
}

func (s *TaskService) Update(ctx context.Context, userID, taskID int, in TaskInput) (models.Task, error) {
	in, err := validateTaskInput(in)
	if err != nil {
		return models.Task{}, err
	}

	updated, err := s.taskRepo.Update(ctx, models.Task{
		ID:          taskID,
		Name:        in.Name,
		Description: in.Description,
		UserID:      userID,
	})
	if err != nil {
		return models.Task{}, err
	}
	if !updated {
		return models.Task{}, ErrTaskNotFound
	}
	return s.GetByID(ctx, userID, taskID)
}

// Delete is idempotent from the caller's view: a second delete of the same
// id reports ErrTaskNotFound with no side effects.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int) error {
	deleted, err := s.taskRepo.Delete(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}
