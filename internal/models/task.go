package models

import "time"

// Task is a single to-do item owned by exactly one user.
type Task struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	RegistryDate time.Time `json:"registry_date"`
	UserID       int       `json:"user_id"`
}
