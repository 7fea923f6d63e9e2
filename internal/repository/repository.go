package repository

import (
	"github.com/agrohold/kanban-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves all tasks newest-first with assignee and creator preloaded
	List() ([]models.Task, error)

	// ApplyPatch applies the staged columns of a patch to one task in a
	// single statement and reports how many rows were touched
	ApplyPatch(id uint64, patch TaskPatch) (int64, error)

	// Delete removes a task and reports how many rows were touched
	Delete(id uint64) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindActiveByUsername finds an active user by exact username
	FindActiveByUsername(username string) (*models.User, error)

	// ListActive lists active users sorted by display name
	ListActive() ([]models.User, error)

	// Exists reports whether a user with the given ID exists
	Exists(id uint64) (bool, error)
}

// BusinessUnitRepository defines the interface for business unit data access
type BusinessUnitRepository interface {
	// List lists all business units sorted by name
	List() ([]models.BusinessUnit, error)
}
