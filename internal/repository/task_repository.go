package repository

import (
	"gorm.io/gorm"

	"github.com/agrohold/kanban-api/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// List retrieves all tasks newest-first with assignee and creator preloaded
func (r *GormTaskRepository) List() ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Assignee").
		Preload("Creator").
		Order("tasks.created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// ApplyPatch applies the staged columns of a patch to one task row in a
// single UPDATE keyed by id. A zero row count means the task does not
// exist; translating that into a not-found error is the caller's job.
func (r *GormTaskRepository) ApplyPatch(id uint64, patch TaskPatch) (int64, error) {
	result := r.db.
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(patch.Columns())
	return result.RowsAffected, result.Error
}

// Delete removes a task and reports how many rows were touched
func (r *GormTaskRepository) Delete(id uint64) (int64, error) {
	result := r.db.Delete(&models.Task{}, id)
	return result.RowsAffected, result.Error
}
