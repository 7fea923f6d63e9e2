package dto

import (
	"time"

	"github.com/agrohold/kanban-api/internal/models"
)

// TaskDTO represents a task in API responses, enriched with the display
// names of its assignee and creator. assignee_name is null when the task
// has no assignee, mirroring a LEFT JOIN.
type TaskDTO struct {
	ID            uint64              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	AssigneeID    *uint64             `json:"assignee_id"`
	CreatedByID   uint64              `json:"created_by_id"`
	DueDate       *time.Time          `json:"due_date"`
	CompletedAt   *time.Time          `json:"completed_at"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	AssigneeName  *string             `json:"assignee_name"`
	CreatedByName string              `json:"created_by_name"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		AssigneeID:  task.AssigneeID,
		CreatedByID: task.CreatedByID,
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Assignee != nil {
		name := task.Assignee.Name
		dto.AssigneeName = &name
	}
	if task.Creator != nil {
		dto.CreatedByName = task.Creator.Name
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = ToTaskDTO(t)
	}
	return out
}
