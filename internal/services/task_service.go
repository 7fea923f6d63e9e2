package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/agrohold/kanban-api/internal/models"
	"github.com/agrohold/kanban-api/internal/repository"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTitleRequired   = errors.New("title is required")
	ErrTitleEmpty      = errors.New("title cannot be empty")
	ErrInvalidStatus   = errors.New("invalid status value")
	ErrInvalidPriority = errors.New("invalid priority value")
	ErrInvalidAssignee = errors.New("assignee does not exist")
	ErrEmptyUpdate     = errors.New("no fields to update")
)

// taskRelations is preloaded on every task returned to a caller so
// responses can carry assignee and creator names.
var taskRelations = []string{"Assignee", "Creator"}

// TaskService owns the task lifecycle: it validates create/update/delete
// requests, computes minimal column patches and keeps completed_at
// coupled to status.
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	AssigneeID  *uint64
	DueDate     *time.Time
	CreatedByID uint64
}

// UpdateTaskInput represents a partial update: nil pointer fields were
// not supplied and stay untouched. ClearAssignee and ClearDueDate record
// an explicit JSON null, which is a different thing than omission.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	Status        *models.TaskStatus
	AssigneeID    *uint64
	ClearAssignee bool
	DueDate       *time.Time
	ClearDueDate  bool
}

// Empty reports whether the update supplies no fields at all.
func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil &&
		in.Description == nil &&
		in.Priority == nil &&
		in.Status == nil &&
		in.AssigneeID == nil && !in.ClearAssignee &&
		in.DueDate == nil && !in.ClearDueDate
}

// ListTasks returns all tasks newest-first with relations loaded.
func (s *TaskService) ListTasks() ([]models.Task, error) {
	tasks, err := s.taskRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask returns a single task with relations loaded.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, taskRelations...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// CreateTask validates input and persists a new task. Status is always
// todo, completed_at always null and the creator always the caller; a
// client cannot choose any of the three.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if err := s.ensureAssigneeExists(input.AssigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      models.TaskStatusTodo,
		Priority:    input.Priority,
		AssigneeID:  input.AssigneeID,
		CreatedByID: input.CreatedByID,
		DueDate:     input.DueDate,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, taskRelations...)
}

// UpdateTask applies a partial update. Only supplied fields are staged,
// updated_at is always refreshed, and a supplied status drives
// completed_at whether or not the caller mentioned it. An update that
// supplies no fields is rejected rather than treated as a touch.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if input.Empty() {
		return nil, ErrEmptyUpdate
	}

	patch, err := s.buildPatch(input)
	if err != nil {
		return nil, err
	}

	rows, err := s.taskRepo.ApplyPatch(taskID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if rows == 0 {
		return nil, ErrTaskNotFound
	}

	return s.taskRepo.FindByID(taskID, taskRelations...)
}

// DeleteTask removes a task unconditionally. Any holder of a valid token
// may delete any task; there is no ownership check at this layer.
func (s *TaskService) DeleteTask(taskID uint64) error {
	rows, err := s.taskRepo.Delete(taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if rows == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// buildPatch validates the supplied fields and translates them into
// staged columns. Validation failures surface before the store is
// touched.
func (s *TaskService) buildPatch(input UpdateTaskInput) (repository.TaskPatch, error) {
	patch := repository.NewTaskPatch()

	if input.Title != nil {
		if *input.Title == "" {
			return patch, ErrTitleEmpty
		}
		patch.Set("title", *input.Title)
	}
	if input.Description != nil {
		patch.Set("description", *input.Description)
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return patch, ErrInvalidPriority
		}
		patch.Set("priority", *input.Priority)
	}
	if input.ClearAssignee {
		patch.Set("assignee_id", nil)
	} else if input.AssigneeID != nil {
		if err := s.ensureAssigneeExists(input.AssigneeID); err != nil {
			return patch, err
		}
		patch.Set("assignee_id", *input.AssigneeID)
	}
	if input.ClearDueDate {
		patch.Set("due_date", nil)
	} else if input.DueDate != nil {
		patch.Set("due_date", *input.DueDate)
	}

	now := s.now()

	if input.Status != nil {
		if !input.Status.Valid() {
			return patch, ErrInvalidStatus
		}
		patch.Set("status", *input.Status)
		// completed_at follows status: entering done stamps it, leaving
		// done clears it.
		if ts := models.CompletionTimestamp(*input.Status, now); ts != nil {
			patch.Set("completed_at", *ts)
		} else {
			patch.Set("completed_at", nil)
		}
	}

	patch.Set("updated_at", now)

	return patch, nil
}

func (s *TaskService) ensureAssigneeExists(assigneeID *uint64) error {
	if assigneeID == nil {
		return nil
	}
	exists, err := s.userRepo.Exists(*assigneeID)
	if err != nil {
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if !exists {
		return ErrInvalidAssignee
	}
	return nil
}
