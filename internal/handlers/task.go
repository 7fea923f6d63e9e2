package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/agrohold/kanban-api/internal/dto"
	apierrors "github.com/agrohold/kanban-api/internal/errors"
	"github.com/agrohold/kanban-api/internal/middleware"
	"github.com/agrohold/kanban-api/internal/models"
	"github.com/agrohold/kanban-api/internal/services"
)

// TaskHandler serves the task CRUD surface.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns all tasks newest-first, enriched with assignee and
// creator names.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		log.Printf("Get tasks error: %v", err)
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a single enriched task.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		h.respondTaskError(c, "Get task", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task owned by the authenticated caller.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Priority    string  `json:"priority"`
		AssigneeID  *uint64 `json:"assignee_id"`
		DueDate     *string `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Title == "" || req.Priority == "" {
		apierrors.BadRequest(c, "Title and priority are required")
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		DueDate:     dueDate,
		CreatedByID: claims.UserID,
	})
	if err != nil {
		h.respondTaskError(c, "Create task", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// UpdateTask applies a partial update. The raw body is parsed field by
// field so an omitted key and an explicit null stay distinguishable.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := parseUpdateInput(raw)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(id, input)
	if err != nil {
		h.respondTaskError(c, "Update task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    dto.ToTaskDTO(*task),
	})
}

// DeleteTask removes a task by id.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		h.respondTaskError(c, "Delete task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// respondTaskError maps service errors onto the HTTP taxonomy. Anything
// unrecognized is logged and collapsed into a generic 500.
func (h *TaskHandler) respondTaskError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidAssignee),
		errors.Is(err, services.ErrEmptyUpdate):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("%s error: %v", op, err)
		apierrors.InternalError(c, "")
	}
}

func taskIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task id")
		return 0, false
	}
	return id, true
}

// parseUpdateInput turns the raw JSON object into a structured patch
// input. Keys absent from the body stay nil; "assignee_id": null and
// "due_date": null become explicit clears.
func parseUpdateInput(raw map[string]json.RawMessage) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput

	if msg, ok := raw["title"]; ok {
		var title string
		if err := json.Unmarshal(msg, &title); err != nil {
			return input, errors.New("title must be a string")
		}
		input.Title = &title
	}
	if msg, ok := raw["description"]; ok {
		var description *string
		if err := json.Unmarshal(msg, &description); err != nil {
			return input, errors.New("description must be a string")
		}
		if description == nil {
			empty := ""
			description = &empty
		}
		input.Description = description
	}
	if msg, ok := raw["priority"]; ok {
		var priority string
		if err := json.Unmarshal(msg, &priority); err != nil {
			return input, errors.New("priority must be a string")
		}
		p := models.TaskPriority(priority)
		input.Priority = &p
	}
	if msg, ok := raw["status"]; ok {
		var status string
		if err := json.Unmarshal(msg, &status); err != nil {
			return input, errors.New("status must be a string")
		}
		s := models.TaskStatus(status)
		input.Status = &s
	}
	if msg, ok := raw["assignee_id"]; ok {
		var assigneeID *uint64
		if err := json.Unmarshal(msg, &assigneeID); err != nil {
			return input, errors.New("assignee_id must be a number or null")
		}
		if assigneeID == nil {
			input.ClearAssignee = true
		} else {
			input.AssigneeID = assigneeID
		}
	}
	if msg, ok := raw["due_date"]; ok {
		var dueDate *string
		if err := json.Unmarshal(msg, &dueDate); err != nil {
			return input, errors.New("due_date must be a date string or null")
		}
		if dueDate == nil {
			input.ClearDueDate = true
		} else {
			parsed, err := parseDueDate(dueDate)
			if err != nil {
				return input, err
			}
			input.DueDate = parsed
		}
	}

	return input, nil
}

// parseDueDate accepts either an RFC3339 timestamp or a bare date.
func parseDueDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, *value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", *value); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("due_date must be an RFC 3339 timestamp or YYYY-MM-DD date")
}
