package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/agrohold/kanban-api/internal/middleware"
	"github.com/agrohold/kanban-api/internal/models"
	"github.com/agrohold/kanban-api/internal/repository"
	"github.com/agrohold/kanban-api/internal/services"
	"github.com/agrohold/kanban-api/internal/token"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	creator *models.User
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.BusinessUnit{},
		&models.User{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.creator = suite.createTestUser("admin", "System Administrator")

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	taskService := services.NewTaskService(taskRepo, userRepo)
	handler := NewTaskHandler(taskService)

	gin.SetMode(gin.TestMode)

	// Router with a stub auth layer that injects the creator's identity,
	// standing in for RequireAuth.
	suite.router = gin.New()
	suite.router.Use(func(c *gin.Context) {
		middleware.SetCurrentUser(c, &token.Claims{
			UserID:   suite.creator.ID,
			Username: suite.creator.Username,
			Role:     suite.creator.Role,
		})
	})
	suite.router.GET("/api/tasks", handler.ListTasks)
	suite.router.POST("/api/tasks", handler.CreateTask)
	suite.router.GET("/api/tasks/:id", handler.GetTask)
	suite.router.PUT("/api/tasks/:id", handler.UpdateTask)
	suite.router.DELETE("/api/tasks/:id", handler.DeleteTask)
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskHandlerTestSuite) createTestUser(username, name string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
		Name:         name,
		Role:         "user",
		BusinessUnit: "corporate",
		IsActive:     true,
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) doJSON(method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) decodeTask(w *httptest.ResponseRecorder) map[string]any {
	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	task, ok := response["task"].(map[string]any)
	suite.Require().True(ok, "response must contain a task object")
	return task
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	w := suite.doJSON("POST", "/api/tasks", gin.H{
		"title":    "A",
		"priority": "high",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	task := suite.decodeTask(w)
	assert.Equal(suite.T(), "todo", task["status"])
	assert.Nil(suite.T(), task["completed_at"])
	assert.Equal(suite.T(), float64(suite.creator.ID), task["created_by_id"])
	assert.Equal(suite.T(), "System Administrator", task["created_by_name"])
	assert.Nil(suite.T(), task["assignee_name"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitleOrPriority() {
	for _, payload := range []gin.H{
		{"priority": "high"},
		{"title": "A"},
		{},
	} {
		w := suite.doJSON("POST", "/api/tasks", payload)
		assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
		assert.JSONEq(suite.T(), `{"error": "Title and priority are required"}`, w.Body.String())
	}
}

func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidPriority() {
	w := suite.doJSON("POST", "/api/tasks", gin.H{
		"title":    "A",
		"priority": "urgent",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownAssignee() {
	w := suite.doJSON("POST", "/api/tasks", gin.H{
		"title":       "A",
		"priority":    "low",
		"assignee_id": 9999,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// Status round-trip: create -> done stamps completed_at, back to todo
// clears it.
func (suite *TaskHandlerTestSuite) TestStatusRoundTrip() {
	w := suite.doJSON("POST", "/api/tasks", gin.H{
		"title":    "A",
		"priority": "high",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	id := uint64(suite.decodeTask(w)["id"].(float64))

	fetch := func() map[string]any {
		w := suite.doJSON("GET", fmt.Sprintf("/api/tasks/%d", id), nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		var task map[string]any
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
		return task
	}

	task := fetch()
	assert.Equal(suite.T(), "todo", task["status"])
	assert.Nil(suite.T(), task["completed_at"])

	w = suite.doJSON("PUT", fmt.Sprintf("/api/tasks/%d", id), gin.H{"status": "done"})
	suite.Require().Equal(http.StatusOK, w.Code)

	task = fetch()
	assert.Equal(suite.T(), "done", task["status"])
	assert.NotNil(suite.T(), task["completed_at"])

	w = suite.doJSON("PUT", fmt.Sprintf("/api/tasks/%d", id), gin.H{"status": "todo"})
	suite.Require().Equal(http.StatusOK, w.Code)

	task = fetch()
	assert.Equal(suite.T(), "todo", task["status"])
	assert.Nil(suite.T(), task["completed_at"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidEnumLeavesTaskUnchanged() {
	w := suite.doJSON("POST", "/api/tasks", gin.H{
		"title":    "A",
		"priority": "high",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	id := uint64(suite.decodeTask(w)["id"].(float64))

	w = suite.doJSON("PUT", fmt.Sprintf("/api/tasks/%d", id), gin.H{"priority": "urgent"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var task models.Task
	suite.Require().NoError(suite.db.First(&task, id).Error)
	assert.Equal(suite.T(), models.TaskPriorityHigh, task.Priority)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_ExplicitNullClearsAssignee() {
	assignee := suite.createTestUser("john", "John Smith")

	w := suite.doJSON("POST", "/api/tasks", gin.H{
		"title":       "A",
		"priority":    "high",
		"assignee_id": assignee.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	created := suite.decodeTask(w)
	id := uint64(created["id"].(float64))
	assert.Equal(suite.T(), "John Smith", created["assignee_name"])

	// "assignee_id": null is a clear, not an omission.
	w = suite.doJSON("PUT", fmt.Sprintf("/api/tasks/%d", id), map[string]any{"assignee_id": nil})
	suite.Require().Equal(http.StatusOK, w.Code)

	task := suite.decodeTask(w)
	assert.Nil(suite.T(), task["assignee_id"])
	assert.Nil(suite.T(), task["assignee_name"])
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_EmptyBodyRejected() {
	w := suite.doJSON("POST", "/api/tasks", gin.H{
		"title":    "A",
		"priority": "high",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	id := uint64(suite.decodeTask(w)["id"].(float64))

	w = suite.doJSON("PUT", fmt.Sprintf("/api/tasks/%d", id), gin.H{})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestUpdateTask_NotFound() {
	w := suite.doJSON("PUT", "/api/tasks/9999", gin.H{"title": "B"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error": "Task not found"}`, w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	w := suite.doJSON("GET", "/api/tasks/9999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.JSONEq(suite.T(), `{"error": "Task not found"}`, w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	w := suite.doJSON("POST", "/api/tasks", gin.H{
		"title":    "A",
		"priority": "high",
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	id := uint64(suite.decodeTask(w)["id"].(float64))

	w = suite.doJSON("DELETE", fmt.Sprintf("/api/tasks/%d", id), nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"message": "Task deleted successfully"}`, w.Body.String())

	w = suite.doJSON("GET", fmt.Sprintf("/api/tasks/%d", id), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.doJSON("DELETE", fmt.Sprintf("/api/tasks/%d", id), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestListTasks_EnrichedAndNewestFirst() {
	assignee := suite.createTestUser("jane", "Jane Doe")

	for _, payload := range []gin.H{
		{"title": "first", "priority": "low"},
		{"title": "second", "priority": "high", "assignee_id": assignee.ID},
	} {
		w := suite.doJSON("POST", "/api/tasks", payload)
		suite.Require().Equal(http.StatusCreated, w.Code)
	}

	// Separate creation instants so newest-first ordering is observable.
	suite.Require().NoError(suite.db.Model(&models.Task{}).
		Where("title = ?", "first").
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	w := suite.doJSON("GET", "/api/tasks", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var tasks []map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Require().Len(tasks, 2)

	assert.Equal(suite.T(), "second", tasks[0]["title"])
	assert.Equal(suite.T(), "Jane Doe", tasks[0]["assignee_name"])
	assert.Equal(suite.T(), "System Administrator", tasks[0]["created_by_name"])
	assert.Equal(suite.T(), "first", tasks[1]["title"])
	assert.Nil(suite.T(), tasks[1]["assignee_name"])
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
