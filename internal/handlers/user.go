package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrohold/kanban-api/internal/dto"
	apierrors "github.com/agrohold/kanban-api/internal/errors"
	"github.com/agrohold/kanban-api/internal/services"
)

// UserHandler serves the user directory.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns all active users sorted by name.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListActiveUsers()
	if err != nil {
		log.Printf("Get users error: %v", err)
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}
