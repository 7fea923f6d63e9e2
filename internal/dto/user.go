package dto

import (
	"time"

	"github.com/agrohold/kanban-api/internal/models"
)

// UserDTO is the public shape of a user: everything except the password
// hash and the update timestamp.
type UserDTO struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	BusinessUnit string    `json:"business_unit"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:           user.ID,
		Username:     user.Username,
		Name:         user.Name,
		Role:         user.Role,
		BusinessUnit: user.BusinessUnit,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
	}
}

// ToUserDTOs converts a slice of User models
func ToUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i, u := range users {
		out[i] = ToUserDTO(u)
	}
	return out
}
