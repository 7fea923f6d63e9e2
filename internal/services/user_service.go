package services

import (
	"fmt"

	"github.com/agrohold/kanban-api/internal/models"
	"github.com/agrohold/kanban-api/internal/repository"
)

// UserService exposes read-only user listings. User creation and
// deactivation happen through seeding or administrative tooling, never
// through this service.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListActiveUsers returns active users sorted by display name.
func (s *UserService) ListActiveUsers() ([]models.User, error) {
	users, err := s.userRepo.ListActive()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
