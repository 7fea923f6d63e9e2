package services

import (
	"fmt"

	"github.com/agrohold/kanban-api/internal/models"
	"github.com/agrohold/kanban-api/internal/repository"
)

// BusinessUnitService exposes the business unit directory.
type BusinessUnitService struct {
	unitRepo repository.BusinessUnitRepository
}

// NewBusinessUnitService creates a new BusinessUnitService
func NewBusinessUnitService(unitRepo repository.BusinessUnitRepository) *BusinessUnitService {
	return &BusinessUnitService{unitRepo: unitRepo}
}

// ListBusinessUnits returns all business units sorted by name.
func (s *BusinessUnitService) ListBusinessUnits() ([]models.BusinessUnit, error) {
	units, err := s.unitRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list business units: %w", err)
	}
	return units, nil
}
