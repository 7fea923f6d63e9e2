package repository

import (
	"gorm.io/gorm"

	"github.com/agrohold/kanban-api/internal/models"
)

// GormBusinessUnitRepository is a GORM implementation of BusinessUnitRepository
type GormBusinessUnitRepository struct {
	db *gorm.DB
}

// NewBusinessUnitRepository creates a new BusinessUnitRepository
func NewBusinessUnitRepository(db *gorm.DB) BusinessUnitRepository {
	return &GormBusinessUnitRepository{db: db}
}

// List lists all business units sorted by name
func (r *GormBusinessUnitRepository) List() ([]models.BusinessUnit, error) {
	var units []models.BusinessUnit
	if err := r.db.Order("name").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}
