package database

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agrohold/kanban-api/internal/models"
)

// Seed loads the demo dataset: the business units, a handful of users
// and a starter board. Inserts are idempotent, so running the seeder
// against a populated database is safe.
func Seed(db *gorm.DB) error {
	if err := seedBusinessUnits(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedTasks(db); err != nil {
		return err
	}
	log.Println("Database seeding completed")
	return nil
}

func seedBusinessUnits(db *gorm.DB) error {
	units := []models.BusinessUnit{
		{Name: "Corporate", Description: "Corporate headquarters"},
		{Name: "Leasing", Description: "Property leasing division"},
		{Name: "Abattoir", Description: "Meat processing facility"},
		{Name: "GenMeat", Description: "General meat products"},
		{Name: "Porkland", Description: "Pork processing division"},
		{Name: "RANC", Description: "Regional agricultural network"},
		{Name: "GreenAtom", Description: "Sustainable agriculture division"},
	}

	err := db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&units).Error
	if err != nil {
		return fmt.Errorf("failed to seed business units: %w", err)
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash user password: %w", err)
	}

	users := []models.User{
		{Username: "admin", PasswordHash: string(adminHash), Name: "System Administrator", Role: "admin", BusinessUnit: "corporate", IsActive: true},
		{Username: "john", PasswordHash: string(userHash), Name: "John Smith", Role: "user", BusinessUnit: "corporate", IsActive: true},
		{Username: "jane", PasswordHash: string(userHash), Name: "Jane Doe", Role: "business-manager", BusinessUnit: "leasing", IsActive: true},
		{Username: "mike", PasswordHash: string(userHash), Name: "Mike Johnson", Role: "user", BusinessUnit: "abattoir", IsActive: true},
	}

	err = db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(&users).Error
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	return nil
}

func seedTasks(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Task{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if count > 0 {
		return nil
	}

	var admin, john, jane models.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		return fmt.Errorf("failed to load seed users: %w", err)
	}
	if err := db.Where("username = ?", "john").First(&john).Error; err != nil {
		return fmt.Errorf("failed to load seed users: %w", err)
	}
	if err := db.Where("username = ?", "jane").First(&jane).Error; err != nil {
		return fmt.Errorf("failed to load seed users: %w", err)
	}

	now := time.Now()
	week := now.Add(7 * 24 * time.Hour)

	tasks := []models.Task{
		{
			Title:       "Welcome to the kanban board!",
			Description: "This is your first task. You can drag it between columns or use the buttons below.",
			Status:      models.TaskStatusTodo,
			Priority:    models.TaskPriorityMedium,
			AssigneeID:  &admin.ID,
			CreatedByID: admin.ID,
			DueDate:     &week,
		},
		{
			Title:       "Set up the database",
			Description: "Connect the application to PostgreSQL for persistent storage.",
			Status:      models.TaskStatusDone,
			Priority:    models.TaskPriorityHigh,
			AssigneeID:  &admin.ID,
			CreatedByID: admin.ID,
			CompletedAt: &now,
		},
		{
			Title:       "Test drag and drop functionality",
			Description: "Make sure tasks can be moved between columns smoothly.",
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityMedium,
			AssigneeID:  &john.ID,
			CreatedByID: admin.ID,
		},
		{
			Title:       "Review user permissions",
			Description: "Ensure users can only see and modify appropriate tasks.",
			Status:      models.TaskStatusReview,
			Priority:    models.TaskPriorityHigh,
			AssigneeID:  &jane.ID,
			CreatedByID: admin.ID,
		},
	}

	if err := db.Create(&tasks).Error; err != nil {
		return fmt.Errorf("failed to seed tasks: %w", err)
	}
	return nil
}
