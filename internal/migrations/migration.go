package migrations

import (
	"errors"
	"log"

	"github.com/nimamdd/medident/internal/database"
	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"

	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds default data. Tables are never
// dropped here; orders are financial records.
func RunMigrations(db *gorm.DB, adminPhone string) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := createDefaultData(db, adminPhone); err != nil {
		log.Printf("Warning: Failed to create default data: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultData(db *gorm.DB, adminPhone string) error {
	store := repository.NewStore(db)

	_, err := store.Users().GetByPhone(adminPhone)
	if err == nil {
		log.Println("Admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Creating admin user...")
	admin := &models.User{
		Phone:    adminPhone,
		FullName: "Medident Admin",
		Role:     string(models.RoleAdmin),
		IsActive: true,
	}
	if err := store.Users().Create(admin); err != nil {
		return err
	}
	log.Printf("Admin user created with phone %s", adminPhone)

	// Seed the base categories on a fresh database.
	categories, err := store.Categories().GetAll()
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		log.Println("Creating default categories...")
		defaults := []models.Category{
			{Slug: "consumables", Title: "Consumables"},
			{Slug: "instruments", Title: "Instruments"},
			{Slug: "equipment", Title: "Equipment"},
		}
		for i := range defaults {
			if err := store.Categories().Create(&defaults[i]); err != nil {
				return err
			}
		}
	}

	return nil
}
