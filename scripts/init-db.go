package main

import (
	"fmt"
	"log"

	"github.com/nimamdd/medident/internal/config"
	"github.com/nimamdd/medident/internal/database"
	"github.com/nimamdd/medident/internal/migrations"
	"github.com/nimamdd/medident/internal/models"
	"github.com/nimamdd/medident/internal/repository"

	"gorm.io/gorm"
)

// Development reset: drops everything, recreates the schema and seeds a
// sample catalog. Never run this against a database with real orders.
func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.DailySales{},
		&models.CheckoutItem{},
		&models.Checkout{},
		&models.Order{},
		&models.ProductReview{},
		&models.ProductSpec{},
		&models.ProductImage{},
		&models.Product{},
		&models.Category{},
		&models.User{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	if err := migrations.RunMigrations(db, cfg.AdminPhone); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Println("Seeding sample catalog...")
	if err := seedCatalog(db); err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	fmt.Println("Database initialized successfully!")
}

func seedCatalog(db *gorm.DB) error {
	store := repository.NewStore(db)

	category, err := store.Categories().GetBySlug("consumables")
	if err != nil {
		return err
	}

	stock := func(n int) *int { return &n }
	products := []models.Product{
		{
			Slug:             "dental-composite-a2",
			Title:            "Dental Composite A2",
			ShortDescription: "Light-cure universal composite, shade A2.",
			SKU:              "CMP-A2",
			Brand:            "DentFill",
			CategoryID:       category.ID,
			PriceToman:       850000,
			InStock:          true,
			StockQuantity:    stock(40),
		},
		{
			Slug:             "nitrile-gloves-m",
			Title:            "Nitrile Gloves (M)",
			ShortDescription: "Powder-free examination gloves, box of 100.",
			SKU:              "GLV-M",
			Brand:            "SafeHands",
			CategoryID:       category.ID,
			PriceToman:       320000,
			InStock:          true,
			StockQuantity:    stock(200),
		},
		{
			Slug:             "led-curing-light",
			Title:            "LED Curing Light",
			ShortDescription: "Cordless LED curing unit, 1500 mW/cm2.",
			SKU:              "CUR-LED",
			Brand:            "BrightCure",
			CategoryID:       category.ID,
			PriceToman:       12500000,
			InStock:          true,
		},
	}

	for i := range products {
		if err := store.Products().Create(&products[i]); err != nil {
			return err
		}
	}

	log.Printf("Seeded %d sample products", len(products))
	return nil
}
