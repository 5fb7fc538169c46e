// File: /database/database.go
package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"dealertrack-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Car{},
		&models.Match{},
		&models.Salesperson{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Add custom indexes for better performance
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Stock view filters on status + stock location
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_cars_status_location ON cars(status, stock_location)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for cars status: %v\n", err)
	}

	// Sales reporting scans matches by status and sale date
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_matches_status_sale_date ON matches(status, sale_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for matches: %v\n", err)
	}

	return nil
}

// SeedData populates the database with a default executive account and the
// initial salesperson roster so a fresh install is usable.
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash default password: %w", err)
		}

		admin := models.User{
			ID:       "user-exec-1",
			Username: "executive",
			Password: string(hashed),
			Name:     "Default Executive",
			Role:     models.RoleExecutive,
		}
		if err := db.Create(&admin).Error; err != nil {
			fmt.Printf("Warning: Could not create default executive: %v\n", err)
		}
	}

	var salespersonCount int64
	db.Model(&models.Salesperson{}).Count(&salespersonCount)

	if salespersonCount == 0 {
		seedSalespersons := []models.Salesperson{
			{ID: "sp-1", Name: "Alice Wong", Active: true},
			{ID: "sp-2", Name: "Ben Carter", Active: true},
		}
		for _, sp := range seedSalespersons {
			if err := db.Create(&sp).Error; err != nil {
				fmt.Printf("Warning: Could not create salesperson %s: %v\n", sp.Name, err)
			}
		}
	}

	return nil
}
