package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"nutrilog/entities"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.CatalogItem{}); err != nil {
		log.Fatalf("Error migrating catalog item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.LogEntry{}); err != nil {
		log.Fatalf("Error migrating log entry database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.NutritionTarget{}); err != nil {
		log.Fatalf("Error migrating nutrition target database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.RecipeDraft{}, &entities.DraftIngredient{}); err != nil {
		log.Fatalf("Error migrating recipe draft database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
