package main

import (
	"log"
	"os"

	"classboard-be/internal/model"
	"classboard-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	SeedNotificationTypes(db)
	log.Println("Seeding completed.")
}

// SeedNotificationTypes populates the database with default notification types.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_LOGIN",
			DisplayName: "Login Activity",
			Template:    "You logged in from a new device",
			IsActive:    true,
		},
		{
			Code:        "USER_DELETED",
			DisplayName: "Account Deleted",
			Template:    "Your account has been deleted",
			IsActive:    true,
		},
		{
			Code:        "LESSON_CREATED",
			DisplayName: "Lesson Created",
			Template:    "You created a lesson: \"{lesson_name}\"",
			IsActive:    true,
		},
		{
			Code:        "LESSON_SAVE_FAILED",
			DisplayName: "Lesson Save Failed",
			Template:    "A lesson could not be saved: {error}",
			IsActive:    true,
		},
	}

	for _, t := range types {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "template", "is_active"}),
		}).Create(&t).Error
		if err != nil {
			log.Printf("Warn: Failed to seed notification type %s: %v", t.Code, err)
		}
	}

	log.Printf("Seeded %d notification types", len(types))
}
