package db

import (
	"log"
	"os"

	"quill/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=quill port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed initial groups
	seedGroups()
}

// Migrate applies the schema. Shared with the test setup, which runs
// against an in-memory sqlite instead of postgres.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
}

func seedGroups() {
	// Groups are admin-curated; ship a default set so the group pages work
	// out of the box.
	var count int64
	DB.Model(&models.Group{}).Count(&count)
	if count > 0 {
		log.Println("Groups already seeded, skipping")
		return
	}

	groups := []models.Group{
		{Title: "General", Slug: "general", Description: "Anything that fits nowhere else"},
		{Title: "Tech", Slug: "tech", Description: "Programming, tools and hardware"},
		{Title: "Travel", Slug: "travel", Description: "Trip reports and photos"},
		{Title: "Books", Slug: "books", Description: "Reading notes and reviews"},
	}

	for _, group := range groups {
		if err := DB.Create(&group).Error; err != nil {
			log.Printf("Failed to create group %s: %v", group.Slug, err)
		}
	}
	log.Println("Initial groups created successfully")
}
