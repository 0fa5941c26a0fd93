package main

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/TV3ntu/nova-crm-backend/app/config"
	"github.com/TV3ntu/nova-crm-backend/app/database"
	"github.com/TV3ntu/nova-crm-backend/app/models"
	"github.com/TV3ntu/nova-crm-backend/app/routes/auth"
)

// Applies the schema and optionally seeds an admin user when
// ADMIN_EMAIL and ADMIN_PASSWORD are set.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitDB()
	defer config.GetDB().Close()

	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Println("Migrations completed successfully")

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	existing, err := database.GetUserByEmail(config.GetDB(), email)
	if err == nil && existing != nil {
		log.Printf("Admin user %s already exists, skipping seed", email)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Password:  hash,
		FirstName: "Admin",
		LastName:  "User",
	}
	if err := database.CreateUser(config.GetDB(), user); err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Printf("Seeded admin user %s", email)
}
