package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/slugnest-dev/slugnest/db"
	"github.com/slugnest-dev/slugnest/internal/auth"
	"github.com/slugnest-dev/slugnest/internal/handlers"
	"github.com/slugnest-dev/slugnest/internal/mailer"
	"github.com/slugnest-dev/slugnest/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize JWT secret: %v", err)
	}

	dispatcher := mailer.NewFromEnv()
	defer dispatcher.Close()

	handlers.Mailer = dispatcher

	r := router.NewRouter()

	var port string

	if port = os.Getenv("PORT"); port == "" {
		port = "8000"
		log.Println("PORT not set, defaulting to 8000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
