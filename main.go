package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ristorante/config"
	"ristorante/database"
	"ristorante/route"
	"ristorante/storage"
)

func main() {
	cfg := config.Load()

	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	var db *gorm.DB
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, database routes will fail")
	} else {
		var err error
		db, err = database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		log.Println("Database connected and migrated")
	}

	var store storage.Store
	if cfg.UploadDir == "" {
		log.Println("Warning: UPLOAD_DIR not set, image routes will fail")
	} else {
		disk, err := storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("Failed to open image store: %v", err)
		}
		store = disk
		log.Printf("Image store at %s", cfg.UploadDir)
	}

	if cfg.AdminToken == "" {
		log.Println("Warning: ADMIN_TOKEN not set, admin routes will reject every request")
	}

	// Initialize router
	router := gin.Default()

	// Configure CORS
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
	}))
	log.Println("CORS configured")

	route.Register(router, db, store, cfg.AdminToken)
	log.Println("Routes configured successfully")

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
