package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"product-catalog/internal/config"
	"product-catalog/internal/database"
	"product-catalog/internal/handlers"
	"product-catalog/internal/repository"
	"product-catalog/internal/routes"
	"product-catalog/internal/upload"
)

func main() {
	cfg := config.LoadConfig()
	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	if err := database.EnsureIndexes(db); err != nil {
		log.Fatal("❌ Could not create indexes:", err)
	}

	saver, err := upload.NewSaver(cfg.UploadDir)
	if err != nil {
		log.Fatal("❌ Could not prepare upload dir:", err)
	}

	repo := repository.NewProductRepository(db.Collection("products"))
	h := handlers.NewProductHandler(repo, saver)

	router := gin.Default()
	routes.RegisterRoutes(router, h, cfg.CORSOrigin, cfg.UploadDir)

	log.Println("🚀 Server running on port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("❌ Server stopped:", err)
	}
}
