package main

import (
	"log"
	"net/http"

	"tasktrail/tasktrail/config"
	"tasktrail/tasktrail/database"
	"tasktrail/tasktrail/middleware"
	"tasktrail/tasktrail/routes"
	"tasktrail/tasktrail/services"
	"tasktrail/tasktrail/templates"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := services.NewAuthService(cfg.AppPassword, cfg.SessionSecret, cfg.SessionExpirationHours)
	services.AuthServiceInstance = authService

	streamService := services.NewStreamService()
	services.StreamServiceInstance = streamService
	streamService.Start()
	defer streamService.Stop()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.SetHTMLTemplate(templates.Load())

	routes.RegisterAuthRoutes(router, authService)

	authorized := router.Group("/", middleware.AuthMiddleware(authService))
	routes.RegisterTaskRoutes(authorized, db, services.TaskServiceInstance, services.EventServiceInstance)
	routes.RegisterActivityRoutes(authorized, db, services.EventServiceInstance, services.UndoServiceInstance, streamService)

	log.Printf("Task server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
