package main

import (
	"fmt"
	"log"
	"net/http"

	"aqi-prediction-api/config"
	"aqi-prediction-api/handlers"
	"aqi-prediction-api/middleware"
	"aqi-prediction-api/models"
	"aqi-prediction-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get sql db handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := db.AutoMigrate(&models.Prediction{}, &models.User{}); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	// Model assets are required; the API is useless without them.
	model, err := services.LoadModel(cfg.Model.ModelPath)
	if err != nil {
		log.Fatalf("Failed to load model: %v", err)
	}
	states, err := services.LoadVocabulary(cfg.Model.StateVocabPath)
	if err != nil {
		log.Fatalf("Failed to load state vocabulary: %v", err)
	}
	locations, err := services.LoadVocabulary(cfg.Model.LocationVocabPath)
	if err != nil {
		log.Fatalf("Failed to load location vocabulary: %v", err)
	}
	areaTypes, err := services.LoadVocabulary(cfg.Model.AreaTypeVocabPath)
	if err != nil {
		log.Fatalf("Failed to load area type vocabulary: %v", err)
	}
	log.Printf("model %s loaded: %d states, %d locations, %d area types",
		model.Version(), states.Size(), locations.Size(), areaTypes.Size())

	// Redis is optional: without it the API serves uncached and the
	// live feed is down, but predictions still work.
	cache, err := services.NewCacheService(cfg.Redis)
	if err != nil {
		log.Printf("Redis unavailable, running degraded: %v", err)
	}
	defer cache.Close()

	authService := services.NewAuthService()
	predictionService := services.NewPredictionService(db, cache, model, states, locations, areaTypes)

	predictionHandler := handlers.NewPredictionHandler(predictionService)
	dashboardHandler := handlers.NewDashboardHandler(db, cache)
	metadataHandler := handlers.NewMetadataHandler(predictionService)
	authHandler := handlers.NewAuthHandler(db, authService)

	router := gin.Default()
	router.Use(middleware.SetupCORS(cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/predict", predictionHandler.Predict)
	router.GET("/dashboard", dashboardHandler.GetDashboard)
	router.GET("/metadata", metadataHandler.GetMetadata)
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.GET("/ws/live", handlers.LiveWebSocket(cache))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
