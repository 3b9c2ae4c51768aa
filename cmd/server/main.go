package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plateful/internal/api"
	"plateful/internal/config"
	"plateful/internal/repository/mongo"
	"plateful/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Plateful server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureRecipeIndexes(ctx, appDB.Collection("recipes"))
		mongo.EnsureRestaurantIndexes(ctx, appDB.Collection("restaurants"))
		mongo.EnsureMealPlanIndexes(ctx, appDB.Collection("meal_plans"))
		mongo.EnsureUsageIndexes(ctx, appDB.Collection("recipe_usage"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	recipeRepo := mongo.NewMongoRecipeRepository(appDB)
	restaurantRepo := mongo.NewMongoRestaurantRepository(appDB)
	mealPlanRepo := mongo.NewMongoMealPlanRepository(appDB)
	usageRepo := mongo.NewMongoUsageRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	recipeService := service.NewRecipeService(recipeRepo)
	restaurantService := service.NewRestaurantService(restaurantRepo)
	usageService := service.NewUsageService(usageRepo, recipeRepo)
	recommendationService := service.NewRecommendationService(recipeRepo, usageRepo, mealPlanRepo)
	mealPlanService := service.NewMealPlanService(mealPlanRepo, recipeRepo, usageService)
	previewService := service.NewPreviewService()

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, recipeService, restaurantService, mealPlanService,
		recommendationService, usageService, previewService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
