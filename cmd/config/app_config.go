package config

import (
	"os"
	"time"

	"freshtrack-backend/internal/api/handlers"
	"freshtrack-backend/internal/api/routes"
	"freshtrack-backend/internal/middleware"
	"freshtrack-backend/internal/utils"
	"freshtrack-backend/internal/utils/storage"
	"freshtrack-backend/pkg/jwt"
	"freshtrack-backend/pkg/pantry"
	"freshtrack-backend/pkg/recipe"
	"freshtrack-backend/pkg/user"
	"freshtrack-backend/pkg/vision"
	"freshtrack-backend/pkg/waste"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "UTC",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	pantryRepository := pantry.NewPantryRepository(db)
	wasteRepository := waste.NewWasteRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	pantryService := pantry.NewPantryService(pantryRepository, s3)
	wasteService := waste.NewWasteService(wasteRepository)
	recipeService := recipe.NewRecipeService()
	visionService := vision.NewVisionService(vision.NewSignalExtractor())

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	statsHandler := handlers.NewStatsHandler(wasteService)
	aiHandler := handlers.NewAIHandler(recipeService, visionService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		UserHandler:   userHandler,
		PantryHandler: pantryHandler,
		StatsHandler:  statsHandler,
		AIHandler:     aiHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
