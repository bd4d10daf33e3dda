package routes

import (
	"freshtrack-backend/internal/api/handlers"
	"freshtrack-backend/internal/middleware"
	"freshtrack-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App           *fiber.App
	UserHandler   handlers.UserHandler
	PantryHandler handlers.PantryHandler
	StatsHandler  handlers.StatsHandler
	AIHandler     handlers.AIHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Health()
	c.Auth()
	c.Pantry()
	c.Stats()
	c.AI()
}

func (c *Config) Health() {
	c.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/v1/auth")
	{
		auth.Post("/signup", c.UserHandler.Register)
		auth.Post("/login", c.UserHandler.Login)
		auth.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Pantry() {
	pantry := c.App.Group("/api/v1/pantry")
	{
		pantry.Get("/items", c.PantryHandler.GetPantryItems)
		pantry.Post("/items", c.PantryHandler.AddPantryItem)
		pantry.Put("/items/:id", c.PantryHandler.UpdatePantryItem)
		pantry.Delete("/items/:id", c.PantryHandler.DeletePantryItem)
		pantry.Post("/items/:id/image", c.PantryHandler.UploadItemImage)
	}
}

func (c *Config) Stats() {
	stats := c.App.Group("/api/v1/stats")
	{
		stats.Get("/waste", c.StatsHandler.GetWasteStats)
		stats.Get("/waste/enhanced", c.StatsHandler.GetEnhancedWasteStats)
	}
}

func (c *Config) AI() {
	ai := c.App.Group("/api/v1/ai")
	{
		ai.Post("/recipes", c.AIHandler.GetRecipes)
		ai.Post("/freshness", c.AIHandler.AnalyzeFreshness)
		ai.Post("/recognize", c.AIHandler.RecognizeFood)
	}
}
