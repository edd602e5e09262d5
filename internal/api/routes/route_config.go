package routes

import (
	"github.com/gofiber/fiber/v2"

	"nutrilog/internal/api/handlers"
	"nutrilog/internal/middleware"
	"nutrilog/pkg/jwt"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	CatalogHandler handlers.CatalogHandler
	DiaryHandler   handlers.DiaryHandler
	TargetHandler  handlers.TargetHandler
	RecipeHandler  handlers.RecipeHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Catalog()
	c.Diary()
	c.Targets()
	c.Recipes()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Catalog() {
	items := c.App.Group("/api/v1/catalog-items", c.Middleware.AuthMiddleware(c.JWTService))

	items.Post("", c.CatalogHandler.AddItem)
	items.Get("", c.CatalogHandler.GetItems)
	items.Get("/:id", c.CatalogHandler.GetItemDetails)
	items.Put("/:id", c.CatalogHandler.UpdateItem)
	items.Delete("/:id", c.CatalogHandler.DeleteItem)
	items.Post("/photo", c.CatalogHandler.UploadItemPhoto)
}

func (c *Config) Diary() {
	diary := c.App.Group("/api/v1/diary", c.Middleware.AuthMiddleware(c.JWTService))

	diary.Post("/entries", c.DiaryHandler.AddEntry)
	diary.Post("/entries/:id/copy", c.DiaryHandler.CopyEntry)
	diary.Put("/entries/:id", c.DiaryHandler.UpdateEntry)
	diary.Delete("/entries/:id", c.DiaryHandler.DeleteEntry)
	diary.Get("/day", c.DiaryHandler.GetDay)
	diary.Get("/summary", c.DiaryHandler.GetSummaryRange)
}

func (c *Config) Targets() {
	targets := c.App.Group("/api/v1/targets", c.Middleware.AuthMiddleware(c.JWTService))

	targets.Post("", c.TargetHandler.AddTarget)
	targets.Get("", c.TargetHandler.GetTargets)
	targets.Put("/:id", c.TargetHandler.UpdateTarget)
	targets.Delete("/:id", c.TargetHandler.DeleteTarget)
	targets.Get("/evaluate", c.TargetHandler.EvaluateDay)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))

	recipes.Post("/from-selection", c.RecipeHandler.CreateFromSelection)
	recipes.Post("/drafts", c.RecipeHandler.CreateDraft)
	recipes.Get("/drafts/:id", c.RecipeHandler.GetDraft)
	recipes.Post("/drafts/:id/ingredients/:ingredient_id/retry", c.RecipeHandler.RetryIngredient)
	recipes.Delete("/drafts/:id/ingredients/:ingredient_id", c.RecipeHandler.DeleteIngredient)
	recipes.Post("/drafts/:id/finalize", c.RecipeHandler.FinalizeDraft)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
