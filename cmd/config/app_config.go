package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"nutrilog/internal/api/handlers"
	"nutrilog/internal/api/routes"
	"nutrilog/internal/middleware"
	"nutrilog/internal/utils"
	"nutrilog/internal/utils/storage"
	"nutrilog/pkg/catalog"
	"nutrilog/pkg/diary"
	"nutrilog/pkg/gemini"
	"nutrilog/pkg/jwt"
	"nutrilog/pkg/recipe"
	"nutrilog/pkg/target"
	"nutrilog/pkg/user"
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
		TimeZone:   "Local",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	ai := gemini.NewClient()

	// Repository
	userRepository := user.NewUserRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	diaryRepository := diary.NewDiaryRepository(db)
	targetRepository := target.NewTargetRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	catalogService := catalog.NewCatalogService(catalogRepository, ai, s3)
	diaryService := diary.NewDiaryService(diaryRepository)
	targetService := target.NewTargetService(targetRepository, diaryRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, catalogRepository, diaryRepository, ai)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService, validator)
	diaryHandler := handlers.NewDiaryHandler(diaryService, validator)
	targetHandler := handlers.NewTargetHandler(targetService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		CatalogHandler: catalogHandler,
		DiaryHandler:   diaryHandler,
		TargetHandler:  targetHandler,
		RecipeHandler:  recipeHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
