package config

import (
	"os"
	"time"

	"receiptly/internal/api/handlers"
	"receiptly/internal/api/routes"
	"receiptly/internal/middleware"
	"receiptly/internal/utils"
	"receiptly/internal/utils/storage"
	"receiptly/pkg/auth"
	"receiptly/pkg/receipt"
	"receiptly/pkg/session"

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
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	profileRepository := auth.NewProfileRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)

	// Service
	sessionService := session.NewSessionService()
	authGateway := auth.NewAuthGateway(
		utils.GetConfig("AUTH_URL"),
		utils.GetConfig("AUTH_ANON_KEY"),
	)
	authService := auth.NewAuthService(authGateway, profileRepository)
	receiptService := receipt.NewReceiptService(receiptRepository, profileRepository, s3)

	// Handler
	authHandler := handlers.NewAuthHandler(authService)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		AuthHandler:    authHandler,
		ReceiptHandler: receiptHandler,
		Middleware:     middlewares,
		SessionService: sessionService,
		AuthService:    authService,
	}
	routesConfig.Setup()
	return app, nil
}
