package routes

import (
	"receiptly/internal/api/handlers"
	"receiptly/internal/middleware"
	"receiptly/pkg/auth"
	"receiptly/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	AuthHandler    handlers.AuthHandler
	ReceiptHandler handlers.ReceiptHandler
	Middleware     middleware.Middleware
	SessionService session.SessionService
	AuthService    auth.AuthService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Receipts()
	c.GuestRoute()
}

func (c *Config) Auth() {
	authGroup := c.App.Group("/auth")
	{
		authGroup.Get("/", c.AuthHandler.AuthPage)
		authGroup.Get("/callback", c.AuthHandler.Callback)
		authGroup.Get("/auth-code-error", c.AuthHandler.AuthCodeErrorPage)
	}
}

func (c *Config) Receipts() {
	api := c.App.Group("/api", c.Middleware.AuthMiddleware(c.SessionService, c.AuthService))

	api.Get("/check-receipts", c.ReceiptHandler.CheckReceipts)
	api.Post("/receipts", c.ReceiptHandler.UploadReceipt)
	api.Get("/receipts/:id", c.ReceiptHandler.GetReceiptDetails)
	api.Delete("/receipts/:id", c.ReceiptHandler.DeleteReceipt)
}

func (c *Config) GuestRoute() {
	c.App.Get("/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
