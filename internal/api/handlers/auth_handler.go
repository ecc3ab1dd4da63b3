package handlers

import (
	"strings"

	"receiptly/domain"
	"receiptly/pkg/auth"
	"receiptly/pkg/session"

	"github.com/gofiber/fiber/v2"
)

type (
	AuthHandler interface {
		Callback(c *fiber.Ctx) error
		AuthPage(c *fiber.Ctx) error
		AuthCodeErrorPage(c *fiber.Ctx) error
	}

	authHandler struct {
		authService auth.AuthService
	}
)

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &authHandler{authService: authService}
}

// Callback redeems the provider's authorization code for a session. Success
// and failure both surface as redirects only; a single failed exchange is
// terminal for the request.
func (h *authHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	next := c.Query("next", "/")
	if !strings.HasPrefix(next, "/") {
		next = "/"
	}

	if code == "" {
		return c.Redirect(domain.AuthErrorPath, fiber.StatusFound)
	}

	sess, err := h.authService.ExchangeCode(c.Context(), code)
	if err != nil {
		return c.Redirect(domain.AuthErrorPath, fiber.StatusFound)
	}

	session.SetCookies(c, sess)
	return c.Redirect(c.BaseURL()+next, fiber.StatusFound)
}

func (h *authHandler) AuthPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!DOCTYPE html>
<html>
<head>
<meta http-equiv="refresh" content="0; url=/">
<title>Receiptly</title>
</head>
<body>
<p>Redirecting&hellip;</p>
</body>
</html>`)
}

func (h *authHandler) AuthCodeErrorPage(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(`<!DOCTYPE html>
<html>
<head>
<title>Sign-in problem - Receiptly</title>
</head>
<body>
<h1>Something went wrong signing you in</h1>
<p>The sign-in link was missing or has already been used. Please try again.</p>
<p><a href="/">Back to home</a></p>
</body>
</html>`)
}
