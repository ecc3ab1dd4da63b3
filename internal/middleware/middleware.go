package middleware

import (
	"errors"

	"receiptly/domain"
	"receiptly/internal/api/presenters"
	"receiptly/pkg/auth"
	"receiptly/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(sessions session.SessionService, authService auth.AuthService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowCredentials: false,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	})
}

// AuthMiddleware resolves the caller from the provider session cookies. An
// expired access token is refreshed through the provider when a refresh
// cookie is present; everything else is a 401.
func (m *middleware) AuthMiddleware(sessions session.SessionService, authService auth.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := c.Cookies(domain.CookieAccessToken)
		refreshToken := c.Cookies(domain.CookieRefreshToken)

		if accessToken == "" && refreshToken == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		user, err := sessions.ValidateAccessToken(accessToken)
		if err != nil {
			if !errors.Is(err, domain.ErrTokenExpired) || refreshToken == "" {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
			}

			sess, refreshErr := authService.RefreshSession(c.Context(), refreshToken)
			if refreshErr != nil {
				return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedRefresh, domain.ErrTokenInvalid)
			}

			session.SetCookies(c, sess)
			user = domain.SessionUser{ID: sess.User.ID, Email: sess.User.Email}
		}

		c.Locals("user_id", user.ID)
		c.Locals("email", user.Email)
		return c.Next()
	}
}
