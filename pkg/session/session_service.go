package session

import (
	"errors"
	"time"

	"receiptly/domain"
	"receiptly/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

type (
	// SessionService validates the access tokens minted by the hosted auth
	// provider. Tokens are HS256-signed with the project's shared secret, so
	// identity can be established without a network round trip.
	SessionService interface {
		ValidateAccessToken(token string) (domain.SessionUser, error)
	}

	sessionClaims struct {
		Email string `json:"email"`
		jwt.RegisteredClaims
	}

	sessionService struct {
		secretKey string
	}
)

func getSecretKey() string {
	utils.LoadConfig()
	return utils.GetConfig("AUTH_JWT_SECRET")
}

func NewSessionService() SessionService {
	return NewSessionServiceWithSecret(getSecretKey())
}

func NewSessionServiceWithSecret(secret string) SessionService {
	return &sessionService{secretKey: secret}
}

func (s *sessionService) parseToken(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, domain.ErrTokenInvalid
	}
	return []byte(s.secretKey), nil
}

func (s *sessionService) ValidateAccessToken(token string) (domain.SessionUser, error) {
	if token == "" {
		return domain.SessionUser{}, domain.ErrTokenNotFound
	}

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, s.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.SessionUser{}, domain.ErrTokenExpired
		}
		return domain.SessionUser{}, domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return domain.SessionUser{}, domain.ErrTokenInvalid
	}

	claims := parsed.Claims.(*sessionClaims)
	if claims.Subject == "" {
		return domain.SessionUser{}, domain.ErrTokenInvalid
	}

	return domain.SessionUser{
		ID:    claims.Subject,
		Email: claims.Email,
	}, nil
}

// SetCookies stores the provider session on the response. Cookies carry the
// tokens only; nothing else about the session is kept server side.
func SetCookies(c *fiber.Ctx, session domain.Session) {
	expires := time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)

	c.Cookie(&fiber.Cookie{
		Name:     domain.CookieAccessToken,
		Value:    session.AccessToken,
		Expires:  expires,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     domain.CookieRefreshToken,
		Value:    session.RefreshToken,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
