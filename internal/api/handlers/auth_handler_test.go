package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"receiptly/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	session    domain.Session
	err        error
	refreshErr error
	calls      int
}

func (s *stubAuthService) ExchangeCode(_ context.Context, _ string) (domain.Session, error) {
	s.calls++
	return s.session, s.err
}

func (s *stubAuthService) RefreshSession(_ context.Context, _ string) (domain.Session, error) {
	if s.refreshErr != nil {
		return domain.Session{}, s.refreshErr
	}
	return s.session, nil
}

func stubSession() domain.Session {
	return domain.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    3600,
		User: domain.ProviderUser{
			ID:    "5f8b9a3e-54a1-4f6b-9a3e-000000000001",
			Email: "user@example.com",
		},
	}
}

func newAuthApp(svc *stubAuthService) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(svc)
	app.Get("/auth", h.AuthPage)
	app.Get("/auth/callback", h.Callback)
	app.Get("/auth/auth-code-error", h.AuthCodeErrorPage)
	return app
}

func TestCallbackNoCode(t *testing.T) {
	svc := &stubAuthService{session: stubSession()}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/auth/callback", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/auth-code-error", resp.Header.Get("Location"))
	assert.Zero(t, svc.calls)
}

func TestCallbackExchangesAndRedirects(t *testing.T) {
	svc := &stubAuthService{session: stubSession()}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/auth/callback?code=abc&next=/dashboard", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "http://example.com/dashboard", resp.Header.Get("Location"))
	assert.Equal(t, 1, svc.calls)

	cookies := resp.Header.Values("Set-Cookie")
	joined := strings.Join(cookies, "; ")
	assert.Contains(t, joined, domain.CookieAccessToken+"=access-token")
	assert.Contains(t, joined, domain.CookieRefreshToken+"=refresh-token")
}

func TestCallbackDefaultsNextToRoot(t *testing.T) {
	svc := &stubAuthService{session: stubSession()}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/auth/callback?code=abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "http://example.com/", resp.Header.Get("Location"))
}

func TestCallbackRejectsUnrootedNext(t *testing.T) {
	svc := &stubAuthService{session: stubSession()}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/auth/callback?code=abc&next=https://evil.example", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/", resp.Header.Get("Location"))
}

func TestCallbackExchangeFailure(t *testing.T) {
	svc := &stubAuthService{err: domain.ErrCodeExchangeFailed}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodGet, "http://example.com/auth/callback?code=stale", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/auth-code-error", resp.Header.Get("Location"))
	assert.Empty(t, resp.Header.Values("Set-Cookie"))
}

func TestAuthPages(t *testing.T) {
	app := newAuthApp(&stubAuthService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "http://example.com/auth", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, `url=/`)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "http://example.com/auth/auth-code-error", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body = readBody(t, resp)
	assert.Contains(t, body, `<a href="/">`)
}
