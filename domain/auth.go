package domain

import (
	"errors"
)

const (
	// Cookie names for the provider-issued session tokens.
	CookieAccessToken  = "rcpt-access-token"
	CookieRefreshToken = "rcpt-refresh-token"

	// Where the callback sends the browser when the exchange cannot complete.
	AuthErrorPath = "/auth/auth-code-error"
)

var (
	MessageFailedExchangeCode = "failed to exchange authorization code"
	MessageFailedRefresh      = "failed to refresh session"

	ErrCodeExchangeFailed  = errors.New("authorization code exchange failed")
	ErrSessionRefreshFail  = errors.New("session refresh failed")
	ErrProviderUnreachable = errors.New("auth provider unreachable")
)

type (
	// Session is what the provider returns for a code exchange or refresh.
	Session struct {
		AccessToken  string       `json:"access_token"`
		RefreshToken string       `json:"refresh_token"`
		ExpiresIn    int          `json:"expires_in"`
		TokenType    string       `json:"token_type"`
		User         ProviderUser `json:"user"`
	}

	ProviderUser struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		FullName string `json:"full_name,omitempty"`
	}

	// SessionUser is the request-scoped identity resolved from the cookies.
	SessionUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
)
