package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"receiptly/domain"
)

type (
	// AuthGateway talks to the hosted auth provider's REST API. The provider
	// owns the whole credential lifecycle; this client only redeems codes,
	// refreshes sessions and reads the user behind a token.
	AuthGateway interface {
		ExchangeCode(ctx context.Context, code string) (domain.Session, error)
		RefreshSession(ctx context.Context, refreshToken string) (domain.Session, error)
		GetUser(ctx context.Context, accessToken string) (domain.ProviderUser, error)
	}

	authGateway struct {
		baseURL string
		anonKey string
		client  *http.Client
	}
)

func NewAuthGateway(baseURL, anonKey string) AuthGateway {
	return &authGateway{
		baseURL: baseURL,
		anonKey: anonKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (g *authGateway) ExchangeCode(ctx context.Context, code string) (domain.Session, error) {
	body := map[string]string{"auth_code": code}
	return g.tokenRequest(ctx, "pkce", body)
}

func (g *authGateway) RefreshSession(ctx context.Context, refreshToken string) (domain.Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	return g.tokenRequest(ctx, "refresh_token", body)
}

func (g *authGateway) tokenRequest(ctx context.Context, grantType string, body map[string]string) (domain.Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return domain.Session{}, err
	}

	url := fmt.Sprintf("%s/auth/v1/token?grant_type=%s", g.baseURL, grantType)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return domain.Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", g.anonKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Session{}, domain.ErrProviderUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		if grantType == "refresh_token" {
			return domain.Session{}, fmt.Errorf("%w: %s - %s", domain.ErrSessionRefreshFail, resp.Status, string(bodyBytes))
		}
		return domain.Session{}, fmt.Errorf("%w: %s - %s", domain.ErrCodeExchangeFailed, resp.Status, string(bodyBytes))
	}

	var session domain.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return domain.Session{}, err
	}
	if session.AccessToken == "" {
		return domain.Session{}, domain.ErrCodeExchangeFailed
	}

	return session, nil
}

func (g *authGateway) GetUser(ctx context.Context, accessToken string) (domain.ProviderUser, error) {
	url := fmt.Sprintf("%s/auth/v1/user", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.ProviderUser{}, err
	}
	req.Header.Set("apikey", g.anonKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.ProviderUser{}, domain.ErrProviderUnreachable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.ProviderUser{}, domain.ErrTokenInvalid
	}

	var user domain.ProviderUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return domain.ProviderUser{}, err
	}
	return user, nil
}
