package auth

import (
	"context"
	"errors"
	"testing"

	"receiptly/domain"
	"receiptly/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	session domain.Session
	err     error
}

func (f *fakeGateway) ExchangeCode(_ context.Context, _ string) (domain.Session, error) {
	return f.session, f.err
}

func (f *fakeGateway) RefreshSession(_ context.Context, _ string) (domain.Session, error) {
	return f.session, f.err
}

func (f *fakeGateway) GetUser(_ context.Context, _ string) (domain.ProviderUser, error) {
	return f.session.User, f.err
}

type recordingProfileRepository struct {
	upserted  *entities.Profile
	upsertErr error
}

func (r *recordingProfileRepository) Upsert(_ context.Context, profile *entities.Profile) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserted = profile
	return nil
}

func (r *recordingProfileRepository) GetByID(_ context.Context, _ string) (*entities.Profile, error) {
	if r.upserted == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.upserted, nil
}

func providerSession() domain.Session {
	return domain.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresIn:    3600,
		User: domain.ProviderUser{
			ID:       "5f8b9a3e-54a1-4f6b-9a3e-000000000001",
			Email:    "user@example.com",
			FullName: "Test User",
		},
	}
}

func TestExchangeCodeMirrorsProfile(t *testing.T) {
	profiles := &recordingProfileRepository{}
	service := NewAuthService(&fakeGateway{session: providerSession()}, profiles)

	session, err := service.ExchangeCode(context.Background(), "code-1")
	require.NoError(t, err)

	assert.Equal(t, "access-token", session.AccessToken)
	require.NotNil(t, profiles.upserted)
	assert.Equal(t, "user@example.com", profiles.upserted.Email)
	assert.Equal(t, "Test User", profiles.upserted.FullName)
	assert.Equal(t, session.User.ID, profiles.upserted.ID.String())
}

func TestExchangeCodeGatewayFailure(t *testing.T) {
	service := NewAuthService(&fakeGateway{err: domain.ErrCodeExchangeFailed}, &recordingProfileRepository{})

	_, err := service.ExchangeCode(context.Background(), "code-1")
	assert.ErrorIs(t, err, domain.ErrCodeExchangeFailed)
}

func TestExchangeCodeBadUserID(t *testing.T) {
	session := providerSession()
	session.User.ID = "not-a-uuid"
	service := NewAuthService(&fakeGateway{session: session}, &recordingProfileRepository{})

	_, err := service.ExchangeCode(context.Background(), "code-1")
	assert.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestRefreshSessionToleratesMirrorFailure(t *testing.T) {
	profiles := &recordingProfileRepository{upsertErr: errors.New("db down")}
	service := NewAuthService(&fakeGateway{session: providerSession()}, profiles)

	session, err := service.RefreshSession(context.Background(), "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "access-token", session.AccessToken)
}
