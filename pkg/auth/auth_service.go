package auth

import (
	"context"
	"log"

	"receiptly/domain"
	"receiptly/entities"

	"github.com/google/uuid"
)

type (
	AuthService interface {
		ExchangeCode(ctx context.Context, code string) (domain.Session, error)
		RefreshSession(ctx context.Context, refreshToken string) (domain.Session, error)
	}

	authService struct {
		gateway           AuthGateway
		profileRepository ProfileRepository
	}
)

func NewAuthService(gateway AuthGateway, profileRepository ProfileRepository) AuthService {
	return &authService{
		gateway:           gateway,
		profileRepository: profileRepository,
	}
}

func (s *authService) ExchangeCode(ctx context.Context, code string) (domain.Session, error) {
	session, err := s.gateway.ExchangeCode(ctx, code)
	if err != nil {
		return domain.Session{}, err
	}

	if err := s.mirrorProfile(ctx, session.User); err != nil {
		return domain.Session{}, err
	}

	return session, nil
}

func (s *authService) RefreshSession(ctx context.Context, refreshToken string) (domain.Session, error) {
	session, err := s.gateway.RefreshSession(ctx, refreshToken)
	if err != nil {
		return domain.Session{}, err
	}

	// Refresh does not have to block on the mirror being current.
	if err := s.mirrorProfile(ctx, session.User); err != nil {
		log.Printf("profile mirror update failed: %v", err)
	}

	return session, nil
}

func (s *authService) mirrorProfile(ctx context.Context, user domain.ProviderUser) error {
	userUUID, err := uuid.Parse(user.ID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.profileRepository.Upsert(ctx, &entities.Profile{
		ID:       userUUID,
		Email:    user.Email,
		FullName: user.FullName,
	})
}
