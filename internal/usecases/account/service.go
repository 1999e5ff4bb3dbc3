package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/credentials"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// DefaultClientStatuses is used when the caller asks for no specific status.
var DefaultClientStatuses = []string{"ACTIVE"}

// AccountService lists what an Allegro account can advertise with, so
// operators can pick the ads client and ad groups a schedule targets.
type AccountService interface {
	ListAdsClients(ctx context.Context, accountID string, statuses []string) ([]domain.AdsClient, error)
	ListSponsoredOffers(ctx context.Context, accountID, adsClientID string, filters domain.OfferFilters) ([]domain.SponsoredOffer, error)
	ListAdGroups(ctx context.Context, accountID, adsClientID string) ([]domain.AdGroup, error)
}

type Service struct {
	tokens  credentials.TokenManager
	allegro allegro.AllegroIntegrator
}

func NewService(tokens credentials.TokenManager, allegroService allegro.AllegroIntegrator) AccountService {
	return &Service{
		tokens:  tokens,
		allegro: allegroService,
	}
}

func (s *Service) token(ctx context.Context, accountID string) (string, error) {
	if accountID == "" {
		return "", NewAccountError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "", "")
	}

	token, err := s.tokens.GetValidToken(ctx, accountID)
	if err != nil {
		var credErr *credentials.CredentialError
		if errors.As(err, &credErr) {
			return "", NewAccountError(err, credErr.Code, accountID, "")
		}
		return "", NewAccountError(err, apiErrors.ErrInternalServer, accountID, "")
	}

	return token, nil
}

func (s *Service) ListAdsClients(ctx context.Context, accountID string, statuses []string) ([]domain.AdsClient, error) {
	token, err := s.token(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if len(statuses) == 0 {
		statuses = DefaultClientStatuses
	}

	clients, err := s.allegro.GetAllClients(ctx, token, statuses)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err,
		}).Error("failed to list ads clients")
		return nil, NewAccountError(fmt.Errorf("%w: %w", ErrAllegroIntegration, err), apiErrors.ErrExternalService, accountID, "failed to list ads clients")
	}

	return clients, nil
}

func (s *Service) ListSponsoredOffers(ctx context.Context, accountID, adsClientID string, filters domain.OfferFilters) ([]domain.SponsoredOffer, error) {
	if adsClientID == "" {
		return nil, NewAccountError(ErrAdsClientRequired, apiErrors.ErrMissingRequiredData, accountID, "")
	}

	token, err := s.token(ctx, accountID)
	if err != nil {
		return nil, err
	}

	offers, err := s.allegro.GetAllOffers(ctx, token, adsClientID, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":    accountID,
			"ads_client_id": adsClientID,
			"error":         err,
		}).Error("failed to list sponsored offers")
		return nil, NewAccountError(fmt.Errorf("%w: %w", ErrAllegroIntegration, err), apiErrors.ErrExternalService, accountID, "failed to list sponsored offers")
	}

	return offers, nil
}

func (s *Service) ListAdGroups(ctx context.Context, accountID, adsClientID string) ([]domain.AdGroup, error) {
	if adsClientID == "" {
		return nil, NewAccountError(ErrAdsClientRequired, apiErrors.ErrMissingRequiredData, accountID, "")
	}

	token, err := s.token(ctx, accountID)
	if err != nil {
		return nil, err
	}

	adGroups, err := s.allegro.GetAllAdGroups(ctx, token, adsClientID)
	if err != nil {
		return nil, NewAccountError(fmt.Errorf("%w: %w", ErrAllegroIntegration, err), apiErrors.ErrExternalService, accountID, "failed to list ad groups")
	}

	return adGroups, nil
}
