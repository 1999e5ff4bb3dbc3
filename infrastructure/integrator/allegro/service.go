package allegro

import (
	"context"

	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/allegroclient"
	allegrodomain "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/pagination"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_allegro_integrator.go -package=mocks

type AllegroIntegrator interface {
	GetAllAdGroups(ctx context.Context, token, adsClientID string) ([]domain.AdGroup, error)
	UpdateAdGroup(ctx context.Context, token, adsClientID, adGroupID string, update domain.AdGroupUpdate) error
	GetAllClients(ctx context.Context, token string, statuses []string) ([]domain.AdsClient, error)
	GetAllOffers(ctx context.Context, token, adsClientID string, filters domain.OfferFilters) ([]domain.SponsoredOffer, error)
}

type Integrator struct {
	cfg    *config.Config
	Client allegroclient.Client
}

func New(cfg *config.Config, client allegroclient.Client) AllegroIntegrator {
	return &Integrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *Integrator) GetAllAdGroups(ctx context.Context, token, adsClientID string) ([]domain.AdGroup, error) {
	opts := pagination.Options{
		Name:      "adgroups",
		PageSize:  s.cfg.Allegro.AdGroupsPageSize,
		MaxOffset: s.cfg.Allegro.AdGroupsMaxOffset,
	}

	adGroups, err := pagination.FetchAll(ctx, opts, func(ctx context.Context, offset, limit int) (pagination.Page[allegrodomain.AdGroup], error) {
		resp, err := s.Client.ListAdGroups(ctx, token, adsClientID, offset, limit)
		if err != nil {
			return pagination.Page[allegrodomain.AdGroup]{}, err
		}
		return pagination.Page[allegrodomain.AdGroup]{Items: resp.AdGroups, Count: resp.Count, TotalCount: resp.TotalCount}, nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ads_client_id": adsClientID,
			"error":         err.Error(),
		}).Error("allegro: failed to fetch ad groups")
		return nil, err
	}

	result := make([]domain.AdGroup, 0, len(adGroups))
	for _, adGroup := range adGroups {
		result = append(result, FactoryAdGroup(adGroup))
	}

	return result, nil
}

func (s *Integrator) UpdateAdGroup(ctx context.Context, token, adsClientID, adGroupID string, update domain.AdGroupUpdate) error {
	logrus.WithFields(logrus.Fields{
		"ads_client_id": adsClientID,
		"ad_group_id":   adGroupID,
	}).Debug("allegro: updating ad group")

	return s.Client.PatchAdGroup(ctx, token, adsClientID, adGroupID, FactoryAdGroupPatch(update))
}

func (s *Integrator) GetAllClients(ctx context.Context, token string, statuses []string) ([]domain.AdsClient, error) {
	opts := pagination.Options{
		Name:      "clients",
		PageSize:  s.cfg.Allegro.ClientsPageSize,
		MaxOffset: s.cfg.Allegro.ClientsMaxOffset,
	}

	clients, err := pagination.FetchAll(ctx, opts, func(ctx context.Context, offset, limit int) (pagination.Page[allegrodomain.AdsClient], error) {
		resp, err := s.Client.ListClients(ctx, token, statuses, offset, limit)
		if err != nil {
			return pagination.Page[allegrodomain.AdsClient]{}, err
		}
		return pagination.Page[allegrodomain.AdsClient]{Items: resp.Clients, Count: resp.Count, TotalCount: resp.TotalCount}, nil
	})
	if err != nil {
		logrus.WithError(err).Error("allegro: failed to fetch ads clients")
		return nil, err
	}

	result := make([]domain.AdsClient, 0, len(clients))
	for _, client := range clients {
		result = append(result, domain.AdsClient{ID: client.ID, Name: client.Name, Status: client.Status})
	}

	return result, nil
}

func (s *Integrator) GetAllOffers(ctx context.Context, token, adsClientID string, filters domain.OfferFilters) ([]domain.SponsoredOffer, error) {
	opts := pagination.Options{
		Name:      "offers",
		PageSize:  s.cfg.Allegro.OffersPageSize,
		MaxOffset: s.cfg.Allegro.OffersMaxOffset,
	}

	offers, err := pagination.FetchAll(ctx, opts, func(ctx context.Context, offset, limit int) (pagination.Page[allegrodomain.SponsoredOffer], error) {
		resp, err := s.Client.ListOffers(ctx, token, adsClientID, filters, offset, limit)
		if err != nil {
			return pagination.Page[allegrodomain.SponsoredOffer]{}, err
		}
		return pagination.Page[allegrodomain.SponsoredOffer]{Items: resp.Offers, Count: resp.Count, TotalCount: resp.TotalCount}, nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"ads_client_id": adsClientID,
			"error":         err.Error(),
		}).Error("allegro: failed to fetch offers")
		return nil, err
	}

	result := make([]domain.SponsoredOffer, 0, len(offers))
	for _, offer := range offers {
		result = append(result, domain.SponsoredOffer{
			ID:        offer.ID,
			OfferID:   offer.OfferID,
			Name:      offer.Name,
			AdGroupID: offer.AdGroupID,
			Status:    offer.Status,
		})
	}

	return result, nil
}
