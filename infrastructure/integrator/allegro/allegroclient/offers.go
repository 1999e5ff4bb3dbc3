package allegroclient

import (
	"context"
	"net/http"

	allegrodomain "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
)

func (c *AllegroClient) ListOffers(ctx context.Context, token, clientID string, filters domain.OfferFilters, offset, limit int) (*allegrodomain.OffersPage, error) {
	params := pageQuery(offset, limit)
	params.Set("marketplaceId", c.Cfg.Allegro.MarketplaceID)

	optional := map[string]string{
		"name":             filters.Name,
		"category.id":      filters.CategoryID,
		"price.amount.gte": filters.PriceGte,
		"price.amount.lte": filters.PriceLte,
	}
	for key, value := range optional {
		if value != "" {
			params.Set(key, value)
		}
	}

	var page allegrodomain.OffersPage
	if err := c.do(ctx, http.MethodGet, clientPath(clientID, "/sponsored/offers"), token, params, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}
