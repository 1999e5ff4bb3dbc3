package allegroclient

import (
	"context"
	"net/http"

	allegrodomain "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/domain"
)

func (c *AllegroClient) ListClients(ctx context.Context, token string, statuses []string, offset, limit int) (*allegrodomain.ClientsPage, error) {
	params := pageQuery(offset, limit)
	for _, status := range statuses {
		params.Add("status", status)
	}

	var page allegrodomain.ClientsPage
	if err := c.do(ctx, http.MethodGet, "/ads/clients", token, params, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}
