package allegroclient

import (
	"context"
	"net/http"
	"net/url"

	allegrodomain "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/domain"
)

// ListedAdGroupStatuses are the statuses a schedule may act on.
var ListedAdGroupStatuses = []string{"ACTIVE", "PAUSED"}

func (c *AllegroClient) ListAdGroups(ctx context.Context, token, clientID string, offset, limit int) (*allegrodomain.AdGroupsPage, error) {
	params := pageQuery(offset, limit)
	params.Set("marketplaceId", c.Cfg.Allegro.MarketplaceID)
	for _, status := range ListedAdGroupStatuses {
		params.Add("status", status)
	}

	var page allegrodomain.AdGroupsPage
	if err := c.do(ctx, http.MethodGet, clientPath(clientID, "/sponsored/adgroups"), token, params, nil, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

func (c *AllegroClient) PatchAdGroup(ctx context.Context, token, clientID, adGroupID string, patch allegrodomain.AdGroupPatch) error {
	path := clientPath(clientID, "/sponsored/adgroups/"+url.PathEscape(adGroupID))
	return c.do(ctx, http.MethodPatch, path, token, nil, patch, nil)
}
