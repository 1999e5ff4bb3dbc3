package allegrodomain

type AdsClient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ClientsPage is one page of GET /ads/clients
type ClientsPage struct {
	Clients    []AdsClient `json:"clients"`
	Count      int         `json:"count"`
	TotalCount int         `json:"totalCount"`
}

type SponsoredOffer struct {
	ID        string `json:"id"`
	OfferID   string `json:"offerId"`
	Name      string `json:"name"`
	AdGroupID string `json:"adGroupId,omitempty"`
	Status    string `json:"status"`
}

// OffersPage is one page of GET /ads/clients/{clientId}/sponsored/offers
type OffersPage struct {
	Offers     []SponsoredOffer `json:"offers"`
	Count      int              `json:"count"`
	TotalCount int              `json:"totalCount"`
}
