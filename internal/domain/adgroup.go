package domain

// Money is the amount/currency pair the Allegro Ads API uses for every price.
// Amount is a decimal string, e.g. "2.20".
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type Bidding struct {
	MaxCpc *Money `json:"maxCpc,omitempty"`
}

type Budget struct {
	Daily *Money `json:"daily,omitempty"`
	Total *Money `json:"total,omitempty"`
}

type AdGroup struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	CampaignID string        `json:"campaignId"`
	Status     AdGroupStatus `json:"status"`
	Bidding    *Bidding      `json:"bidding,omitempty"`
	Budget     *Budget       `json:"budget,omitempty"`
}

// AdGroupUpdate is the partial PATCH body for a single ad group.
type AdGroupUpdate struct {
	Status  *AdGroupStatus `json:"status,omitempty"`
	Bidding *Bidding       `json:"bidding,omitempty"`
	Budget  *Budget        `json:"budget,omitempty"`
}

func (u *AdGroupUpdate) IsEmpty() bool {
	return u == nil || (u.Status == nil && u.Bidding == nil && u.Budget == nil)
}

type AdsClient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type SponsoredOffer struct {
	ID        string `json:"id"`
	OfferID   string `json:"offerId"`
	Name      string `json:"name"`
	AdGroupID string `json:"adGroupId,omitempty"`
	Status    string `json:"status"`
}

// OfferFilters narrows the sponsored offers listing. Empty fields are not sent.
type OfferFilters struct {
	Name       string
	CategoryID string
	PriceGte   string
	PriceLte   string
}
