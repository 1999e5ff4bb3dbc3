package allegrodomain

// Money is the price shape used by every Allegro Ads resource
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
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	CampaignID string   `json:"campaignId"`
	Status     string   `json:"status"`
	Bidding    *Bidding `json:"bidding,omitempty"`
	Budget     *Budget  `json:"budget,omitempty"`
}

// AdGroupsPage is one page of GET /ads/clients/{clientId}/sponsored/adgroups
type AdGroupsPage struct {
	AdGroups   []AdGroup `json:"adGroups"`
	Count      int       `json:"count"`
	TotalCount int       `json:"totalCount"`
}

// AdGroupPatch is the body of PATCH .../adgroups/{adGroupId}
type AdGroupPatch struct {
	Status  *string  `json:"status,omitempty"`
	Bidding *Bidding `json:"bidding,omitempty"`
	Budget  *Budget  `json:"budget,omitempty"`
}
