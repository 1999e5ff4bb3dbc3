package domain

import "time"

// Credential is the OAuth token pair stored for one Allegro account.
type Credential struct {
	AccountID    string    `json:"accountId"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expiresAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ExpiresWithin reports whether the token expires less than d after now.
func (c *Credential) ExpiresWithin(now time.Time, d time.Duration) bool {
	return c.ExpiresAt.Sub(now) <= d
}

// NeedsRefresh reports whether the access token is missing or expires less
// than d after now.
func (c *Credential) NeedsRefresh(now time.Time, d time.Duration) bool {
	return c.AccessToken == "" || c.ExpiresWithin(now, d)
}

type TokenRefreshSummary struct {
	Checked   int `json:"checked"`
	Refreshed int `json:"refreshed"`
	Failed    int `json:"failed"`
}
