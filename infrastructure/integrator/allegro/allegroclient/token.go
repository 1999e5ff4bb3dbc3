package allegroclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// TokenRefresher exchanges a refresh token for a new token pair.
type TokenRefresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// OAuthRefresher performs the refresh_token grant against the Allegro token
// endpoint, authenticating the application with HTTP Basic credentials.
type OAuthRefresher struct {
	config     *oauth2.Config
	httpClient *http.Client
}

func NewTokenRefresher(cfg *config.Config) TokenRefresher {
	return &OAuthRefresher{
		config: &oauth2.Config{
			ClientID:     cfg.Allegro.ClientID,
			ClientSecret: cfg.Allegro.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  cfg.Allegro.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		httpClient: &http.Client{
			Timeout: cfg.Allegro.HTTPTimeout,
		},
	}
}

// RefreshToken makes exactly one token request. The returned token keeps the
// old refresh token when the server does not rotate it.
func (r *OAuthRefresher) RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("refresh token must not be empty")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, r.httpClient)

	// an expired token forces the source to use the refresh grant
	source := r.config.TokenSource(ctx, &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Unix(1, 0),
	})

	token, err := source.Token()
	if err != nil {
		logrus.WithError(err).Error("allegro: token refresh failed")
		return nil, fmt.Errorf("refresh grant: %w", err)
	}

	if token.RefreshToken == "" {
		token.RefreshToken = refreshToken
	}

	return token, nil
}
