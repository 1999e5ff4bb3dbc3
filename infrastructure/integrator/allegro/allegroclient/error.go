package allegroclient

import (
	"fmt"
	"net/http"

	allegrodomain "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/domain"
)

// APIError is returned for every non 2xx answer of the Allegro API.
type APIError struct {
	StatusCode int
	Body       string
	Response   *allegrodomain.ErrorResponse
}

func (e *APIError) Error() string {
	if msg := e.Response.FirstMessage(); msg != "" {
		return fmt.Sprintf("allegro api error (status %d): %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("allegro api error (status %d): %s", e.StatusCode, e.Body)
}

func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}
