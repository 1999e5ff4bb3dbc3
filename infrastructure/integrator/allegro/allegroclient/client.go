package allegroclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	allegrodomain "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MediaType is required by the sponsored ads endpoints for both Accept and Content-Type.
const MediaType = "application/vnd.allegro.beta.v1+json"

//go:generate mockgen -source=client.go -destination=../mocks/mock_client.go -package=mocks

type Client interface {
	ListAdGroups(ctx context.Context, token, clientID string, offset, limit int) (*allegrodomain.AdGroupsPage, error)
	PatchAdGroup(ctx context.Context, token, clientID, adGroupID string, patch allegrodomain.AdGroupPatch) error
	ListClients(ctx context.Context, token string, statuses []string, offset, limit int) (*allegrodomain.ClientsPage, error)
	ListOffers(ctx context.Context, token, clientID string, filters domain.OfferFilters, offset, limit int) (*allegrodomain.OffersPage, error)
}

type AllegroClient struct {
	Cfg        *config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg *config.Config) Client {
	return &AllegroClient{
		Cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Allegro.HTTPTimeout,
		},
		limiter: NewRateLimiter(cfg.Allegro.RequestsPerSecond, cfg.Allegro.Burst),
	}
}

// do sends one authenticated request and decodes a 2xx body into out when out is not nil.
func (c *AllegroClient) do(ctx context.Context, method, path, token string, query url.Values, body any, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	requestURL := c.Cfg.Allegro.APIURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", MediaType)
	if body != nil {
		req.Header.Set("Content-Type", MediaType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"method": method,
			"path":   path,
			"error":  err.Error(),
		}).Error("allegro: request failed")
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	respBody, err := c.HandleResponse(resp)
	if err != nil {
		return err
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "failed to decode %s %s response", method, path)
	}

	return nil
}

// HandleResponse returns the body of a 2xx response and an *APIError otherwise.
func (c *AllegroClient) HandleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}

	var errorResp allegrodomain.ErrorResponse
	if json.Unmarshal(body, &errorResp) == nil && len(errorResp.Errors) > 0 {
		apiErr.Response = &errorResp
	}

	if apiErr.IsRateLimited() {
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		c.limiter.RecordRateLimitError(retryAfter)
		logrus.WithField("retry_after", retryAfter.String()).Warn("allegro: rate limited")
	}

	return nil, apiErr
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		return time.Until(at)
	}
	return 0
}

func pageQuery(offset, limit int) url.Values {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(limit))
	return params
}

func clientPath(clientID, suffix string) string {
	return fmt.Sprintf("/ads/clients/%s%s", url.PathEscape(clientID), suffix)
}
