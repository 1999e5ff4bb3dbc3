package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/api/handler/router"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/middleware"
	"github.com/stretchr/testify/require"
)

var (
	adminClaims    = &domain.Claims{UserID: 1, UserRoleID: middleware.RoleAdmin}
	operatorClaims = &domain.Claims{UserID: 2, UserRoleID: middleware.RoleOperator, AccountIDs: []string{"acc-1"}}
	viewerClaims   = &domain.Claims{UserID: 3, UserRoleID: middleware.RoleViewer, AccountIDs: []string{"acc-1"}}
)

// serve routes req through a router holding routes, as the user in claims.
func serve(routes []router.Route, req *http.Request, claims *domain.Claims) *httptest.ResponseRecorder {
	if claims != nil {
		req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))
	}

	rec := httptest.NewRecorder()
	router.New(router.WithRoutes(routes...)).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
