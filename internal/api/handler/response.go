package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/account"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/authenticating"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/credentials"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/middleware"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// writeUsecaseError maps the typed usecase errors to their API codes. Any
// other error is reported as an internal error with fallbackMessage.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	var (
		scheduleErr   *scheduling.ScheduleError
		credentialErr *credentials.CredentialError
		accountErr    *account.AccountError
		authErr       *authenticating.AuthError
	)

	switch {
	case errors.As(err, &scheduleErr):
		apiErrors.WriteError(w, scheduleErr.Code, scheduleErr.Error(), detailsFor("schedule_id", scheduleErr.ScheduleID))
	case errors.As(err, &accountErr):
		apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), detailsFor("account_id", accountErr.AccountID))
	case errors.As(err, &credentialErr):
		apiErrors.WriteError(w, credentialErr.Code, credentialErr.Error(), detailsFor("account_id", credentialErr.AccountID))
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
	default:
		log.FromContext(r.Context()).WithError(err).Error(fallbackMessage)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallbackMessage, nil)
	}
}

func detailsFor(key, value string) map[string]any {
	if value == "" {
		return nil
	}
	return map[string]any{key: value}
}

// claimsOrReject returns the authenticated user's claims, writing a 401 when absent.
func claimsOrReject(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "User not authenticated", nil)
		return nil, false
	}
	return claims, true
}

// canAccessAccount reports whether the user may act on accountID. Admins see
// every account; other roles only the accounts linked to them.
func canAccessAccount(claims *domain.Claims, accountID string) bool {
	if claims.UserRoleID == middleware.RoleAdmin {
		return true
	}
	for _, id := range claims.AccountIDs {
		if id == accountID {
			return true
		}
	}
	return false
}
