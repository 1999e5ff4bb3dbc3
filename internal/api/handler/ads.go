package handler

import (
	"net/http"
	"strings"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/account"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
)

// accountFromQuery reads accountId and checks the caller may use it.
func accountFromQuery(w http.ResponseWriter, r *http.Request) (string, bool) {
	userClaims, ok := claimsOrReject(w, r)
	if !ok {
		return "", false
	}

	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Account ID is required", nil)
		return "", false
	}
	if !canAccessAccount(userClaims, accountID) {
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You are not allowed to access this account", nil)
		return "", false
	}

	return accountID, true
}

// statusesFromQuery accepts both repeated and comma separated status values.
func statusesFromQuery(r *http.Request) []string {
	var statuses []string
	for _, raw := range r.URL.Query()["status"] {
		for _, status := range strings.Split(raw, ",") {
			if status = strings.ToUpper(strings.TrimSpace(status)); status != "" {
				statuses = append(statuses, status)
			}
		}
	}
	return statuses
}

func ListAdsClients(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountFromQuery(w, r)
		if !ok {
			return
		}

		clients, err := service.ListAdsClients(r.Context(), accountID, statusesFromQuery(r))
		if err != nil {
			writeUsecaseError(w, r, err, "Error listing ads clients")
			return
		}

		writeJSON(w, http.StatusOK, clients)
	}
}

func ListSponsoredOffers(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountFromQuery(w, r)
		if !ok {
			return
		}

		query := r.URL.Query()
		filters := domain.OfferFilters{
			Name:       query.Get("name"),
			CategoryID: query.Get("categoryId"),
			PriceGte:   query.Get("price.gte"),
			PriceLte:   query.Get("price.lte"),
		}

		offers, err := service.ListSponsoredOffers(r.Context(), accountID, query.Get("adsClientId"), filters)
		if err != nil {
			writeUsecaseError(w, r, err, "Error listing sponsored offers")
			return
		}

		writeJSON(w, http.StatusOK, offers)
	}
}

func ListAdGroups(service account.AccountService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountFromQuery(w, r)
		if !ok {
			return
		}

		adGroups, err := service.ListAdGroups(r.Context(), accountID, r.URL.Query().Get("adsClientId"))
		if err != nil {
			writeUsecaseError(w, r, err, "Error listing ad groups")
			return
		}

		writeJSON(w, http.StatusOK, adGroups)
	}
}
