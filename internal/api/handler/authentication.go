package handler

import (
	"net/http"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/authenticating"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/pkg/errors"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid request body", nil)
			return
		}

		if req.Email == "" || req.Password == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Email and password are required", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

// GetMe returns the profile of the authenticated user.
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsOrReject(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			writeUsecaseError(w, r, errors.Wrap(err, "get user profile"), "Error fetching user data")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, authenticating.ErrUserNotFound) || errors.Is(err, authenticating.ErrInvalidCredentials) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, authenticating.ErrInvalidCredentials.Error(), nil)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	log.FromContext(r.Context()).WithError(err).Error("login failed")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Internal error while logging in", nil)
}
