package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Error codes returned to API clients
const (
	// Authentication
	ErrInvalidCredentials    = "AUTH_001"
	ErrUserDisabled          = "AUTH_002"
	ErrUserNotFound          = "AUTH_003"
	ErrInvalidToken          = "AUTH_006"
	ErrExpiredToken          = "AUTH_007"
	ErrInsufficientPrivilege = "AUTH_008"

	// Validation
	ErrInvalidRequest      = "VAL_001"
	ErrMissingRequiredData = "VAL_002"
	ErrInvalidFormat       = "VAL_003"

	// Schedules
	ErrScheduleNotFound = "SCH_001"
	ErrScheduleBusy     = "SCH_003"

	// Allegro accounts
	ErrAllegroAccountNotFound = "ALG_001"
	ErrAllegroTokenMissing    = "ALG_002"
	ErrAllegroTokenRefresh    = "ALG_003"

	// Server
	ErrInternalServer    = "SRV_001"
	ErrDatabaseOperation = "SRV_002"
	ErrExternalService   = "SRV_003"
	ErrCommunication     = "SRV_004"
)

var httpStatusMap = map[string]int{
	ErrInvalidCredentials:     http.StatusUnauthorized,
	ErrUserDisabled:           http.StatusForbidden,
	ErrUserNotFound:           http.StatusNotFound,
	ErrInvalidToken:           http.StatusUnauthorized,
	ErrExpiredToken:           http.StatusUnauthorized,
	ErrInsufficientPrivilege:  http.StatusForbidden,
	ErrInvalidRequest:         http.StatusBadRequest,
	ErrMissingRequiredData:    http.StatusBadRequest,
	ErrInvalidFormat:          http.StatusBadRequest,
	ErrScheduleNotFound:       http.StatusNotFound,
	ErrScheduleBusy:           http.StatusConflict,
	ErrAllegroAccountNotFound: http.StatusNotFound,
	ErrAllegroTokenMissing:    http.StatusConflict,
	ErrAllegroTokenRefresh:    http.StatusBadGateway,
	ErrInternalServer:         http.StatusInternalServerError,
	ErrDatabaseOperation:      http.StatusInternalServerError,
	ErrExternalService:        http.StatusBadGateway,
	ErrCommunication:          http.StatusServiceUnavailable,
}

// APIError is the error body every endpoint responds with
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// StatusFor returns the HTTP status mapped to code
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError writes the standard error body
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// FromError wraps an existing Go error into an API error
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "unknown error",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
