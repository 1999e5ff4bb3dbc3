package account

import (
	"errors"
	"fmt"
)

var (
	ErrAccountIDRequired  = errors.New("account ID is required")
	ErrAdsClientRequired  = errors.New("ads client ID is required")
	ErrAllegroIntegration = errors.New("error fetching data from Allegro")
)

// AccountError carries the API error code and the Allegro account involved.
type AccountError struct {
	Err       error
	Code      string
	AccountID string
	Details   string
}

func (e *AccountError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

func NewAccountError(err error, code string, accountID string, details string) *AccountError {
	return &AccountError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
		Details:   details,
	}
}
