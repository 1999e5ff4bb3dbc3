package credentials

import (
	"errors"
	"fmt"
)

var (
	ErrAccountNotFound = errors.New("allegro account not found")
	ErrNoToken         = errors.New("allegro account has no stored token")
	ErrRefreshFailed   = errors.New("failed to refresh allegro token")
	ErrPersistTokens   = errors.New("failed to persist refreshed tokens")
)

// CredentialError carries the API error code and the account involved.
type CredentialError struct {
	Err       error
	Code      string
	AccountID string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("%s (account %s)", e.Err.Error(), e.AccountID)
}

func (e *CredentialError) Unwrap() error {
	return e.Err
}

func NewCredentialError(err error, code string, accountID string) *CredentialError {
	return &CredentialError{
		Err:       err,
		Code:      code,
		AccountID: accountID,
	}
}
