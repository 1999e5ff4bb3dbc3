package credentials

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/allegroclient"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/repository"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=manager.go -destination=mocks/mock_manager.go -package=mocks

const (
	// ExpirySafetyMargin is how long before expiry a stored token stops being handed out.
	ExpirySafetyMargin = 5 * time.Minute

	// Allegro access tokens live for 12 hours; used when the token response omits expires_in.
	defaultTokenLifetime = 12 * time.Hour
)

type TokenManager interface {
	GetValidToken(ctx context.Context, accountID string) (string, error)
	RefreshExpiring(ctx context.Context, threshold time.Duration) (*domain.TokenRefreshSummary, error)
}

// Manager hands out access tokens and refreshes them against the token
// endpoint when they are about to expire. Refreshes for one account are
// serialized so concurrent callers spend its refresh token once.
type Manager struct {
	repo      repository.CredentialRepository
	refresher allegroclient.TokenRefresher
	now       func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(repo repository.CredentialRepository, refresher allegroclient.TokenRefresher) *Manager {
	return &Manager{
		repo:      repo,
		refresher: refresher,
		now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (m *Manager) accountLock(accountID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[accountID] = lock
	}
	return lock
}

// GetValidToken returns the stored access token while it is present and valid
// for more than ExpirySafetyMargin, and refreshes it once otherwise.
func (m *Manager) GetValidToken(ctx context.Context, accountID string) (string, error) {
	credential, err := m.load(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !credential.NeedsRefresh(m.now(), ExpirySafetyMargin) {
		return credential.AccessToken, nil
	}

	lock := m.accountLock(accountID)
	lock.Lock()
	defer lock.Unlock()

	// another caller may have refreshed while we waited
	credential, err = m.load(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !credential.NeedsRefresh(m.now(), ExpirySafetyMargin) {
		return credential.AccessToken, nil
	}

	refreshed, err := m.refresh(ctx, credential)
	if err != nil {
		return "", err
	}

	return refreshed.AccessToken, nil
}

func (m *Manager) load(ctx context.Context, accountID string) (*domain.Credential, error) {
	credential, err := m.repo.GetCredential(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential for account %s: %w", accountID, err)
	}
	if credential == nil {
		return nil, NewCredentialError(ErrAccountNotFound, apiErrors.ErrAllegroAccountNotFound, accountID)
	}
	if credential.AccessToken == "" && credential.RefreshToken == "" {
		return nil, NewCredentialError(ErrNoToken, apiErrors.ErrAllegroTokenMissing, accountID)
	}
	return credential, nil
}

// refresh must be called with the account lock held.
func (m *Manager) refresh(ctx context.Context, credential *domain.Credential) (*domain.Credential, error) {
	logger := logrus.WithField("account_id", credential.AccountID)

	if credential.RefreshToken == "" {
		return nil, NewCredentialError(ErrNoToken, apiErrors.ErrAllegroTokenMissing, credential.AccountID)
	}

	token, err := m.refresher.RefreshToken(ctx, credential.RefreshToken)
	if err != nil {
		logger.WithError(err).Error("token refresh failed")
		return nil, NewCredentialError(fmt.Errorf("%w: %w", ErrRefreshFailed, err), apiErrors.ErrAllegroTokenRefresh, credential.AccountID)
	}

	now := m.now()
	expiresAt := token.Expiry
	if expiresAt.IsZero() {
		expiresAt = now.Add(defaultTokenLifetime)
	}

	refreshToken := token.RefreshToken
	if refreshToken == "" {
		refreshToken = credential.RefreshToken
	}

	updated := &domain.Credential{
		AccountID:    credential.AccountID,
		AccessToken:  token.AccessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		UpdatedAt:    now,
	}

	if err := m.repo.UpdateTokens(ctx, updated); err != nil {
		logger.WithError(err).Error("failed to persist refreshed tokens")
		return nil, NewCredentialError(fmt.Errorf("%w: %w", ErrPersistTokens, err), apiErrors.ErrDatabaseOperation, credential.AccountID)
	}

	logger.WithField("expires_at", expiresAt.Format(time.RFC3339)).Info("access token refreshed")

	return updated, nil
}

// RefreshExpiring refreshes every stored credential expiring within threshold.
// Failures are logged and counted, they do not stop the sweep.
func (m *Manager) RefreshExpiring(ctx context.Context, threshold time.Duration) (*domain.TokenRefreshSummary, error) {
	expiring, err := m.repo.ListExpiring(ctx, m.now().Add(threshold))
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring credentials: %w", err)
	}

	summary := &domain.TokenRefreshSummary{Checked: len(expiring)}

	for _, candidate := range expiring {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		lock := m.accountLock(candidate.AccountID)
		lock.Lock()
		refreshed, err := m.refreshIfExpiring(ctx, candidate.AccountID, threshold)
		lock.Unlock()

		switch {
		case err != nil:
			summary.Failed++
			logrus.WithFields(logrus.Fields{
				"account_id": candidate.AccountID,
				"error":      err,
			}).Warn("token sweep: refresh failed")
		case refreshed:
			summary.Refreshed++
		}
	}

	logrus.WithFields(logrus.Fields{
		"checked":   summary.Checked,
		"refreshed": summary.Refreshed,
		"failed":    summary.Failed,
	}).Info("token sweep finished")

	return summary, nil
}

// refreshIfExpiring reloads the credential under the account lock so a token a
// concurrent caller already refreshed is not refreshed twice.
func (m *Manager) refreshIfExpiring(ctx context.Context, accountID string, threshold time.Duration) (bool, error) {
	credential, err := m.load(ctx, accountID)
	if err != nil {
		return false, err
	}
	if !credential.NeedsRefresh(m.now(), threshold) {
		return false, nil
	}

	if _, err := m.refresh(ctx, credential); err != nil {
		return false, err
	}
	return true, nil
}
