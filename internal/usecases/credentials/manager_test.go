package credentials

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/allegroclient"
	"github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/repository/mocks"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/config"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/oauth2"
)

var fixedNow = time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)

type fakeRefresher struct {
	calls atomic.Int32
	token *oauth2.Token
	err   error
	delay time.Duration
}

func (f *fakeRefresher) RefreshToken(_ context.Context, refreshToken string) (*oauth2.Token, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

// memoryRepository keeps credentials in a map so concurrent refreshes observe each other's writes.
type memoryRepository struct {
	mu          sync.Mutex
	credentials map[string]domain.Credential
}

func (r *memoryRepository) GetCredential(_ context.Context, accountID string) (*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	credential, ok := r.credentials[accountID]
	if !ok {
		return nil, nil
	}
	return &credential, nil
}

func (r *memoryRepository) UpdateTokens(_ context.Context, credential *domain.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.credentials[credential.AccountID] = *credential
	return nil
}

func (r *memoryRepository) ListExpiring(_ context.Context, before time.Time) ([]*domain.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Credential, 0)
	for _, credential := range r.credentials {
		if credential.ExpiresAt.Before(before) {
			c := credential
			out = append(out, &c)
		}
	}
	return out, nil
}

func newTestManager(repo *mocks.MockCredentialRepository, refresher allegroclient.TokenRefresher) *Manager {
	m := NewManager(repo, refresher)
	m.now = func() time.Time { return fixedNow }
	return m
}

func TestGetValidToken_FastPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCredentialRepository(ctrl)
	refresher := &fakeRefresher{}

	repo.EXPECT().GetCredential(gomock.Any(), "acc-1").Return(&domain.Credential{
		AccountID:    "acc-1",
		AccessToken:  "stored-access",
		RefreshToken: "stored-refresh",
		ExpiresAt:    fixedNow.Add(time.Hour),
	}, nil)

	token, err := newTestManager(repo, refresher).GetValidToken(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, "stored-access", token)
	assert.Equal(t, int32(0), refresher.calls.Load())
}

func TestGetValidToken_RefreshesWithinSafetyMargin(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCredentialRepository(ctrl)
	refresher := &fakeRefresher{token: &oauth2.Token{
		AccessToken:  "new-access",
		RefreshToken: "new-refresh",
		Expiry:       fixedNow.Add(12 * time.Hour),
	}}

	stored := &domain.Credential{
		AccountID:    "acc-1",
		AccessToken:  "stored-access",
		RefreshToken: "stored-refresh",
		ExpiresAt:    fixedNow.Add(4 * time.Minute),
	}

	repo.EXPECT().GetCredential(gomock.Any(), "acc-1").Return(stored, nil).Times(2)
	repo.EXPECT().UpdateTokens(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Credential) error {
		assert.Equal(t, "acc-1", c.AccountID)
		assert.Equal(t, "new-access", c.AccessToken)
		assert.Equal(t, "new-refresh", c.RefreshToken)
		assert.Equal(t, fixedNow.Add(12*time.Hour), c.ExpiresAt)
		assert.Equal(t, fixedNow, c.UpdatedAt)
		return nil
	})

	token, err := newTestManager(repo, refresher).GetValidToken(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, "new-access", token)
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestGetValidToken_RefreshesMissingAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCredentialRepository(ctrl)
	refresher := &fakeRefresher{token: &oauth2.Token{
		AccessToken: "new-access",
		Expiry:      fixedNow.Add(12 * time.Hour),
	}}

	// expiry still in the future but no access token stored
	stored := &domain.Credential{
		AccountID:    "acc-1",
		RefreshToken: "stored-refresh",
		ExpiresAt:    fixedNow.Add(time.Hour),
	}

	repo.EXPECT().GetCredential(gomock.Any(), "acc-1").Return(stored, nil).Times(2)
	repo.EXPECT().UpdateTokens(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Credential) error {
		assert.Equal(t, "new-access", c.AccessToken)
		assert.Equal(t, "stored-refresh", c.RefreshToken)
		return nil
	})

	token, err := newTestManager(repo, refresher).GetValidToken(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, "new-access", token)
	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestGetValidToken_DefaultsExpiryWhenMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCredentialRepository(ctrl)
	refresher := &fakeRefresher{token: &oauth2.Token{AccessToken: "new-access"}}

	repo.EXPECT().GetCredential(gomock.Any(), "acc-1").Return(&domain.Credential{
		AccountID:    "acc-1",
		RefreshToken: "stored-refresh",
	}, nil).Times(2)
	repo.EXPECT().UpdateTokens(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *domain.Credential) error {
		assert.Equal(t, "stored-refresh", c.RefreshToken)
		assert.Equal(t, fixedNow.Add(defaultTokenLifetime), c.ExpiresAt)
		return nil
	})

	token, err := newTestManager(repo, refresher).GetValidToken(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, "new-access", token)
}

func TestGetValidToken_Errors(t *testing.T) {
	tests := []struct {
		name         string
		credential   *domain.Credential
		repoErr      error
		refreshErr   error
		expectedErr  error
		expectedCode string
	}{
		{
			name:         "unknown account",
			expectedErr:  ErrAccountNotFound,
			expectedCode: apiErrors.ErrAllegroAccountNotFound,
		},
		{
			name:         "never authorized",
			credential:   &domain.Credential{AccountID: "acc-1"},
			expectedErr:  ErrNoToken,
			expectedCode: apiErrors.ErrAllegroTokenMissing,
		},
		{
			name: "refresh rejected",
			credential: &domain.Credential{
				AccountID:    "acc-1",
				AccessToken:  "stored-access",
				RefreshToken: "stored-refresh",
				ExpiresAt:    fixedNow.Add(-time.Hour),
			},
			refreshErr:   errors.New("invalid_grant"),
			expectedErr:  ErrRefreshFailed,
			expectedCode: apiErrors.ErrAllegroTokenRefresh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mocks.NewMockCredentialRepository(ctrl)
			refresher := &fakeRefresher{err: tt.refreshErr}

			repo.EXPECT().GetCredential(gomock.Any(), "acc-1").Return(tt.credential, tt.repoErr).AnyTimes()
			repo.EXPECT().UpdateTokens(gomock.Any(), gomock.Any()).Times(0)

			_, err := newTestManager(repo, refresher).GetValidToken(context.Background(), "acc-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedErr)

			var credErr *CredentialError
			require.ErrorAs(t, err, &credErr)
			assert.Equal(t, tt.expectedCode, credErr.Code)
			assert.Equal(t, "acc-1", credErr.AccountID)

			if tt.refreshErr != nil {
				assert.ErrorIs(t, err, tt.refreshErr)
				assert.Equal(t, int32(1), refresher.calls.Load())
			}
		})
	}
}

func TestGetValidToken_ConcurrentCallersRefreshOnce(t *testing.T) {
	repo := &memoryRepository{credentials: map[string]domain.Credential{
		"acc-1": {
			AccountID:    "acc-1",
			AccessToken:  "stored-access",
			RefreshToken: "stored-refresh",
			ExpiresAt:    fixedNow.Add(time.Minute),
		},
	}}
	refresher := &fakeRefresher{
		token: &oauth2.Token{AccessToken: "new-access", RefreshToken: "new-refresh", Expiry: fixedNow.Add(12 * time.Hour)},
		delay: 20 * time.Millisecond,
	}

	m := NewManager(repo, refresher)
	m.now = func() time.Time { return fixedNow }

	const callers = 8
	tokens := make([]string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := m.GetValidToken(context.Background(), "acc-1")
			assert.NoError(t, err)
			tokens[i] = token
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), refresher.calls.Load())
	for _, token := range tokens {
		assert.Equal(t, "new-access", token)
	}
}

func TestGetValidToken_AgainstTokenEndpoint(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "stored-refresh", r.PostForm.Get("refresh_token"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token": "new-access", "expires_in": 43199, "token_type": "bearer"}`)
	}))
	defer srv.Close()

	refresher := allegroclient.NewTokenRefresher(&config.Config{
		Allegro: config.Allegro{
			TokenURL:     srv.URL,
			ClientID:     "app-id",
			ClientSecret: "app-secret",
			HTTPTimeout:  5 * time.Second,
		},
	})

	repo := &memoryRepository{credentials: map[string]domain.Credential{
		"acc-1": {AccountID: "acc-1", AccessToken: "old", RefreshToken: "stored-refresh", ExpiresAt: time.Now().Add(-time.Minute)},
	}}

	token, err := NewManager(repo, refresher).GetValidToken(context.Background(), "acc-1")
	require.NoError(t, err)

	assert.Equal(t, "new-access", token)
	assert.Equal(t, 1, calls)

	stored := repo.credentials["acc-1"]
	assert.Equal(t, "stored-refresh", stored.RefreshToken)
	assert.WithinDuration(t, time.Now().Add(43199*time.Second), stored.ExpiresAt, 10*time.Second)
}

func TestRefreshExpiring(t *testing.T) {
	repo := &memoryRepository{credentials: map[string]domain.Credential{
		"soon":   {AccountID: "soon", AccessToken: "a", RefreshToken: "r", ExpiresAt: fixedNow.Add(10 * time.Minute)},
		"later":  {AccountID: "later", AccessToken: "a", RefreshToken: "r", ExpiresAt: fixedNow.Add(5 * time.Hour)},
		"broken": {AccountID: "broken", AccessToken: "a", ExpiresAt: fixedNow.Add(-time.Minute)},
	}}
	refresher := &fakeRefresher{token: &oauth2.Token{AccessToken: "new-access", Expiry: fixedNow.Add(12 * time.Hour)}}

	m := NewManager(repo, refresher)
	m.now = func() time.Time { return fixedNow }

	summary, err := m.RefreshExpiring(context.Background(), 30*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, &domain.TokenRefreshSummary{Checked: 2, Refreshed: 1, Failed: 1}, summary)
	assert.Equal(t, "new-access", repo.credentials["soon"].AccessToken)
	assert.Equal(t, "a", repo.credentials["later"].AccessToken)
}
