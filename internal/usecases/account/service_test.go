package account

import (
	"context"
	"errors"
	"testing"

	allegromocks "github.com/omnihero1/allegro-ads-zarzadzanie/infrastructure/integrator/allegro/mocks"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/credentials"
	credentialmocks "github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/credentials/mocks"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (AccountService, *credentialmocks.MockTokenManager, *allegromocks.MockAllegroIntegrator) {
	ctrl := gomock.NewController(t)
	tokens := credentialmocks.NewMockTokenManager(ctrl)
	integrator := allegromocks.NewMockAllegroIntegrator(ctrl)

	return NewService(tokens, integrator), tokens, integrator
}

func TestListAdsClients_DefaultsToActive(t *testing.T) {
	svc, tokens, integrator := newTestService(t)

	tokens.EXPECT().GetValidToken(gomock.Any(), "acc-1").Return("tok", nil)
	integrator.EXPECT().GetAllClients(gomock.Any(), "tok", []string{"ACTIVE"}).Return([]domain.AdsClient{{ID: "c-1"}}, nil)

	clients, err := svc.ListAdsClients(context.Background(), "acc-1", nil)
	require.NoError(t, err)
	assert.Equal(t, []domain.AdsClient{{ID: "c-1"}}, clients)
}

func TestListAdsClients_Errors(t *testing.T) {
	t.Run("missing account", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.ListAdsClients(context.Background(), "", nil)

		var accErr *AccountError
		require.ErrorAs(t, err, &accErr)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, accErr.Code)
	})

	t.Run("credential error keeps its code", func(t *testing.T) {
		svc, tokens, _ := newTestService(t)

		tokens.EXPECT().GetValidToken(gomock.Any(), "acc-1").
			Return("", credentials.NewCredentialError(credentials.ErrNoToken, apiErrors.ErrAllegroTokenMissing, "acc-1"))

		_, err := svc.ListAdsClients(context.Background(), "acc-1", nil)

		var accErr *AccountError
		require.ErrorAs(t, err, &accErr)
		assert.Equal(t, apiErrors.ErrAllegroTokenMissing, accErr.Code)
		assert.ErrorIs(t, err, credentials.ErrNoToken)
	})

	t.Run("allegro failure", func(t *testing.T) {
		svc, tokens, integrator := newTestService(t)

		tokens.EXPECT().GetValidToken(gomock.Any(), "acc-1").Return("tok", nil)
		integrator.EXPECT().GetAllClients(gomock.Any(), "tok", []string{"ACTIVE", "PAUSED"}).Return(nil, errors.New("502"))

		_, err := svc.ListAdsClients(context.Background(), "acc-1", []string{"ACTIVE", "PAUSED"})

		assert.ErrorIs(t, err, ErrAllegroIntegration)
		var accErr *AccountError
		require.ErrorAs(t, err, &accErr)
		assert.Equal(t, apiErrors.ErrExternalService, accErr.Code)
	})
}

func TestListSponsoredOffers(t *testing.T) {
	svc, tokens, integrator := newTestService(t)
	filters := domain.OfferFilters{Name: "buty", PriceLte: "100.00"}

	tokens.EXPECT().GetValidToken(gomock.Any(), "acc-1").Return("tok", nil)
	integrator.EXPECT().GetAllOffers(gomock.Any(), "tok", "c-1", filters).Return([]domain.SponsoredOffer{{ID: "o-1"}}, nil)

	offers, err := svc.ListSponsoredOffers(context.Background(), "acc-1", "c-1", filters)
	require.NoError(t, err)
	assert.Len(t, offers, 1)

	_, err = svc.ListSponsoredOffers(context.Background(), "acc-1", "", filters)
	assert.ErrorIs(t, err, ErrAdsClientRequired)
}
