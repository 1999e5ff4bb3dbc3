package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/authenticating"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/authenticating/mocks"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		header         string
		setup          func(auth *mocks.MockAuthenticator)
		expectedStatus int
	}{
		{name: "public path", method: http.MethodPost, path: "/v1/login", setup: func(*mocks.MockAuthenticator) {}, expectedStatus: http.StatusNoContent},
		{name: "preflight", method: http.MethodOptions, path: "/v1/schedules", setup: func(*mocks.MockAuthenticator) {}, expectedStatus: http.StatusNoContent},
		{name: "missing header", method: http.MethodGet, path: "/v1/schedules", setup: func(*mocks.MockAuthenticator) {}, expectedStatus: http.StatusUnauthorized},
		{name: "not a bearer token", method: http.MethodGet, path: "/v1/schedules", header: "Basic abc", setup: func(*mocks.MockAuthenticator) {}, expectedStatus: http.StatusUnauthorized},
		{
			name:   "invalid token",
			method: http.MethodGet,
			path:   "/v1/schedules",
			header: "Bearer bad",
			setup: func(auth *mocks.MockAuthenticator) {
				auth.EXPECT().ValidateToken("bad").
					Return(nil, authenticating.NewAuthError(authenticating.ErrInvalidToken, apiErrors.ErrInvalidToken, ""))
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := mocks.NewMockAuthenticator(gomock.NewController(t))
			tt.setup(auth)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			AuthMiddleware(auth)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestAuthMiddleware_StoresClaims(t *testing.T) {
	auth := mocks.NewMockAuthenticator(gomock.NewController(t))
	claims := &domain.Claims{UserID: 5, UserRoleID: RoleOperator}
	auth.EXPECT().ValidateToken("good").Return(claims, nil)

	var got *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	AuthMiddleware(auth)(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.Same(t, claims, got)
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.Claims
		middleware     func(http.Handler) http.Handler
		expectedStatus int
	}{
		{name: "unauthenticated", middleware: AllRoles(), expectedStatus: http.StatusUnauthorized},
		{name: "viewer on admin route", claims: &domain.Claims{UserRoleID: RoleViewer}, middleware: AdminOnly(), expectedStatus: http.StatusForbidden},
		{name: "viewer on operator route", claims: &domain.Claims{UserRoleID: RoleViewer}, middleware: AdminOrOperator(), expectedStatus: http.StatusForbidden},
		{name: "operator on operator route", claims: &domain.Claims{UserRoleID: RoleOperator}, middleware: AdminOrOperator(), expectedStatus: http.StatusNoContent},
		{name: "admin on admin route", claims: &domain.Claims{UserRoleID: RoleAdmin}, middleware: AdminOnly(), expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			if tt.claims != nil {
				req = req.WithContext(contextWithClaims(req, tt.claims))
			}

			rec := httptest.NewRecorder()
			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"https://panel.example.com"})(okHandler())

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/schedules", nil)
		req.Header.Set("Origin", "https://panel.example.com")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "https://panel.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("unknown origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/schedules", nil)
		req.Header.Set("Origin", "https://evil.example.com")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/schedules", nil)
		req.Header.Set("Origin", "https://panel.example.com")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	panicking := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/schedules", nil)
	ctx, _ := log.WithCorrelationID(req.Context(), "req-1")

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		LogPanicMiddleware()(panicking).ServeHTTP(rec, req.WithContext(ctx))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrInternalServer)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "unhandled panic", entry.Message)
	assert.Equal(t, "req-1", entry.Data[log.CorrelationIDField])
	assert.Equal(t, "boom", entry.Data["panic"])
}

func TestLoggingMiddleware(t *testing.T) {
	inbound := "0b7d8e5e-54a4-4a49-9f3c-2a0c3f1e7d11"

	tests := []struct {
		name          string
		header        string
		status        int
		compact       bool
		expectedLevel logrus.Level
		reusesHeader  bool
	}{
		{name: "generates id", status: http.StatusAccepted, expectedLevel: logrus.InfoLevel},
		{name: "reuses uuid header", header: inbound, status: http.StatusOK, expectedLevel: logrus.InfoLevel, reusesHeader: true},
		{name: "ignores non uuid header", header: "x\ninjected", status: http.StatusNotFound, expectedLevel: logrus.WarnLevel},
		{name: "server error", status: http.StatusBadGateway, compact: true, expectedLevel: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := test.NewGlobal()
			defer hook.Reset()

			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = log.CorrelationID(r.Context())
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("ok"))
			})

			req := httptest.NewRequest(http.MethodPost, "/v1/cron/all/run", nil)
			if tt.header != "" {
				req.Header.Set(log.CorrelationIDHeader, tt.header)
			}

			rec := httptest.NewRecorder()
			LoggingMiddleware(tt.compact)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(log.CorrelationIDHeader))
			if tt.reusesHeader {
				assert.Equal(t, inbound, seen)
			} else {
				assert.NotEqual(t, tt.header, seen)
			}

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, seen, entry.Data[log.CorrelationIDField])
			assert.Equal(t, tt.status, entry.Data["status_code"])

			_, hasClientDetails := entry.Data["user_agent"]
			assert.Equal(t, !tt.compact, hasClientDetails)
			if !tt.compact {
				assert.Equal(t, 2, entry.Data["bytes"])
			}
		})
	}
}

func contextWithClaims(r *http.Request, claims *domain.Claims) context.Context {
	return context.WithValue(r.Context(), ContextKeyUser, claims)
}
