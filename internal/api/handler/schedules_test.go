package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/api/handler/mocks"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
	schedulingmocks "github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling/mocks"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newScheduleMocks(t *testing.T) (*mocks.MockScheduleTrigger, *schedulingmocks.MockScheduleService) {
	ctrl := gomock.NewController(t)
	return mocks.NewMockScheduleTrigger(ctrl), schedulingmocks.NewMockScheduleService(ctrl)
}

func scheduleOf(accountID string) *domain.ScheduleResponse {
	return &domain.ScheduleResponse{Schedule: &domain.Schedule{ID: "s-1", AccountID: accountID, Active: true}}
}

func TestExecuteSchedule(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		claims         *domain.Claims
		setup          func(trigger *mocks.MockScheduleTrigger, service *schedulingmocks.MockScheduleService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "missing schedule id",
			target:         "/v1/schedules/execute",
			claims:         adminClaims,
			setup:          func(*mocks.MockScheduleTrigger, *schedulingmocks.MockScheduleService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "unknown schedule",
			target: "/v1/schedules/execute?scheduleId=s-9",
			claims: adminClaims,
			setup: func(_ *mocks.MockScheduleTrigger, service *schedulingmocks.MockScheduleService) {
				service.EXPECT().GetSchedule(gomock.Any(), "s-9").
					Return(nil, scheduling.NewScheduleError(scheduling.ErrScheduleNotFound, apiErrors.ErrScheduleNotFound, "s-9", ""))
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   apiErrors.ErrScheduleNotFound,
		},
		{
			name:   "operator without access to the account",
			target: "/v1/schedules/execute?scheduleId=s-1",
			claims: operatorClaims,
			setup: func(_ *mocks.MockScheduleTrigger, service *schedulingmocks.MockScheduleService) {
				service.EXPECT().GetSchedule(gomock.Any(), "s-1").Return(scheduleOf("acc-2"), nil)
			},
			expectedStatus: http.StatusForbidden,
			expectedCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:           "viewer cannot execute",
			target:         "/v1/schedules/execute?scheduleId=s-1",
			claims:         viewerClaims,
			setup:          func(*mocks.MockScheduleTrigger, *schedulingmocks.MockScheduleService) {},
			expectedStatus: http.StatusForbidden,
			expectedCode:   apiErrors.ErrInsufficientPrivilege,
		},
		{
			name:   "persistence failure",
			target: "/v1/schedules/execute?scheduleId=s-1",
			claims: operatorClaims,
			setup: func(trigger *mocks.MockScheduleTrigger, service *schedulingmocks.MockScheduleService) {
				service.EXPECT().GetSchedule(gomock.Any(), "s-1").Return(scheduleOf("acc-1"), nil)
				trigger.EXPECT().ExecuteByID(gomock.Any(), "s-1").
					Return(domain.ExecutionResult{}, scheduling.NewScheduleError(scheduling.ErrRecordExecution, apiErrors.ErrDatabaseOperation, "s-1", ""))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   apiErrors.ErrDatabaseOperation,
		},
		{
			name:   "schedule busy",
			target: "/v1/schedules/execute?scheduleId=s-1",
			claims: adminClaims,
			setup: func(trigger *mocks.MockScheduleTrigger, service *schedulingmocks.MockScheduleService) {
				service.EXPECT().GetSchedule(gomock.Any(), "s-1").Return(scheduleOf("acc-3"), nil)
				trigger.EXPECT().ExecuteByID(gomock.Any(), "s-1").
					Return(domain.ExecutionResult{}, scheduling.NewScheduleError(scheduling.ErrScheduleBusy, apiErrors.ErrScheduleBusy, "s-1", ""))
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   apiErrors.ErrScheduleBusy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trigger, service := newScheduleMocks(t)
			tt.setup(trigger, service)

			rec := serve(Schedules(trigger, service), httptest.NewRequest(http.MethodPost, tt.target, nil), tt.claims)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
		})
	}
}

func TestExecuteSchedule_Success(t *testing.T) {
	trigger, service := newScheduleMocks(t)

	service.EXPECT().GetSchedule(gomock.Any(), "s-1").Return(scheduleOf("acc-1"), nil)
	trigger.EXPECT().ExecuteByID(gomock.Any(), "s-1").Return(domain.ExecutionResult{
		Success:            true,
		Message:            "Updated 1 ad groups",
		AffectedAdGroupIDs: []string{"ag-1"},
	}, nil)

	rec := serve(Schedules(trigger, service), httptest.NewRequest(http.MethodPost, "/v1/schedules/execute?scheduleId=s-1", nil), operatorClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var body ExecuteScheduleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"ag-1"}, body.Result.AffectedAdGroupIDs)
}

func TestGetSchedule_ReturnsNextExecution(t *testing.T) {
	trigger, service := newScheduleMocks(t)

	next := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	response := scheduleOf("acc-1")
	response.NextExecution = &next
	service.EXPECT().GetSchedule(gomock.Any(), "s-1").Return(response, nil)

	rec := serve(Schedules(trigger, service), httptest.NewRequest(http.MethodGet, "/v1/schedules/s-1", nil), viewerClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "s-1", body["id"])
	assert.Equal(t, "2025-03-03T08:00:00Z", body["nextExecution"])
}

func TestListSchedules_RequiresAccount(t *testing.T) {
	trigger, service := newScheduleMocks(t)

	rec := serve(Schedules(trigger, service), httptest.NewRequest(http.MethodGet, "/v1/schedules", nil), adminClaims)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
}

func TestListSchedules(t *testing.T) {
	trigger, service := newScheduleMocks(t)

	service.EXPECT().ListSchedules(gomock.Any(), "acc-1").Return([]*domain.ScheduleResponse{scheduleOf("acc-1")}, nil)

	rec := serve(Schedules(trigger, service), httptest.NewRequest(http.MethodGet, "/v1/schedules?accountId=acc-1", nil), viewerClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "s-1", body[0]["id"])
}

func TestListScheduleExecutions(t *testing.T) {
	trigger, service := newScheduleMocks(t)

	service.EXPECT().GetSchedule(gomock.Any(), "s-1").Return(scheduleOf("acc-1"), nil)
	service.EXPECT().ListExecutions(gomock.Any(), "s-1", 10).Return([]domain.ExecutionLogEntry{{ID: "e-1", ScheduleID: "s-1"}}, nil)

	rec := serve(Schedules(trigger, service), httptest.NewRequest(http.MethodGet, "/v1/schedules/s-1/executions?limit=10", nil), viewerClaims)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []domain.ExecutionLogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "e-1", body[0].ID)
}

func TestListScheduleExecutions_InvalidLimit(t *testing.T) {
	trigger, service := newScheduleMocks(t)

	rec := serve(Schedules(trigger, service), httptest.NewRequest(http.MethodGet, "/v1/schedules/s-1/executions?limit=abc", nil), viewerClaims)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
}

func TestWriteUsecaseError_UnknownError(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	req := httptest.NewRequest(http.MethodGet, "/v1/schedules", nil)
	ctx, _ := log.WithCorrelationID(req.Context(), "req-1")

	rec := httptest.NewRecorder()
	writeUsecaseError(rec, req.WithContext(ctx), errors.New("boom"), "Something failed")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, apiErrors.ErrInternalServer, body.Code)
	assert.Equal(t, "Something failed", body.Message)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "req-1", entry.Data[log.CorrelationIDField])
}
