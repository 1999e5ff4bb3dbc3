package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=schedules.go -destination=mocks/mock_schedules.go -package=mocks

// ScheduleTrigger runs a single schedule on demand.
type ScheduleTrigger interface {
	ExecuteByID(ctx context.Context, scheduleID string) (domain.ExecutionResult, error)
}

type ExecuteScheduleResponse struct {
	Success bool                   `json:"success"`
	Result  domain.ExecutionResult `json:"result"`
}

// ExecuteSchedule runs the schedule named by the scheduleId query parameter
// and responds with the execution result.
func ExecuteSchedule(trigger ScheduleTrigger, schedules scheduling.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsOrReject(w, r)
		if !ok {
			return
		}

		scheduleID := r.URL.Query().Get("scheduleId")
		if scheduleID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Schedule ID is required", nil)
			return
		}

		schedule, err := schedules.GetSchedule(r.Context(), scheduleID)
		if err != nil {
			writeUsecaseError(w, r, err, "Error loading schedule")
			return
		}
		if !canAccessAccount(userClaims, schedule.AccountID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You are not allowed to run this schedule", nil)
			return
		}

		log.FromContext(r.Context()).WithFields(logrus.Fields{
			"schedule_id": scheduleID,
			"user_id":     userClaims.UserID,
		}).Info("manual schedule execution requested")

		result, err := trigger.ExecuteByID(r.Context(), scheduleID)
		if err != nil {
			writeUsecaseError(w, r, err, "Error executing schedule")
			return
		}

		writeJSON(w, http.StatusOK, ExecuteScheduleResponse{
			Success: true,
			Result:  result,
		})
	}
}

// ListSchedules lists the schedules of the account in the accountId query parameter.
func ListSchedules(schedules scheduling.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsOrReject(w, r)
		if !ok {
			return
		}

		accountID := r.URL.Query().Get("accountId")
		if accountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Account ID is required", nil)
			return
		}
		if !canAccessAccount(userClaims, accountID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You are not allowed to access this account", nil)
			return
		}

		result, err := schedules.ListSchedules(r.Context(), accountID)
		if err != nil {
			writeUsecaseError(w, r, err, "Error listing schedules")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func GetSchedule(schedules scheduling.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsOrReject(w, r)
		if !ok {
			return
		}

		scheduleID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		schedule, err := schedules.GetSchedule(r.Context(), scheduleID)
		if err != nil {
			writeUsecaseError(w, r, err, "Error loading schedule")
			return
		}
		if !canAccessAccount(userClaims, schedule.AccountID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You are not allowed to access this schedule", nil)
			return
		}

		writeJSON(w, http.StatusOK, schedule)
	}
}

// ListScheduleExecutions returns the execution log of a schedule, newest first.
// The optional limit query parameter caps the number of entries.
func ListScheduleExecutions(schedules scheduling.ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := claimsOrReject(w, r)
		if !ok {
			return
		}

		scheduleID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit must be a non-negative integer", nil)
				return
			}
			limit = parsed
		}

		schedule, err := schedules.GetSchedule(r.Context(), scheduleID)
		if err != nil {
			writeUsecaseError(w, r, err, "Error loading schedule")
			return
		}
		if !canAccessAccount(userClaims, schedule.AccountID) {
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "You are not allowed to access this schedule", nil)
			return
		}

		entries, err := schedules.ListExecutions(r.Context(), scheduleID, limit)
		if err != nil {
			writeUsecaseError(w, r, err, "Error listing executions")
			return
		}

		writeJSON(w, http.StatusOK, entries)
	}
}
