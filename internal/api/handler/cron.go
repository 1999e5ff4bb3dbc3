package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/apiErrors"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/log"
)

const (
	CronJobTypeSchedules = "schedules"
	CronJobTypeTokens    = "tokens"
	CronJobTypeAll       = "all"
)

// CronJob is a background job that can also be started by hand.
type CronJob interface {
	TriggerManualSync(ctx context.Context)
	GetStatus() map[string]any
}

// CronJobServices holds the jobs exposed for manual runs.
type CronJobServices struct {
	ScheduleExecutor CronJob
	TokenRefresh     CronJob
}

// RunCronJob starts the job named by the type parameter in the background.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Cron job type is required", nil)
			return
		}

		var jobs []CronJob
		switch cronType {
		case CronJobTypeSchedules:
			jobs = append(jobs, services.ScheduleExecutor)
		case CronJobTypeTokens:
			jobs = append(jobs, services.TokenRefresh)
		case CronJobTypeAll:
			jobs = append(jobs, services.TokenRefresh, services.ScheduleExecutor)
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Invalid cron job type. Accepted values: schedules, tokens, all", nil)
			return
		}

		for _, job := range jobs {
			if job == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Cron job service is not available", map[string]any{
					"type": cronType,
				})
				return
			}
		}

		for _, job := range jobs {
			job.TriggerManualSync(r.Context())
		}

		log.FromContext(r.Context()).WithField("type", cronType).Info("cron job triggered manually")

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job started",
			"type":    cronType,
		})
	}
}

// GetCronStatus reports the configuration and last runs of every job.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.ScheduleExecutor != nil {
			status[CronJobTypeSchedules] = services.ScheduleExecutor.GetStatus()
		}
		if services.TokenRefresh != nil {
			status[CronJobTypeTokens] = services.TokenRefresh.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
