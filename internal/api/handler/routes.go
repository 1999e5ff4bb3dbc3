package handler

import (
	"net/http"

	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/api/handler/router"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/account"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/authenticating"
	"github.com/omnihero1/allegro-ads-zarzadzanie/internal/usecases/scheduling"
	"github.com/omnihero1/allegro-ads-zarzadzanie/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Schedules(trigger ScheduleTrigger, service scheduling.ScheduleService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/schedules",
			Method:      http.MethodGet,
			Handler:     ListSchedules(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/execute",
			Method:      http.MethodPost,
			Handler:     ExecuteSchedule(trigger, service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/schedules/:id",
			Method:      http.MethodGet,
			Handler:     GetSchedule(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/schedules/:id/executions",
			Method:      http.MethodGet,
			Handler:     ListScheduleExecutions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Ads(service account.AccountService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/ads/clients",
			Method:      http.MethodGet,
			Handler:     ListAdsClients(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/ads/offers",
			Method:      http.MethodGet,
			Handler:     ListSponsoredOffers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/ads/adgroups",
			Method:      http.MethodGet,
			Handler:     ListAdGroups(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
