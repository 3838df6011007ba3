package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saniyaC164/BIPA/internal/api/handler/router"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Dashboard(service assembling.Dashboarder, allowedOrigins []string) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/dashboard/cards",
			Method:  http.MethodGet,
			Handler: GetDashboardCards(service),
		},
		{
			Path:    "/v1/dashboard/refresh",
			Method:  http.MethodPost,
			Handler: RefreshDashboard(service),
		},
		{
			Path:    "/v1/dashboard/filters",
			Method:  http.MethodPut,
			Handler: UpdateFilters(service),
		},
		{
			Path:    "/v1/dashboard/stream",
			Method:  http.MethodGet,
			Handler: DashboardStream(service, allowedOrigins),
		},
	}
}

func Basket() []router.Route {
	return []router.Route{
		{
			Path:    "/v1/basket/rules",
			Method:  http.MethodGet,
			Handler: GetBasketRules(),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/" + CronJobTypeRefresh + "/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services, CronJobTypeRefresh),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}
