package handler

import (
	"context"
	"net/http"

	"github.com/saniyaC164/BIPA/pkg/apiErrors"
	"github.com/saniyaC164/BIPA/pkg/log"
)

// CronJobTypeRefresh é a atualização do dashboard
const CronJobTypeRefresh = "refresh"

// RefreshScheduler é o agendador que pode ser disparado manualmente
type RefreshScheduler interface {
	TriggerManualRefresh(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	DashboardRefreshService RefreshScheduler
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices, cronType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch cronType {
		case CronJobTypeRefresh:
			if services.DashboardRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrUnavailable, "Serviço de atualização do dashboard não disponível", nil)
				return
			}

			if !services.DashboardRefreshService.TriggerManualRefresh(cycleContext(r)) {
				writeJSON(w, r, http.StatusConflict, map[string]any{
					"message": "Atualização já em andamento",
					"type":    cronType,
				})
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: refresh", nil)
			return
		}

		log.ForContext(r.Context()).WithField("type", cronType).Info("api: cron job iniciada manualmente")
		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.DashboardRefreshService != nil {
			status[CronJobTypeRefresh] = services.DashboardRefreshService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
