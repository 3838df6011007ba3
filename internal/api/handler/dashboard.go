package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
	"github.com/saniyaC164/BIPA/internal/usecases/presenting"
	"github.com/saniyaC164/BIPA/pkg/apiErrors"
	"github.com/saniyaC164/BIPA/pkg/log"
)

// GetDashboard retorna o snapshot publicado
func GetDashboard(service assembling.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.Current())
	}
}

// GetDashboardCards retorna os indicadores e destaques prontos para exibição
func GetDashboardCards(service assembling.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := service.Current()
		writeJSON(w, r, http.StatusOK, presenting.Cards(snap.ViewModel))
	}
}

// RefreshDashboard executa um ciclo com os filtros atuais
func RefreshDashboard(service assembling.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := service.Refresh(cycleContext(r))
		respondCycle(w, r, service, snap, err)
	}
}

// UpdateFilters valida os novos filtros e executa um ciclo com eles
func UpdateFilters(service assembling.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filters domain.FilterState
		if err := json.NewDecoder(r.Body).Decode(&filters); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		snap, err := service.SetFilters(cycleContext(r), filters)
		respondCycle(w, r, service, snap, err)
	}
}

// cycleContext desliga o ciclo do cliente HTTP: uma desconexão não pode publicar erro
func cycleContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func respondCycle(w http.ResponseWriter, r *http.Request, service assembling.Dashboarder, snap assembling.Snapshot, err error) {
	var cycleErr *assembling.CycleError

	switch {
	case err == nil:
		writeJSON(w, r, http.StatusOK, snap)
	case errors.Is(err, assembling.ErrStaleCycle):
		writeJSON(w, r, http.StatusOK, service.Current())
	case errors.As(err, &cycleErr):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, snap.Error, snap)
	default:
		log.ForContext(r.Context()).WithError(err).Warn("api: filtros rejeitados")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	}
}
