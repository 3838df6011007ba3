package assembling

import (
	"net/url"

	"github.com/saniyaC164/BIPA/internal/domain"
)

// ComputeQueryParams traduz os filtros nos parâmetros de /revenue-trends e /heatmap.
// Intervalo personalizado incompleto não gera parâmetro de data algum.
func ComputeQueryParams(filters domain.FilterState) url.Values {
	params := url.Values{}

	if filters.DateRange != domain.RangeCustom {
		if filters.DateRange != "" {
			params.Set("period", string(filters.DateRange))
		}
		return params
	}

	if filters.HasCustomInterval() {
		params.Set("start_date", filters.StartDate)
		params.Set("end_date", filters.EndDate)
	}

	return params
}
