// Package normalizing converte as cargas da API analítica em entidades de domínio.
//
// Todas as funções são puras e totais: nunca falham, nunca entram em pânico e
// aplicadas sobre a própria saída devolvem o mesmo valor. Campos ausentes ou
// inválidos viram 0 ou "" e as coleções inválidas viram listas vazias.
package normalizing

import (
	"github.com/saniyaC164/BIPA/internal/domain"
)

// seriesPoint é um ponto da série de faturamento como chegou da API
type seriesPoint interface {
	resolve() domain.RevenuePoint
}

// namedPoint é o formato {"date": ..., "total_revenue": ...}
type namedPoint struct {
	date    any
	revenue any
}

// tuplePoint é o formato [date, total_revenue]
type tuplePoint struct {
	date  any
	value any
}

func (p namedPoint) resolve() domain.RevenuePoint {
	return domain.RevenuePoint{Date: toText(p.date), TotalRevenue: toAmount(p.revenue)}
}

func (p tuplePoint) resolve() domain.RevenuePoint {
	return domain.RevenuePoint{Date: toText(p.date), TotalRevenue: toAmount(p.value)}
}

func parseSeriesPoint(v any) (seriesPoint, bool) {
	switch item := v.(type) {
	case map[string]any:
		return namedPoint{date: item["date"], revenue: field(item, "total_revenue", "revenue")}, true
	case []any:
		var p tuplePoint
		if len(item) > 0 {
			p.date = item[0]
		}
		if len(item) > 1 {
			p.value = item[1]
		}
		return p, true
	case domain.RevenuePoint:
		return namedPoint{date: item.Date, revenue: item.TotalRevenue}, true
	}
	return nil, false
}

// RevenueSeries normaliza /revenue-trends. A ordem recebida é mantida.
func RevenueSeries(raw any) []domain.RevenuePoint {
	var items []any
	if typed, ok := raw.([]domain.RevenuePoint); ok {
		items = make([]any, len(typed))
		for i, p := range typed {
			items[i] = p
		}
	} else {
		items = listOf(raw, "data", "revenue_trends")
	}

	series := make([]domain.RevenuePoint, 0, len(items))
	for _, item := range items {
		point, ok := parseSeriesPoint(item)
		if !ok {
			continue
		}
		series = append(series, point.resolve())
	}

	return series
}
