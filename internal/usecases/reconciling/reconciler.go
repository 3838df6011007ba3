// Package reconciling completa os KPIs que a API deixou zerados a partir da série
// de faturamento e da lista de produtos. Valores não zerados nunca são alterados.
package reconciling

import (
	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/saniyaC164/BIPA/pkg/utils"
)

// Reconcile aplica, em ordem, os três passos de completamento do KPI
func Reconcile(kpi domain.KPISummary, revenue []domain.RevenuePoint, products []domain.ProductStat) domain.KPISummary {
	out := kpi

	if out.TotalRevenue == 0 && len(revenue) > 0 {
		values := make([]float64, len(revenue))
		for i, p := range revenue {
			values[i] = p.TotalRevenue
		}
		out.TotalRevenue = utils.SumDecimal(values...)
	}

	if out.TotalTransactions == 0 && len(products) > 0 {
		out.TotalTransactions = domain.TotalQuantity(products)
	}

	// Com transações zeradas o divisor vira 1; a exibição trata esse caso como ausente
	if out.AvgOrderValue == 0 && out.TotalRevenue != 0 {
		out.AvgOrderValue = utils.RoundWithTwoDecimalPlace(out.TotalRevenue / float64(max(1, out.TotalTransactions)))
	}

	return out
}
