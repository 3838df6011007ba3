package normalizing

import (
	"github.com/saniyaC164/BIPA/internal/domain"
)

// KPI normaliza o objeto kpi de /dashboard-data.
// Campos opcionais ausentes continuam nil para que a exibição use o placeholder.
func KPI(raw any) domain.KPISummary {
	switch v := raw.(type) {
	case domain.KPISummary:
		return kpiFromMap(kpiAsMap(v))
	case *domain.KPISummary:
		if v == nil {
			return domain.KPISummary{}
		}
		return kpiFromMap(kpiAsMap(*v))
	case map[string]any:
		return kpiFromMap(v)
	}
	return domain.KPISummary{}
}

func kpiAsMap(k domain.KPISummary) map[string]any {
	m := map[string]any{
		"total_revenue":      k.TotalRevenue,
		"total_transactions": k.TotalTransactions,
		"avg_order_value":    k.AvgOrderValue,
	}
	if k.PeakHour != nil {
		m["peak_hour"] = *k.PeakHour
	}
	if k.PeakHourRevenue != nil {
		m["peak_hour_revenue"] = *k.PeakHourRevenue
	}
	if k.AvgOrderDelta != nil {
		m["avg_order_delta"] = *k.AvgOrderDelta
	}
	return m
}

func kpiFromMap(m map[string]any) domain.KPISummary {
	kpi := domain.KPISummary{
		TotalRevenue:      toAmount(m["total_revenue"]),
		TotalTransactions: toCount(m["total_transactions"]),
		AvgOrderValue:     toAmount(m["avg_order_value"]),
	}

	if v := m["peak_hour"]; v != nil {
		if peak := toText(v); peak != "" {
			kpi.PeakHour = &peak
		}
	}
	if v := m["peak_hour_revenue"]; v != nil {
		revenue := toAmount(v)
		kpi.PeakHourRevenue = &revenue
	}
	if v := m["avg_order_delta"]; v != nil {
		delta := toNumber(v)
		kpi.AvgOrderDelta = &delta
	}

	return kpi
}

// Dashboard normaliza /dashboard-data: kpi, top_products e payment_distribution
func Dashboard(raw any) domain.DashboardData {
	switch v := raw.(type) {
	case domain.DashboardData:
		return domain.DashboardData{
			KPI:                 KPI(v.KPI),
			TopProducts:         Products(v.TopProducts, ""),
			PaymentDistribution: PaymentDistribution(v.PaymentDistribution),
		}
	case map[string]any:
		return domain.DashboardData{
			KPI:                 KPI(v["kpi"]),
			TopProducts:         Products(v, "top_products"),
			PaymentDistribution: PaymentDistribution(v),
		}
	}

	return domain.DashboardData{
		TopProducts:         []domain.ProductStat{},
		PaymentDistribution: []domain.PaymentMethodShare{},
	}
}

// Feedback normaliza /feedback-summary; carga ausente ou inválida resulta em nil
func Feedback(raw any) *domain.FeedbackSummary {
	var m map[string]any
	switch v := raw.(type) {
	case *domain.FeedbackSummary:
		if v == nil {
			return nil
		}
		m = feedbackAsMap(*v)
	case domain.FeedbackSummary:
		m = feedbackAsMap(v)
	case map[string]any:
		m = v
	default:
		return nil
	}

	return &domain.FeedbackSummary{
		PositivePct:  toPercentage(m["positive_pct"]),
		NeutralPct:   toPercentage(m["neutral_pct"]),
		NegativePct:  toPercentage(m["negative_pct"]),
		TotalReviews: toCount(field(m, "total_reviews", "total")),
	}
}

func feedbackAsMap(f domain.FeedbackSummary) map[string]any {
	return map[string]any{
		"positive_pct":  f.PositivePct,
		"neutral_pct":   f.NeutralPct,
		"negative_pct":  f.NegativePct,
		"total_reviews": f.TotalReviews,
	}
}
