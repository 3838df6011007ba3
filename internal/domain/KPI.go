package domain

// KPISummary reúne os indicadores principais do período.
// Campos opcionais ficam nil quando a API não os envia.
type KPISummary struct {
	TotalRevenue      float64  `json:"total_revenue"`
	TotalTransactions int      `json:"total_transactions"`
	AvgOrderValue     float64  `json:"avg_order_value"`
	PeakHour          *string  `json:"peak_hour,omitempty"`
	PeakHourRevenue   *float64 `json:"peak_hour_revenue,omitempty"`
	AvgOrderDelta     *float64 `json:"avg_order_delta,omitempty"`
}

// DashboardData é o conteúdo de /dashboard-data já normalizado
type DashboardData struct {
	KPI                 KPISummary           `json:"kpi"`
	TopProducts         []ProductStat        `json:"top_products"`
	PaymentDistribution []PaymentMethodShare `json:"payment_distribution"`
}
