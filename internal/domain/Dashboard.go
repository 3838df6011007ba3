package domain

import "time"

// DashboardViewModel é o conjunto completo exibido pelo dashboard.
// Uma vez publicado não é alterado; cada ciclo publica um novo valor.
type DashboardViewModel struct {
	KPI                 KPISummary           `json:"kpi"`
	RevenueTrend        []RevenuePoint       `json:"revenue_trend"`
	TopProducts         []ProductStat        `json:"top_products"`
	ProductAnalytics    []ProductStat        `json:"product_analytics"`
	PaymentDistribution []PaymentMethodShare `json:"payment_distribution"`
	Hourly              []HourlyPoint        `json:"hourly"`
	Heatmap             []HeatmapCell        `json:"heatmap"`
	Feedback            *FeedbackSummary     `json:"feedback"`
	Filters             FilterState          `json:"filters"`
	GeneratedAt         time.Time            `json:"generated_at"`
}

// DashboardSnapshotEntry é um view-model publicado e gravado no histórico
type DashboardSnapshotEntry struct {
	ID        int64              `json:"id"`
	CycleID   string             `json:"cycle_id"`
	Sequence  uint64             `json:"sequence"`
	Filters   FilterState        `json:"filters"`
	ViewModel DashboardViewModel `json:"view_model"`
	CreatedAt time.Time          `json:"created_at"`
}
