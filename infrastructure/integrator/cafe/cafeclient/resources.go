package cafeclient

// Resource é um recurso REST da API analítica do café
type Resource string

const (
	ResourceDashboardData    Resource = "/dashboard-data"
	ResourceRevenueTrends    Resource = "/revenue-trends"
	ResourceProductAnalytics Resource = "/product-analytics"
	ResourceHourlyAnalysis   Resource = "/hourly-analysis"
	ResourceHeatmap          Resource = "/heatmap"
	ResourceFeedbackSummary  Resource = "/feedback-summary"
)

// Name devolve o recurso sem a barra inicial, usado em logs e métricas
func (r Resource) Name() string {
	if len(r) > 0 && r[0] == '/' {
		return string(r[1:])
	}
	return string(r)
}
