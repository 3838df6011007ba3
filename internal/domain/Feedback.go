package domain

// FeedbackSummary resume a distribuição de sentimento das avaliações
type FeedbackSummary struct {
	PositivePct  float64 `json:"positive_pct"`
	NeutralPct   float64 `json:"neutral_pct"`
	NegativePct  float64 `json:"negative_pct"`
	TotalReviews int     `json:"total_reviews"`
}
