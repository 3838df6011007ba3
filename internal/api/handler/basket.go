package handler

import (
	"net/http"

	"github.com/saniyaC164/BIPA/internal/usecases/basket"
	"github.com/saniyaC164/BIPA/pkg/apiErrors"
)

type basketResponse struct {
	MinSupport    float64        `json:"min_support"`
	MinConfidence float64        `json:"min_confidence"`
	Rules         []basket.Rule  `json:"rules"`
	Summary       basket.Summary `json:"summary"`
}

// GetBasketRules retorna as regras de associação filtradas e ordenadas por lift
func GetBasketRules() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		minSupport, err := basket.ParseThreshold(query.Get("min_support"), basket.DefaultMinSupport)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "min_support: "+err.Error(), nil)
			return
		}

		minConfidence, err := basket.ParseThreshold(query.Get("min_confidence"), basket.DefaultMinConfidence)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "min_confidence: "+err.Error(), nil)
			return
		}

		rules := basket.DemoRules()

		writeJSON(w, r, http.StatusOK, basketResponse{
			MinSupport:    minSupport,
			MinConfidence: minConfidence,
			Rules:         basket.Filter(rules, minSupport, minConfidence),
			Summary:       basket.Summarize(rules),
		})
	}
}
