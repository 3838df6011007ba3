// Package basket expõe as regras de associação entre itens vendidos juntos
package basket

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const (
	DefaultMinSupport    = 0.1
	DefaultMinConfidence = 0.5
)

// ErrInvalidThreshold indica limite fora do intervalo [0,1]
var ErrInvalidThreshold = errors.New("limite deve estar entre 0 e 1")

// Strength classifica a força da associação pelo lift
type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

// Rule é uma regra de associação antecedente → consequente
type Rule struct {
	Antecedents []string `json:"antecedents"`
	Consequents []string `json:"consequents"`
	Support     float64  `json:"support"`
	Confidence  float64  `json:"confidence"`
	Lift        float64  `json:"lift"`
	Conviction  float64  `json:"conviction"`
	Strength    Strength `json:"strength"`
}

// Summary resume o catálogo completo de regras
type Summary struct {
	RuleCount  int     `json:"rule_count"`
	MaxLift    float64 `json:"max_lift"`
	AvgSupport float64 `json:"avg_support"`
}

var demoRules = []Rule{
	{Antecedents: []string{"Cappuccino"}, Consequents: []string{"Croissant"}, Support: 0.25, Confidence: 0.78, Lift: 1.8, Conviction: 2.1},
	{Antecedents: []string{"Latte"}, Consequents: []string{"Blueberry Muffin"}, Support: 0.18, Confidence: 0.65, Lift: 1.5, Conviction: 1.7},
	{Antecedents: []string{"Espresso"}, Consequents: []string{"Chocolate Cake"}, Support: 0.15, Confidence: 0.72, Lift: 2.1, Conviction: 2.5},
	{Antecedents: []string{"Green Tea"}, Consequents: []string{"Veggie Sandwich"}, Support: 0.12, Confidence: 0.68, Lift: 1.9, Conviction: 2.2},
	{Antecedents: []string{"Americano"}, Consequents: []string{"Cheesecake"}, Support: 0.20, Confidence: 0.61, Lift: 1.4, Conviction: 1.6},
}

// DemoRules devolve uma cópia do catálogo de regras de demonstração
func DemoRules() []Rule {
	out := make([]Rule, len(demoRules))
	for i, r := range demoRules {
		r.Strength = StrengthOf(r.Lift)
		out[i] = r
	}
	return out
}

// StrengthOf classifica o lift: acima de 1.5 forte, acima de 1.0 moderada
func StrengthOf(lift float64) Strength {
	switch {
	case lift > 1.5:
		return StrengthStrong
	case lift > 1.0:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Filter mantém as regras que atingem os dois limites, ordenadas por lift decrescente
func Filter(rules []Rule, minSupport, minConfidence float64) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Support >= minSupport && r.Confidence >= minConfidence {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Lift > out[j].Lift
	})

	return out
}

// Summarize calcula quantidade, maior lift e suporte médio das regras
func Summarize(rules []Rule) Summary {
	if len(rules) == 0 {
		return Summary{}
	}

	s := Summary{RuleCount: len(rules), MaxLift: rules[0].Lift}
	total := decimal.Zero
	for _, r := range rules {
		if r.Lift > s.MaxLift {
			s.MaxLift = r.Lift
		}
		total = total.Add(decimal.NewFromFloat(r.Support))
	}

	s.AvgSupport = total.Div(decimal.NewFromInt(int64(len(rules)))).Round(4).InexactFloat64()
	return s
}

// ParseThreshold lê um limite da query; vazio resulta no valor padrão
func ParseThreshold(raw string, def float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("limite inválido %q: %w", raw, ErrInvalidThreshold)
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("limite %v: %w", v, ErrInvalidThreshold)
	}

	return v, nil
}
