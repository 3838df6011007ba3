package normalizing

import (
	"math"
	"math/big"
	"strings"

	"github.com/spf13/cast"
)

// maxCount limita contagens ao maior inteiro representável sem perda em float64
const maxCount = 1 << 53

// toNumber converte como Number(x): texto numérico vira número, o resto vira 0.
// Valores não finitos também viram 0.
func toNumber(v any) float64 {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if f, ok := radixNumber(s); ok {
			return f
		}
		v = s
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// radixNumber lê literais 0x, 0o e 0b sem sinal, como Number("0x10")
func radixNumber(s string) (float64, bool) {
	if len(s) < 2 || s[0] != '0' {
		return 0, false
	}

	var base int
	switch s[1] {
	case 'x', 'X':
		base = 16
	case 'o', 'O':
		base = 8
	case 'b', 'B':
		base = 2
	default:
		return 0, false
	}

	digits := s[2:]
	if digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, true
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, true
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	if math.IsInf(f, 0) {
		return 0, true
	}
	return f, true
}

// toAmount é toNumber sem valores negativos
func toAmount(v any) float64 {
	return math.Max(0, toNumber(v))
}

func toCount(v any) int {
	f := math.Round(toAmount(v))
	if f > maxCount {
		return maxCount
	}
	return int(f)
}

func toPercentage(v any) float64 {
	return math.Min(100, toAmount(v))
}

func toText(v any) string {
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return s
}

// parseHour aceita 14, "14" ou "14:00"; fora de [0,23] é rejeitado
func parseHour(v any) (int, bool) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if idx := strings.Index(s, ":"); idx > 0 {
			s = s[:idx]
		}
		v = s
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || v == nil || f != math.Trunc(f) || f < 0 || f > 23 {
		return 0, false
	}
	return int(f), true
}

// field devolve o primeiro valor presente e não nulo entre as chaves
func field(m map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstAmount devolve o primeiro valor diferente de zero entre as chaves
func firstAmount(m map[string]any, keys ...string) float64 {
	for _, key := range keys {
		if amount := toAmount(m[key]); amount != 0 {
			return amount
		}
	}
	return 0
}

// listOf prefere a lista sob uma das chaves, depois a própria carga se já for lista
func listOf(raw any, keys ...string) []any {
	switch v := raw.(type) {
	case map[string]any:
		for _, key := range keys {
			if inner, ok := v[key]; ok {
				list, _ := inner.([]any)
				return list
			}
		}
	case []any:
		return v
	}
	return nil
}
