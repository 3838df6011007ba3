package normalizing

import (
	"github.com/saniyaC164/BIPA/internal/domain"
)

// Products normaliza uma lista de produtos sob a chave informada
func Products(raw any, key string) []domain.ProductStat {
	if typed, ok := raw.([]domain.ProductStat); ok {
		products := make([]domain.ProductStat, 0, len(typed))
		for _, p := range typed {
			products = append(products, domain.ProductStat{
				ItemName: p.ItemName,
				Revenue:  toAmount(p.Revenue),
				Quantity: toCount(p.Quantity),
			})
		}
		return products
	}

	items := listOf(raw, key)
	products := make([]domain.ProductStat, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		products = append(products, domain.ProductStat{
			ItemName: toText(field(m, "item_name", "product_detail", "name")),
			Revenue:  firstAmount(m, "revenue", "total"),
			Quantity: toCount(field(m, "quantity", "transaction_qty")),
		})
	}

	return products
}

// PaymentDistribution normaliza a distribuição por meio de pagamento
func PaymentDistribution(raw any) []domain.PaymentMethodShare {
	if typed, ok := raw.([]domain.PaymentMethodShare); ok {
		shares := make([]domain.PaymentMethodShare, 0, len(typed))
		for _, s := range typed {
			shares = append(shares, domain.PaymentMethodShare{
				Method:     s.Method,
				Revenue:    toAmount(s.Revenue),
				Percentage: toPercentage(s.Percentage),
			})
		}
		return shares
	}

	items := listOf(raw, "payment_distribution")
	shares := make([]domain.PaymentMethodShare, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		shares = append(shares, domain.PaymentMethodShare{
			Method:     toText(field(m, "method", "payment_method")),
			Revenue:    toAmount(m["revenue"]),
			Percentage: toPercentage(field(m, "percentage", "pct")),
		})
	}

	return shares
}

// Hourly normaliza /hourly-analysis; pontos com hora inválida são descartados
func Hourly(raw any) []domain.HourlyPoint {
	if typed, ok := raw.([]domain.HourlyPoint); ok {
		points := make([]domain.HourlyPoint, 0, len(typed))
		for _, p := range typed {
			if hour, ok := parseHour(p.Hour); ok {
				points = append(points, domain.HourlyPoint{Hour: hour, Revenue: toAmount(p.Revenue)})
			}
		}
		return points
	}

	items := listOf(raw, "hourly_data", "hourly", "data")
	points := make([]domain.HourlyPoint, 0, len(items))
	for _, item := range items {
		var hourValue, revenue any
		switch v := item.(type) {
		case map[string]any:
			hourValue = field(v, "hour", "Hour")
			revenue = field(v, "revenue", "total_revenue", "Total_Bill")
		case []any:
			if len(v) > 0 {
				hourValue = v[0]
			}
			if len(v) > 1 {
				revenue = v[1]
			}
		default:
			continue
		}

		hour, ok := parseHour(hourValue)
		if !ok {
			continue
		}
		points = append(points, domain.HourlyPoint{Hour: hour, Revenue: toAmount(revenue)})
	}

	return points
}

// Heatmap normaliza /heatmap; dias desconhecidos e horas inválidas são descartados
func Heatmap(raw any) []domain.HeatmapCell {
	if typed, ok := raw.([]domain.HeatmapCell); ok {
		cells := make([]domain.HeatmapCell, 0, len(typed))
		for _, c := range typed {
			day, dayOK := domain.ParseWeekday(string(c.Day))
			hour, hourOK := parseHour(c.Hour)
			if !dayOK || !hourOK {
				continue
			}
			cells = append(cells, domain.HeatmapCell{Day: day, Hour: hour, Value: toAmount(c.Value), Revenue: toAmount(c.Revenue)})
		}
		return cells
	}

	items := listOf(raw, "heatmap", "data")
	cells := make([]domain.HeatmapCell, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}

		day, dayOK := domain.ParseWeekday(toText(m["day"]))
		hour, hourOK := parseHour(m["hour"])
		if !dayOK || !hourOK {
			continue
		}

		cells = append(cells, domain.HeatmapCell{
			Day:     day,
			Hour:    hour,
			Value:   toAmount(m["value"]),
			Revenue: toAmount(m["revenue"]),
		})
	}

	return cells
}
