// Package domain contém as estruturas de dados do domínio da aplicação
package domain

// RevenuePoint é um ponto da série de faturamento, na ordem entregue pela API
type RevenuePoint struct {
	Date         string  `json:"date"`
	TotalRevenue float64 `json:"total_revenue"`
}

// ProductStat agrega faturamento e quantidade vendida de um item do cardápio
type ProductStat struct {
	ItemName string  `json:"item_name"`
	Revenue  float64 `json:"revenue"`
	Quantity int     `json:"quantity"`
}

// PaymentMethodShare é a participação de um meio de pagamento no faturamento
type PaymentMethodShare struct {
	Method     string  `json:"method"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
}

// HourlyPoint é o faturamento de uma hora do dia
type HourlyPoint struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

// TotalQuantity soma as quantidades vendidas dos produtos
func TotalQuantity(products []ProductStat) int {
	total := 0
	for _, p := range products {
		total += p.Quantity
	}
	return total
}
