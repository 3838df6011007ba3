// Package presenting prepara os textos exibidos pelo dashboard a partir do view-model.
// Valores ausentes ou sem significado são exibidos com o placeholder.
package presenting

import (
	"fmt"
	"strconv"

	"github.com/saniyaC164/BIPA/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder é exibido no lugar de valores ausentes
const Placeholder = "—"

var printer = message.NewPrinter(language.English)

// Card é um indicador do grid de KPIs
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// Highlights são os destaques do dia exibidos ao lado do grid
type Highlights struct {
	PeakHour        string `json:"peak_hour"`
	PeakHourRevenue string `json:"peak_hour_revenue"`
	AvgOrderValue   string `json:"avg_order_value"`
	AvgOrderDelta   string `json:"avg_order_delta"`
	TopItem         string `json:"top_item"`
	TopItemOrders   string `json:"top_item_orders"`
	Satisfaction    string `json:"satisfaction"`
}

// DashboardCards é o conteúdo pronto para exibição
type DashboardCards struct {
	KPIs       []Card      `json:"kpis"`
	Highlights Highlights  `json:"highlights"`
	Heatmap    HeatmapGrid `json:"heatmap"`
}

// Cards monta os textos do dashboard; view-model nil resulta apenas em placeholders
func Cards(vm *domain.DashboardViewModel) DashboardCards {
	if vm == nil {
		vm = &domain.DashboardViewModel{}
	}

	return DashboardCards{
		KPIs:       KPICards(vm.KPI),
		Highlights: BuildHighlights(vm),
		Heatmap:    BuildHeatmapGrid(vm.Heatmap),
	}
}

// KPICards monta faturamento, transações e ticket médio
func KPICards(kpi domain.KPISummary) []Card {
	revenue := Placeholder
	if kpi.TotalRevenue != 0 {
		revenue = Rupees(kpi.TotalRevenue)
	}

	transactions := Placeholder
	if kpi.TotalTransactions != 0 {
		transactions = strconv.Itoa(kpi.TotalTransactions)
	}

	return []Card{
		{Label: "Revenue", Value: revenue, Color: "#2bb673"},
		{Label: "Transactions", Value: transactions, Color: "#6fb5ff"},
		{Label: "Avg Order", Value: avgOrder(kpi), Color: "#ffb347"},
	}
}

// avgOrder só é exibido quando há transações; o completamento com divisor 1 não tem significado
func avgOrder(kpi domain.KPISummary) string {
	if kpi.AvgOrderValue == 0 || kpi.TotalTransactions == 0 {
		return Placeholder
	}
	return "₹" + plain(kpi.AvgOrderValue)
}

// BuildHighlights monta os destaques do dia
func BuildHighlights(vm *domain.DashboardViewModel) Highlights {
	h := Highlights{
		PeakHour:        Placeholder,
		PeakHourRevenue: "₹" + Placeholder,
		AvgOrderValue:   avgOrder(vm.KPI),
		TopItem:         Placeholder,
		TopItemOrders:   Placeholder + " orders today",
		Satisfaction:    Placeholder,
	}

	if vm.KPI.PeakHour != nil && *vm.KPI.PeakHour != "" {
		h.PeakHour = *vm.KPI.PeakHour
	}
	if vm.KPI.PeakHourRevenue != nil {
		h.PeakHourRevenue = "₹" + plain(*vm.KPI.PeakHourRevenue)
	}
	if vm.KPI.AvgOrderDelta != nil && *vm.KPI.AvgOrderDelta != 0 {
		h.AvgOrderDelta = fmt.Sprintf("%s%% from yesterday", plain(*vm.KPI.AvgOrderDelta))
	}

	if len(vm.TopProducts) > 0 {
		top := vm.TopProducts[0]
		if top.ItemName != "" {
			h.TopItem = top.ItemName
		}
		if top.Quantity > 0 {
			h.TopItemOrders = fmt.Sprintf("%d orders today", top.Quantity)
		}
	}

	if vm.Feedback != nil && vm.Feedback.PositivePct != 0 {
		h.Satisfaction = fmt.Sprintf("%s%% Positive", plain(vm.Feedback.PositivePct))
	}

	return h
}

// Rupees formata o valor com separador de milhar e até duas casas decimais
func Rupees(v float64) string {
	return "₹" + printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// plain imprime o número sem zeros à direita, como o valor chega da API
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
