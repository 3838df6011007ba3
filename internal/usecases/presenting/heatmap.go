package presenting

import (
	"math"

	"github.com/saniyaC164/BIPA/internal/domain"
)

const (
	hoursPerDay = 24

	// heatmapScale é o valor que corresponde à intensidade máxima
	heatmapScale = 120.0
)

// GridCell é uma célula do heatmap pronta para exibição
type GridCell struct {
	Hour      int     `json:"hour"`
	Value     float64 `json:"value"`
	Revenue   float64 `json:"revenue"`
	Intensity float64 `json:"intensity"`
}

// HeatmapRow é a linha de um dia da semana
type HeatmapRow struct {
	Day   domain.Weekday `json:"day"`
	Cells []GridCell     `json:"cells"`
}

// HeatmapGrid é a matriz 7x24 do heatmap, de segunda a domingo
type HeatmapGrid struct {
	Rows []HeatmapRow `json:"rows"`
}

// BuildHeatmapGrid preenche a matriz completa; células sem dado ficam zeradas.
// Células repetidas para o mesmo dia e hora são somadas.
func BuildHeatmapGrid(cells []domain.HeatmapCell) HeatmapGrid {
	rows := make([]HeatmapRow, len(domain.Weekdays))
	for i, day := range domain.Weekdays {
		row := HeatmapRow{Day: day, Cells: make([]GridCell, hoursPerDay)}
		for hour := range hoursPerDay {
			row.Cells[hour].Hour = hour
		}
		rows[i] = row
	}

	for _, c := range cells {
		idx := c.Day.Index()
		if idx < 0 || c.Hour < 0 || c.Hour >= hoursPerDay {
			continue
		}
		cell := &rows[idx].Cells[c.Hour]
		cell.Value += c.Value
		cell.Revenue += c.Revenue
	}

	for i := range rows {
		for h := range rows[i].Cells {
			rows[i].Cells[h].Intensity = Intensity(rows[i].Cells[h].Value)
		}
	}

	return HeatmapGrid{Rows: rows}
}

// Intensity normaliza o valor da célula para [0,1]
func Intensity(value float64) float64 {
	if value <= 0 {
		return 0
	}
	return math.Min(1, value/heatmapScale)
}
