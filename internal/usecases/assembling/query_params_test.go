package assembling

import (
	"net/url"
	"testing"

	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeQueryParams(t *testing.T) {
	tests := []struct {
		name    string
		filters domain.FilterState
		want    url.Values
	}{
		{
			name:    "período fixo",
			filters: domain.FilterState{DateRange: domain.Range30Days, Category: domain.CategoryCoffee},
			want:    url.Values{"period": {"30d"}},
		},
		{
			name:    "período fixo ignora datas",
			filters: domain.FilterState{DateRange: domain.Range7Days, StartDate: "2024-01-01", EndDate: "2024-01-31"},
			want:    url.Values{"period": {"7d"}},
		},
		{
			name:    "personalizado completo",
			filters: domain.FilterState{DateRange: domain.RangeCustom, StartDate: "2024-01-01", EndDate: "2024-01-31"},
			want:    url.Values{"start_date": {"2024-01-01"}, "end_date": {"2024-01-31"}},
		},
		{
			name:    "personalizado sem fim não envia nada",
			filters: domain.FilterState{DateRange: domain.RangeCustom, StartDate: "2024-01-01"},
			want:    url.Values{},
		},
		{
			name:    "personalizado sem datas não envia nada",
			filters: domain.FilterState{DateRange: domain.RangeCustom},
			want:    url.Values{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeQueryParams(tt.filters)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, got.Get("category"))
		})
	}
}
