package assembling

import (
	"context"

	"github.com/saniyaC164/BIPA/internal/domain"
)

// Dashboarder é o que a camada HTTP precisa do dashboard
type Dashboarder interface {
	Current() Snapshot
	Filters() domain.FilterState
	Refresh(ctx context.Context) (Snapshot, error)
	SetFilters(ctx context.Context, filters domain.FilterState) (Snapshot, error)
	Subscribe() (<-chan Snapshot, func())
}
