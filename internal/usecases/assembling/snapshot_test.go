package assembling

import (
	"testing"

	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readySnapshot(revenue float64) func(Snapshot) Snapshot {
	return func(Snapshot) Snapshot {
		return Snapshot{
			Status:    StatusReady,
			ViewModel: &domain.DashboardViewModel{KPI: domain.KPISummary{TotalRevenue: revenue}},
		}
	}
}

func TestStore_Apply(t *testing.T) {
	store := NewStore(domain.DefaultFilters())
	assert.Equal(t, StatusLoading, store.Current().Status)

	snap, applied := store.apply(2, readySnapshot(200))
	require.True(t, applied)
	assert.Equal(t, uint64(2), snap.Sequence)

	snap, applied = store.apply(1, readySnapshot(100))
	assert.False(t, applied)
	assert.Equal(t, uint64(2), snap.Sequence)
	assert.Equal(t, 200.0, store.Current().ViewModel.KPI.TotalRevenue)

	_, applied = store.apply(3, func(prev Snapshot) Snapshot {
		return Snapshot{Status: StatusError, Error: ErrLoadMessage, ViewModel: prev.ViewModel}
	})
	require.True(t, applied)
	assert.Equal(t, StatusError, store.Current().Status)
	assert.Equal(t, 200.0, store.Current().ViewModel.KPI.TotalRevenue)
}

func TestStore_Subscribe(t *testing.T) {
	store := NewStore(domain.DefaultFilters())
	updates, unsubscribe := store.Subscribe()

	store.apply(1, readySnapshot(100))
	store.apply(2, readySnapshot(200))

	latest := <-updates
	assert.Equal(t, uint64(2), latest.Sequence)
	assert.Empty(t, updates)

	unsubscribe()
	unsubscribe()
	store.apply(3, readySnapshot(300))
	assert.Empty(t, updates)
}

func TestStore_Restore(t *testing.T) {
	entry := &domain.DashboardSnapshotEntry{
		CycleID:   "saved",
		ViewModel: domain.DashboardViewModel{KPI: domain.KPISummary{TotalRevenue: 50}},
	}

	store := NewStore(domain.DefaultFilters())
	assert.False(t, store.Restore(nil))
	assert.True(t, store.Restore(entry))
	assert.Equal(t, "saved", store.Current().CycleID)
	assert.False(t, store.Restore(entry))

	published := NewStore(domain.DefaultFilters())
	published.apply(1, readySnapshot(10))
	assert.False(t, published.Restore(entry))
	assert.Equal(t, 10.0, published.Current().ViewModel.KPI.TotalRevenue)
}
