package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/saniyaC164/BIPA/infrastructure/database/postgres"
	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (DashboardSnapshotRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewDashboardSnapshotRepository(&postgres.Connection{DB: db}), mock
}

func TestDashboardSnapshotRepository_Save(t *testing.T) {
	repo, mock := newMockRepository(t)
	createdAt := time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO dashboard_snapshots \(cycle_id,sequence,filters,view_model,created_at\)`).
		WithArgs("cyc123", int64(4), `{"date_range":"7d","category":"all"}`, sqlmock.AnyArg(), createdAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	entry := &domain.DashboardSnapshotEntry{
		CycleID:   "cyc123",
		Sequence:  4,
		Filters:   domain.DefaultFilters(),
		ViewModel: domain.DashboardViewModel{KPI: domain.KPISummary{TotalRevenue: 4500}},
		CreatedAt: createdAt,
	}

	require.NoError(t, repo.Save(entry))
	assert.Equal(t, int64(42), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardSnapshotRepository_GetLatest(t *testing.T) {
	t.Run("histórico vazio", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT (.+) FROM dashboard_snapshots ORDER BY created_at DESC, id DESC LIMIT 1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "cycle_id", "sequence", "filters", "view_model", "created_at"}))

		entry, err := repo.GetLatest()

		require.NoError(t, err)
		assert.Nil(t, entry)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("último snapshot", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		createdAt := time.Date(2024, 1, 16, 10, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT (.+) FROM dashboard_snapshots`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "cycle_id", "sequence", "filters", "view_model", "created_at"}).
				AddRow(int64(7), "cyc7", int64(9),
					[]byte(`{"date_range":"30d","category":"food"}`),
					[]byte(`{"kpi":{"total_revenue":4500,"total_transactions":30,"avg_order_value":150}}`),
					createdAt))

		entry, err := repo.GetLatest()

		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, int64(7), entry.ID)
		assert.Equal(t, uint64(9), entry.Sequence)
		assert.Equal(t, domain.Range30Days, entry.Filters.DateRange)
		assert.Equal(t, 30, entry.ViewModel.KPI.TotalTransactions)
		assert.Equal(t, createdAt, entry.CreatedAt)
	})

	t.Run("view-model corrompido", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT (.+) FROM dashboard_snapshots`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "cycle_id", "sequence", "filters", "view_model", "created_at"}).
				AddRow(int64(1), "c", int64(1), []byte(`{}`), []byte(`{`), time.Now()))

		_, err := repo.GetLatest()

		assert.Error(t, err)
	})
}

func TestDashboardSnapshotRepository_DeleteOlderThan(t *testing.T) {
	t.Run("remove snapshots antigos", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(`DELETE FROM dashboard_snapshots WHERE created_at < \$1`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 3))

		deleted, err := repo.DeleteOlderThan(30)

		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("erro do banco", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectExec(`DELETE FROM dashboard_snapshots`).
			WillReturnError(errors.New("conexão recusada"))

		_, err := repo.DeleteOlderThan(30)

		assert.Error(t, err)
	})
}
