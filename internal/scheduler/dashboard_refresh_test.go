package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/saniyaC164/BIPA/infrastructure/repository/mocks"
	"github.com/saniyaC164/BIPA/internal/config"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeRefresher struct {
	mu      sync.Mutex
	calls   int
	seq     uint64
	err     error
	release chan struct{}
	done    chan struct{}
}

func (f *fakeRefresher) Refresh(ctx context.Context) (assembling.Snapshot, error) {
	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	f.calls++
	f.seq++
	snap := assembling.Snapshot{Sequence: f.seq, Status: assembling.StatusReady}
	err := f.err
	f.mu.Unlock()

	if f.done != nil {
		f.done <- struct{}{}
	}
	return snap, err
}

func (f *fakeRefresher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig(enabled bool) *config.Config {
	return &config.Config{
		DashboardRefresh: config.DashboardRefresh{CronSchedule: "*/5 * * * *", Enabled: enabled},
		SnapshotStore:    config.SnapshotStore{RetentionDays: 30, CleanupCron: "0 4 * * *"},
	}
}

func TestDashboardRefreshService_RefreshDashboard(t *testing.T) {
	t.Run("sucesso atualiza o status", func(t *testing.T) {
		refresher := &fakeRefresher{}
		svc := NewDashboardRefreshService(refresher, testConfig(false))

		require.NoError(t, svc.RefreshDashboard(context.Background()))

		status := svc.GetStatus()
		assert.Equal(t, uint64(1), status["last_sequence"])
		assert.Equal(t, "", status["last_error"])
		assert.Equal(t, false, status["running"])
		assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
	})

	t.Run("falha é devolvida e registrada sem nova tentativa", func(t *testing.T) {
		refresher := &fakeRefresher{err: errors.New(assembling.ErrLoadMessage)}
		svc := NewDashboardRefreshService(refresher, testConfig(false))

		err := svc.RefreshDashboard(context.Background())

		require.Error(t, err)
		assert.Equal(t, 1, refresher.Calls())
		assert.Equal(t, assembling.ErrLoadMessage, svc.GetStatus()["last_error"])
	})
}

func TestDashboardRefreshService_TriggerManualRefresh(t *testing.T) {
	refresher := &fakeRefresher{release: make(chan struct{}), done: make(chan struct{}, 1)}
	svc := NewDashboardRefreshService(refresher, testConfig(false))

	assert.True(t, svc.TriggerManualRefresh(context.Background()))

	// aguarda a goroutine marcar a execução antes do segundo disparo
	require.Eventually(t, func() bool {
		return svc.GetStatus()["running"] == true
	}, time.Second, 5*time.Millisecond)

	assert.False(t, svc.TriggerManualRefresh(context.Background()))

	close(refresher.release)
	select {
	case <-refresher.done:
	case <-time.After(time.Second):
		t.Fatal("atualização manual não executou")
	}

	require.Eventually(t, func() bool {
		return svc.GetStatus()["running"] == false
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, refresher.Calls())
}

func TestDashboardRefreshService_Start(t *testing.T) {
	t.Run("desabilitado não agenda nada", func(t *testing.T) {
		svc := NewDashboardRefreshService(&fakeRefresher{}, testConfig(false))

		assert.NoError(t, svc.Start(context.Background()))
		assert.Equal(t, 0, len(svc.scheduler.Jobs()))
	})

	t.Run("cron inválida", func(t *testing.T) {
		cfg := testConfig(true)
		cfg.DashboardRefresh.CronSchedule = "não é cron"
		svc := NewDashboardRefreshService(&fakeRefresher{}, cfg)

		assert.Error(t, svc.Start(context.Background()))
	})

	t.Run("habilitado com histórico agenda atualização e limpeza", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		svc := NewDashboardRefreshService(&fakeRefresher{}, testConfig(true)).
			WithHistory(mocks.NewMockDashboardSnapshotRepository(ctrl))

		require.NoError(t, svc.Start(ctx))
		assert.Equal(t, 2, len(svc.scheduler.Jobs()))
		assert.Equal(t, "30 dias", svc.GetStatus()["retention_policy"])
	})
}

func TestDashboardRefreshService_CleanupHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockDashboardSnapshotRepository(ctrl)
	repo.EXPECT().DeleteOlderThan(30).Return(int64(4), nil)

	svc := NewDashboardRefreshService(&fakeRefresher{}, testConfig(false)).WithHistory(repo)
	svc.CleanupHistory()

	repo.EXPECT().DeleteOlderThan(30).Return(int64(0), errors.New("conexão recusada"))
	svc.CleanupHistory()
}
