// Package scheduler contém os serviços de agendamento do dashboard
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/saniyaC164/BIPA/infrastructure/repository"
	"github.com/saniyaC164/BIPA/internal/config"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
	"github.com/saniyaC164/BIPA/pkg/log"
)

// Refresher executa um ciclo do dashboard com os filtros atuais
type Refresher interface {
	Refresh(ctx context.Context) (assembling.Snapshot, error)
}

type DashboardRefreshConfig struct {
	CronSchedule  string
	Enabled       bool
	CleanupCron   string
	RetentionDays int
}

// DashboardRefreshService agenda a atualização periódica do dashboard e a limpeza do histórico.
// Uma falha não é repetida; o próximo disparo executa um ciclo novo.
type DashboardRefreshService struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	history   repository.DashboardSnapshotRepository
	config    DashboardRefreshConfig

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSequence        uint64
	lastError           string
}

func NewDashboardRefreshService(refresher Refresher, cfg *config.Config) *DashboardRefreshService {
	refreshConfig := DashboardRefreshConfig{
		CronSchedule:  cfg.DashboardRefresh.CronSchedule,
		Enabled:       cfg.DashboardRefresh.Enabled,
		CleanupCron:   cfg.SnapshotStore.CleanupCron,
		RetentionDays: cfg.SnapshotStore.RetentionDays,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"enabled":       refreshConfig.Enabled,
	}).Info("scheduler: configuração da atualização do dashboard carregada")

	return &DashboardRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		refresher: refresher,
		config:    refreshConfig,
	}
}

// WithHistory habilita a limpeza periódica dos snapshots antigos
func (s *DashboardRefreshService) WithHistory(history repository.DashboardSnapshotRepository) *DashboardRefreshService {
	s.history = history
	return s
}

func (s *DashboardRefreshService) Start(ctx context.Context) error {
	jobs := 0

	if s.config.Enabled {
		log.L.WithField("cron", s.config.CronSchedule).Info("scheduler: iniciando cron de atualização do dashboard")

		_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
			if err := s.RefreshDashboard(ctx); err != nil {
				log.L.WithError(err).Error("scheduler: erro na atualização agendada do dashboard")
			}
		})
		if err != nil {
			return fmt.Errorf("erro ao agendar atualização do dashboard: %w", err)
		}
		jobs++
	} else {
		log.L.Info("scheduler: cron de atualização do dashboard desabilitada por configuração")
	}

	if s.history != nil && s.config.RetentionDays > 0 {
		_, err := s.scheduler.Cron(s.config.CleanupCron).Do(s.CleanupHistory)
		if err != nil {
			return fmt.Errorf("erro ao agendar limpeza do histórico de snapshots: %w", err)
		}
		jobs++
	}

	if jobs == 0 {
		return nil
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("scheduler: parando cron do dashboard")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshDashboard executa um ciclo, ignorando o disparo se outro ainda estiver em andamento
func (s *DashboardRefreshService) RefreshDashboard(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		log.L.Warn("scheduler: atualização do dashboard já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	snap, err := s.refresher.Refresh(ctx)

	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()
	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSequence = snap.Sequence
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
		return err
	}

	log.L.WithField("sequence", snap.Sequence).Info("scheduler: dashboard atualizado")
	return nil
}

// CleanupHistory remove os snapshots além do período de retenção
func (s *DashboardRefreshService) CleanupHistory() {
	if s.history == nil {
		return
	}

	deleted, err := s.history.DeleteOlderThan(s.config.RetentionDays)
	if err != nil {
		log.L.WithError(err).Error("scheduler: erro ao limpar histórico de snapshots")
		return
	}

	log.L.WithFields(log.Fields{
		"deleted":        deleted,
		"retention_days": s.config.RetentionDays,
	}).Info("scheduler: histórico de snapshots limpo")
}

// TriggerManualRefresh inicia manualmente uma atualização do dashboard
func (s *DashboardRefreshService) TriggerManualRefresh(ctx context.Context) bool {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.L.Info("scheduler: atualização já em andamento, ignorando solicitação manual")
		return false
	}

	log.L.Info("scheduler: iniciando atualização manual do dashboard")
	go func() {
		if err := s.RefreshDashboard(ctx); err != nil {
			log.L.WithError(err).Error("scheduler: erro na atualização manual do dashboard")
		}
	}()
	return true
}

// GetStatus retorna o status atual do agendador
func (s *DashboardRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	retention := "histórico desabilitado"
	if s.history != nil {
		retention = fmt.Sprintf("%d dias", s.config.RetentionDays)
	}

	return map[string]any{
		"refresh_enabled":        s.config.Enabled,
		"refresh_cron":           s.config.CronSchedule,
		"running":                s.syncRunning,
		"retention_policy":       retention,
		"last_sequence":          s.lastSequence,
		"last_error":             s.lastError,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
