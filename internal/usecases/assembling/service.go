// Package assembling executa o ciclo de atualização do dashboard: busca os
// recursos da API analítica, normaliza, completa os KPIs e publica o view-model.
package assembling

import (
	"context"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/saniyaC164/BIPA/infrastructure/integrator/cafe/cafeclient"
	"github.com/saniyaC164/BIPA/infrastructure/repository"
	"github.com/saniyaC164/BIPA/internal/config"
	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/saniyaC164/BIPA/internal/usecases/normalizing"
	"github.com/saniyaC164/BIPA/internal/usecases/reconciling"
	"github.com/saniyaC164/BIPA/pkg/log"
	"github.com/saniyaC164/BIPA/pkg/metrics"
	"github.com/saniyaC164/BIPA/pkg/utils"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	client   cafeclient.Client
	store    *Store
	history  repository.DashboardSnapshotRepository
	sequence atomic.Uint64
	inFlight atomic.Int32

	filtersMu sync.RWMutex
	filters   domain.FilterState

	now func() time.Time
}

// primaryPayloads são as cargas do lote principal, na ordem em que chegaram da API
type primaryPayloads struct {
	dashboard any
	revenue   any
	products  any
	hourly    any
}

type secondaryPayloads struct {
	heatmap  any
	feedback any
}

func NewService(client cafeclient.Client, cfg *config.Config) *Service {
	filters := domain.FilterState{
		DateRange: domain.DateRange(cfg.Dashboard.DefaultRange),
		Category:  cfg.Dashboard.DefaultCategory,
	}
	if err := filters.Validate(); err != nil {
		log.L.WithError(err).Warn("dashboard: filtros padrão inválidos na configuração, usando 7d/all")
		filters = domain.DefaultFilters()
	}

	return &Service{
		client:  client,
		store:   NewStore(filters),
		filters: filters,
		now:     time.Now,
	}
}

// WithHistory grava cada view-model publicado no histórico de snapshots
func (s *Service) WithHistory(history repository.DashboardSnapshotRepository) *Service {
	s.history = history
	return s
}

// Store expõe o armazenamento de snapshots
func (s *Service) Store() *Store {
	return s.store
}

// Current devolve o snapshot publicado, indicando se há ciclo em andamento
func (s *Service) Current() Snapshot {
	snap := s.store.Current()
	snap.Refreshing = s.inFlight.Load() > 0
	return snap
}

func (s *Service) Subscribe() (<-chan Snapshot, func()) {
	return s.store.Subscribe()
}

// Filters devolve os filtros correntes
func (s *Service) Filters() domain.FilterState {
	s.filtersMu.RLock()
	defer s.filtersMu.RUnlock()
	return s.filters
}

// Refresh roda um ciclo com os filtros correntes
func (s *Service) Refresh(ctx context.Context) (Snapshot, error) {
	s.filtersMu.RLock()
	filters := s.filters
	sequence := s.sequence.Add(1)
	s.filtersMu.RUnlock()

	return s.run(ctx, sequence, filters)
}

// SetFilters valida e guarda os filtros e roda um ciclo com eles
func (s *Service) SetFilters(ctx context.Context, filters domain.FilterState) (Snapshot, error) {
	if filters.Category == "" {
		filters.Category = domain.CategoryAll
	}
	if err := filters.Validate(); err != nil {
		return s.Current(), err
	}

	// a sequência é tomada junto com a troca dos filtros: o último SetFilters é o que publica
	s.filtersMu.Lock()
	s.filters = filters
	sequence := s.sequence.Add(1)
	s.filtersMu.Unlock()

	return s.run(ctx, sequence, filters)
}

// Run executa um ciclo completo. Os dois lotes são aguardados por inteiro antes
// de qualquer publicação; um ciclo mais antigo que o último aplicado é descartado.
func (s *Service) Run(ctx context.Context, filters domain.FilterState) (Snapshot, error) {
	return s.run(ctx, s.sequence.Add(1), filters)
}

func (s *Service) run(ctx context.Context, sequence uint64, filters domain.FilterState) (Snapshot, error) {
	cycleID, err := utils.GenerateID()
	if err != nil {
		cycleID = strconv.FormatUint(sequence, 10)
	}

	s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"cycle_id": cycleID,
		"sequence": sequence,
	})

	params := ComputeQueryParams(filters)
	logger.WithFields(log.Fields{
		"cycle_params": params.Encode(),
		"cycle_range":  filters.DateRange,
	}).Info("dashboard: iniciando ciclo de atualização")

	var (
		primary    primaryPayloads
		primaryErr error
		secondary  secondaryPayloads
		wg         sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		primary, primaryErr = s.fetchPrimary(ctx, params)
	}()
	go func() {
		defer wg.Done()
		secondary = s.fetchSecondary(ctx, params, logger)
	}()
	wg.Wait()

	if primaryErr != nil {
		snap, applied := s.store.apply(sequence, func(prev Snapshot) Snapshot {
			return Snapshot{
				CycleID:   cycleID,
				Status:    StatusError,
				Error:     ErrLoadMessage,
				Filters:   filters,
				ViewModel: prev.ViewModel,
				UpdatedAt: s.now().UTC(),
			}
		})
		if !applied {
			metrics.DashboardCycles.WithLabelValues(metrics.OutcomeStale).Inc()
			logger.WithError(primaryErr).Info("dashboard: falha de ciclo antigo ignorada")
			return snap, ErrStaleCycle
		}

		metrics.DashboardCycles.WithLabelValues(metrics.OutcomeFailed).Inc()
		logger.WithError(primaryErr).Error("dashboard: falha no lote principal, mantendo dados anteriores")
		return snap, &CycleError{CycleID: cycleID, Err: primaryErr}
	}

	vm := s.assemble(primary, secondary, filters)

	snap, applied := s.store.apply(sequence, func(Snapshot) Snapshot {
		return Snapshot{
			CycleID:   cycleID,
			Status:    StatusReady,
			Filters:   filters,
			ViewModel: vm,
			UpdatedAt: vm.GeneratedAt,
		}
	})
	if !applied {
		metrics.DashboardCycles.WithLabelValues(metrics.OutcomeStale).Inc()
		logger.Info("dashboard: resultado de ciclo antigo descartado")
		return snap, ErrStaleCycle
	}

	metrics.DashboardCycles.WithLabelValues(metrics.OutcomePublished).Inc()
	metrics.DashboardSequence.Set(float64(sequence))
	logger.WithFields(log.Fields{
		"status":        snap.Status,
		"total_revenue": vm.KPI.TotalRevenue,
		"transactions":  vm.KPI.TotalTransactions,
	}).Info("dashboard: view-model publicado")

	s.record(snap, logger)

	return snap, nil
}

func (s *Service) fetchPrimary(ctx context.Context, params url.Values) (primaryPayloads, error) {
	var (
		payloads primaryPayloads
		g        errgroup.Group
	)

	g.Go(func() error { return s.fetch(ctx, cafeclient.ResourceDashboardData, nil, &payloads.dashboard) })
	g.Go(func() error { return s.fetch(ctx, cafeclient.ResourceRevenueTrends, params, &payloads.revenue) })
	g.Go(func() error { return s.fetch(ctx, cafeclient.ResourceProductAnalytics, nil, &payloads.products) })
	g.Go(func() error { return s.fetch(ctx, cafeclient.ResourceHourlyAnalysis, nil, &payloads.hourly) })

	if err := g.Wait(); err != nil {
		return primaryPayloads{}, err
	}

	return payloads, nil
}

// fetchSecondary nunca falha: cada recurso com erro fica vazio
func (s *Service) fetchSecondary(ctx context.Context, params url.Values, logger log.Logger) secondaryPayloads {
	var (
		payloads secondaryPayloads
		wg       sync.WaitGroup
	)

	fetchOptional := func(resource cafeclient.Resource, params url.Values, dst *any) {
		defer wg.Done()
		if err := s.fetch(ctx, resource, params, dst); err != nil {
			logger.WithError(err).WithField("resource", resource.Name()).
				Warn("dashboard: recurso secundário indisponível, seguindo sem ele")
		}
	}

	wg.Add(2)
	go fetchOptional(cafeclient.ResourceHeatmap, params, &payloads.heatmap)
	go fetchOptional(cafeclient.ResourceFeedbackSummary, nil, &payloads.feedback)
	wg.Wait()

	return payloads
}

func (s *Service) fetch(ctx context.Context, resource cafeclient.Resource, params url.Values, dst *any) error {
	start := time.Now()
	payload, err := s.client.Get(ctx, resource, params)

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.UpstreamDuration.WithLabelValues(resource.Name(), result).Observe(time.Since(start).Seconds())

	if err != nil {
		return err
	}

	*dst = payload
	return nil
}

func (s *Service) assemble(primary primaryPayloads, secondary secondaryPayloads, filters domain.FilterState) *domain.DashboardViewModel {
	dashboard := normalizing.Dashboard(primary.dashboard)
	revenue := normalizing.RevenueSeries(primary.revenue)
	productAnalytics := normalizing.Products(primary.products, "top_products")

	// As transações são completadas pelos produtos do próprio /dashboard-data
	productSet := dashboard.TopProducts
	if len(productSet) == 0 {
		productSet = productAnalytics
	}

	return &domain.DashboardViewModel{
		KPI:                 reconciling.Reconcile(dashboard.KPI, revenue, productSet),
		RevenueTrend:        revenue,
		TopProducts:         dashboard.TopProducts,
		ProductAnalytics:    productAnalytics,
		PaymentDistribution: dashboard.PaymentDistribution,
		Hourly:              normalizing.Hourly(primary.hourly),
		Heatmap:             normalizing.Heatmap(secondary.heatmap),
		Feedback:            normalizing.Feedback(secondary.feedback),
		Filters:             filters,
		GeneratedAt:         s.now().UTC(),
	}
}

// record grava o snapshot já publicado no histórico; falhas são apenas registradas
func (s *Service) record(snap Snapshot, logger log.Logger) {
	if s.history == nil || snap.ViewModel == nil {
		return
	}

	entry := &domain.DashboardSnapshotEntry{
		CycleID:   snap.CycleID,
		Sequence:  snap.Sequence,
		Filters:   snap.Filters,
		ViewModel: *snap.ViewModel,
		CreatedAt: snap.UpdatedAt,
	}

	if err := s.history.Save(entry); err != nil {
		logger.WithError(err).Warn("dashboard: erro ao gravar snapshot no histórico")
	}
}

// RestoreLatest carrega o último snapshot do histórico antes do primeiro ciclo
func (s *Service) RestoreLatest() error {
	if s.history == nil {
		return nil
	}

	entry, err := s.history.GetLatest()
	if err != nil {
		return err
	}

	if s.store.Restore(entry) {
		log.L.WithField("cycle_id", entry.CycleID).Info("dashboard: snapshot restaurado do histórico")
	}
	return nil
}
