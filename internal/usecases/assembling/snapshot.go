package assembling

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/saniyaC164/BIPA/pkg/metrics"
)

// ErrLoadMessage é a mensagem exibida quando o lote principal falha
const ErrLoadMessage = "Failed to load dashboard data. Please try again."

// ErrStaleCycle indica que um ciclo mais novo já foi aplicado
var ErrStaleCycle = errors.New("dashboard: ciclo descartado, um ciclo mais recente já foi aplicado")

// CycleError é devolvido quando o lote principal de um ciclo falha
type CycleError struct {
	CycleID string
	Err     error
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dashboard: ciclo %s falhou: %v", e.CycleID, e.Err)
}

func (e *CycleError) Unwrap() error {
	return e.Err
}

type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// Snapshot é o estado publicado do dashboard.
// Em erro, ViewModel continua sendo o último publicado com sucesso.
type Snapshot struct {
	Sequence   uint64                     `json:"sequence"`
	CycleID    string                     `json:"cycle_id,omitempty"`
	Status     Status                     `json:"status"`
	Error      string                     `json:"error,omitempty"`
	Refreshing bool                       `json:"refreshing"`
	Filters    domain.FilterState         `json:"filters"`
	ViewModel  *domain.DashboardViewModel `json:"view_model"`
	UpdatedAt  time.Time                  `json:"updated_at"`
}

// Store guarda o snapshot corrente e notifica os assinantes a cada publicação
type Store struct {
	current     atomic.Pointer[Snapshot]
	mu          sync.Mutex
	subscribers map[uint64]chan Snapshot
	nextSubID   uint64
}

func NewStore(filters domain.FilterState) *Store {
	s := &Store{subscribers: make(map[uint64]chan Snapshot)}
	s.current.Store(&Snapshot{Status: StatusLoading, Filters: filters})
	return s
}

// Current devolve o snapshot publicado; nunca há publicação parcial visível
func (s *Store) Current() Snapshot {
	return *s.current.Load()
}

// apply publica o snapshot montado por build, a menos que um ciclo mais novo já tenha sido aplicado
func (s *Store) apply(sequence uint64, build func(prev Snapshot) Snapshot) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := *s.current.Load()
	if sequence <= prev.Sequence {
		return prev, false
	}

	next := build(prev)
	next.Sequence = sequence
	s.current.Store(&next)
	s.broadcast(next)

	return next, true
}

// Restore carrega um view-model salvo enquanto nenhum ciclo foi aplicado
func (s *Store) Restore(entry *domain.DashboardSnapshotEntry) bool {
	if entry == nil {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	if prev.Sequence != 0 || prev.ViewModel != nil {
		return false
	}

	vm := entry.ViewModel
	restored := Snapshot{
		CycleID:   entry.CycleID,
		Status:    StatusReady,
		Filters:   entry.Filters,
		ViewModel: &vm,
		UpdatedAt: entry.CreatedAt,
	}
	s.current.Store(&restored)
	s.broadcast(restored)

	return true
}

// Subscribe devolve um canal que sempre guarda o snapshot mais recente ainda não lido
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++

	ch := make(chan Snapshot, 1)
	s.subscribers[id] = ch
	metrics.StreamSubscribers.Inc()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
			metrics.StreamSubscribers.Dec()
		})
	}
}

// broadcast deve ser chamado com mu travado
func (s *Store) broadcast(snap Snapshot) {
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}
