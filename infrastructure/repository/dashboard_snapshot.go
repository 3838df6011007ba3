package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/saniyaC164/BIPA/infrastructure/database/postgres"
	"github.com/saniyaC164/BIPA/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	dashboardSnapshotsTable = "dashboard_snapshots"
	dashboardSnapshotsCols  = "id, cycle_id, sequence, filters, view_model, created_at"
)

// DashboardSnapshotRepository guarda o histórico de view-models publicados
type DashboardSnapshotRepository interface {
	Save(entry *domain.DashboardSnapshotEntry) error
	GetLatest() (*domain.DashboardSnapshotEntry, error)
	DeleteOlderThan(days int) (int64, error)
}

type dashboardSnapshotRepository struct {
	conn *postgres.Connection
}

func NewDashboardSnapshotRepository(conn *postgres.Connection) DashboardSnapshotRepository {
	return &dashboardSnapshotRepository{
		conn: conn,
	}
}

func (r *dashboardSnapshotRepository) Save(entry *domain.DashboardSnapshotEntry) error {
	filtersJSON, err := json.Marshal(entry.Filters)
	if err != nil {
		return fmt.Errorf("erro ao serializar filtros para JSON: %w", err)
	}

	viewModelJSON, err := json.Marshal(entry.ViewModel)
	if err != nil {
		return fmt.Errorf("erro ao serializar view-model para JSON: %w", err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	sqlQuery, args, err := squirrel.
		Insert(dashboardSnapshotsTable).
		Columns("cycle_id", "sequence", "filters", "view_model", "created_at").
		Values(entry.CycleID, int64(entry.Sequence), string(filtersJSON), string(viewModelJSON), createdAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRow(sqlQuery, args...).Scan(&entry.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// GetLatest devolve o snapshot mais recente, ou nil se o histórico estiver vazio
func (r *dashboardSnapshotRepository) GetLatest() (*domain.DashboardSnapshotEntry, error) {
	sqlQuery, args, err := squirrel.
		Select(dashboardSnapshotsCols).
		From(dashboardSnapshotsTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var (
		entry         domain.DashboardSnapshotEntry
		sequence      int64
		filtersJSON   []byte
		viewModelJSON []byte
	)

	err = r.conn.QueryRow(sqlQuery, args...).Scan(
		&entry.ID,
		&entry.CycleID,
		&sequence,
		&filtersJSON,
		&viewModelJSON,
		&entry.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot do dashboard: %w", err)
	}

	entry.Sequence = uint64(sequence)

	if err := json.Unmarshal(filtersJSON, &entry.Filters); err != nil {
		return nil, fmt.Errorf("erro ao deserializar filtros: %w", err)
	}
	if err := json.Unmarshal(viewModelJSON, &entry.ViewModel); err != nil {
		return nil, fmt.Errorf("erro ao deserializar view-model: %w", err)
	}

	return &entry, nil
}

func (r *dashboardSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	sqlQuery, args, err := squirrel.
		Delete(dashboardSnapshotsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}
