package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saniyaC164/BIPA/internal/domain"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling/mocks"
	"github.com/saniyaC164/BIPA/internal/usecases/presenting"
	"github.com/saniyaC164/BIPA/pkg/apiErrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func readySnapshot(seq uint64) assembling.Snapshot {
	return assembling.Snapshot{
		Sequence: seq,
		Status:   assembling.StatusReady,
		Filters:  domain.DefaultFilters(),
		ViewModel: &domain.DashboardViewModel{
			KPI:         domain.KPISummary{TotalRevenue: 4500, TotalTransactions: 30, AvgOrderValue: 150},
			TopProducts: []domain.ProductStat{{ItemName: "Cappuccino", Revenue: 1800, Quantity: 18}},
		},
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockDashboarder(ctrl)
	service.EXPECT().Current().Return(readySnapshot(3))

	rec := httptest.NewRecorder()
	GetDashboard(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	snap := decode[assembling.Snapshot](t, rec)
	assert.Equal(t, uint64(3), snap.Sequence)
	assert.Equal(t, assembling.StatusReady, snap.Status)
	require.NotNil(t, snap.ViewModel)
	assert.Equal(t, 4500.0, snap.ViewModel.KPI.TotalRevenue)
}

func TestGetDashboardCards(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockDashboarder(ctrl)
	service.EXPECT().Current().Return(readySnapshot(1))

	rec := httptest.NewRecorder()
	GetDashboardCards(service).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard/cards", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cards := decode[presenting.DashboardCards](t, rec)
	require.Len(t, cards.KPIs, 3)
	assert.Equal(t, "₹4,500", cards.KPIs[0].Value)
	assert.Equal(t, "Cappuccino", cards.Highlights.TopItem)
	assert.Len(t, cards.Heatmap.Rows, 7)
}

func TestRefreshDashboard(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(service *mocks.MockDashboarder)
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "ciclo publicado",
			setup: func(service *mocks.MockDashboarder) {
				service.EXPECT().Refresh(gomock.Any()).Return(readySnapshot(2), nil)
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, uint64(2), decode[assembling.Snapshot](t, rec).Sequence)
			},
		},
		{
			name: "falha no lote principal devolve a mensagem de erro e o snapshot",
			setup: func(service *mocks.MockDashboarder) {
				snap := readySnapshot(4)
				snap.Status = assembling.StatusError
				snap.Error = assembling.ErrLoadMessage
				service.EXPECT().Refresh(gomock.Any()).
					Return(snap, &assembling.CycleError{CycleID: "abc", Err: errors.New("502")})
			},
			wantStatus: http.StatusBadGateway,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decode[apiErrors.APIError](t, rec)
				assert.Equal(t, apiErrors.ErrExternalService, body.Code)
				assert.Equal(t, assembling.ErrLoadMessage, body.Message)
				details, ok := body.Details.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, "error", details["status"])
				assert.NotNil(t, details["view_model"])
			},
		},
		{
			name: "ciclo descartado responde com o snapshot atual",
			setup: func(service *mocks.MockDashboarder) {
				service.EXPECT().Refresh(gomock.Any()).Return(readySnapshot(5), assembling.ErrStaleCycle)
				service.EXPECT().Current().Return(readySnapshot(6))
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, uint64(6), decode[assembling.Snapshot](t, rec).Sequence)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mocks.NewMockDashboarder(ctrl)
			tt.setup(service)

			rec := httptest.NewRecorder()
			RefreshDashboard(service).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/dashboard/refresh", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			tt.validate(t, rec)
		})
	}
}

func TestUpdateFilters(t *testing.T) {
	t.Run("corpo inválido", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockDashboarder(ctrl)

		rec := httptest.NewRecorder()
		UpdateFilters(service).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/dashboard/filters", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decode[apiErrors.APIError](t, rec).Code)
	})

	t.Run("filtros rejeitados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		service := mocks.NewMockDashboarder(ctrl)
		service.EXPECT().SetFilters(gomock.Any(), gomock.Any()).
			Return(readySnapshot(1), domain.ErrInvalidDateInterval)

		body := `{"date_range":"custom","start_date":"2024-02-01","end_date":"2024-01-01"}`
		rec := httptest.NewRecorder()
		UpdateFilters(service).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/dashboard/filters", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decode[apiErrors.APIError](t, rec).Code)
	})

	t.Run("filtros aplicados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		want := domain.FilterState{DateRange: domain.RangeCustom, StartDate: "2024-01-01", EndDate: "2024-01-31", Category: "coffee"}
		snap := readySnapshot(7)
		snap.Filters = want

		service := mocks.NewMockDashboarder(ctrl)
		service.EXPECT().SetFilters(gomock.Any(), want).
			DoAndReturn(func(_ context.Context, f domain.FilterState) (assembling.Snapshot, error) {
				return snap, nil
			})

		body := `{"date_range":"custom","start_date":"2024-01-01","end_date":"2024-01-31","category":"coffee"}`
		rec := httptest.NewRecorder()
		UpdateFilters(service).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/v1/dashboard/filters", strings.NewReader(body)))

		assert.Equal(t, http.StatusOK, rec.Code)
		got := decode[assembling.Snapshot](t, rec)
		assert.Equal(t, uint64(7), got.Sequence)
		assert.Equal(t, want, got.Filters)
	})
}
