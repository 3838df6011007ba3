package cafeclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/saniyaC164/BIPA/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		CafeAPI: config.CafeAPI{URL: server.URL + "/", Timeout: 2 * time.Second},
	}
	return NewClient(cfg)
}

func TestCafeClient_Get(t *testing.T) {
	t.Run("decodifica JSON e envia os parâmetros", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/revenue-trends", r.URL.Path)
			assert.Equal(t, "7d", r.URL.Query().Get("period"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[{"date":"2024-01-01","total_revenue":500}]}`))
		})

		payload, err := client.Get(context.Background(), ResourceRevenueTrends, url.Values{"period": {"7d"}})
		require.NoError(t, err)

		body, ok := payload.(map[string]any)
		require.True(t, ok)
		points, ok := body["data"].([]any)
		require.True(t, ok)
		assert.Len(t, points, 1)
		assert.Equal(t, 500.0, points[0].(map[string]any)["total_revenue"])
	})

	t.Run("status fora de 2xx vira StatusError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		payload, err := client.Get(context.Background(), ResourceDashboardData, nil)
		assert.Nil(t, payload)

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
		assert.Equal(t, ResourceDashboardData, statusErr.Resource)
		assert.Equal(t, "boom", statusErr.Body)
	})

	t.Run("corpo vazio resulta em nil", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		payload, err := client.Get(context.Background(), ResourceFeedbackSummary, nil)
		require.NoError(t, err)
		assert.Nil(t, payload)
	})

	t.Run("corpo que não é JSON é repassado como texto", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>maintenance</html>"))
		})

		payload, err := client.Get(context.Background(), ResourceHeatmap, nil)
		require.NoError(t, err)
		assert.Equal(t, "<html>maintenance</html>", payload)
	})

	t.Run("falha de transporte é envolvida com o recurso", func(t *testing.T) {
		cfg := &config.Config{CafeAPI: config.CafeAPI{URL: "http://127.0.0.1:1", Timeout: time.Second}}
		client := NewClient(cfg)

		_, err := client.Get(context.Background(), ResourceHourlyAnalysis, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "/hourly-analysis")
	})
}

func TestResource_Name(t *testing.T) {
	assert.Equal(t, "dashboard-data", ResourceDashboardData.Name())
	assert.Equal(t, "heatmap", Resource("heatmap").Name())
}
