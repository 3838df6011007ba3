package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func readSnapshot(t *testing.T, conn *websocket.Conn) assembling.Snapshot {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var snap assembling.Snapshot
	require.NoError(t, json.Unmarshal(payload, &snap))
	return snap
}

func TestDashboardStream(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	updates := make(chan assembling.Snapshot, 1)
	unsubscribed := make(chan struct{})

	service := mocks.NewMockDashboarder(ctrl)
	service.EXPECT().Subscribe().Return((<-chan assembling.Snapshot)(updates), func() { close(unsubscribed) })
	service.EXPECT().Current().Return(readySnapshot(1))

	srv := httptest.NewServer(DashboardStream(service, []string{"http://localhost:5173"}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	assert.Equal(t, uint64(1), readSnapshot(t, conn).Sequence)

	updates <- readySnapshot(2)
	assert.Equal(t, uint64(2), readSnapshot(t, conn).Sequence)

	require.NoError(t, conn.Close())

	select {
	case <-unsubscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("assinatura não foi encerrada após desconexão")
	}
}

func TestDashboardStream_RejectsOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockDashboarder(ctrl)

	srv := httptest.NewServer(DashboardStream(service, []string{"http://localhost:5173"}))
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
