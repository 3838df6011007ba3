package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saniyaC164/BIPA/internal/usecases/assembling"
	"github.com/saniyaC164/BIPA/pkg/log"
	"github.com/saniyaC164/BIPA/pkg/middleware"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// DashboardStream envia o snapshot atual na conexão e depois cada snapshot publicado
func DashboardStream(service assembling.Dashboarder, allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || middleware.AllowedOrigin(allowedOrigins, origin)
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Warn("stream: falha no upgrade para websocket")
			return
		}
		defer conn.Close()

		updates, unsubscribe := service.Subscribe()
		defer unsubscribe()

		logger.Info("stream: cliente conectado")

		closed := readUntilClosed(conn)

		if err := writeSnapshot(conn, service.Current()); err != nil {
			logger.WithError(err).Warn("stream: erro ao enviar snapshot inicial")
			return
		}

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case snap, ok := <-updates:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(writeWait))
					return
				}
				if err := writeSnapshot(conn, snap); err != nil {
					logger.WithError(err).Warn("stream: erro ao enviar snapshot")
					return
				}
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			case <-closed:
				logger.Info("stream: cliente desconectado")
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}

// readUntilClosed descarta mensagens do cliente e sinaliza quando a conexão termina
func readUntilClosed(conn *websocket.Conn) <-chan struct{} {
	closed := make(chan struct{})

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	return closed
}

func writeSnapshot(conn *websocket.Conn, snap assembling.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, payload)
}
