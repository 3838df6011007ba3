package handler

import (
	"net/http"
	"time"

	"github.com/saniyaC164/BIPA/pkg/log"
)

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			log.L.WithError(err).Warn("api: erro ao responder healthcheck")
		}
	})
}
