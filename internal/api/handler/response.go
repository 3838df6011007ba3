package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/saniyaC164/BIPA/pkg/apiErrors"
	"github.com/saniyaC164/BIPA/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeJSON envia o corpo com o status informado.
// O corpo é codificado antes do cabeçalho para que uma falha ainda vire 500.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	raw, err := json.Marshal(body)
	if err != nil {
		log.ForContext(r.Context()).WithError(err).Error("api: erro ao codificar resposta")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(raw, '\n')); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("api: erro ao enviar resposta")
	}
}
