package cafeclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/saniyaC164/BIPA/internal/config"
	"github.com/saniyaC164/BIPA/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxErrorBodySize = 512

// Client busca recursos da API analítica e devolve o JSON decodificado sem tipagem
type Client interface {
	Get(ctx context.Context, resource Resource, params url.Values) (any, error)
}

// StatusError é devolvido quando a API responde fora da faixa 2xx
type StatusError struct {
	Resource   Resource
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cafe-api: %s respondeu %d: %s", e.Resource, e.StatusCode, e.Body)
}

type CafeClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &CafeClient{
		baseURL: strings.TrimRight(cfg.CafeAPI.URL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.CafeAPI.Timeout,
		},
	}
}

// Get faz um GET no recurso com os parâmetros informados.
// Corpo vazio resulta em nil; corpo que não é JSON é devolvido como string.
func (c *CafeClient) Get(ctx context.Context, resource Resource, params url.Values) (any, error) {
	endpoint := c.baseURL + string(resource)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "cafe-api: erro ao criar requisição para %s", resource)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "cafe-api: erro ao requisitar %s", resource)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "cafe-api: erro ao ler resposta de %s", resource)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Resource:   resource,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(bytes.TrimSpace(body)), maxErrorBodySize),
		}
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var payload any
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		log.ForContext(ctx).WithError(err).WithField("resource", resource.Name()).
			Warn("cafe-api: resposta não é JSON, repassando como texto")
		return string(trimmed), nil
	}

	return payload, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
