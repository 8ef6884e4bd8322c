// Package metrics registra as métricas Prometheus da API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cordoba"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total de requisições HTTP",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP em segundos",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	loginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Tentativas de login por resultado",
		},
		[]string{"result"}, // success, invalid_credentials, error
	)

	importsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "Importações de base por status final",
		},
		[]string{"status"},
	)

	importedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_rows_total",
			Help:      "Linhas de base processadas",
		},
	)

	disparosTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "disparos_total",
			Help:      "Mensagens enviadas por canal e status",
		},
		[]string{"channel", "status"},
	)
)

// RecordHTTPRequest registra uma requisição atendida.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordLogin registra o resultado de uma tentativa de login.
func RecordLogin(result string) {
	loginAttemptsTotal.WithLabelValues(result).Inc()
}

// RecordImport registra uma importação concluída ou com erro.
func RecordImport(status string, linhas int) {
	importsTotal.WithLabelValues(status).Inc()
	importedRows.Add(float64(linhas))
}

// RecordDisparo registra um envio de mensagem.
func RecordDisparo(channel, status string) {
	disparosTotal.WithLabelValues(channel, status).Inc()
}

// Handler devolve o handler HTTP de /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
