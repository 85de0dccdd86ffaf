// Package metrics expõe os contadores Prometheus da aplicação.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector agrupa as métricas registradas no registry do processo.
type Collector struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	notifyOK   prometheus.Counter
	notifyFail prometheus.Counter
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "adotapet_http_requests_total",
			Help: "Total de requisições HTTP por método, rota e status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adotapet_http_request_duration_seconds",
			Help:    "Latência das requisições HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		notifyOK: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adotapet_notifications_sent_total",
			Help: "Notificações publicadas com sucesso.",
		}),
		notifyFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "adotapet_notifications_failed_total",
			Help: "Notificações que falharam (best-effort, não bloqueiam a transição).",
		}),
	}

	reg.MustRegister(c.httpRequests, c.httpLatency, c.notifyOK, c.notifyFail)
	return c
}

// RecordHTTP registra uma requisição concluída.
func (c *Collector) RecordHTTP(method, route string, status int, dur time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (c *Collector) RecordNotifySuccess() { c.notifyOK.Inc() }
func (c *Collector) RecordNotifyFailure() { c.notifyFail.Inc() }

// Handler devolve o endpoint /metrics do registry próprio.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
