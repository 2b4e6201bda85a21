package inspect

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/use-go/camdrv/pkg/capability"
	"github.com/use-go/camdrv/pkg/core"
)

// Metrics counts driver outcomes. Observe is meant for camdrv.WithObserver
type Metrics struct {
	ops *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "camdrv",
			Name:      "operations_total",
			Help:      "Builds and parses by operation, dialect and result",
		}, []string{"op", "dialect", "result"}),
	}
	reg.MustRegister(m.ops)
	return m
}

func (m *Metrics) Observe(op string, dialect capability.Dialect, result core.Result) {
	m.ops.WithLabelValues(op, dialect.String(), result.String()).Inc()
}
