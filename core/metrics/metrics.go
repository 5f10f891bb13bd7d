package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes lifecycle counters and gauges.
type Metrics struct {
	OperationsTotal   *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	State             *prometheus.GaugeVec
	UpdateAvailable   prometheus.Gauge
}

var (
	metricsOnce     sync.Once
	metricsInstance *Metrics
)

// NewMetrics returns the process-wide Metrics, registering it on first use.
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			OperationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "beammp_manager_operations_total",
				Help: "Total number of lifecycle operations by operation and result",
			}, []string{"operation", "result"}),
			OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "beammp_manager_operation_duration_seconds",
				Help:    "Duration of lifecycle operations",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
			}, []string{"operation"}),
			State: promauto.NewGaugeVec(prometheus.GaugeOpts{
				Name: "beammp_manager_state",
				Help: "Current lifecycle state (1 for the active state)",
			}, []string{"state"}),
			UpdateAvailable: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "beammp_manager_update_available",
				Help: "1 when the last check found a newer release",
			}),
		}
	})
	return metricsInstance
}

// ObserveOperation counts one operation and records its duration.
func (m *Metrics) ObserveOperation(operation string, elapsed time.Duration, err error) {
	if m == nil || m.OperationsTotal == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.OperationsTotal.WithLabelValues(operation, result).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// SetState marks state as the active one.
func (m *Metrics) SetState(state string) {
	if m == nil || m.State == nil {
		return
	}
	m.State.Reset()
	m.State.WithLabelValues(state).Set(1)
}

func (m *Metrics) SetUpdateAvailable(available bool) {
	if m == nil || m.UpdateAvailable == nil {
		return
	}
	if available {
		m.UpdateAvailable.Set(1)
		return
	}
	m.UpdateAvailable.Set(0)
}
