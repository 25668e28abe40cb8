package triage

import (
	"errors"
	"time"

	"github.com/kurochkinivan/image_sorter/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess      = "success"
	outcomeInvalidInput = "invalid_input"
	outcomeNotFound     = "not_found"
	outcomeError        = "error"
)

// Metrics holds Prometheus metrics for scanning and moving. A nil *Metrics is a no-op.
type Metrics struct {
	ListsTotal       *prometheus.CounterVec
	ListedImages     prometheus.Gauge
	MovesTotal       *prometheus.CounterVec
	MoveCollisions   *prometheus.CounterVec
	MoveDuration     *prometheus.HistogramVec
	CrossDeviceMoves prometheus.Counter
}

// NewMetrics registers and returns triage metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ListsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "image_sorter_list_requests_total",
			Help: "Total directory listings by outcome.",
		}, []string{"outcome"}),
		ListedImages: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "image_sorter_listed_images",
			Help: "Images waiting for a decision at the last successful listing.",
		}),
		MovesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "image_sorter_moves_total",
			Help: "Total move requests by decision and outcome.",
		}, []string{"decision", "outcome"}),
		MoveCollisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "image_sorter_move_collisions_total",
			Help: "Occupied destination names skipped while resolving a move.",
		}, []string{"decision"}),
		MoveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "image_sorter_move_duration_seconds",
			Help:    "Duration of move requests in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms .. ~4s
		}, []string{"decision"}),
		CrossDeviceMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "image_sorter_cross_device_moves_total",
			Help: "Moves completed by copy because rename could not cross devices.",
		}),
	}

	reg.MustRegister(
		m.ListsTotal,
		m.ListedImages,
		m.MovesTotal,
		m.MoveCollisions,
		m.MoveDuration,
		m.CrossDeviceMoves,
	)

	return m
}

func (m *Metrics) observeList(outcome string, images int) {
	if m == nil {
		return
	}
	m.ListsTotal.WithLabelValues(outcome).Inc()
	if outcome == outcomeSuccess {
		m.ListedImages.Set(float64(images))
	}
}

func (m *Metrics) observeMove(decision string, err error, result *domain.MoveResult, d time.Duration) {
	if m == nil {
		return
	}

	// keep label cardinality bounded
	if _, parseErr := domain.ParseDecision(decision); parseErr != nil {
		decision = "invalid"
	}

	m.MovesTotal.WithLabelValues(decision, outcomeOf(err)).Inc()
	m.MoveDuration.WithLabelValues(decision).Observe(d.Seconds())

	if result != nil {
		m.MoveCollisions.WithLabelValues(decision).Add(float64(result.Collisions))
		if result.CrossDevice {
			m.CrossDeviceMoves.Inc()
		}
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return outcomeSuccess
	case errors.Is(err, domain.ErrInvalidInput):
		return outcomeInvalidInput
	case errors.Is(err, domain.ErrNotFound):
		return outcomeNotFound
	default:
		return outcomeError
	}
}
