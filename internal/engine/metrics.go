package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

func decimalFromInt(q int64) decimal.Decimal {
	return decimal.NewFromInt(q)
}

// bookMetrics mirrors the book's market-summary counters into
// Prometheus so an operator can scrape them from /metrics without
// contending on the mutation gate — they're updated from inside the
// gate but read independently by the Prometheus client's own atomics.
type bookMetrics struct {
	tradesTotal   prometheus.Counter
	volumeTotal   prometheus.Counter
	notionalTotal prometheus.Counter
	restingDepth  *prometheus.GaugeVec
}

func newBookMetrics() *bookMetrics {
	return &bookMetrics{
		tradesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lob_trades_total",
			Help: "Total number of trades executed by the matcher.",
		}),
		volumeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lob_traded_volume_total",
			Help: "Total traded quantity across all trades.",
		}),
		notionalTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lob_traded_notional_total",
			Help: "Total traded notional (price * quantity) across all trades.",
		}),
		restingDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lob_resting_depth",
			Help: "Resting quantity currently on the book, by side.",
		}, []string{"side"}),
	}
}

// Register adds all of m's collectors to reg. Call once per process.
func (m *bookMetrics) Register(reg prometheus.Registerer) {
	reg.MustRegister(m.tradesTotal, m.volumeTotal, m.notionalTotal, m.restingDepth)
}

func (m *bookMetrics) observeResting(side Side, delta int64) {
	f, _ := decimal.NewFromInt(delta).Float64()
	m.restingDepth.WithLabelValues(side.String()).Add(f)
}

func (m *bookMetrics) observeTrade(t Trade) {
	m.tradesTotal.Inc()
	qty, _ := decimal.NewFromInt(t.Quantity).Float64()
	m.volumeTotal.Add(qty)
	notional, _ := t.Price.Mul(decimal.NewFromInt(t.Quantity)).Float64()
	m.notionalTotal.Add(notional)
}
