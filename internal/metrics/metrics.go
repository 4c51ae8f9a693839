// Package metrics holds the Prometheus collectors of the economy service.
//
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "economy"

// Ledger operation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

type Metrics struct {
	ledgerOps *prometheus.CounterVec

	interestRuns     *prometheus.CounterVec
	interestPaid     prometheus.Counter
	interestAccounts *prometheus.CounterVec

	leaderboardSize     prometheus.Gauge
	leaderboardDuration prometheus.Gauge
	leaderboardLastRun  prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ledgerOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ledger",
				Name:      "operations_total",
				Help:      "Ledger operations by name and outcome",
			},
			[]string{"op", "outcome"},
		),
		interestRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "interest",
				Name:      "runs_total",
				Help:      "Interest distribution passes by result",
			},
			[]string{"result"},
		),
		interestPaid: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "interest",
				Name:      "paid_total",
				Help:      "Sum of interest credited to bank balances",
			},
		),
		interestAccounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "interest",
				Name:      "accounts_total",
				Help:      "Accounts visited by interest passes, by outcome",
			},
			[]string{"outcome"},
		),
		leaderboardSize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "leaderboard",
				Name:      "entries",
				Help:      "Entries in the current leaderboard snapshot",
			},
		),
		leaderboardDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "leaderboard",
				Name:      "refresh_duration_seconds",
				Help:      "Duration of the last leaderboard rebuild",
			},
		),
		leaderboardLastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "leaderboard",
				Name:      "last_refresh_timestamp_seconds",
				Help:      "Unix time of the last successful leaderboard rebuild",
			},
		),
	}

	collectors := []prometheus.Collector{
		m.ledgerOps,
		m.interestRuns,
		m.interestPaid,
		m.interestAccounts,
		m.leaderboardSize,
		m.leaderboardDuration,
		m.leaderboardLastRun,
	}

	for _, c := range collectors {
		err := reg.Register(c)
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) LedgerOp(op, outcome string) {
	if m == nil {
		return
	}

	m.ledgerOps.With(prometheus.Labels{"op": op, "outcome": outcome}).Inc()
}

func (m *Metrics) InterestRun(result string) {
	if m == nil {
		return
	}

	m.interestRuns.With(prometheus.Labels{"result": result}).Inc()
}

func (m *Metrics) InterestAccount(outcome string) {
	if m == nil {
		return
	}

	m.interestAccounts.With(prometheus.Labels{"outcome": outcome}).Inc()
}

func (m *Metrics) InterestPaid(amount float64) {
	if m == nil || amount <= 0 {
		return
	}

	m.interestPaid.Add(amount)
}

func (m *Metrics) LeaderboardRefreshed(entries int, took time.Duration, at time.Time) {
	if m == nil {
		return
	}

	m.leaderboardSize.Set(float64(entries))
	m.leaderboardDuration.Set(took.Seconds())
	m.leaderboardLastRun.Set(float64(at.Unix()))
}
