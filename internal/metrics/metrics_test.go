package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	m, err := New(reg)
	require.NoError(t, err)

	m.LedgerOp("transfer", OutcomeOK)
	m.LedgerOp("transfer", OutcomeOK)
	m.LedgerOp("transfer", OutcomeRejected)
	m.InterestPaid(12.5)
	m.InterestPaid(-1)
	m.LeaderboardRefreshed(3, 20*time.Millisecond, time.Unix(1700000000, 0))

	assert.InDelta(t, 2, testutil.ToFloat64(m.ledgerOps.WithLabelValues("transfer", OutcomeOK)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ledgerOps.WithLabelValues("transfer", OutcomeRejected)), 0)
	assert.InDelta(t, 12.5, testutil.ToFloat64(m.interestPaid), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.leaderboardSize), 0)
	assert.InDelta(t, 1700000000, testutil.ToFloat64(m.leaderboardLastRun), 0)
}

func TestMetrics_DoubleRegisterFails(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	require.Error(t, err)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	t.Parallel()

	var m *Metrics

	m.LedgerOp("add_cash", OutcomeOK)
	m.InterestRun("ok")
	m.InterestAccount(OutcomeOK)
	m.InterestPaid(1)
	m.LeaderboardRefreshed(1, time.Second, time.Now())
}
