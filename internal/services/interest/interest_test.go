package interest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/playereconomy/internal/notify"
	"github.com/fastprodman/playereconomy/internal/repos/accounts"
	"github.com/fastprodman/playereconomy/internal/repos/accounts/memory"
	"github.com/fastprodman/playereconomy/internal/services/ledger"
)

func TestCalculateInterest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		bank  float64
		rate  float64
		limit float64
		want  float64
	}{
		{name: "capped", bank: 10000, rate: 0.1, limit: 500, want: 500},
		{name: "unlimited cap", bank: 10000, rate: 0.03, limit: -1, want: 300},
		{name: "zero cap is unlimited", bank: 10000, rate: 0.03, limit: 0, want: 300},
		{name: "under cap", bank: 1000, rate: 0.03, limit: 10000, want: 30},
		{name: "empty bank", bank: 0, rate: 0.5, limit: 100, want: 0},
		{name: "negative bank", bank: -50, rate: 0.5, limit: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tt.want, CalculateInterest(tt.bank, tt.rate, tt.limit), 1e-9)
		})
	}
}

type recordingNotifier struct {
	events []notify.InterestCredited
	err    error
}

func (n *recordingNotifier) InterestCredited(_ context.Context, ev notify.InterestCredited) error {
	n.events = append(n.events, ev)
	return n.err
}

func seed(t *testing.T, l *ledger.Ledger, id string, bank float64) {
	t.Helper()

	_, err := l.GetOrCreate(t.Context(), id, "name-"+id)
	require.NoError(t, err)
	require.NoError(t, l.SetBank(t.Context(), id, bank))
}

func TestDistribute(t *testing.T) {
	t.Parallel()

	store := memory.New()
	l := ledger.New(store, ledger.Settings{InitialCash: 1000, CurrencySymbol: "$"}, nil, nil)
	ctx := t.Context()

	rich := uuid.NewString()
	modest := uuid.NewString()
	broke := uuid.NewString()

	seed(t, l, rich, 100000)
	seed(t, l, modest, 1000)
	seed(t, l, broke, 0)
	seed(t, l, "not-a-uuid", 200)

	n := &recordingNotifier{}
	e := New(store, l, n, Settings{Rate: 0.03, Max: 500}, nil, nil)

	sum, err := e.Distribute(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Scanned)
	assert.Equal(t, 3, sum.Credited)
	assert.Equal(t, 1, sum.Skipped)
	assert.Equal(t, 0, sum.Failed)
	assert.InDelta(t, 500+30+6, sum.TotalPaid, 1e-9)

	bank, _ := l.GetBank(ctx, rich)
	assert.InDelta(t, 100500, bank, 1e-9)

	bank, _ = l.GetBank(ctx, modest)
	assert.InDelta(t, 1030, bank, 1e-9)

	bank, _ = l.GetBank(ctx, broke)
	assert.InDelta(t, 0, bank, 0)

	// Credited but not notified: the id cannot address a player.
	bank, _ = l.GetBank(ctx, "not-a-uuid")
	assert.InDelta(t, 206, bank, 1e-9)

	require.Len(t, n.events, 2)
	assert.Equal(t, rich, n.events[0].PlayerID.String())
	assert.Equal(t, "$500.00", n.events[0].Formatted)
	assert.Equal(t, modest, n.events[1].PlayerID.String())
}

func TestDistribute_NotifierErrorDoesNotUndoCredit(t *testing.T) {
	t.Parallel()

	store := memory.New()
	l := ledger.New(store, ledger.Settings{}, nil, nil)

	id := uuid.NewString()
	seed(t, l, id, 1000)

	e := New(store, l, &recordingNotifier{err: errors.New("offline")}, Settings{Rate: 0.1}, nil, nil)

	sum, err := e.Distribute(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Credited)

	bank, _ := l.GetBank(t.Context(), id)
	assert.InDelta(t, 1100, bank, 1e-9)
}

type mockCrediter struct {
	mock.Mock
}

func (m *mockCrediter) AddBank(ctx context.Context, id string, amount float64) error {
	return m.Called(ctx, id, amount).Error(0)
}

func (m *mockCrediter) FormatAmount(amount float64) string {
	return m.Called(amount).String(0)
}

type staticScanner []*accounts.Account

func (s staticScanner) GetAll(context.Context) ([]*accounts.Account, error) {
	return s, nil
}

func TestDistribute_IsolatesFailures(t *testing.T) {
	t.Parallel()

	scanner := staticScanner{
		{ID: "a", Bank: 100},
		{ID: "b", Bank: 200},
		{ID: "c", Bank: 300},
	}

	c := new(mockCrediter)
	c.On("AddBank", mock.Anything, "a", 50.0).Return(nil)
	c.On("AddBank", mock.Anything, "b", 100.0).Return(ledger.ErrStorage)
	c.On("AddBank", mock.Anything, "c", 150.0).Return(nil)

	e := New(scanner, c, nil, Settings{Rate: 0.5}, nil, nil)

	sum, err := e.Distribute(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Credited)
	assert.Equal(t, 1, sum.Failed)
	assert.InDelta(t, 200, sum.TotalPaid, 1e-9)

	c.AssertExpectations(t)
}

type failingScanner struct{}

func (failingScanner) GetAll(context.Context) ([]*accounts.Account, error) {
	return nil, errors.New("db gone")
}

func TestDistribute_ScanFailure(t *testing.T) {
	t.Parallel()

	e := New(failingScanner{}, new(mockCrediter), nil, Settings{Rate: 0.1}, nil, nil)

	_, err := e.Distribute(t.Context())
	require.Error(t, err)
}

func TestDistribute_StopsWhenCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	c := new(mockCrediter)
	e := New(staticScanner{{ID: "a", Bank: 100}}, c, nil, Settings{Rate: 0.1}, nil, nil)

	_, err := e.Distribute(ctx)
	require.ErrorIs(t, err, context.Canceled)
	c.AssertNotCalled(t, "AddBank", mock.Anything, mock.Anything, mock.Anything)
}
