package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/playereconomy/internal/notify"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}

	w.msgs = append(w.msgs, msgs...)

	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisher_InterestCredited(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	p := &Publisher{writer: w}

	id := uuid.New()
	ev := notify.InterestCredited{
		PlayerID:   id,
		PlayerName: "Alex",
		Amount:     30,
		Formatted:  "$30.00",
		CreditedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, p.InterestCredited(t.Context(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, id.String(), string(msg.Key))

	var got notify.InterestCredited
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, ev, got)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_WriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: boom}}

	err := p.InterestCredited(t.Context(), notify.InterestCredited{PlayerID: uuid.New()})
	require.ErrorIs(t, err, boom)
}
