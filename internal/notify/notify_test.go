package notify

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier_InterestCredited(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))
	id := uuid.New()

	err := n.InterestCredited(t.Context(), InterestCredited{
		PlayerID:   id,
		PlayerName: "Alex",
		Amount:     12.5,
		Formatted:  "$12.50",
		CreditedAt: time.Now(),
	})
	require.NoError(t, err)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "interest credited", line["msg"])
	assert.Equal(t, id.String(), line["player_id"])
	assert.Equal(t, "$12.50", line["formatted"])
	assert.InDelta(t, 12.5, line["amount"], 1e-9)
}

func TestNewLogNotifier_NilLoggerFallsBackToDefault(t *testing.T) {
	t.Parallel()

	n := NewLogNotifier(nil)
	assert.NotNil(t, n.log)
}
