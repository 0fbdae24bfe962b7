package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	recorder := New(reg)

	recorder.SessionCreated()
	recorder.MovePlayed()
	recorder.MovePlayed()
	recorder.MoveRejected(ReasonCellOccupied)
	recorder.HistoryJumped()
	recorder.GameFinished("won")

	assert.InDelta(t, 1, testutil.ToFloat64(recorder.sessionsCreated), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(recorder.movesPlayed), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(recorder.movesRejected.WithLabelValues(ReasonCellOccupied)), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(recorder.movesRejected.WithLabelValues(ReasonInvalidCell)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(recorder.historyJumps), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(recorder.gamesFinished.WithLabelValues("won")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
