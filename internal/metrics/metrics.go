package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tictactoe"

const (
	ReasonCellOccupied = "cell_occupied"
	ReasonInvalidCell  = "invalid_cell"
	ReasonInvalidMark  = "invalid_mark"
	ReasonGameFinished = "game_finished"
	ReasonInvalidMove  = "invalid_move"
	ReasonOther        = "other"
)

// Recorder counts what players do with their sessions.
type Recorder struct {
	sessionsCreated prometheus.Counter
	movesPlayed     prometheus.Counter
	movesRejected   *prometheus.CounterVec
	historyJumps    prometheus.Counter
	gamesFinished   *prometheus.CounterVec
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Recorder {
	that := &Recorder{
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_created_total",
			Help:      "Number of game sessions created.",
		}),
		movesPlayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_played_total",
			Help:      "Number of accepted moves.",
		}),
		movesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_rejected_total",
			Help:      "Number of rejected cell clicks and history jumps, by reason.",
		}, []string{"reason"}),
		historyJumps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_jumps_total",
			Help:      "Number of accepted jumps through move history.",
		}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Number of moves that ended a game, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		that.sessionsCreated,
		that.movesPlayed,
		that.movesRejected,
		that.historyJumps,
		that.gamesFinished,
	)

	return that
}

func (that *Recorder) SessionCreated() {
	that.sessionsCreated.Inc()
}

func (that *Recorder) MovePlayed() {
	that.movesPlayed.Inc()
}

func (that *Recorder) MoveRejected(reason string) {
	that.movesRejected.WithLabelValues(reason).Inc()
}

func (that *Recorder) HistoryJumped() {
	that.historyJumps.Inc()
}

func (that *Recorder) GameFinished(outcome string) {
	that.gamesFinished.WithLabelValues(outcome).Inc()
}
