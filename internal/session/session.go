// Package session is the interaction surface a presentation layer drives: it turns cell
// clicks and history jumps into engine calls and exposes everything needed to render.
package session

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/history"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// Session is one game: its history and the id it is stored under.
// It is not safe for concurrent use.
type Session struct {
	ID string

	history *history.History
}

// State is the serializable form of a session.
type State struct {
	ID        string         `json:"id"`
	Snapshots []entity.Board `json:"snapshots"`
	Cursor    int            `json:"cursor"`
}

func New(id string) *Session {
	return &Session{
		ID:      id,
		history: history.New(),
	}
}

// FromState rebuilds a session from its serialized form.
func FromState(state State) (*Session, error) {
	h, err := history.Restore(state.Snapshots, state.Cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session %s: %w", state.ID, err)
	}

	return &Session{ID: state.ID, history: h}, nil
}

func (that *Session) State() State {
	return State{
		ID:        that.ID,
		Snapshots: that.history.Snapshots(),
		Cursor:    that.history.Cursor(),
	}
}

// OnCellClick plays the current turn's mark on cell. A rejected move leaves the session
// untouched and the returned error says why.
func (that *Session) OnCellClick(cell int) error {
	board, _ := that.history.Current()

	next, err := tictactoe.Apply(board, cell, that.history.Turn())
	if err != nil {
		return err
	}

	that.history.Play(next)

	return nil
}

// OnHistoryJump moves to the snapshot recorded after move plies.
func (that *Session) OnHistoryJump(move int) error {
	return that.history.JumpTo(move)
}

// Reset starts a new game in the same session.
func (that *Session) Reset() {
	that.history.Reset()
}

func (that *Session) Current() (entity.Board, int) {
	return that.history.Current()
}

func (that *Session) Turn() entity.Mark {
	return that.history.Turn()
}

func (that *Session) Result() entity.Result {
	return that.history.Result()
}

func (that *Session) Len() int {
	return that.history.Len()
}
