package session

import (
	"strconv"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	labelGameStart = "Go to game start"
	labelMove      = "Go to move #"

	statusWinner = "Winner: "
	statusDraw   = "Draw"
	statusNext   = "Next player: "
)

// View is everything a presentation layer renders for the snapshot under the cursor.
type View struct {
	ID         string                   `json:"id,omitempty"`
	Squares    [entity.BoardSize]Square `json:"squares"`
	Cursor     int                      `json:"cursor"`
	Length     int                      `json:"history_length"`
	NextPlayer string                   `json:"next_player,omitempty"`
	Outcome    string                   `json:"outcome"`
	Winner     string                   `json:"winner,omitempty"`
	WinLine    []int                    `json:"win_line,omitempty"`
	Status     string                   `json:"status"`
	Moves      []MoveButton             `json:"moves"`
}

type Square struct {
	Value     string `json:"value"`
	Highlight bool   `json:"highlight,omitempty"`
}

// MoveButton is one entry of the history list.
type MoveButton struct {
	Move    int    `json:"move"`
	Label   string `json:"label"`
	Current bool   `json:"current,omitempty"`
}

func (that *Session) View() View {
	board, cursor := that.history.Current()
	result := that.history.Result()

	view := View{
		ID:      that.ID,
		Cursor:  cursor,
		Length:  that.history.Len(),
		Outcome: result.Outcome.String(),
		Status:  StatusText(result, that.history.Turn()),
		Moves:   MoveList(that.history.Len(), cursor),
	}

	for i, cell := range board {
		view.Squares[i] = Square{Value: cell.String(), Highlight: result.Highlights(i)}
	}

	switch result.Outcome {
	case entity.Won:
		view.Winner = result.Winner.String()
		view.WinLine = result.Line[:]
	case entity.InProgress:
		view.NextPlayer = that.history.Turn().String()
	}

	return view
}

// StatusText is the one-line game status shown above the board.
func StatusText(result entity.Result, turn entity.Mark) string {
	switch result.Outcome {
	case entity.Won:
		return statusWinner + result.Winner.String()
	case entity.Draw:
		return statusDraw
	default:
		return statusNext + turn.String()
	}
}

// MoveLabel is the caption of the history entry for move.
func MoveLabel(move int) string {
	if move > 0 {
		return labelMove + strconv.Itoa(move)
	}
	return labelGameStart
}

// MoveList builds one entry per recorded snapshot.
func MoveList(length, cursor int) []MoveButton {
	moves := make([]MoveButton, 0, length)
	for move := range length {
		moves = append(moves, MoveButton{
			Move:    move,
			Label:   MoveLabel(move),
			Current: move == cursor,
		})
	}

	return moves
}
