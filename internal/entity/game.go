package entity

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownMark = errors.New("unknown mark")

// Mark is the content of a single board cell.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""
)

// BoardSize is the number of cells on the 3x3 board.
const BoardSize = 9

func (m Mark) String() string {
	switch m {
	case X:
		return PlayerX
	case O:
		return PlayerO
	default:
		return EmptyCell
	}
}

func (m Mark) MarshalText() ([]byte, error) {
	if m > O {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMark, m)
	}

	return []byte(m.String()), nil
}

func (m *Mark) UnmarshalText(text []byte) error {
	switch string(text) {
	case PlayerX:
		*m = X
	case PlayerO:
		*m = O
	case EmptyCell:
		*m = Empty
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMark, text)
	}

	return nil
}

// IsPlayer reports whether m is a mark a player can place.
func (m Mark) IsPlayer() bool {
	return m == X || m == O
}

// Board is one snapshot of the game, stored row-major: cell i is at row i/3, column i%3.
// It is a value type, so every copy is independent of the one it was copied from.
type Board [BoardSize]Mark

// IsFull reports whether no empty cell is left.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// Diff returns the indexes of the cells that differ between the two boards.
func (that Board) Diff(other Board) []int {
	var cells []int
	for i := range that {
		if that[i] != other[i] {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that Board) String() string {
	var sb strings.Builder
	for i, cell := range that {
		if cell == Empty {
			sb.WriteByte('.')
		} else {
			sb.WriteString(cell.String())
		}

		if i%3 == 2 && i != BoardSize-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// Line is a triple of cell indexes that wins the game when filled with one mark.
type Line [3]int

// WinCombos lists every line in evaluation order: rows top to bottom, columns left to right,
// then the 0-4-8 and 2-4-6 diagonals.
var WinCombos = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Contains reports whether cell is one of the line's indexes.
func (that Line) Contains(cell int) bool {
	return that[0] == cell || that[1] == cell || that[2] == cell
}

type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Draw
)

const (
	StatusOngoing = "in_progress"
	StatusWon     = "won"
	StatusDraw    = "draw"
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return StatusWon
	case Draw:
		return StatusDraw
	default:
		return StatusOngoing
	}
}

// Result is the terminal classification of a board. Winner and Line are only meaningful
// when Outcome is Won.
type Result struct {
	Outcome Outcome
	Winner  Mark
	Line    Line
}

func (that Result) IsFinished() bool {
	return that.Outcome != InProgress
}

// Highlights reports whether cell belongs to the winning line.
func (that Result) Highlights(cell int) bool {
	return that.Outcome == Won && that.Line.Contains(cell)
}
