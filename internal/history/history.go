// Package history keeps the recorded board snapshots of one game and a cursor into them.
package history

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// History is an ordered list of snapshots, one per ply, and the index of the current one.
// Index 0 is always the empty board and the cursor always points at a recorded snapshot.
type History struct {
	snapshots []entity.Board
	cursor    int
}

func New() *History {
	return &History{
		snapshots: []entity.Board{{}},
	}
}

// Restore rebuilds a history from previously recorded snapshots.
func Restore(snapshots []entity.Board, cursor int) (*History, error) {
	if len(snapshots) == 0 {
		return nil, fmt.Errorf("%w: no snapshots", apperror.ErrCorruptHistory)
	}

	if snapshots[0] != (entity.Board{}) {
		return nil, fmt.Errorf("%w: first snapshot is not an empty board", apperror.ErrCorruptHistory)
	}

	if cursor < 0 || cursor >= len(snapshots) {
		return nil, fmt.Errorf("%w: cursor %d out of %d snapshots", apperror.ErrCorruptHistory, cursor, len(snapshots))
	}

	for ply := 1; ply < len(snapshots); ply++ {
		if err := validatePly(snapshots[ply-1], snapshots[ply], ply-1); err != nil {
			return nil, fmt.Errorf("%w: snapshot %d: %v", apperror.ErrCorruptHistory, ply, err)
		}
	}

	return &History{
		snapshots: append([]entity.Board(nil), snapshots...),
		cursor:    cursor,
	}, nil
}

// validatePly checks that next is prev with exactly one legal move by the mark whose turn it was.
func validatePly(prev, next entity.Board, ply int) error {
	cells := prev.Diff(next)
	if len(cells) != 1 {
		return fmt.Errorf("%d cells changed", len(cells))
	}

	want, err := tictactoe.Apply(prev, cells[0], tictactoe.Turn(ply))
	if err != nil {
		return err
	}

	if want != next {
		return fmt.Errorf("cell %d holds %q, want %q", cells[0], next[cells[0]], want[cells[0]])
	}

	return nil
}

// Current returns the snapshot under the cursor and the cursor itself.
func (that *History) Current() (entity.Board, int) {
	return that.snapshots[that.cursor], that.cursor
}

// Play drops every snapshot after the cursor, appends next and moves the cursor onto it.
// Playing from an earlier point therefore discards the alternate future.
func (that *History) Play(next entity.Board) {
	that.snapshots = append(that.snapshots[:that.cursor+1], next)
	that.cursor = len(that.snapshots) - 1
}

// JumpTo moves the cursor to a recorded snapshot. The snapshots themselves are left untouched.
func (that *History) JumpTo(index int) error {
	if index < 0 || index >= len(that.snapshots) {
		return fmt.Errorf("%w: %d not in [0, %d]", apperror.ErrInvalidMove, index, len(that.snapshots)-1)
	}

	that.cursor = index

	return nil
}

func (that *History) Len() int {
	return len(that.snapshots)
}

func (that *History) Cursor() int {
	return that.cursor
}

func (that *History) At(index int) (entity.Board, bool) {
	if index < 0 || index >= len(that.snapshots) {
		return entity.Board{}, false
	}

	return that.snapshots[index], true
}

// Snapshots returns a copy of every recorded snapshot.
func (that *History) Snapshots() []entity.Board {
	return append([]entity.Board(nil), that.snapshots...)
}

// Turn is the mark to play at the cursor. It is derived from the cursor's parity
// because the cursor equals the number of plies made to reach that snapshot.
func (that *History) Turn() entity.Mark {
	return tictactoe.Turn(that.cursor)
}

// Result evaluates the snapshot under the cursor.
func (that *History) Result() entity.Result {
	return tictactoe.Evaluate(that.snapshots[that.cursor])
}

// Reset returns the history to a single empty board.
func (that *History) Reset() {
	that.snapshots = []entity.Board{{}}
	that.cursor = 0
}
