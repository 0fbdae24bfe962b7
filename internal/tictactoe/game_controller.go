package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// Evaluate classifies the board. Lines are checked in entity.WinCombos order and the first
// complete one wins, so a board with several complete lines always reports the same one.
func Evaluate(board entity.Board) entity.Result {
	for _, combo := range entity.WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != entity.Empty && a == b && b == c {
			return entity.Result{Outcome: entity.Won, Winner: a, Line: combo}
		}
	}

	// the game will continue until all the squares are full
	if board.IsFull() {
		return entity.Result{Outcome: entity.Draw}
	}

	return entity.Result{Outcome: entity.InProgress}
}

// Apply places mark on cell and returns the new board. The given board is never modified.
// When the move is rejected the original board is returned together with the reason.
func Apply(board entity.Board, cell int, mark entity.Mark) (entity.Board, error) {
	if err := validateMove(board, cell, mark); err != nil {
		return board, fmt.Errorf("invalid turn: %w", err)
	}

	next := board
	next[cell] = mark

	return next, nil
}

// Turn returns the mark to play after ply moves have been made.
func Turn(ply int) entity.Mark {
	if ply%2 == 0 {
		return entity.X
	}
	return entity.O
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int, mark entity.Mark) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if Evaluate(board).IsFinished() {
		return apperror.ErrGameFinished
	}

	if board[cell] != entity.Empty {
		return apperror.ErrCellOccupied
	}

	return nil
}
