package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrInvalidMark     = errors.New("invalid mark")
	ErrInvalidMove     = errors.New("invalid move number")
	ErrCorruptHistory  = errors.New("history is corrupt")
	ErrSessionNotFound = errors.New("session not found")
)

// IsRejection reports whether err is a rule rejection: the requested move or jump
// was refused and no state was changed.
func IsRejection(err error) bool {
	return errors.Is(err, ErrGameFinished) ||
		errors.Is(err, ErrCellOccupied) ||
		errors.Is(err, ErrInvalidCell) ||
		errors.Is(err, ErrInvalidMark) ||
		errors.Is(err, ErrInvalidMove)
}
