package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-history/internal/session"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, s *session.Session) error
	GetByID(ctx context.Context, id string) (*session.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type recorder interface {
	SessionCreated()
	MovePlayed()
	MoveRejected(reason string)
	HistoryJumped()
	GameFinished(outcome string)
}

// SessionManager runs game sessions on behalf of a presentation layer. Every operation
// loads the session, applies one user intent and stores the result; operations are
// serialized so two requests never interleave on the same stored state.
type SessionManager struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	recorder    recorder
	newID       func() string

	mu sync.Mutex
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo, recorder recorder) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		recorder:    recorder,
		newID:       uuid.NewString,
	}
}

func (that *SessionManager) CreateSession(ctx context.Context) (session.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	s := session.New(that.newID())
	if err := that.sessionRepo.CreateOrUpdate(ctx, s); err != nil {
		return session.View{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.recorder.SessionCreated()
	that.logger.Debug("session created", "sessionID", s.ID)

	return s.View(), nil
}

func (that *SessionManager) GetSession(ctx context.Context, id string) (session.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	s, err := that.getSession(ctx, id)
	if err != nil {
		return session.View{}, err
	}

	return s.View(), nil
}

// ClickCell plays the current turn's mark on cell. A rejected move returns the unchanged
// view together with an error that satisfies apperror.IsRejection.
func (that *SessionManager) ClickCell(ctx context.Context, id string, cell int) (session.View, error) {
	log := that.logger.With("method", "ClickCell", "sessionID", id, "cell", cell)

	that.mu.Lock()
	defer that.mu.Unlock()

	s, err := that.getSession(ctx, id)
	if err != nil {
		return session.View{}, err
	}

	if err = s.OnCellClick(cell); err != nil {
		that.recorder.MoveRejected(rejectionReason(err))
		log.Debug("move rejected", "reason", err)

		return s.View(), fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.updateSession(ctx, s); err != nil {
		return session.View{}, err
	}

	that.recorder.MovePlayed()

	if result := s.Result(); result.IsFinished() {
		that.recorder.GameFinished(result.Outcome.String())
		log.Info("game finished", "outcome", result.Outcome.String(), "winner", result.Winner.String())
	}

	return s.View(), nil
}

// JumpTo moves the session's cursor to the snapshot recorded after move plies.
func (that *SessionManager) JumpTo(ctx context.Context, id string, move int) (session.View, error) {
	log := that.logger.With("method", "JumpTo", "sessionID", id, "move", move)

	that.mu.Lock()
	defer that.mu.Unlock()

	s, err := that.getSession(ctx, id)
	if err != nil {
		return session.View{}, err
	}

	if err = s.OnHistoryJump(move); err != nil {
		that.recorder.MoveRejected(rejectionReason(err))
		log.Debug("jump rejected", "reason", err)

		return s.View(), fmt.Errorf("failed to jump: %w", err)
	}

	if err = that.updateSession(ctx, s); err != nil {
		return session.View{}, err
	}

	that.recorder.HistoryJumped()

	return s.View(), nil
}

func (that *SessionManager) ResetSession(ctx context.Context, id string) (session.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	s, err := that.getSession(ctx, id)
	if err != nil {
		return session.View{}, err
	}

	s.Reset()

	if err = that.updateSession(ctx, s); err != nil {
		return session.View{}, err
	}

	return s.View(), nil
}

func (that *SessionManager) DeleteSession(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Debug("session deleted", "sessionID", id)

	return nil
}

func (that *SessionManager) getSession(ctx context.Context, id string) (*session.Session, error) {
	s, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return s, nil
}

func (that *SessionManager) updateSession(ctx context.Context, s *session.Session) error {
	if err := that.sessionRepo.CreateOrUpdate(ctx, s); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	return nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, apperror.ErrCellOccupied):
		return metrics.ReasonCellOccupied
	case errors.Is(err, apperror.ErrInvalidCell):
		return metrics.ReasonInvalidCell
	case errors.Is(err, apperror.ErrInvalidMark):
		return metrics.ReasonInvalidMark
	case errors.Is(err, apperror.ErrGameFinished):
		return metrics.ReasonGameFinished
	case errors.Is(err, apperror.ErrInvalidMove):
		return metrics.ReasonInvalidMove
	default:
		return metrics.ReasonOther
	}
}
