package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/session"
)

const requestTimeout = 5 * time.Second

type sessionUseCase interface {
	CreateSession(ctx context.Context) (session.View, error)
	GetSession(ctx context.Context, id string) (session.View, error)
	ClickCell(ctx context.Context, id string, cell int) (session.View, error)
	JumpTo(ctx context.Context, id string, move int) (session.View, error)
	ResetSession(ctx context.Context, id string) (session.View, error)
	DeleteSession(ctx context.Context, id string) error
}

// Response is the body of every /games endpoint. Rejected is set when a click or jump
// was refused; Game then holds the unchanged state.
type Response struct {
	Game     *session.View `json:"game,omitempty"`
	Rejected string        `json:"rejected,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

// NewRouter wires the game endpoints, /ping and, when metrics is not nil, /metrics.
func NewRouter(logger *slog.Logger, sessions sessionUseCase, metrics http.Handler) http.Handler {
	that := &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/ping", pingHandler)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Route("/games", func(r chi.Router) {
		r.Post("/", that.createGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", that.getGame)
			r.Delete("/", that.deleteGame)
			r.Post("/cells/{cell}", that.clickCell)
			r.Post("/history/{move}", that.jumpTo)
			r.Post("/reset", that.resetGame)
		})
	})

	return r
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{Game: &view})
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Game: &view})
}

func (that *handlers) clickCell(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "cell"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "cell must be an integer"})
		return
	}

	view, err := that.sessions.ClickCell(r.Context(), chi.URLParam(r, "id"), cell)
	that.writeResult(w, r, view, err)
}

func (that *handlers) jumpTo(w http.ResponseWriter, r *http.Request) {
	move, err := strconv.Atoi(chi.URLParam(r, "move"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: "move must be an integer"})
		return
	}

	view, err := that.sessions.JumpTo(r.Context(), chi.URLParam(r, "id"), move)
	that.writeResult(w, r, view, err)
}

func (that *handlers) resetGame(w http.ResponseWriter, r *http.Request) {
	view, err := that.sessions.ResetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Game: &view})
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeResult reports a click or jump. Rejections are not failures: the request is answered
// with the unchanged game and the reason it was refused.
func (that *handlers) writeResult(w http.ResponseWriter, r *http.Request, view session.View, err error) {
	if err != nil && apperror.IsRejection(err) {
		writeJSON(w, http.StatusOK, Response{Game: &view, Rejected: err.Error()})
		return
	}

	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Game: &view})
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, Response{Error: apperror.ErrSessionNotFound.Error()})
		return
	}

	that.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"requestID", middleware.GetReqID(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, Response{Error: "Internal Server Error"})
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
