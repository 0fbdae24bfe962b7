package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-history/internal/config"
	"github.com/rocketscienceinc/tictactoe-history/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/internal/session"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/transport/rest"
	"github.com/rocketscienceinc/tictactoe-history/transport/terminal"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the HTTP application until SIGINT or SIGTERM.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionRepo, closeRepo, err := newSessionRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{})

	sessionManager := usecase.NewSessionManager(logger, sessionRepo, metrics.New(reg))

	g, gCtx := errgroup.WithContext(ctx)

	// run HTTP server
	if conf.MetricsPort == "" {
		g.Go(func() error {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			return rest.Start(gCtx, conf.HTTPPort, rest.NewRouter(logger, sessionManager, metricsHandler))
		})
	} else {
		g.Go(func() error {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			return rest.Start(gCtx, conf.HTTPPort, rest.NewRouter(logger, sessionManager, nil))
		})

		// run metrics server
		g.Go(func() error {
			log.Info("Starting metrics server", "port", conf.MetricsPort)
			r := chi.NewRouter()
			r.Method(http.MethodGet, "/metrics", metricsHandler)
			return rest.Start(gCtx, conf.MetricsPort, r)
		})
	}

	if err = g.Wait(); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

// RunTerminal - runs one hot-seat game in the terminal until the player quits.
func RunTerminal(ctx context.Context, logger *slog.Logger) error {
	log := logger.With("component", "terminal")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	s := session.New(uuid.NewString())
	log.Info("Starting terminal game", "session_id", s.ID)

	if err := terminal.Run(s, tea.WithContext(ctx), tea.WithAltScreen()); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Info("Terminal game interrupted")
			return nil
		}

		return err
	}

	board, cursor := s.Current()
	log.Info("Terminal game closed", "session_id", s.ID, "board", board.String(), "cursor", cursor)
	return nil
}

// newSessionRepository picks the session store named by conf.Storage. The returned
// function releases whatever the store holds.
func newSessionRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.SessionRepository, func(), error) {
	if conf.Storage != config.StorageRedis {
		log.Info("Using in-memory session storage")
		return repository.NewMemorySessionRepository(), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	// sessions of an earlier process live under another namespace and expire on their own
	namespace := uuid.NewString()
	log.Info("Using redis session storage", "addr", redisAddrString, "namespace", namespace, "ttl", conf.Redis.SessionTTL)

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewRedisSessionRepository(redisStorage, namespace, conf.Redis.SessionTTL), closeFn, nil
}
