package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/session"
)

var ErrSessionNotFound = apperror.ErrSessionNotFound

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, s *session.Session) error
	GetByID(ctx context.Context, id string) (*session.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client    *redis.Client
	namespace string
	ttl       time.Duration
}

// NewRedisSessionRepository stores sessions as JSON under "session:<namespace>:<id>".
// Every write refreshes the ttl, so idle sessions expire on their own. A process that
// starts with a fresh namespace never sees sessions written by an earlier one.
func NewRedisSessionRepository(client *redis.Client, namespace string, ttl time.Duration) SessionRepository {
	return &dbSession{
		client:    client,
		namespace: namespace,
		ttl:       ttl,
	}
}

func (that *dbSession) key(id string) string {
	return "session:" + that.namespace + ":" + id
}

func (that *dbSession) CreateOrUpdate(ctx context.Context, s *session.Session) error {
	sessionJSON, err := json.Marshal(s.State())
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	err = that.client.Set(ctx, that.key(s.ID), sessionJSON, that.ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (*session.Session, error) {
	response, err := that.client.Get(ctx, that.key(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get session by id: %w", err)
	}

	var state session.State
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	existing, err := session.FromState(state)
	if err != nil {
		return nil, err
	}

	return existing, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, that.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	if deleted == 0 {
		return ErrSessionNotFound
	}

	return nil
}
