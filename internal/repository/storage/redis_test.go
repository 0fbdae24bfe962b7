package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

func TestNew(t *testing.T) {
	t.Run("Connects to a running redis", func(t *testing.T) {
		// Given
		ctx, st := suite.New(t)

		// When
		client, err := storage.New(ctx, st.Addr)

		// Then
		require.NoError(t, err)
		defer client.Close()
		require.NoError(t, client.Ping(ctx).Err())
	})

	t.Run("Unreachable address is an error", func(t *testing.T) {
		// Given
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// When
		client, err := storage.New(ctx, "127.0.0.1:1")

		// Then
		require.Error(t, err)
		require.Nil(t, client)
	})
}
