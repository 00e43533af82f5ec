package service

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameService_ListGames(t *testing.T) {
	ctx := context.Background()

	// Given: one waiting and one started game
	f := newFixture()
	_, err := f.gameplay.CreateGame(ctx, "Medium", "Jerry")
	require.NoError(t, err)
	startGame(t, f)

	t.Run("Without status returns every game in creation order", func(t *testing.T) {
		games, err := f.games.ListGames(ctx, "")

		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, "Medium", games[0].Name)
		assert.Equal(t, "Play", games[1].Name)
	})

	t.Run("Waiting status returns only waiting games", func(t *testing.T) {
		games, err := f.games.ListGames(ctx, entity.StatusWaiting)

		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "Medium", games[0].Name)
	})

	t.Run("Player games", func(t *testing.T) {
		games, err := f.games.ListPlayerGames(ctx, "Tom")

		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.Equal(t, "Play", games[0].Name)
	})
}

func TestPlayerService_GetOrCreatePlayer(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	player, created, err := f.players.GetOrCreatePlayer(ctx, "Tom")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Tom", player.Name)

	_, created, err = f.players.GetOrCreatePlayer(ctx, "Tom")
	require.NoError(t, err)
	assert.False(t, created)

	_, _, err = f.players.GetOrCreatePlayer(ctx, "")
	require.Error(t, err)
}
