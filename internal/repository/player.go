package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type PlayerRepository interface {
	GetOrCreate(ctx context.Context, name string) (*entity.Player, bool, error)
	GetByName(ctx context.Context, name string) (*entity.Player, error)
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func playerKey(name string) string {
	return "player:" + name
}

// GetOrCreate - returns the player stored under name, creating it on first reference.
// The flag reports whether the player was created by this call.
func (that *dbPlayer) GetOrCreate(ctx context.Context, name string) (*entity.Player, bool, error) {
	player := entity.NewPlayer(name)

	playerJSON, err := json.Marshal(player)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal player: %w", err)
	}

	created, err := that.client.SetNX(ctx, playerKey(name), playerJSON, 0).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to create player: %w", err)
	}

	if created {
		return player, true, nil
	}

	existingPlayer, err := that.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}

	return existingPlayer, false, nil
}

func (that *dbPlayer) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	response, err := that.client.Get(ctx, playerKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}

	var existingPlayer entity.Player
	if err = json.Unmarshal([]byte(response), &existingPlayer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &existingPlayer, nil
}
