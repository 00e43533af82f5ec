package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// gamesIndexKey - sorted set of game names scored by creation time.
const gamesIndexKey = "games"

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	Update(ctx context.Context, game *entity.Game, players ...*entity.Player) error
	GetByName(ctx context.Context, name string) (*entity.Game, error)
	List(ctx context.Context) ([]*entity.Game, error)
	ListByPlayer(ctx context.Context, playerName string) ([]*entity.Game, error)
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(name string) string {
	return "game:" + name
}

func playerGamesKey(playerName string) string {
	return "player_games:" + playerName
}

// createGameScript - stores the game only when the name is free and indexes it in the same step.
// KEYS: game key, then the index sets. ARGV: game JSON, score, game name.
var createGameScript = redis.NewScript(`
if not redis.call('SET', KEYS[1], ARGV[1], 'NX') then
	return 0
end
for i = 2, #KEYS do
	redis.call('ZADD', KEYS[i], 'NX', ARGV[2], ARGV[3])
end
return 1
`)

// Create - stores a new game. Game names are unique, an existing name is never overwritten.
func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	keys := []string{gameKey(game.Name), gamesIndexKey}
	for _, name := range game.PlayerNames() {
		keys = append(keys, playerGamesKey(name))
	}

	created, err := createGameScript.Run(ctx, that.client, keys, gameJSON, indexScore(), game.Name).Int()
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if created == 0 {
		return fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, game.Name)
	}

	return nil
}

// Update - overwrites the game and the given players in one transaction.
func (that *dbGame) Update(ctx context.Context, game *entity.Game, players ...*entity.Player) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	playersJSON := make(map[string][]byte, len(players))
	for _, player := range players {
		playerJSON, err := json.Marshal(player)
		if err != nil {
			return fmt.Errorf("failed to marshal player: %w", err)
		}

		playersJSON[playerKey(player.Name)] = playerJSON
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, gameKey(game.Name), gameJSON, 0)
		that.index(ctx, pipe, game)

		for key, playerJSON := range playersJSON {
			pipe.Set(ctx, key, playerJSON, 0)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func indexScore() float64 {
	return float64(time.Now().UnixNano())
}

// index - keeps the creation order and the player to games lookup. Existing scores are kept.
func (that *dbGame) index(ctx context.Context, pipe redis.Pipeliner, game *entity.Game) {
	member := redis.Z{Score: indexScore(), Member: game.Name}

	pipe.ZAddNX(ctx, gamesIndexKey, member)
	for _, name := range game.PlayerNames() {
		pipe.ZAddNX(ctx, playerGamesKey(name), member)
	}
}

func (that *dbGame) GetByName(ctx context.Context, name string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by name: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

// List - all games in creation order.
func (that *dbGame) List(ctx context.Context) ([]*entity.Game, error) {
	return that.listIndexed(ctx, gamesIndexKey)
}

// ListByPlayer - games the player joined, in creation order.
func (that *dbGame) ListByPlayer(ctx context.Context, playerName string) ([]*entity.Game, error) {
	return that.listIndexed(ctx, playerGamesKey(playerName))
}

func (that *dbGame) listIndexed(ctx context.Context, indexKey string) ([]*entity.Game, error) {
	names, err := that.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read games index: %w", err)
	}

	games := make([]*entity.Game, 0, len(names))
	if len(names) == 0 {
		return games, nil
	}

	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, gameKey(name))
	}

	values, err := that.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get games: %w", err)
	}

	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var game entity.Game
		if err = json.Unmarshal([]byte(raw), &game); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game: %w", err)
		}

		games = append(games, &game)
	}

	return games, nil
}
