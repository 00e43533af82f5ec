package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/pkg/keylock"
)

type GamePlayService interface {
	CreateGame(ctx context.Context, name, playerName string) (*entity.Game, error)
	JoinGame(ctx context.Context, name, playerName string) (*entity.Game, error)
	MakeMove(ctx context.Context, name, playerName string, row, col int) (*entity.Game, entity.Outcome, error)
}

type archiveRepo interface {
	Save(ctx context.Context, game *entity.Game) error
}

type publisher interface {
	Publish(game *entity.Game)
}

type gamePlayService struct {
	logger *slog.Logger
	// locks serializes operations per game, playerLocks serializes stat updates per player
	locks       *keylock.KeyLock
	playerLocks *keylock.KeyLock

	playerService PlayerService
	gameService   GameService
	archive       archiveRepo
	publisher     publisher
}

func NewGamePlayService(
	logger *slog.Logger,
	playerService PlayerService,
	gameService GameService,
	archive archiveRepo,
	publisher publisher,
) GamePlayService {
	return &gamePlayService{
		logger:        logger.With("component", "gameplay"),
		locks:         keylock.New(),
		playerLocks:   keylock.New(),
		playerService: playerService,
		gameService:   gameService,
		archive:       archive,
		publisher:     publisher,
	}
}

func (that *gamePlayService) CreateGame(ctx context.Context, name, playerName string) (*entity.Game, error) {
	if err := entity.ValidateName("name", name); err != nil {
		return nil, err
	}

	if err := entity.ValidateName("username", playerName); err != nil {
		return nil, err
	}

	unlock := that.locks.Lock(name)
	defer unlock()

	// a rejected create must not register the player
	_, err := that.gameService.GetGameByName(ctx, name)
	if err == nil {
		return nil, fmt.Errorf("failed to create game: %w: %s", apperror.ErrGameAlreadyExists, name)
	}

	if !errors.Is(err, apperror.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to check game name: %w", err)
	}

	player, _, err := that.playerService.GetOrCreatePlayer(ctx, playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	game, err := that.gameService.CreateGame(ctx, name, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.publisher.Publish(game)

	return game, nil
}

// JoinGame - seats the player, creating them on first reference. The game is validated before the player is created.
func (that *gamePlayService) JoinGame(ctx context.Context, name, playerName string) (*entity.Game, error) {
	if err := entity.ValidateName("username", playerName); err != nil {
		return nil, err
	}

	unlock := that.locks.Lock(name)
	defer unlock()

	game, err := that.gameService.GetGameByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by name: %w", err)
	}

	if err = game.Join(playerName); err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	if _, _, err = that.playerService.GetOrCreatePlayer(ctx, playerName); err != nil {
		return nil, fmt.Errorf("failed to get or create player: %w", err)
	}

	if err = that.gameService.SaveGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	that.publisher.Publish(game)

	return game, nil
}

// MakeMove - applies the move and, when it ends the game, credits both players in the same write.
func (that *gamePlayService) MakeMove(ctx context.Context, name, playerName string, row, col int) (*entity.Game, entity.Outcome, error) {
	unlock := that.locks.Lock(name)
	defer unlock()

	game, err := that.gameService.GetGameByName(ctx, name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get game by name: %w", err)
	}

	player, err := that.playerService.GetPlayerByName(ctx, playerName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get player by name: %w", err)
	}

	outcome, err := game.Move(player.Name, row, col)
	if err != nil {
		return nil, "", fmt.Errorf("failed to make move: %w", err)
	}

	if outcome == entity.OutcomeContinued {
		if err = that.gameService.SaveGame(ctx, game); err != nil {
			return nil, "", fmt.Errorf("failed to save game: %w", err)
		}

		that.publisher.Publish(game)

		return game, outcome, nil
	}

	if err = that.settle(ctx, game); err != nil {
		return nil, "", err
	}

	that.publisher.Publish(game)

	return game, outcome, nil
}

// settle - records the result for both players, persists it with the game and archives the game.
func (that *gamePlayService) settle(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "settle", "game", game.Name)

	// a player's stats are shared by all of their games
	unlock := that.playerLocks.LockAll(game.PlayerNames()...)
	defer unlock()

	players := make([]*entity.Player, 0, entity.MaxPlayers)
	for _, name := range game.PlayerNames() {
		player, err := that.playerService.GetPlayerByName(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to get player by name: %w", err)
		}

		player.RecordResult(player.Name == game.Winner)
		players = append(players, player)
	}

	if err := that.gameService.SaveGame(ctx, game, players...); err != nil {
		return fmt.Errorf("failed to save finished game: %w", err)
	}

	if err := that.archive.Save(ctx, game); err != nil {
		log.Error("failed to archive game", "error", err)
	}

	log.Info("game finished", "status", game.Status, "winner", game.Winner)

	return nil
}
