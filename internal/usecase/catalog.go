package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
)

// FilterWaiting - the only list filter, selects games that still wait for a second player.
const FilterWaiting = "waiting"

const rejectedMove = "rejected"

type GameCatalog interface {
	ListGames(ctx context.Context, filter string) ([]*entity.Game, error)
	GetGame(ctx context.Context, name string) (*entity.Game, error)

	CreateGame(ctx context.Context, input CreateGameInput) (*entity.Game, error)
	JoinGame(ctx context.Context, input JoinGameInput) (*entity.Game, error)
	SubmitMove(ctx context.Context, input MoveInput) (*entity.Game, entity.Outcome, error)

	RegisterPlayer(ctx context.Context, input PlayerInput) (*entity.Player, bool, error)
	GetPlayer(ctx context.Context, name string) (*PlayerDetails, error)
	PlayerHistory(ctx context.Context, name string, limit int) ([]repository.GameRecord, error)
}

type PlayerDetails struct {
	Player *entity.Player
	Games  []*entity.Game
}

type playerService interface {
	GetOrCreatePlayer(ctx context.Context, name string) (*entity.Player, bool, error)
	GetPlayerByName(ctx context.Context, name string) (*entity.Player, error)
}

type gameService interface {
	GetGameByName(ctx context.Context, name string) (*entity.Game, error)
	ListGames(ctx context.Context, status entity.Status) ([]*entity.Game, error)
	ListPlayerGames(ctx context.Context, playerName string) ([]*entity.Game, error)
}

type gamePlayService interface {
	CreateGame(ctx context.Context, name, playerName string) (*entity.Game, error)
	JoinGame(ctx context.Context, name, playerName string) (*entity.Game, error)
	MakeMove(ctx context.Context, name, playerName string, row, col int) (*entity.Game, entity.Outcome, error)
}

type historyRepo interface {
	ListByPlayer(ctx context.Context, playerName string, limit int) ([]repository.GameRecord, error)
}

type recorder interface {
	IncGamesCreated()
	IncGamesJoined()
	ObserveMove(result string)
	IncGamesFinished(outcome string)
	ObserveOperation(operation string, duration time.Duration)
}

type gameCatalog struct {
	logger *slog.Logger

	playerService   playerService
	gameService     gameService
	gamePlayService gamePlayService
	history         historyRepo
	metrics         recorder
}

func NewGameCatalog(
	logger *slog.Logger,
	playerService playerService,
	gameService gameService,
	gamePlayService gamePlayService,
	history historyRepo,
	metrics recorder,
) GameCatalog {
	return &gameCatalog{
		logger:          logger.With("component", "catalog"),
		playerService:   playerService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
		history:         history,
		metrics:         metrics,
	}
}

func (that *gameCatalog) observe(operation string) func() {
	start := time.Now()

	return func() {
		that.metrics.ObserveOperation(operation, time.Since(start))
	}
}

func (that *gameCatalog) ListGames(ctx context.Context, filter string) ([]*entity.Game, error) {
	defer that.observe("list_games")()

	var status entity.Status
	if filter == FilterWaiting {
		status = entity.StatusWaiting
	}

	games, err := that.gameService.ListGames(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return games, nil
}

func (that *gameCatalog) GetGame(ctx context.Context, name string) (*entity.Game, error) {
	defer that.observe("get_game")()

	game, err := that.gameService.GetGameByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gameCatalog) CreateGame(ctx context.Context, input CreateGameInput) (*entity.Game, error) {
	defer that.observe("create_game")()
	log := that.logger.With("method", "CreateGame", "game", input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	game, err := that.gamePlayService.CreateGame(ctx, input.Name, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.metrics.IncGamesCreated()
	log.Info("game created", "player", input.Username)

	return game, nil
}

func (that *gameCatalog) JoinGame(ctx context.Context, input JoinGameInput) (*entity.Game, error) {
	defer that.observe("join_game")()
	log := that.logger.With("method", "JoinGame", "game", input.Name)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	game, err := that.gamePlayService.JoinGame(ctx, input.Name, input.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	that.metrics.IncGamesJoined()
	log.Info("player joined", "player", input.Username, "status", game.Status)

	return game, nil
}

func (that *gameCatalog) SubmitMove(ctx context.Context, input MoveInput) (*entity.Game, entity.Outcome, error) {
	defer that.observe("submit_move")()
	log := that.logger.With("method", "SubmitMove", "game", input.Name)

	if err := input.Validate(); err != nil {
		return nil, "", err
	}

	game, outcome, err := that.gamePlayService.MakeMove(ctx, input.Name, input.Username, *input.Row, *input.Col)
	if err != nil {
		that.metrics.ObserveMove(rejectedMove)
		return nil, "", fmt.Errorf("failed to submit move: %w", err)
	}

	that.metrics.ObserveMove(string(outcome))
	if outcome != entity.OutcomeContinued {
		that.metrics.IncGamesFinished(string(outcome))
	}

	log.Debug("move accepted", "player", input.Username, "row", *input.Row, "col", *input.Col, "outcome", outcome)

	return game, outcome, nil
}

// RegisterPlayer - login or register, the flag reports whether the player is new.
func (that *gameCatalog) RegisterPlayer(ctx context.Context, input PlayerInput) (*entity.Player, bool, error) {
	defer that.observe("register_player")()

	if err := input.Validate(); err != nil {
		return nil, false, err
	}

	player, created, err := that.playerService.GetOrCreatePlayer(ctx, input.Username)
	if err != nil {
		return nil, false, fmt.Errorf("failed to register player: %w", err)
	}

	return player, created, nil
}

func (that *gameCatalog) GetPlayer(ctx context.Context, name string) (*PlayerDetails, error) {
	defer that.observe("get_player")()

	player, err := that.playerService.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	games, err := that.gameService.ListPlayerGames(ctx, player.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to get player games: %w", err)
	}

	return &PlayerDetails{
		Player: player,
		Games:  games,
	}, nil
}

func (that *gameCatalog) PlayerHistory(ctx context.Context, name string, limit int) ([]repository.GameRecord, error) {
	defer that.observe("player_history")()

	if limit < 0 {
		return nil, fmt.Errorf("%w: limit must not be negative", apperror.ErrInvalidInput)
	}

	if _, err := that.playerService.GetPlayerByName(ctx, name); err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	records, err := that.history.ListByPlayer(ctx, name, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get player history: %w", err)
	}

	return records, nil
}
