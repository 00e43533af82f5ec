package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type GameService interface {
	CreateGame(ctx context.Context, name string, player *entity.Player) (*entity.Game, error)
	SaveGame(ctx context.Context, game *entity.Game, players ...*entity.Player) error

	GetGameByName(ctx context.Context, name string) (*entity.Game, error)
	ListGames(ctx context.Context, status entity.Status) ([]*entity.Game, error)
	ListPlayerGames(ctx context.Context, playerName string) ([]*entity.Game, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	Update(ctx context.Context, game *entity.Game, players ...*entity.Player) error

	GetByName(ctx context.Context, name string) (*entity.Game, error)
	List(ctx context.Context) ([]*entity.Game, error)
	ListByPlayer(ctx context.Context, playerName string) ([]*entity.Game, error)
}

type gameService struct {
	gameRepo gameRepo
}

func NewGameService(gameRepo gameRepo) GameService {
	return &gameService{
		gameRepo: gameRepo,
	}
}

// CreateGame - creates a waiting game seating its creator.
func (that *gameService) CreateGame(ctx context.Context, name string, player *entity.Player) (*entity.Game, error) {
	if err := entity.ValidateName("name", name); err != nil {
		return nil, err
	}

	game := entity.NewGame(name)
	if err := game.Join(player.Name); err != nil {
		return nil, fmt.Errorf("failed to seat creator: %w", err)
	}

	if err := that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game from storage: %w", err)
	}

	return game, nil
}

func (that *gameService) SaveGame(ctx context.Context, game *entity.Game, players ...*entity.Player) error {
	if err := that.gameRepo.Update(ctx, game, players...); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) GetGameByName(ctx context.Context, name string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve game from storage: %w", err)
	}

	return game, nil
}

// ListGames - all games, or only those in status when it is set.
func (that *gameService) ListGames(ctx context.Context, status entity.Status) ([]*entity.Game, error) {
	games, err := that.gameRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games from storage: %w", err)
	}

	if status == "" {
		return games, nil
	}

	filtered := make([]*entity.Game, 0, len(games))
	for _, game := range games {
		if game.Status == status {
			filtered = append(filtered, game)
		}
	}

	return filtered, nil
}

func (that *gameService) ListPlayerGames(ctx context.Context, playerName string) ([]*entity.Game, error) {
	games, err := that.gameRepo.ListByPlayer(ctx, playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to list player games from storage: %w", err)
	}

	return games, nil
}
