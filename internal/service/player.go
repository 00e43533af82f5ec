package service

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type PlayerService interface {
	GetOrCreatePlayer(ctx context.Context, name string) (*entity.Player, bool, error)
	GetPlayerByName(ctx context.Context, name string) (*entity.Player, error)
}

type playerRepo interface {
	GetOrCreate(ctx context.Context, name string) (*entity.Player, bool, error)
	GetByName(ctx context.Context, name string) (*entity.Player, error)
}

type playerService struct {
	playerRepo playerRepo
}

func NewPlayerService(playerRepo playerRepo) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
	}
}

func (that *playerService) GetOrCreatePlayer(ctx context.Context, name string) (*entity.Player, bool, error) {
	if err := entity.ValidateName("username", name); err != nil {
		return nil, false, err
	}

	player, created, err := that.playerRepo.GetOrCreate(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("get or create player %w", err)
	}

	return player, created, nil
}

func (that *playerService) GetPlayerByName(ctx context.Context, name string) (*entity.Player, error) {
	existingPlayer, err := that.playerRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get player by name %w", err)
	}

	return existingPlayer, nil
}
