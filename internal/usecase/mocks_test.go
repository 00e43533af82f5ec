package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
	"github.com/stretchr/testify/mock"
)

type mockPlayerService struct {
	mock.Mock
}

func (that *mockPlayerService) GetOrCreatePlayer(ctx context.Context, name string) (*entity.Player, bool, error) {
	args := that.Called(ctx, name)
	player, _ := args.Get(0).(*entity.Player)

	return player, args.Bool(1), args.Error(2)
}

func (that *mockPlayerService) GetPlayerByName(ctx context.Context, name string) (*entity.Player, error) {
	args := that.Called(ctx, name)
	player, _ := args.Get(0).(*entity.Player)

	return player, args.Error(1)
}

type mockGameService struct {
	mock.Mock
}

func (that *mockGameService) GetGameByName(ctx context.Context, name string) (*entity.Game, error) {
	args := that.Called(ctx, name)
	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (that *mockGameService) ListGames(ctx context.Context, status entity.Status) ([]*entity.Game, error) {
	args := that.Called(ctx, status)
	games, _ := args.Get(0).([]*entity.Game)

	return games, args.Error(1)
}

func (that *mockGameService) ListPlayerGames(ctx context.Context, playerName string) ([]*entity.Game, error) {
	args := that.Called(ctx, playerName)
	games, _ := args.Get(0).([]*entity.Game)

	return games, args.Error(1)
}

type mockGamePlayService struct {
	mock.Mock
}

func (that *mockGamePlayService) CreateGame(ctx context.Context, name, playerName string) (*entity.Game, error) {
	args := that.Called(ctx, name, playerName)
	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (that *mockGamePlayService) JoinGame(ctx context.Context, name, playerName string) (*entity.Game, error) {
	args := that.Called(ctx, name, playerName)
	game, _ := args.Get(0).(*entity.Game)

	return game, args.Error(1)
}

func (that *mockGamePlayService) MakeMove(ctx context.Context, name, playerName string, row, col int) (*entity.Game, entity.Outcome, error) {
	args := that.Called(ctx, name, playerName, row, col)
	game, _ := args.Get(0).(*entity.Game)
	outcome, _ := args.Get(1).(entity.Outcome)

	return game, outcome, args.Error(2)
}

type mockHistory struct {
	mock.Mock
}

func (that *mockHistory) ListByPlayer(ctx context.Context, playerName string, limit int) ([]repository.GameRecord, error) {
	args := that.Called(ctx, playerName, limit)
	records, _ := args.Get(0).([]repository.GameRecord)

	return records, args.Error(1)
}

// countingRecorder counts events instead of exporting them.
type countingRecorder struct {
	mu         sync.Mutex
	created    int
	joined     int
	moves      map[string]int
	finished   map[string]int
	operations map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{
		moves:      make(map[string]int),
		finished:   make(map[string]int),
		operations: make(map[string]int),
	}
}

func (that *countingRecorder) IncGamesCreated() {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.created++
}

func (that *countingRecorder) IncGamesJoined() {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.joined++
}

func (that *countingRecorder) ObserveMove(result string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.moves[result]++
}

func (that *countingRecorder) IncGamesFinished(outcome string) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.finished[outcome]++
}

func (that *countingRecorder) ObserveOperation(operation string, _ time.Duration) {
	that.mu.Lock()
	defer that.mu.Unlock()
	that.operations[operation]++
}
