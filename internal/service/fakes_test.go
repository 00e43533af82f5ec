package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// memStore keeps JSON copies, so callers never share state with the store, as with redis.
type memStore struct {
	mu      sync.Mutex
	games   map[string][]byte
	order   []string
	players map[string][]byte

	updateErr error
	// playerReadDelay stretches player reads like a storage round-trip
	playerReadDelay time.Duration
}

func newMemStore() *memStore {
	return &memStore{
		games:   make(map[string][]byte),
		players: make(map[string][]byte),
	}
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	return data
}

func (that *memStore) Create(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[game.Name]; ok {
		return fmt.Errorf("%w: %s", apperror.ErrGameAlreadyExists, game.Name)
	}

	that.games[game.Name] = mustJSON(game)
	that.order = append(that.order, game.Name)

	return nil
}

func (that *memStore) Update(_ context.Context, game *entity.Game, players ...*entity.Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.updateErr != nil {
		return that.updateErr
	}

	that.games[game.Name] = mustJSON(game)
	for _, player := range players {
		that.players[player.Name] = mustJSON(player)
	}

	return nil
}

func (that *memStore) GetByName(_ context.Context, name string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	data, ok := that.games[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrGameNotFound, name)
	}

	var game entity.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *memStore) List(ctx context.Context) ([]*entity.Game, error) {
	that.mu.Lock()
	names := append([]string(nil), that.order...)
	that.mu.Unlock()

	games := make([]*entity.Game, 0, len(names))
	for _, name := range names {
		game, err := that.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	return games, nil
}

func (that *memStore) ListByPlayer(ctx context.Context, playerName string) ([]*entity.Game, error) {
	games, err := that.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]*entity.Game, 0)
	for _, game := range games {
		if game.HasPlayer(playerName) {
			filtered = append(filtered, game)
		}
	}

	return filtered, nil
}

type memPlayers struct {
	store *memStore
}

func (that memPlayers) GetOrCreate(ctx context.Context, name string) (*entity.Player, bool, error) {
	that.store.mu.Lock()
	if _, ok := that.store.players[name]; !ok {
		player := entity.NewPlayer(name)
		that.store.players[name] = mustJSON(player)
		that.store.mu.Unlock()

		return player, true, nil
	}
	that.store.mu.Unlock()

	player, err := that.GetByName(ctx, name)

	return player, false, err
}

func (that memPlayers) GetByName(_ context.Context, name string) (*entity.Player, error) {
	if that.store.playerReadDelay > 0 {
		time.Sleep(that.store.playerReadDelay)
	}

	that.store.mu.Lock()
	defer that.store.mu.Unlock()

	data, ok := that.store.players[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotFound, name)
	}

	var player entity.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}

	return &player, nil
}

type recordingArchive struct {
	mu    sync.Mutex
	saved []string
	err   error
}

func (that *recordingArchive) Save(_ context.Context, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.saved = append(that.saved, game.Name)

	return that.err
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []*entity.Game
}

func (that *recordingPublisher) Publish(game *entity.Game) {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot := *game
	that.published = append(that.published, &snapshot)
}

func (that *recordingPublisher) count() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.published)
}

type fixture struct {
	store     *memStore
	archive   *recordingArchive
	publisher *recordingPublisher

	players  PlayerService
	games    GameService
	gameplay GamePlayService
}

func newFixture() *fixture {
	store := newMemStore()
	archive := &recordingArchive{}
	publisher := &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	players := NewPlayerService(memPlayers{store: store})
	games := NewGameService(store)

	return &fixture{
		store:     store,
		archive:   archive,
		publisher: publisher,
		players:   players,
		games:     games,
		gameplay:  NewGamePlayService(logger, players, games, archive, publisher),
	}
}
