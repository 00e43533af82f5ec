package broadcast

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const subscriberBuffer = 8

// Hub fans game updates out to the subscribers of each game.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	subscribers map[string]map[chan *entity.Game]struct{}
}

func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "broadcast"),
		subscribers: make(map[string]map[chan *entity.Game]struct{}),
	}
}

// Subscribe - returns the update channel of the game and the function that cancels the subscription.
func (that *Hub) Subscribe(gameName string) (<-chan *entity.Game, func()) {
	ch := make(chan *entity.Game, subscriberBuffer)

	that.mu.Lock()
	subs, ok := that.subscribers[gameName]
	if !ok {
		subs = make(map[chan *entity.Game]struct{})
		that.subscribers[gameName] = subs
	}
	subs[ch] = struct{}{}
	that.mu.Unlock()

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			that.mu.Lock()
			defer that.mu.Unlock()

			delete(subs, ch)
			if len(subs) == 0 {
				delete(that.subscribers, gameName)
			}
			close(ch)
		})
	}
}

// Publish - sends a copy of the game to every subscriber. Slow subscribers miss intermediate
// updates, but the update that ends the game replaces the oldest pending one.
func (that *Hub) Publish(game *entity.Game) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for ch := range that.subscribers[game.Name] {
		snapshot := *game
		snapshot.Players = append([]entity.Seat(nil), game.Players...)

		select {
		case ch <- &snapshot:
			continue
		default:
		}

		if !game.IsOver() {
			that.logger.Warn("subscriber is too slow, update dropped", "game", game.Name)
			continue
		}

		select {
		case <-ch:
		default:
		}

		select {
		case ch <- &snapshot:
		default:
			that.logger.Error("subscriber is too slow, final update dropped", "game", game.Name)
		}
	}
}

// Subscribers - number of active subscriptions on the game.
func (that *Hub) Subscribers(gameName string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.subscribers[gameName])
}
