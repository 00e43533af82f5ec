package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = pongWait * 9 / 10
	handshakeTimeout = 10 * time.Second
)

type gameReader interface {
	GetGame(ctx context.Context, name string) (*entity.Game, error)
}

type subscriber interface {
	Subscribe(gameName string) (<-chan *entity.Game, func())
}

// Server streams the state of one game to websocket clients after every join and move.
type Server struct {
	logger   *slog.Logger
	games    gameReader
	hub      subscriber
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, games gameReader, hub subscriber) *Server {
	return &Server{
		logger: logger.With("component", "websocket"),
		games:  games,
		hub:    hub,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: handshakeTimeout,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

// ServeHTTP - upgrades the connection and streams the game named by the path.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	log := that.logger.With("method", "ServeHTTP", "game", name)

	// subscribe before the first read so no update falls between the two
	updates, unsubscribe := that.hub.Subscribe(name)
	defer unsubscribe()

	game, err := that.games.GetGame(r.Context(), name)
	if errors.Is(err, apperror.ErrGameNotFound) {
		http.Error(w, apperror.ErrGameNotFound.Error(), http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get game", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	log.Info("websocket connection established", "remote", conn.RemoteAddr().String())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go that.readPump(conn, cancel)

	if err = that.writePump(ctx, conn, game, updates); err != nil {
		log.Debug("websocket stream stopped", "error", err)
	}

	log.Info("websocket connection closed")
}
