package websocket

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

// Message - the game projection pushed to clients.
type Message struct {
	*entity.Game
	ActualMark entity.Mark `json:"actual_mark,omitempty"`
}

func newMessage(game *entity.Game) Message {
	return Message{
		Game:       game,
		ActualMark: game.TurnMark(),
	}
}

// readPump - drains client frames so control messages are processed, cancels the stream on disconnect.
func (that *Server) readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump - sends the current game, then every update until the game is over or the client leaves.
func (that *Server) writePump(ctx context.Context, conn *websocket.Conn, game *entity.Game, updates <-chan *entity.Game) error {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := that.sendGame(conn, game); err != nil {
		return err
	}

	if game.IsOver() {
		return that.sendClose(conn)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return that.sendClose(conn)
			}

			if err := that.sendGame(conn, update); err != nil {
				return err
			}

			if update.IsOver() {
				return that.sendClose(conn)
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("failed to send ping: %w", err)
			}
		}
	}
}

func (that *Server) sendGame(conn *websocket.Conn, game *entity.Game) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := conn.WriteJSON(newMessage(game)); err != nil {
		return fmt.Errorf("failed to send game %s: %w", game.Name, err)
	}

	return nil
}

func (that *Server) sendClose(conn *websocket.Conn) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")

	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to send close: %w", err)
	}

	return nil
}
