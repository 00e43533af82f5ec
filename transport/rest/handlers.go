package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/repository"
	"github.com/rocketscienceinc/tictactoe-arena/internal/usecase"
)

const maxBodySize = 1 << 16

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	ListGames(w http.ResponseWriter, r *http.Request)
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	JoinGame(w http.ResponseWriter, r *http.Request)
	GetPlayState(w http.ResponseWriter, r *http.Request)
	SubmitMove(w http.ResponseWriter, r *http.Request)

	RegisterPlayer(w http.ResponseWriter, r *http.Request)
	GetPlayer(w http.ResponseWriter, r *http.Request)
	PlayerHistory(w http.ResponseWriter, r *http.Request)
}

type gameCatalog interface {
	ListGames(ctx context.Context, filter string) ([]*entity.Game, error)
	GetGame(ctx context.Context, name string) (*entity.Game, error)

	CreateGame(ctx context.Context, input usecase.CreateGameInput) (*entity.Game, error)
	JoinGame(ctx context.Context, input usecase.JoinGameInput) (*entity.Game, error)
	SubmitMove(ctx context.Context, input usecase.MoveInput) (*entity.Game, entity.Outcome, error)

	RegisterPlayer(ctx context.Context, input usecase.PlayerInput) (*entity.Player, bool, error)
	GetPlayer(ctx context.Context, name string) (*usecase.PlayerDetails, error)
	PlayerHistory(ctx context.Context, name string, limit int) ([]repository.GameRecord, error)
}

type handlers struct {
	logger  *slog.Logger
	catalog gameCatalog
}

func NewHandlers(logger *slog.Logger, catalog gameCatalog) Handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		catalog: catalog,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("status")

	games, err := that.catalog.ListGames(r.Context(), filter)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	if filter == usecase.FilterWaiting {
		that.writeJSON(w, http.StatusOK, newWaitingGameViews(games))
		return
	}

	that.writeJSON(w, http.StatusOK, nonNilGames(games))
}

func (that *handlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateGameInput
	if err := decodeBody(r, &input); err != nil {
		that.writeError(w, r, err)
		return
	}

	game, err := that.catalog.CreateGame(r.Context(), input)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.catalog.GetGame(r.Context(), r.PathValue("name"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) JoinGame(w http.ResponseWriter, r *http.Request) {
	var input usecase.JoinGameInput
	if err := decodeBody(r, &input); err != nil {
		that.writeError(w, r, err)
		return
	}
	input.Name = r.PathValue("name")

	game, err := that.catalog.JoinGame(r.Context(), input)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newPlayView(game))
}

func (that *handlers) GetPlayState(w http.ResponseWriter, r *http.Request) {
	game, err := that.catalog.GetGame(r.Context(), r.PathValue("name"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newPlayView(game))
}

func (that *handlers) SubmitMove(w http.ResponseWriter, r *http.Request) {
	var input usecase.MoveInput
	if err := decodeBody(r, &input); err != nil {
		that.writeError(w, r, err)
		return
	}
	input.Name = r.PathValue("name")

	game, outcome, err := that.catalog.SubmitMove(r.Context(), input)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	if outcome != entity.OutcomeContinued {
		that.writeJSON(w, http.StatusOK, finishedGameView{
			Name:   game.Name,
			Status: game.Status,
			Winner: game.Winner,
		})
		return
	}

	that.writeJSON(w, http.StatusOK, newPlayView(game))
}

func (that *handlers) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	var input usecase.PlayerInput
	if err := decodeBody(r, &input); err != nil {
		that.writeError(w, r, err)
		return
	}

	player, created, err := that.catalog.RegisterPlayer(r.Context(), input)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	that.writeJSON(w, status, player)
}

func (that *handlers) GetPlayer(w http.ResponseWriter, r *http.Request) {
	details, err := that.catalog.GetPlayer(r.Context(), r.PathValue("username"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	that.writeJSON(w, http.StatusOK, playerView{
		User:  details.Player,
		Games: nonNilGames(details.Games),
	})
}

func (that *handlers) PlayerHistory(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			that.writeError(w, r, fmt.Errorf("%w: limit must be a number", apperror.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	records, err := that.catalog.PlayerHistory(r.Context(), username, limit)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	if records == nil {
		records = []repository.GameRecord{}
	}

	that.writeJSON(w, http.StatusOK, historyView{User: username, Games: records})
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", apperror.ErrInvalidInput)
		}

		return fmt.Errorf("%w: malformed request body: %w", apperror.ErrInvalidInput, err)
	}

	return nil
}

func (that *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := errorResponse(err)

	log := that.logger.With("method", r.Method, "path", r.URL.Path, "status", status)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Debug("request rejected", "error", err)
	}

	that.writeJSON(w, status, errorView{Detail: detail})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}
