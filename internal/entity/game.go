package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusDraw       Status = "draw"

	MaxPlayers = 2
)

// Outcome tags the result of a successful move.
type Outcome string

const (
	OutcomeContinued Outcome = "continued"
	OutcomeWon       Outcome = "won"
	OutcomeDraw      Outcome = "draw"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Seat binds a player to the mark they play with. The mark is assigned when the game starts.
type Seat struct {
	Player string `json:"username"`
	Mark   Mark   `json:"mark,omitempty"`
}

type Game struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Board   Board  `json:"board"`
	Players []Seat `json:"players"`
	Turn    string `json:"actual_player,omitempty"`
	Winner  string `json:"winner,omitempty"`
}

func NewGame(name string) *Game {
	return &Game{
		Name:    name,
		Status:  StatusWaiting,
		Players: make([]Seat, 0, MaxPlayers),
	}
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

// IsOver - reports whether the game reached a terminal state, won or drawn.
func (that *Game) IsOver() bool {
	return that.Status == StatusFinished || that.Status == StatusDraw
}

func (that *Game) HasPlayer(name string) bool {
	for _, seat := range that.Players {
		if seat.Player == name {
			return true
		}
	}

	return false
}

func (that *Game) PlayerNames() []string {
	names := make([]string, 0, len(that.Players))
	for _, seat := range that.Players {
		names = append(names, seat.Player)
	}

	return names
}

// MarkOf - returns the mark assigned to the player, MarkNone before the game starts.
func (that *Game) MarkOf(name string) Mark {
	for _, seat := range that.Players {
		if seat.Player == name {
			return seat.Mark
		}
	}

	return MarkNone
}

// TurnMark - the mark of the turn holder, MarkNone when nobody is expected to move.
func (that *Game) TurnMark() Mark {
	if that.Turn == "" {
		return MarkNone
	}

	return that.MarkOf(that.Turn)
}

func (that *Game) opponentOf(name string) string {
	for _, seat := range that.Players {
		if seat.Player != name {
			return seat.Player
		}
	}

	return ""
}

// Join - seats the player. The second player starts the game: X goes to the first joiner and moves first.
func (that *Game) Join(player string) error {
	if len(that.Players) >= MaxPlayers {
		return fmt.Errorf("%w: game %s already has %d players", apperror.ErrFullGame, that.Name, MaxPlayers)
	}

	if !that.IsWaiting() {
		return fmt.Errorf("%w: game %s is %s", apperror.ErrInvalidStatus, that.Name, that.Status)
	}

	if that.HasPlayer(player) {
		return fmt.Errorf("%w: %s in game %s", apperror.ErrAlreadyJoined, player, that.Name)
	}

	that.Players = append(that.Players, Seat{Player: player})

	if len(that.Players) == MaxPlayers {
		that.Players[0].Mark = MarkX
		that.Players[1].Mark = MarkO
		that.Status = StatusInProgress
		that.Turn = that.Players[0].Player
	}

	return nil
}

// Move - places the turn holder's mark and advances the game.
// Validation fully precedes mutation, a rejected move leaves the game untouched.
func (that *Game) Move(player string, row, col int) (Outcome, error) {
	if err := that.ConfirmInProgress(); err != nil {
		return "", err
	}

	if that.Turn != player {
		return "", fmt.Errorf("%w: %s", apperror.ErrNotYourTurn, player)
	}

	mark := that.MarkOf(player)
	if err := that.Board.Place(row, col, mark); err != nil {
		return "", err
	}

	return that.advance(player, mark), nil
}

// advance - evaluates the board after a placement by player. Only the mover's mark can complete a line.
func (that *Game) advance(player string, mark Mark) Outcome {
	switch {
	case that.Board.HasLine(mark):
		that.Status = StatusFinished
		that.Winner = player
		that.Turn = ""

		return OutcomeWon
	case that.Board.IsFull():
		that.Status = StatusDraw
		that.Turn = ""

		return OutcomeDraw
	default:
		that.Turn = that.opponentOf(player)

		return OutcomeContinued
	}
}

func (that *Game) ConfirmInProgress() error {
	switch that.Status {
	case StatusInProgress:
		return nil
	case StatusWaiting, StatusFinished, StatusDraw:
		return fmt.Errorf("%w: game %s is %s", apperror.ErrInvalidStatus, that.Name, that.Status)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
