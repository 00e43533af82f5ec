package entity

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const MaxNameLength = 100

type Player struct {
	Name        string `json:"username"`
	GamesPlayed int    `json:"number_of_games"`
	Points      int    `json:"points"`
}

func NewPlayer(name string) *Player {
	return &Player{Name: name}
}

// RecordResult - counts a finished game for the player, and a point when they won it.
func (that *Player) RecordResult(won bool) {
	that.GamesPlayed++

	if won {
		that.Points++
	}
}

// ValidateName - names identify players and games, so they must be non-blank and bounded.
func ValidateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s is required", apperror.ErrInvalidInput, field)
	}

	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("%w: %s is longer than %d characters", apperror.ErrInvalidInput, field, MaxNameLength)
	}

	return nil
}
