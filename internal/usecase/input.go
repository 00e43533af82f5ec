package usecase

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

type CreateGameInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

type JoinGameInput struct {
	Name     string `json:"-"`
	Username string `json:"username"`
}

// MoveInput - coordinates are pointers so a missing field is told apart from zero.
type MoveInput struct {
	Name     string `json:"-"`
	Username string `json:"username"`
	Row      *int   `json:"movement_x"`
	Col      *int   `json:"movement_y"`
}

type PlayerInput struct {
	Username string `json:"username"`
}

func (that CreateGameInput) Validate() error {
	return errors.Join(
		entity.ValidateName("name", that.Name),
		entity.ValidateName("username", that.Username),
	)
}

func (that JoinGameInput) Validate() error {
	return errors.Join(
		entity.ValidateName("name", that.Name),
		entity.ValidateName("username", that.Username),
	)
}

func (that MoveInput) Validate() error {
	errs := []error{
		entity.ValidateName("name", that.Name),
		entity.ValidateName("username", that.Username),
	}

	if that.Row == nil {
		errs = append(errs, fmt.Errorf("%w: movement_x is required", apperror.ErrInvalidInput))
	}

	if that.Col == nil {
		errs = append(errs, fmt.Errorf("%w: movement_y is required", apperror.ErrInvalidInput))
	}

	return errors.Join(errs...)
}

func (that PlayerInput) Validate() error {
	return entity.ValidateName("username", that.Username)
}
