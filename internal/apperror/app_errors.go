package apperror

import "errors"

var (
	ErrPlayerNotFound    = errors.New("player not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrInvalidStatus     = errors.New("game status is not valid for this action")
	ErrFullGame          = errors.New("the game is full")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrInvalidPosition   = errors.New("the position selected is not possible")
	ErrInvalidInput      = errors.New("please complete all the required fields")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrAlreadyJoined     = errors.New("player already joined the game")
)
