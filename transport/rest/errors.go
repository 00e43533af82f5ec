package rest

import (
	"errors"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const internalErrorDetail = "internal server error"

var notFoundErrors = []error{
	apperror.ErrGameNotFound,
	apperror.ErrPlayerNotFound,
}

var badRequestErrors = []error{
	apperror.ErrInvalidStatus,
	apperror.ErrFullGame,
	apperror.ErrNotYourTurn,
	apperror.ErrInvalidPosition,
	apperror.ErrGameAlreadyExists,
	apperror.ErrAlreadyJoined,
}

// errorResponse - resolves the status code and the client facing detail of err.
func errorResponse(err error) (int, string) {
	// input errors carry the names of the offending fields
	if errors.Is(err, apperror.ErrInvalidInput) {
		return http.StatusBadRequest, err.Error()
	}

	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound, target.Error()
		}
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}

	return http.StatusInternalServerError, internalErrorDetail
}
