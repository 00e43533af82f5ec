package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

// Mark is the symbol a player plays with. An empty mark is an unoccupied cell.
type Mark string

const (
	MarkX    Mark = "X"
	MarkO    Mark = "O"
	MarkNone Mark = ""

	BoardSize = 3
)

var ErrUnknownMark = errors.New("unknown mark")

type position struct {
	row, col int
}

// WinLines - rows first, then columns, then the main and anti diagonals.
var WinLines = [8][3]position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a row-major 3x3 grid. It serializes as nested arrays of "X", "O" or "".
type Board [BoardSize][BoardSize]Mark

func (that Mark) IsValid() bool {
	return that == MarkX || that == MarkO
}

// Opposite - returns the other player's mark.
func (that Mark) Opposite() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkNone
	}
}

func inRange(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// CellAt - returns the mark at the given cell, MarkNone when it is empty.
func (that *Board) CellAt(row, col int) (Mark, error) {
	if !inRange(row, col) {
		return MarkNone, fmt.Errorf("%w: cell (%d, %d) is out of the board", apperror.ErrInvalidPosition, row, col)
	}

	return that[row][col], nil
}

// Place - occupies an empty cell with the mark. Occupied cells are never reassigned.
func (that *Board) Place(row, col int, mark Mark) error {
	if !mark.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownMark, mark)
	}

	current, err := that.CellAt(row, col)
	if err != nil {
		return err
	}

	if current != MarkNone {
		return fmt.Errorf("%w: cell (%d, %d) is already occupied", apperror.ErrInvalidPosition, row, col)
	}

	that[row][col] = mark

	return nil
}

// HasLine - reports whether any full row, column or diagonal is entirely the mark.
func (that *Board) HasLine(mark Mark) bool {
	if !mark.IsValid() {
		return false
	}

	for _, line := range WinLines {
		if that[line[0].row][line[0].col] == mark &&
			that[line[1].row][line[1].col] == mark &&
			that[line[2].row][line[2].col] == mark {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == MarkNone {
				return false
			}
		}
	}

	return true
}
