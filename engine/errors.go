package engine

import "errors"

// ErrPositionOccupied is returned by strict placement onto a non-empty cell
var ErrPositionOccupied = errors.New("position occupied")
