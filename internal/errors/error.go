package errors

import "errors"

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameOver      = errors.New("game is over")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrKeyNotFound   = errors.New("key not found")
	ErrInvalidColor  = errors.New("color must be black or white")
	ErrInternal      = errors.New("internal error")
)
