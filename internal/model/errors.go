package model

import "errors"

var (
	ErrInvalidNotation = errors.New("invalid notation")
	ErrNoMatchingPiece = errors.New("no matching piece found")
	ErrAmbiguousMove   = errors.New("ambiguous move")
	ErrIllegalCastle   = errors.New("can't castle from this position")
	ErrInvalidBoard    = errors.New("invalid board")
)

// IsIllegalMove reports whether err rejects a move rather than signalling a
// failure of the caller's session or transport.
func IsIllegalMove(err error) bool {
	return errors.Is(err, ErrInvalidNotation) ||
		errors.Is(err, ErrNoMatchingPiece) ||
		errors.Is(err, ErrAmbiguousMove) ||
		errors.Is(err, ErrIllegalCastle)
}
