package model

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	castleFileZero  = "0-0"
	castleFileSeven = "0-0-0"
)

// piece letter (pawn when absent), capture marker, file, rank, annotation.
var moveRe = regexp.MustCompile(`^([QRNBK]?)x?([a-h])([1-8])[+#]?$`)

// ParseMove reads a move in the minimal algebraic grammar. The capture
// marker is accepted and ignored; captures follow from occupancy.
//
// Rank digits count down from the top row: '8' is Y=0 and '1' is Y=7.
func ParseMove(text string) (MoveIntent, error) {
	switch text {
	case castleFileZero:
		return Castle{Kingside: false}, nil
	case castleFileSeven:
		return Castle{Kingside: true}, nil
	}
	m := moveRe.FindStringSubmatch(text)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, text)
	}
	piece := Pawn
	if m[1] != "" {
		piece, _ = pieceTypeFromSymbol(rune(m[1][0]))
	}
	dest := Position{
		X: strings.IndexByte("abcdefgh", m[2][0]),
		Y: strings.IndexByte("87654321", m[3][0]),
	}
	return Move{Piece: piece, Dest: dest}, nil
}
