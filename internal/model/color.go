package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// homeRank is the rank holding the king and rooks at the start. Black sits
// on the top row.
func (c Color) homeRank() int {
	if c == Black {
		return 0
	}
	return boardSize - 1
}

// pawnRank is the rank from which a pawn may advance two squares.
func (c Color) pawnRank() int {
	if c == Black {
		return 1
	}
	return boardSize - 2
}

// forward is the rank delta of a pawn advance.
func (c Color) forward() int {
	if c == Black {
		return 1
	}
	return -1
}
