package model

// MoveIntent is what a line of notation asks the board to do: either a
// Move of a piece type to a square or a Castle.
type MoveIntent interface {
	Notation() string
	isMoveIntent()
}

// Move sends the single piece of the given type that can reach Dest there.
type Move struct {
	Piece PieceType `json:"piece"`
	Dest  Position  `json:"dest"`
}

func (m Move) Notation() string {
	dest := m.Dest.Notation()
	if m.Piece == Pawn {
		return dest
	}
	return string(m.Piece.Symbol()) + dest
}

func (Move) isMoveIntent() {}

// Castle moves king and rook together. Kingside is the side of the rook on
// file 7; that is the three-zero form of the notation.
type Castle struct {
	Kingside bool `json:"kingside"`
}

func (c Castle) Notation() string {
	if c.Kingside {
		return castleFileSeven
	}
	return castleFileZero
}

func (Castle) isMoveIntent() {}

// Ply is one applied move in a board's history.
type Ply struct {
	Color  Color      `json:"color"`
	Intent MoveIntent `json:"-"`
}

func (p Ply) Notation() string {
	return p.Intent.Notation()
}

// Relocation is one piece leg of a board transition.
type Relocation struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// castleSquares returns the king and rook relocations for a castle on rank.
func castleSquares(rank int, kingside bool) (king, rook Relocation) {
	if kingside {
		return Relocation{From: Position{X: 4, Y: rank}, To: Position{X: 6, Y: rank}},
			Relocation{From: Position{X: 7, Y: rank}, To: Position{X: 5, Y: rank}}
	}
	return Relocation{From: Position{X: 4, Y: rank}, To: Position{X: 2, Y: rank}},
		Relocation{From: Position{X: 0, Y: rank}, To: Position{X: 3, Y: rank}}
}
