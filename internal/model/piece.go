package model

import "unicode"

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Symbol is the single upper-case letter used in notation and rendering.
func (p PieceType) Symbol() rune {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return 0
}

func pieceTypeFromSymbol(r rune) (PieceType, bool) {
	switch unicode.ToUpper(r) {
	case 'K':
		return King, true
	case 'Q':
		return Queen, true
	case 'R':
		return Rook, true
	case 'B':
		return Bishop, true
	case 'N':
		return Knight, true
	case 'P':
		return Pawn, true
	}
	return "", false
}

// Piece is a token on the board. Two pieces of the same type and color are
// interchangeable: the engine cannot tell one rook from another.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func NewPiece(t PieceType, c Color) Piece {
	return Piece{Type: t, Color: c}
}

// Rune renders the piece: upper case for Black, lower case for White.
func (p Piece) Rune() rune {
	if p.Color == White {
		return unicode.ToLower(p.Type.Symbol())
	}
	return p.Type.Symbol()
}

// PossibleMoves returns every square the piece standing on from could move
// to. Turn order and the safety of the mover's own king are not considered.
func (p Piece) PossibleMoves(from Position, b *Board) []Position {
	switch p.Type {
	case Pawn:
		return p.pawnMoves(from, b)
	case Rook:
		return p.slidingMoves(from, b, straightDirs)
	case Bishop:
		return p.slidingMoves(from, b, diagonalDirs)
	case Queen:
		return p.slidingMoves(from, b, allDirs)
	case Knight:
		return p.steppingMoves(from, b, knightJumps)
	case King:
		return p.steppingMoves(from, b, allDirs)
	default:
		return []Position{}
	}
}

func (p Piece) pawnMoves(from Position, b *Board) []Position {
	moves := []Position{}
	dir := p.Color.forward()
	one := Position{X: from.X, Y: from.Y + dir}
	if one.Valid() && b.PieceAt(one) == nil {
		moves = append(moves, one)
		two := Position{X: from.X, Y: from.Y + 2*dir}
		if from.Y == p.Color.pawnRank() && two.Valid() && b.PieceAt(two) == nil {
			moves = append(moves, two)
		}
	}
	// diagonal squares are capture-only
	for _, dx := range []int{dir, -dir} {
		target := Position{X: from.X + dx, Y: from.Y + dir}
		if !target.Valid() {
			continue
		}
		if other := b.PieceAt(target); other != nil && other.Color != p.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

// slidingMoves walks each ray until the edge or the first occupied square,
// which is included only when it holds an opposing piece.
func (p Piece) slidingMoves(from Position, b *Board, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		target := from.Add(dir)
		for target.Valid() {
			if other := b.PieceAt(target); other != nil {
				if other.Color != p.Color {
					moves = append(moves, target)
				}
				break
			}
			moves = append(moves, target)
			target = target.Add(dir)
		}
	}
	return moves
}

func (p Piece) steppingMoves(from Position, b *Board, offsets []Position) []Position {
	moves := []Position{}
	for _, off := range offsets {
		target := from.Add(off)
		if target.Valid() && !b.IsBlocked(p.Color, target) {
			moves = append(moves, target)
		}
	}
	return moves
}

func containsPosition(positions []Position, p Position) bool {
	for _, q := range positions {
		if q == p {
			return true
		}
	}
	return false
}
