package model

import (
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
)

// CastleHistoryRule selects which recorded moves can disqualify a castle.
type CastleHistoryRule int

const (
	// CastleHistoryOwnColor consults only the castling side's own moves.
	CastleHistoryOwnColor CastleHistoryRule = iota
	// CastleHistoryAllColors consults every recorded move regardless of
	// who made it, so an opponent's king move also forbids castling.
	CastleHistoryAllColors
)

func (r CastleHistoryRule) String() string {
	switch r {
	case CastleHistoryOwnColor:
		return "own"
	case CastleHistoryAllColors:
		return "all"
	}
	return fmt.Sprintf("CastleHistoryRule(%d)", int(r))
}

func ParseCastleHistoryRule(s string) (CastleHistoryRule, error) {
	switch s {
	case "own":
		return CastleHistoryOwnColor, nil
	case "all":
		return CastleHistoryAllColors, nil
	}
	return 0, fmt.Errorf("unknown castle history rule %q", s)
}

type BoardOption func(*Board)

func WithCastleHistoryRule(r CastleHistoryRule) BoardOption {
	return func(b *Board) {
		b.castleRule = r
	}
}

// Board is an immutable position together with the moves that produced it.
// Every successful move returns a new Board and leaves the receiver as it was.
type Board struct {
	pieces     map[Position]Piece
	moves      []Ply
	castleRule CastleHistoryRule
}

// NewBoard builds a board from the given pieces and history. A nil pieces
// map yields the standard starting position. Both arguments are copied.
func NewBoard(pieces map[Position]Piece, moves []Ply, opts ...BoardOption) *Board {
	if pieces == nil {
		pieces = startingPieces()
	}
	b := &Board{
		pieces: maps.Clone(pieces),
		moves:  append([]Ply{}, moves...),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func startingPieces() map[Position]Piece {
	back := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	pieces := make(map[Position]Piece, 4*boardSize)
	for _, c := range []Color{Black, White} {
		for x, t := range back {
			pieces[Position{X: x, Y: c.homeRank()}] = Piece{Type: t, Color: c}
			pieces[Position{X: x, Y: c.pawnRank()}] = Piece{Type: Pawn, Color: c}
		}
	}
	return pieces
}

// PieceAt returns a copy of the piece on p, or nil for an empty square.
func (b *Board) PieceAt(p Position) *Piece {
	piece, ok := b.pieces[p]
	if !ok {
		return nil
	}
	return &piece
}

func (b *Board) Pieces() map[Position]Piece {
	return maps.Clone(b.pieces)
}

func (b *Board) Moves() []Ply {
	return append([]Ply{}, b.moves...)
}

func (b *Board) CastleHistoryRule() CastleHistoryRule {
	return b.castleRule
}

// IsBlocked reports whether p holds a piece of color c.
func (b *Board) IsBlocked(c Color, p Position) bool {
	piece := b.PieceAt(p)
	return piece != nil && piece.Color == c
}

// IsAttackedBy reports whether any piece of color c can move to p.
func (b *Board) IsAttackedBy(c Color, p Position) bool {
	for from, piece := range b.pieces {
		if piece.Color == c && containsPosition(piece.PossibleMoves(from, b), p) {
			return true
		}
	}
	return false
}

// LegalDestinations lists the squares the occupant of from can move to, or
// nil for an empty square.
func (b *Board) LegalDestinations(from Position) []Position {
	piece := b.PieceAt(from)
	if piece == nil {
		return nil
	}
	return piece.PossibleMoves(from, b)
}

// CanCastle reports whether color may castle towards the rook on file 7
// (kingside) or file 0.
func (b *Board) CanCastle(color Color, kingside bool) bool {
	rank := color.homeRank()
	freeFiles := []int{1, 2, 3}
	safeFiles := []int{0, 1, 2, 3, 4}
	if kingside {
		freeFiles = []int{5, 6}
		safeFiles = []int{4, 5, 6, 7}
	}
	for _, x := range freeFiles {
		if b.PieceAt(Position{X: x, Y: rank}) != nil {
			return false
		}
	}
	for _, x := range safeFiles {
		if b.IsAttackedBy(color.Opponent(), Position{X: x, Y: rank}) {
			return false
		}
	}

	king, rook := castleSquares(rank, kingside)
	if piece := b.PieceAt(king.From); piece == nil || *piece != NewPiece(King, color) {
		return false
	}
	// Pieces compare by type and color only, so a different rook that
	// reached the corner is indistinguishable from the original one. The
	// history scan below catches any move that landed on the corner.
	if piece := b.PieceAt(rook.From); piece == nil || *piece != NewPiece(Rook, color) {
		return false
	}
	for _, ply := range b.moves {
		if b.castleRule == CastleHistoryOwnColor && ply.Color != color {
			continue
		}
		switch m := ply.Intent.(type) {
		case Castle:
			return false
		case Move:
			if m.Piece == King || m.Dest == rook.From {
				return false
			}
		}
	}
	return true
}

// Move applies one line of notation for color and returns the resulting
// board. On error the receiver is still the current position.
func (b *Board) Move(color Color, text string) (*Board, error) {
	intent, err := ParseMove(text)
	if err != nil {
		return nil, err
	}
	return b.Apply(color, intent)
}

// Apply is Move for an already parsed intent.
func (b *Board) Apply(color Color, intent MoveIntent) (*Board, error) {
	switch m := intent.(type) {
	case Castle:
		return b.castle(color, m)
	case Move:
		return b.movePiece(color, m)
	default:
		return nil, fmt.Errorf("%w: unsupported move %T", ErrInvalidNotation, intent)
	}
}

func (b *Board) movePiece(color Color, m Move) (*Board, error) {
	candidates := b.candidates(color, m)
	switch len(candidates) {
	case 0:
		return nil, fmt.Errorf("%w: %s for %s", ErrNoMatchingPiece, m.Notation(), color)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s for %s matches %d pieces", ErrAmbiguousMove, m.Notation(), color, len(candidates))
	}
	pieces := relocate(b.pieces, Relocation{From: candidates[0], To: m.Dest})
	return b.next(pieces, Ply{Color: color, Intent: m}), nil
}

// candidates scans the board top row first so results are deterministic.
func (b *Board) candidates(color Color, m Move) []Position {
	found := []Position{}
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			from := Position{X: x, Y: y}
			piece, ok := b.pieces[from]
			if !ok || piece.Color != color || piece.Type != m.Piece {
				continue
			}
			if containsPosition(piece.PossibleMoves(from, b), m.Dest) {
				found = append(found, from)
			}
		}
	}
	return found
}

func (b *Board) castle(color Color, c Castle) (*Board, error) {
	if !b.CanCastle(color, c.Kingside) {
		return nil, fmt.Errorf("%w: %s for %s", ErrIllegalCastle, c.Notation(), color)
	}
	king, rook := castleSquares(color.homeRank(), c.Kingside)
	pieces := relocate(b.pieces, king, rook)
	return b.next(pieces, Ply{Color: color, Intent: c}), nil
}

// relocate copies pieces and applies each leg in order. Whatever stood on a
// destination is captured.
func relocate(pieces map[Position]Piece, legs ...Relocation) map[Position]Piece {
	updated := maps.Clone(pieces)
	for _, leg := range legs {
		piece := updated[leg.From]
		delete(updated, leg.From)
		updated[leg.To] = piece
	}
	return updated
}

func (b *Board) next(pieces map[Position]Piece, ply Ply) *Board {
	moves := make([]Ply, len(b.moves), len(b.moves)+1)
	copy(moves, b.moves)
	return &Board{
		pieces:     pieces,
		moves:      append(moves, ply),
		castleRule: b.castleRule,
	}
}

// String renders eight rows of eight characters, Y=0 first. Empty squares
// are '.', Black pieces upper case and White pieces lower case.
func (b *Board) String() string {
	return strings.Join(b.Rows(), "\n")
}

func (b *Board) Rows() []string {
	rows := make([]string, 0, boardSize)
	for y := 0; y < boardSize; y++ {
		var sb strings.Builder
		for x := 0; x < boardSize; x++ {
			if piece := b.PieceAt(Position{X: x, Y: y}); piece != nil {
				sb.WriteRune(piece.Rune())
			} else {
				sb.WriteByte('.')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

// ParseBoard reads the output of String back into a board with an empty
// history. Surrounding whitespace on each row is ignored.
func ParseBoard(text string, opts ...BoardOption) (*Board, error) {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != boardSize {
		return nil, fmt.Errorf("%w: want %d rows, got %d", ErrInvalidBoard, boardSize, len(lines))
	}
	pieces := map[Position]Piece{}
	for y, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) != boardSize {
			return nil, fmt.Errorf("%w: row %d has %d squares", ErrInvalidBoard, y, len(line))
		}
		for x, r := range line {
			if r == '.' {
				continue
			}
			t, ok := pieceTypeFromSymbol(r)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q at %s", ErrInvalidBoard, r, Position{X: x, Y: y})
			}
			c := Black
			if r >= 'a' && r <= 'z' {
				c = White
			}
			pieces[Position{X: x, Y: y}] = Piece{Type: t, Color: c}
		}
	}
	return NewBoard(pieces, nil, opts...), nil
}
