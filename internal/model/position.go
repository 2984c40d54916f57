package model

import "fmt"

const boardSize = 8

// Position addresses a square by file (X) and rank (Y). Y=0 is the top row
// of the rendering, Black's home rank.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Valid() bool {
	return p.X >= 0 && p.X < boardSize && p.Y >= 0 && p.Y < boardSize
}

func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Notation renders the square the way the parser reads it: file a-h left to
// right, rank digit 8 on Y=0 down to 1 on Y=7.
func (p Position) Notation() string {
	return fmt.Sprintf("%c%d", p.X+'a', boardSize-p.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

var (
	straightDirs = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	diagonalDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	allDirs      = append(append([]Position{}, straightDirs...), diagonalDirs...)
	knightJumps  = []Position{{X: -1, Y: -2}, {X: 1, Y: -2}, {X: 2, Y: -1}, {X: 2, Y: 1}, {X: 1, Y: 2}, {X: -1, Y: 2}, {X: -2, Y: -1}, {X: -2, Y: 1}}
)
