package model

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		want     MoveIntent
		wantErr  error
	}{
		{name: "pawn", notation: "c3", want: Move{Piece: Pawn, Dest: Position{X: 2, Y: 5}}},
		{name: "top left", notation: "a8", want: Move{Piece: Pawn, Dest: Position{X: 0, Y: 0}}},
		{name: "bottom right", notation: "h1", want: Move{Piece: Pawn, Dest: Position{X: 7, Y: 7}}},
		{name: "rook", notation: "Re8", want: Move{Piece: Rook, Dest: Position{X: 4, Y: 0}}},
		{name: "knight capture", notation: "Nxf6", want: Move{Piece: Knight, Dest: Position{X: 5, Y: 2}}},
		{name: "pawn capture marker", notation: "xd5", want: Move{Piece: Pawn, Dest: Position{X: 3, Y: 3}}},
		{name: "check annotation", notation: "Qh5+", want: Move{Piece: Queen, Dest: Position{X: 7, Y: 3}}},
		{name: "mate annotation", notation: "Bb5#", want: Move{Piece: Bishop, Dest: Position{X: 1, Y: 3}}},
		{name: "king", notation: "Kd1", want: Move{Piece: King, Dest: Position{X: 3, Y: 7}}},
		{name: "castle short form", notation: "0-0", want: Castle{Kingside: false}},
		{name: "castle long form", notation: "0-0-0", want: Castle{Kingside: true}},
		{name: "empty", notation: "", wantErr: ErrInvalidNotation},
		{name: "file only", notation: "e", wantErr: ErrInvalidNotation},
		{name: "rank out of range", notation: "e9", wantErr: ErrInvalidNotation},
		{name: "file out of range", notation: "i4", wantErr: ErrInvalidNotation},
		{name: "pawn letter", notation: "Pe4", wantErr: ErrInvalidNotation},
		{name: "lower case piece", notation: "ne4", wantErr: ErrInvalidNotation},
		{name: "letter O castle", notation: "O-O", wantErr: ErrInvalidNotation},
		{name: "trailing junk", notation: "e4e5", wantErr: ErrInvalidNotation},
		{name: "disambiguation", notation: "Rae8", wantErr: ErrInvalidNotation},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMove(tt.notation)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseMove(%q) err = %v, want %v", tt.notation, err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("ParseMove(%q) = %#v, want %#v", tt.notation, got, tt.want)
			}
		})
	}
}

func TestMoveIntentNotation(t *testing.T) {
	t.Parallel()
	for _, text := range []string{"c3", "Re8", "Nf6", "Kd1", "0-0", "0-0-0"} {
		intent, err := ParseMove(text)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", text, err)
		}
		if got := intent.Notation(); got != text {
			t.Fatalf("notation of %q renders %q", text, got)
		}
	}
}

func TestPositionNotation(t *testing.T) {
	t.Parallel()
	if got := (Position{X: 4, Y: 0}).Notation(); got != "e8" {
		t.Fatalf("(4,0) renders %q", got)
	}
	if got := (Position{X: 0, Y: 7}).Notation(); got != "a1" {
		t.Fatalf("(0,7) renders %q", got)
	}
}
