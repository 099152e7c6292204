package cubecode

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", R},
		{"R'", RPrime},
		{"R2", R2},
		{"u", U},
		{"F3", FPrime},
		{"B1", B},
		{"D2'", D2},
		{" L` ", LPrime},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "X", "R4", "Rw"} {
		if _, err := ParseMove(bad); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error = %v", bad, err)
		}
	}
}

func TestParseAndFormatMoves(t *testing.T) {
	moves, err := ParseMoves("R U R' U'")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatMoves(moves); got != "R U R' U'" {
		t.Errorf("FormatMoves = %q", got)
	}
	if FormatMoves(nil) != "" {
		t.Error("FormatMoves(nil) should be empty")
	}
	if _, err := ParseMoves("R Q"); err == nil {
		t.Error("ParseMoves should fail on Q")
	}
}

func TestMoveInverse(t *testing.T) {
	if R.Inverse() != RPrime || RPrime.Inverse() != R || R2.Inverse() != R2 {
		t.Error("Inverse mismatch")
	}
}

func TestParsedMovesAreValid(t *testing.T) {
	for _, s := range []string{"R", "U'", "F2", "D3", "L1", "B2'"} {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if !m.Valid() {
			t.Errorf("ParseMove(%q) = %+v, not valid", s, m)
		}
	}
}
