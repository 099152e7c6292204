package cubecode

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestEncodeSolved(t *testing.T) {
	s := NewCubeState()
	s.SetColor(FaceB, 2, 2, Red)
	s.Reset()
	if got := Encode(s); got != SolvedCode {
		t.Errorf("Encode(reset) = %s, want %s", got, SolvedCode)
	}
}

func TestValidate(t *testing.T) {
	if !Validate(SolvedCode) {
		t.Error("Solved code should be valid")
	}

	invalid := map[string]string{
		"short":     "short",
		"empty":     "",
		"too long":  SolvedCode + "U",
		"one X":     SolvedCode[:10] + "X" + SolvedCode[11:],
		"lowercase": strings.ToLower(SolvedCode),
		"digit":     "1" + SolvedCode[1:],
		"space":     SolvedCode[:53] + " ",
	}
	for name, code := range invalid {
		if Validate(code) {
			t.Errorf("%s: Validate(%q) = true", name, code)
		}
		if err := Check(code); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("%s: Check error = %v, want ErrInvalidEncoding", name, err)
		}
	}
}

func TestCheckReportsPosition(t *testing.T) {
	code := SolvedCode[:20] + "X" + SolvedCode[21:]
	var encErr *EncodingError
	if !errors.As(Check(code), &encErr) {
		t.Fatal("Check should return an *EncodingError")
	}
	if encErr.Position != 20 || encErr.Char != 'X' {
		t.Errorf("got position %d char %q, want 20 'X'", encErr.Position, encErr.Char)
	}

	if !errors.As(Check("short"), &encErr) || encErr.Position != -1 || encErr.Length != 5 {
		t.Errorf("length mismatch reported as %+v", encErr)
	}
}

func TestDecodeSolvedCode(t *testing.T) {
	s := NewCubeState()
	s.SetColor(FaceF, 1, 1, Blue)
	if err := Decode(SolvedCode, s); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !s.Equal(NewCubeState()) {
		t.Error("Decoding the solved code should produce the solved state")
	}
}

func randomState(r *rand.Rand) *CubeState {
	s := NewCubeState()
	for i := 0; i < CodeLength; i++ {
		c, _ := CellAt(i)
		s.SetColor(c.Face, c.Row, c.Col, Colors[r.Intn(len(Colors))])
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		s := randomState(r)
		s2 := NewCubeState()
		code := Encode(s)
		if err := Decode(code, s2); err != nil {
			t.Fatalf("Decode(%s): %v", code, err)
		}
		if !s2.Equal(s) {
			t.Fatalf("round trip mismatch for %s", code)
		}
		if Encode(s2) != code {
			t.Fatalf("Encode after Decode changed %s", code)
		}
	}
}

func TestDecodeInvalidLeavesStateUnchanged(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	s := randomState(r)
	before := s.Clone()

	for _, code := range []string{"", "short", SolvedCode[:53] + "x", SolvedCode + "U"} {
		if err := Decode(code, s); !errors.Is(err, ErrInvalidEncoding) {
			t.Errorf("Decode(%q) error = %v, want ErrInvalidEncoding", code, err)
		}
		if !s.Equal(before) {
			t.Fatalf("Decode(%q) modified the state", code)
		}
	}
}

func TestDecodeNilState(t *testing.T) {
	for _, code := range []string{SolvedCode, "short"} {
		if err := Decode(code, nil); !errors.Is(err, ErrNilState) {
			t.Errorf("Decode(%q, nil) error = %v, want ErrNilState", code, err)
		}
	}
}

func TestSingleCellChangesOnePosition(t *testing.T) {
	s := NewCubeState()
	if err := s.SetColor(FaceF, 0, 0, FaceR.Color()); err != nil {
		t.Fatal(err)
	}
	code := Encode(s)

	pos, err := Position(FaceF, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pos != 18 {
		t.Errorf("Position(F,0,0) = %d, want 18", pos)
	}

	diff := 0
	for i := range code {
		if code[i] != SolvedCode[i] {
			diff++
			if i != pos {
				t.Errorf("unexpected difference at %d", i)
			}
		}
	}
	if diff != 1 || code[pos] != 'R' {
		t.Errorf("Encode = %s, want one R at %d", code, pos)
	}
}

func TestDecodeUnsolvableCodeSucceeds(t *testing.T) {
	// Syntactically fine, but all 54 stickers are U: no real cube looks like this.
	code := strings.Repeat("U", CodeLength)
	s := NewCubeState()
	if err := Decode(code, s); err != nil {
		t.Fatalf("Decode should accept unsolvable codes: %v", err)
	}
	if Encode(s) != code {
		t.Error("round trip failed")
	}
	if BalancedColors(code) {
		t.Error("BalancedColors should flag 54 U stickers")
	}
}

func TestPositionAndCellAtAgree(t *testing.T) {
	for i := 0; i < CodeLength; i++ {
		c, err := CellAt(i)
		if err != nil {
			t.Fatal(err)
		}
		p, err := Position(c.Face, c.Row, c.Col)
		if err != nil || p != i {
			t.Errorf("Position(CellAt(%d)) = %d, %v", i, p, err)
		}
	}
	if _, err := CellAt(CodeLength); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("CellAt(54) error = %v", err)
	}
	if _, err := Position(FaceU, 3, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Position(U,3,0) error = %v", err)
	}
}

func TestTraversalOrder(t *testing.T) {
	// Each face block of the solved code holds that face's letter.
	for i, f := range []Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB} {
		block := SolvedCode[i*9 : i*9+9]
		if block != strings.Repeat(f.String(), 9) {
			t.Errorf("block %d = %s, want face %v", i, block, f)
		}
	}
}

func TestCountColors(t *testing.T) {
	counts := CountColors(SolvedCode)
	for _, f := range Faces {
		if counts[f] != 9 {
			t.Errorf("count[%v] = %d, want 9", f, counts[f])
		}
	}
	if !BalancedColors(SolvedCode) {
		t.Error("Solved code should be balanced")
	}
}
