package cubecode

import (
	"errors"
	"testing"
)

func TestNewCubeStateIsSolved(t *testing.T) {
	s := NewCubeState()
	if !s.IsSolved() {
		t.Error("New cube should be solved")
	}
	for _, f := range Faces {
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				c, err := s.GetColor(f, row, col)
				if err != nil {
					t.Fatalf("GetColor(%v,%d,%d): %v", f, row, col, err)
				}
				if c != f.Color() {
					t.Errorf("cell %v(%d,%d) = %v, want %v", f, row, col, c, f.Color())
				}
			}
		}
	}
}

func TestFaceColorCodeBijection(t *testing.T) {
	seenColor := map[Color]bool{}
	seenCode := map[Code]bool{}
	for i, f := range Faces {
		if seenColor[f.Color()] || seenCode[f.Code()] {
			t.Errorf("face %v shares its color or code", f)
		}
		seenColor[f.Color()] = true
		seenCode[f.Code()] = true

		if f.Color().Face() != f {
			t.Errorf("%v.Color().Face() = %v", f, f.Color().Face())
		}
		if Alphabet[i] != byte(f.Code()) {
			t.Errorf("Alphabet[%d] = %c, want %c", i, Alphabet[i], f.Code())
		}
		if Colors[i] != f.Color() {
			t.Errorf("Colors[%d] = %v, want %v", i, Colors[i], f.Color())
		}
	}
}

func TestGetColorOutOfRange(t *testing.T) {
	s := NewCubeState()
	bad := []Cell{
		{Face: -1, Row: 0, Col: 0},
		{Face: 6, Row: 0, Col: 0},
		{Face: FaceU, Row: -1, Col: 0},
		{Face: FaceU, Row: 3, Col: 0},
		{Face: FaceB, Row: 0, Col: 3},
		{Face: FaceB, Row: 0, Col: -1},
	}
	for _, c := range bad {
		if _, err := s.GetColor(c.Face, c.Row, c.Col); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("GetColor(%v) error = %v, want ErrOutOfRange", c, err)
		}
		if err := s.SetColor(c.Face, c.Row, c.Col, Red); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SetColor(%v) error = %v, want ErrOutOfRange", c, err)
		}
	}
}

func TestSetColor(t *testing.T) {
	s := NewCubeState()
	if err := s.SetColor(FaceD, 2, 1, Blue); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	c, _ := s.GetColor(FaceD, 2, 1)
	if c != Blue {
		t.Errorf("cell = %v, want blue", c)
	}
	if s.IsSolved() {
		t.Error("Cube should not be solved after recoloring a cell")
	}
}

func TestSetColorRejectsUndefinedColor(t *testing.T) {
	s := NewCubeState()
	before := s.Clone()
	for _, c := range []Color{NoColor, Color(7), Color(255)} {
		if err := s.SetColor(FaceF, 1, 1, c); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("SetColor(%d) error = %v, want ErrInvalidColor", c, err)
		}
	}
	if !s.Equal(before) {
		t.Error("Rejected SetColor should leave the state unchanged")
	}
}

func TestColorToCode(t *testing.T) {
	s := NewCubeState()
	for _, f := range Faces {
		if got := s.ColorToCode(f.Color()); got != f.Code() {
			t.Errorf("ColorToCode(%v) = %v, want %v", f.Color(), got, f.Code())
		}
	}
	if got := s.ColorToCode(NoColor); got != 'U' {
		t.Errorf("ColorToCode(NoColor) = %v, want fallback U", got)
	}
}

func TestCodeToColorFallback(t *testing.T) {
	s := NewCubeState()
	for _, f := range Faces {
		if got := s.CodeToColor(f.Code()); got != f.Color() {
			t.Errorf("CodeToColor(%v) = %v, want %v", f.Code(), got, f.Color())
		}
	}
	for _, c := range []Code{'X', 'u', '0', ' '} {
		if got := s.CodeToColor(c); got != White {
			t.Errorf("CodeToColor(%q) = %v, want fallback white", byte(c), got)
		}
	}
}

func TestResetRestoresSolved(t *testing.T) {
	s := NewCubeState()
	s.SetColor(FaceU, 0, 0, Yellow)
	s.SetColor(FaceL, 1, 2, Green)
	s.Reset()
	if !s.Equal(NewCubeState()) {
		t.Error("Reset should restore the solved configuration")
		t.Log(s.String())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewCubeState()
	c := s.Clone()
	c.SetColor(FaceR, 0, 0, White)
	if got, _ := s.GetColor(FaceR, 0, 0); got != Red {
		t.Error("Modifying a clone should not affect the original")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"white", White},
		{"Red", Red},
		{"g", Green},
		{"G", Green},
		{"w", White},
		{"y", Yellow},
		{"o", Orange},
		{"r", Red},
		{"b", Blue},
		{"f", Green},
		{"U", White},
		{"D", Yellow},
		{"orange", Orange},
		{"B", Blue},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	for _, in := range []string{"purple", "x", "", "gr"} {
		if _, err := ParseColor(in); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q) error = %v, want ErrInvalidColor", in, err)
		}
	}
}

func TestParseFace(t *testing.T) {
	for _, f := range Faces {
		got, err := ParseFace(f.Name())
		if err != nil || got != f {
			t.Errorf("ParseFace(%q) = %v, %v", f.Name(), got, err)
		}
	}
	for _, in := range []string{"x", "", "green"} {
		_, err := ParseFace(in)
		if !errors.Is(err, ErrInvalidFace) {
			t.Errorf("ParseFace(%q) error = %v, want ErrInvalidFace", in, err)
		}
		if errors.Is(err, ErrOutOfRange) {
			t.Errorf("ParseFace(%q) error = %v, should not be ErrOutOfRange", in, err)
		}
	}
}
