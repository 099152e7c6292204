package cubecode

import (
	"fmt"
	"strings"
)

// Cell addresses one facelet by face, row and column.
// Rows and columns run 0..2 from the top-left of the face as drawn on the net:
//
//	0,0 0,1 0,2
//	1,0 1,1 1,2
//	2,0 2,1 2,2
type Cell struct {
	Face Face
	Row  int
	Col  int
}

// Valid reports whether the cell lies on the cube.
func (c Cell) Valid() bool {
	return c.Face.Valid() && c.Row >= 0 && c.Row < 3 && c.Col >= 0 && c.Col < 3
}

func (c Cell) String() string {
	return fmt.Sprintf("%s(%d,%d)", c.Face, c.Row, c.Col)
}

// checkCell is the single range check behind every cell accessor.
func checkCell(face Face, row, col int) (Cell, error) {
	c := Cell{Face: face, Row: row, Col: col}
	if !c.Valid() {
		return c, fmt.Errorf("%w: face %d row %d col %d", ErrOutOfRange, int(face), row, col)
	}
	return c, nil
}

// CubeState holds the color of each of the 54 facelets.
// Every cell always holds one of the six defined colors.
//
// A CubeState is not safe for concurrent use; callers sharing one across
// goroutines must serialize access themselves.
type CubeState struct {
	// cells[face][row][col] = color
	cells [NumFaces][3][3]Color
}

// NewCubeState creates a cube in the solved configuration.
func NewCubeState() *CubeState {
	s := &CubeState{}
	s.Reset()
	return s
}

// Reset restores the solved configuration: every cell of face F holds F's color.
func (s *CubeState) Reset() {
	for _, f := range Faces {
		color := f.Color()
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				s.cells[f][row][col] = color
			}
		}
	}
}

// GetColor returns the color of a cell.
func (s *CubeState) GetColor(face Face, row, col int) (Color, error) {
	c, err := checkCell(face, row, col)
	if err != nil {
		return NoColor, err
	}
	return s.at(c), nil
}

// SetColor overwrites the color of a cell.
// Undefined colors are rejected and the cell is left as it was.
func (s *CubeState) SetColor(face Face, row, col int, color Color) error {
	c, err := checkCell(face, row, col)
	if err != nil {
		return err
	}
	if !color.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidColor, byte(color))
	}
	s.cells[c.Face][c.Row][c.Col] = color
	return nil
}

// At returns the color of a cell known to be valid, such as one produced by
// CellAt or a Layout hit test. It panics on an out-of-range cell.
func (s *CubeState) At(c Cell) Color {
	if !c.Valid() {
		panic(fmt.Sprintf("cubecode: cell %v out of range", c))
	}
	return s.at(c)
}

func (s *CubeState) at(c Cell) Color {
	return s.cells[c.Face][c.Row][c.Col]
}

// ColorToCode returns the code of the face whose color is color.
// An undefined color yields the code of the first defined color, not an error.
func (s *CubeState) ColorToCode(color Color) Code {
	return ColorToCode(color)
}

// CodeToColor returns the color for a code character.
// An unknown character yields the first defined color, not an error.
func (s *CubeState) CodeToColor(code Code) Color {
	return CodeToColor(code)
}

// ColorToCode is the package-level form of CubeState.ColorToCode.
func ColorToCode(color Color) Code {
	return color.Face().Code()
}

// CodeToColor is the package-level form of CubeState.CodeToColor.
func CodeToColor(code Code) Color {
	if f, ok := faceForCode(code); ok {
		return f.Color()
	}
	return Colors[0]
}

// Clone creates a deep copy of the state.
func (s *CubeState) Clone() *CubeState {
	clone := *s
	return &clone
}

// Equal reports whether two states hold the same color in every cell.
func (s *CubeState) Equal(other *CubeState) bool {
	return s.cells == other.cells
}

// IsSolved returns true if every face shows a single color matching its center.
func (s *CubeState) IsSolved() bool {
	for _, f := range Faces {
		center := s.cells[f][1][1]
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				if s.cells[f][row][col] != center {
					return false
				}
			}
		}
	}
	return true
}

// String returns a text net of the cube using face code letters.
func (s *CubeState) String() string {
	var b strings.Builder

	writeRow := func(f Face, row int) {
		for col := 0; col < 3; col++ {
			b.WriteString(ColorToCode(s.cells[f][row][col]).String())
			b.WriteByte(' ')
		}
	}

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(FaceU, row)
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, f := range []Face{FaceL, FaceF, FaceR, FaceB} {
			writeRow(f, row)
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		writeRow(FaceD, row)
		b.WriteString("\n")
	}

	return b.String()
}
