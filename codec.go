package cubecode

import "fmt"

// CodeLength is the number of characters in a canonical code.
const CodeLength = NumFaces * 9

// SolvedCode is the canonical code of the solved cube.
const SolvedCode = "UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB"

// traversal is the face order of the canonical code, shared by the solver.
// Within each face, cells are visited row-major.
var traversal = [NumFaces]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// Position returns the index of a cell within the canonical code.
func Position(face Face, row, col int) (int, error) {
	c, err := checkCell(face, row, col)
	if err != nil {
		return -1, err
	}
	for i, f := range traversal {
		if f == c.Face {
			return i*9 + c.Row*3 + c.Col, nil
		}
	}
	return -1, fmt.Errorf("%w: face %d", ErrOutOfRange, int(face))
}

// CellAt returns the cell encoded at position i of the canonical code.
func CellAt(i int) (Cell, error) {
	if i < 0 || i >= CodeLength {
		return Cell{}, fmt.Errorf("%w: position %d", ErrOutOfRange, i)
	}
	return Cell{Face: traversal[i/9], Row: (i % 9) / 3, Col: i % 3}, nil
}

// Encode produces the 54-character canonical code of s.
func Encode(s *CubeState) string {
	buf := make([]byte, 0, CodeLength)
	for _, f := range traversal {
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				buf = append(buf, byte(ColorToCode(s.cells[f][row][col])))
			}
		}
	}
	return string(buf)
}

// Validate reports whether code has exactly 54 characters, each drawn from
// the alphabet URFDLB. It checks syntax only; color counts and solvability
// are left to the solver.
func Validate(code string) bool {
	return Check(code) == nil
}

// Check is Validate with a reason. The returned error is an *EncodingError
// and matches ErrInvalidEncoding.
func Check(code string) error {
	if len(code) != CodeLength {
		return &EncodingError{Length: len(code), Position: -1}
	}
	for i := 0; i < len(code); i++ {
		if _, ok := faceForCode(Code(code[i])); !ok {
			return &EncodingError{Length: len(code), Position: i, Char: code[i]}
		}
	}
	return nil
}

// Decode overwrites into with the state described by code.
// An invalid code leaves into untouched and returns an error matching
// ErrInvalidEncoding. A nil into is rejected with ErrNilState.
func Decode(code string, into *CubeState) error {
	if into == nil {
		return ErrNilState
	}
	if err := Check(code); err != nil {
		return err
	}
	i := 0
	for _, f := range traversal {
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				into.cells[f][row][col] = CodeToColor(Code(code[i]))
				i++
			}
		}
	}
	return nil
}

// Parse decodes code into a fresh CubeState.
func Parse(code string) (*CubeState, error) {
	s := NewCubeState()
	if err := Decode(code, s); err != nil {
		return nil, err
	}
	return s, nil
}

// CountColors returns how many times each face code occurs in code,
// indexed by Face. Characters outside the alphabet are not counted.
// A solvable cube has 9 of each; the solver reports anything else as
// ErrColorCount.
func CountColors(code string) [NumFaces]int {
	var counts [NumFaces]int
	for i := 0; i < len(code); i++ {
		if f, ok := faceForCode(Code(code[i])); ok {
			counts[f]++
		}
	}
	return counts
}

// BalancedColors reports whether every code occurs exactly 9 times.
func BalancedColors(code string) bool {
	for _, n := range CountColors(code) {
		if n != 9 {
			return false
		}
	}
	return true
}
