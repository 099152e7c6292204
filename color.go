package cubecode

import (
	"fmt"
	"strings"
)

// Face represents one of the six cube faces.
// The declaration order U, R, F, D, L, B is also the canonical traversal order.
type Face int

const (
	FaceU Face = 0 // Up (White)
	FaceR Face = 1 // Right (Red)
	FaceF Face = 2 // Front (Green)
	FaceD Face = 3 // Down (Yellow)
	FaceL Face = 4 // Left (Orange)
	FaceB Face = 5 // Back (Blue)
)

// NumFaces is the number of faces on the cube.
const NumFaces = 6

// Faces lists every face in declaration order.
var Faces = [NumFaces]Face{FaceU, FaceR, FaceF, FaceD, FaceL, FaceB}

// Valid reports whether f is one of the six defined faces.
func (f Face) Valid() bool {
	return f >= 0 && f < NumFaces
}

func (f Face) String() string {
	if !f.Valid() {
		return "?"
	}
	return string(f.Code())
}

// Name returns the long name of the face.
func (f Face) Name() string {
	switch f {
	case FaceU:
		return "Up"
	case FaceR:
		return "Right"
	case FaceF:
		return "Front"
	case FaceD:
		return "Down"
	case FaceL:
		return "Left"
	case FaceB:
		return "Back"
	default:
		return "?"
	}
}

// Color returns the color permanently assigned to the face.
func (f Face) Color() Color {
	switch f {
	case FaceU:
		return White
	case FaceR:
		return Red
	case FaceF:
		return Green
	case FaceD:
		return Yellow
	case FaceL:
		return Orange
	case FaceB:
		return Blue
	default:
		return NoColor
	}
}

// Code returns the single-character code of the face.
func (f Face) Code() Code {
	switch f {
	case FaceU:
		return 'U'
	case FaceR:
		return 'R'
	case FaceF:
		return 'F'
	case FaceD:
		return 'D'
	case FaceL:
		return 'L'
	case FaceB:
		return 'B'
	default:
		return 0
	}
}

// ParseFace parses a face letter or name (case-insensitive).
func ParseFace(s string) (Face, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u", "up":
		return FaceU, nil
	case "r", "right":
		return FaceR, nil
	case "f", "front":
		return FaceF, nil
	case "d", "down":
		return FaceD, nil
	case "l", "left":
		return FaceL, nil
	case "b", "back":
		return FaceB, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFace, s)
}

// Color represents a sticker color.
// The zero value is NoColor, which never appears in a CubeState.
type Color byte

const (
	NoColor Color = iota
	White         // Up face when solved
	Red           // Right face when solved
	Green         // Front face when solved
	Yellow        // Down face when solved
	Orange        // Left face when solved
	Blue          // Back face when solved
)

// Colors lists the defined colors in face declaration order.
// Colors[0] is the fallback for unmatched lookups.
var Colors = [NumFaces]Color{White, Red, Green, Yellow, Orange, Blue}

// Valid reports whether c is one of the six defined colors.
func (c Color) Valid() bool {
	return c >= White && c <= Blue
}

// Face returns the face whose solved color is c.
// Undefined colors map to the first face.
func (c Color) Face() Face {
	for _, f := range Faces {
		if f.Color() == c {
			return f
		}
	}
	return Faces[0]
}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Orange:
		return "orange"
	case Blue:
		return "blue"
	default:
		return "none"
	}
}

// ParseColor parses a color name ("red"), its initial ("g") or a face code
// letter ("F"). Face codes win, so "b" and "r" are Blue and Red either way.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		if f, ok := faceForCode(Code(strings.ToUpper(s)[0])); ok {
			return f.Color(), nil
		}
		if c, ok := colorInitials[strings.ToLower(s)[0]]; ok {
			return c, nil
		}
	}
	for _, c := range Colors {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return NoColor, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

// colorInitials are the one-letter color names that are not also face codes.
// R and B mean Red and Blue either way.
var colorInitials = map[byte]Color{
	'w': White,
	'g': Green,
	'y': Yellow,
	'o': Orange,
}

// Code is one character of the canonical alphabet U, R, F, D, L, B.
type Code byte

// Alphabet is the canonical code alphabet in face declaration order.
const Alphabet = "URFDLB"

func (c Code) String() string {
	return string(rune(c))
}

// faceForCode returns the face whose code is c.
func faceForCode(c Code) (Face, bool) {
	for _, f := range Faces {
		if f.Code() == c {
			return f, true
		}
	}
	return 0, false
}
