package cubecode

import (
	"errors"
	"fmt"
)

// Sentinel errors for the cubecode package.
var (
	// Cell access errors
	ErrOutOfRange   = errors.New("cubecode: cell out of range")
	ErrInvalidColor = errors.New("cubecode: invalid color")
	ErrInvalidFace  = errors.New("cubecode: unknown face")
	ErrNilState     = errors.New("cubecode: nil cube state")

	// Parsing errors
	ErrInvalidEncoding = errors.New("cubecode: invalid encoding")
	ErrInvalidNotation = errors.New("cubecode: invalid move notation")

	// Solver call errors
	ErrInvalidStepLimit = errors.New("cubecode: step limit must be positive")
)

// EncodingError describes why a candidate code failed validation.
type EncodingError struct {
	Length   int  // length of the rejected string
	Position int  // offending position, -1 for a length mismatch
	Char     byte // offending character when Position >= 0
}

func (e *EncodingError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("%v: want %d characters over %s, got %d", ErrInvalidEncoding, CodeLength, Alphabet, e.Length)
	}
	return fmt.Sprintf("%v: character %q at position %d is not one of %s", ErrInvalidEncoding, e.Char, e.Position, Alphabet)
}

func (e *EncodingError) Unwrap() error {
	return ErrInvalidEncoding
}
