package cubecode

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Solver is an external two-phase solver. It receives a canonical code and
// a maximum number of moves and returns a solution or a *SolverError.
type Solver interface {
	Solve(ctx context.Context, code string, maxSteps int) (Solution, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, code string, maxSteps int) (Solution, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, code string, maxSteps int) (Solution, error) {
	return f(ctx, code, maxSteps)
}

// Solution is a solver answer.
type Solution struct {
	Moves []Move // parsed move sequence
	Raw   string // move line exactly as the solver printed it
	Info  string // diagnostic and timing text
}

// String returns the move sequence in standard notation.
func (s Solution) String() string {
	return FormatMoves(s.Moves)
}

// Verify reports whether applying the solution to from yields a solved cube.
// from is not modified.
func (s Solution) Verify(from *CubeState) bool {
	c := from.Clone()
	c.Apply(s.Moves...)
	return c.IsSolved()
}

// SolverError is a numbered failure reported by the solver.
// The code and its text are passed through unchanged.
type SolverError struct {
	Code int
}

// Numbered solver errors.
var (
	ErrColorCount    = &SolverError{Code: 1}
	ErrEdgeMissing   = &SolverError{Code: 2}
	ErrEdgeFlip      = &SolverError{Code: 3}
	ErrCornerMissing = &SolverError{Code: 4}
	ErrCornerTwist   = &SolverError{Code: 5}
	ErrParity        = &SolverError{Code: 6}
	ErrNoSolution    = &SolverError{Code: 7}
	ErrSearchTimeout = &SolverError{Code: 8}
)

var solverMessages = map[int]string{
	1: "there are not exactly nine facelets of each color",
	2: "not all 12 edges exist exactly once",
	3: "flip error: one edge has to be flipped",
	4: "not all 8 corners exist exactly once",
	5: "twist error: one corner has to be twisted",
	6: "parity error: two corners or two edges have to be exchanged",
	7: "no solution exists for the given maximum number of moves",
	8: "timeout, no solution within the given time",
}

// Message returns the description of the error code.
func (e *SolverError) Message() string {
	if msg, ok := solverMessages[e.Code]; ok {
		return msg
	}
	return "unknown solver error"
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("solver error %d: %s", e.Code, e.Message())
}

// Is matches any *SolverError with the same code.
func (e *SolverError) Is(target error) bool {
	var t *SolverError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// SolverErrors returns the numbered solver errors in order.
func SolverErrors() []*SolverError {
	return []*SolverError{
		ErrColorCount, ErrEdgeMissing, ErrEdgeFlip, ErrCornerMissing,
		ErrCornerTwist, ErrParity, ErrNoSolution, ErrSearchTimeout,
	}
}

var (
	errorLine  = regexp.MustCompile(`^\s*Error\s+(\d+)`)
	lengthNote = regexp.MustCompile(`^\(\d+f?\)$`)
)

// ParseSolverOutput interprets the text printed by a solver program.
// The first non-empty line holds either the move sequence or "Error N";
// any following lines are diagnostic text and become Solution.Info.
func ParseSolverOutput(out string) (Solution, error) {
	lines := strings.Split(strings.ReplaceAll(out, "\r\n", "\n"), "\n")
	first := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			first = i
			break
		}
	}
	if first < 0 {
		return Solution{}, fmt.Errorf("%w: empty solver output", ErrInvalidNotation)
	}

	head := strings.TrimSpace(lines[first])
	info := strings.TrimSpace(strings.Join(lines[first+1:], "\n"))

	if m := errorLine.FindStringSubmatch(head); m != nil {
		code, err := strconv.Atoi(m[1])
		if err != nil {
			return Solution{}, fmt.Errorf("failed to parse solver error %q: %w", head, err)
		}
		return Solution{Raw: head, Info: info}, &SolverError{Code: code}
	}

	var tokens []string
	for _, tok := range strings.Fields(strings.ReplaceAll(head, ".", " ")) {
		if lengthNote.MatchString(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	moves, err := ParseMoves(strings.Join(tokens, " "))
	if err != nil {
		return Solution{}, fmt.Errorf("failed to parse solver moves %q: %w", head, err)
	}

	return Solution{Moves: moves, Raw: head, Info: info}, nil
}

// Submit encodes s and hands the code to solver.
// A code that fails validation or a non-positive step limit is rejected
// before the solver is called; solver errors are returned unchanged.
func Submit(ctx context.Context, solver Solver, s *CubeState, maxSteps int) (Solution, error) {
	return SubmitCode(ctx, solver, Encode(s), maxSteps)
}

// SubmitCode is Submit for a code typed or loaded by the user.
func SubmitCode(ctx context.Context, solver Solver, code string, maxSteps int) (Solution, error) {
	if err := Check(code); err != nil {
		return Solution{}, err
	}
	if maxSteps <= 0 {
		return Solution{}, fmt.Errorf("%w: got %d", ErrInvalidStepLimit, maxSteps)
	}
	return solver.Solve(ctx, code, maxSteps)
}
