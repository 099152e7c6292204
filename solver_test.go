package cubecode

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestParseSolverOutputMoves(t *testing.T) {
	sol, err := ParseSolverOutput("U' R2 F3 (3f)\nsearch took 12ms\n")
	if err != nil {
		t.Fatal(err)
	}
	if got := sol.String(); got != "U' R2 F'" {
		t.Errorf("moves = %q", got)
	}
	if sol.Info != "search took 12ms" {
		t.Errorf("info = %q", sol.Info)
	}
	if sol.Raw != "U' R2 F3 (3f)" {
		t.Errorf("raw = %q", sol.Raw)
	}
}

func TestParseSolverOutputErrors(t *testing.T) {
	for _, want := range SolverErrors() {
		_, err := ParseSolverOutput(fmt.Sprintf("Error %d\r\n", want.Code))
		if !errors.Is(err, want) {
			t.Errorf("Error %d parsed as %v", want.Code, err)
		}
	}

	_, err := ParseSolverOutput("Error 6")
	if errors.Is(err, ErrParity) == false || errors.Is(err, ErrEdgeFlip) {
		t.Errorf("Error 6 should match only ErrParity, got %v", err)
	}
	var se *SolverError
	if !errors.As(err, &se) || se.Code != 6 {
		t.Errorf("errors.As = %+v", se)
	}
}

func TestParseSolverOutputEmpty(t *testing.T) {
	if _, err := ParseSolverOutput(" \n\n"); err == nil {
		t.Error("empty output should fail")
	}
	if _, err := ParseSolverOutput("R Q"); err == nil {
		t.Error("garbage output should fail")
	}
}

func TestSubmitRejectsBeforeSolver(t *testing.T) {
	called := false
	solver := SolverFunc(func(ctx context.Context, code string, maxSteps int) (Solution, error) {
		called = true
		return Solution{}, nil
	})

	if _, err := SubmitCode(context.Background(), solver, "short", 21); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("error = %v, want ErrInvalidEncoding", err)
	}
	if _, err := SubmitCode(context.Background(), solver, SolvedCode, 0); !errors.Is(err, ErrInvalidStepLimit) {
		t.Errorf("error = %v, want ErrInvalidStepLimit", err)
	}
	if called {
		t.Error("solver should not be called for rejected input")
	}
}

func TestSubmitPassesThrough(t *testing.T) {
	var gotCode string
	var gotSteps int
	solver := SolverFunc(func(ctx context.Context, code string, maxSteps int) (Solution, error) {
		gotCode, gotSteps = code, maxSteps
		return Solution{}, ErrCornerTwist
	})

	s := NewCubeState()
	s.Apply(R)
	_, err := Submit(context.Background(), solver, s, 24)
	if !errors.Is(err, ErrCornerTwist) {
		t.Errorf("error = %v, want ErrCornerTwist", err)
	}
	if gotCode != Encode(s) || gotSteps != 24 {
		t.Errorf("solver got %s/%d", gotCode, gotSteps)
	}
}

func TestSolutionVerify(t *testing.T) {
	s := NewCubeState()
	s.Apply(R, U)

	sol, err := ParseSolverOutput("U' R'")
	if err != nil {
		t.Fatal(err)
	}
	if !sol.Verify(s) {
		t.Error("U' R' should solve R U")
	}
	if s.IsSolved() {
		t.Error("Verify should not modify its argument")
	}

	wrong, _ := ParseSolverOutput("R' U'")
	if wrong.Verify(s) {
		t.Error("R' U' should not solve R U")
	}
}

func TestSolverErrorMessages(t *testing.T) {
	for _, e := range SolverErrors() {
		if e.Message() == "unknown solver error" {
			t.Errorf("error %d has no message", e.Code)
		}
	}
	if (&SolverError{Code: 42}).Message() != "unknown solver error" {
		t.Error("unknown code should say so")
	}
}
