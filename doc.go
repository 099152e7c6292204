// Package cubecode models the sticker colors of a 3x3x3 cube and converts
// them to and from the 54-character code read by two-phase solvers.
//
// # Canonical code
//
// The code lists one character per facelet, faces in the order
// U, R, F, D, L, B and the nine cells of each face row by row:
//
//	             |U1 U2 U3|
//	             |U4 U5 U6|
//	             |U7 U8 U9|
//	    |L1 L2 L3|F1 F2 F3|R1 R2 R3|B1 B2 B3|
//	    |L4 L5 L6|F4 F5 F6|R4 R5 R6|B4 B5 B6|
//	    |L7 L8 L9|F7 F8 F9|R7 R8 R9|B7 B8 B9|
//	             |D1 D2 D3|
//	             |D4 D5 D6|
//	             |D7 D8 D9|
//
// giving U1..U9 R1..R9 F1..F9 D1..D9 L1..L9 B1..B9.
//
// # Quick Start
//
//	state := cubecode.NewCubeState()
//	state.SetColor(cubecode.FaceF, 0, 0, cubecode.Red)
//	code := cubecode.Encode(state)
//
//	other := cubecode.NewCubeState()
//	if err := cubecode.Decode(code, other); err != nil {
//	    // errors.Is(err, cubecode.ErrInvalidEncoding)
//	}
//
// # Solving
//
// The search itself is done by an external program behind the Solver
// interface. Submit validates the code before calling it, and the numbered
// solver failures come back as *SolverError values:
//
//	sol, err := cubecode.Submit(ctx, solver, state, 21)
//	if errors.Is(err, cubecode.ErrParity) {
//	    // two corners or two edges have to be exchanged
//	}
//
// A CubeState is not safe for concurrent use.
package cubecode
