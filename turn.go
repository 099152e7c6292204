package cubecode

// Face turns are computed from sticker geometry: every cell has a position
// on the 3x3x3 lattice (each coordinate in -1..1) and an outward normal.
// x points right, y up, z toward the front face.

type vec [3]int

func (a vec) dot(b vec) int {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a vec) cross(b vec) vec {
	return vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// rotateCW turns v a quarter turn clockwise as seen looking down axis n
// from outside the cube.
func rotateCW(v, n vec) vec {
	c := n.cross(v)
	d := n.dot(v)
	return vec{-c[0] + n[0]*d, -c[1] + n[1]*d, -c[2] + n[2]*d}
}

type sticker struct {
	pos    vec
	normal vec
}

// faceNormals[f] is the outward normal of face f.
var faceNormals = [NumFaces]vec{
	FaceU: {0, 1, 0},
	FaceR: {1, 0, 0},
	FaceF: {0, 0, 1},
	FaceD: {0, -1, 0},
	FaceL: {-1, 0, 0},
	FaceB: {0, 0, -1},
}

// stickerOf places a cell on the lattice using the standard net orientation:
// U seen from above with B at the top, D seen from below with F at the top,
// and the side faces seen from outside with U at the top.
func stickerOf(c Cell) sticker {
	r, k := c.Row, c.Col
	var p vec
	switch c.Face {
	case FaceU:
		p = vec{k - 1, 1, r - 1}
	case FaceR:
		p = vec{1, 1 - r, 1 - k}
	case FaceF:
		p = vec{k - 1, 1 - r, 1}
	case FaceD:
		p = vec{k - 1, -1, 1 - r}
	case FaceL:
		p = vec{-1, 1 - r, k - 1}
	case FaceB:
		p = vec{1 - k, 1 - r, -1}
	}
	return sticker{pos: p, normal: faceNormals[c.Face]}
}

// turnPerms[f][dst] is the code position whose color lands on dst after a
// clockwise turn of face f.
var turnPerms [NumFaces][CodeLength]int

func init() {
	index := make(map[sticker]int, CodeLength)
	for i := 0; i < CodeLength; i++ {
		c, _ := CellAt(i)
		index[stickerOf(c)] = i
	}

	for _, f := range Faces {
		n := faceNormals[f]
		for i := 0; i < CodeLength; i++ {
			turnPerms[f][i] = i
		}
		for i := 0; i < CodeLength; i++ {
			c, _ := CellAt(i)
			st := stickerOf(c)
			if st.pos.dot(n) != 1 {
				continue
			}
			moved := sticker{pos: rotateCW(st.pos, n), normal: rotateCW(st.normal, n)}
			turnPerms[f][index[moved]] = i
		}
	}
}

// Apply turns faces of the cube in sequence.
// Invalid moves (see Move.Valid) are skipped.
func (s *CubeState) Apply(moves ...Move) {
	for _, m := range moves {
		if !m.Valid() {
			continue
		}
		for q := m.Turn.quarterTurns(); q > 0; q-- {
			s.turnCW(m.Face)
		}
	}
}

// ApplyNotation parses and applies a move sequence such as "R U R' U'".
func (s *CubeState) ApplyNotation(notation string) error {
	moves, err := ParseMoves(notation)
	if err != nil {
		return err
	}
	s.Apply(moves...)
	return nil
}

// turnCW expects a valid face; Apply filters the rest.
func (s *CubeState) turnCW(f Face) {
	var flat [CodeLength]Color
	for i := range flat {
		c, _ := CellAt(i)
		flat[i] = s.at(c)
	}
	for dst, src := range turnPerms[f] {
		c, _ := CellAt(dst)
		s.cells[c.Face][c.Row][c.Col] = flat[src]
	}
}
