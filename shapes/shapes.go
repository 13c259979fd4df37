// Package shapes holds the immutable tetromino lookup tables: the seven
// guideline shapes, their four rotation states, and the render-facing
// color contract. Everything here is computed once at process start and
// never mutated afterwards.
package shapes

import "sync"

// Name identifies one of the seven guideline tetrominoes.
type Name string

const (
	L Name = "L"
	J Name = "J"
	S Name = "S"
	Z Name = "Z"
	O Name = "O"
	I Name = "I"
	T Name = "T"
)

// All returns the seven guideline shapes in a fixed, stable order. It is
// the order a fresh bag shuffles.
func All() []Name {
	return []Name{L, J, S, Z, O, I, T}
}

// Rotation counts clockwise quarter turns from the spawn orientation.
type Rotation int

const (
	Spawn Rotation = 0
	R     Rotation = 1 // 90 degrees clockwise
	Flip  Rotation = 2 // 180 degrees
	Left  Rotation = 3 // 90 degrees counter-clockwise (270 cw)
)

// Point is a cell offset within a shape's bounding box, origin at the
// bottom-left, x growing right and y growing up.
type Point struct {
	X, Y int
}

// spawnGrids are the canonical rotation-0 bounding matrices, written the
// way a person reads a picture: row 0 is the top of the box. buildBlocks()
// below turns each of these into the four SRS rotation states by
// repeatedly rotating the matrix clockwise, the same transform the
// reference game's in-place piece rotation used.
var spawnGrids = map[Name][][]bool{
	I: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	J: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	L: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
	O: {
		{true, true},
		{true, true},
	},
	S: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	Z: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
	T: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
}

var blocksOnce = sync.OnceValue(buildBlocks)

// buildBlocks precomputes Blocks(name, rotation) for all 28 combinations.
func buildBlocks() map[Name][4][]Point {
	out := make(map[Name][4][]Point, len(spawnGrids))
	for name, grid := range spawnGrids {
		var states [4][]Point
		g := grid
		for r := range 4 {
			states[r] = trim(g)
			g = rotateCW(g)
		}
		out[name] = states
	}
	return out
}

// rotateCW rotates a square boolean grid 90 degrees clockwise.
func rotateCW(grid [][]bool) [][]bool {
	out := make([][]bool, len(grid))
	for i := range out {
		out[i] = make([]bool, len(grid[i]))
	}
	for ir, row := range grid {
		col := len(row) - ir - 1
		for ic, v := range row {
			out[ic][col] = v
		}
	}
	return out
}

// trim converts a top-down boolean grid into the minimal set of
// bottom-left-origin offsets it covers.
func trim(grid [][]bool) []Point {
	height := len(grid)
	minX, minY, maxX, maxY := height, height, -1, -1
	type cell struct{ x, y int }
	var cells []cell
	for ir, row := range grid {
		y := height - 1 - ir
		for ix, v := range row {
			if !v {
				continue
			}
			cells = append(cells, cell{ix, y})
			if ix < minX {
				minX = ix
			}
			if ix > maxX {
				maxX = ix
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	points := make([]Point, len(cells))
	for i, c := range cells {
		points[i] = Point{X: c.x - minX, Y: c.y - minY}
	}
	return points
}

// Blocks returns the cell offsets for a shape at the given rotation.
// The set has exactly 4 cells for every guideline tetromino.
func Blocks(name Name, rotation Rotation) []Point {
	table := blocksOnce()
	states, ok := table[name]
	if !ok {
		return nil
	}
	r := ((int(rotation) % 4) + 4) % 4
	src := states[r]
	out := make([]Point, len(src))
	copy(out, src)
	return out
}

// Bounds returns the inclusive bounding box of a shape's offsets at the
// given rotation: minX, maxX, minY, maxY.
func Bounds(name Name, rotation Rotation) (minX, maxX, minY, maxY int) {
	blocks := Blocks(name, rotation)
	minX, minY = blocks[0].X, blocks[0].Y
	for _, b := range blocks {
		if b.X < minX {
			minX = b.X
		}
		if b.X > maxX {
			maxX = b.X
		}
		if b.Y < minY {
			minY = b.Y
		}
		if b.Y > maxY {
			maxY = b.Y
		}
	}
	return minX, maxX, minY, maxY
}

// Color is the shape-color contract consumed by renderers.
func Color(name Name) (r, g, b byte) {
	switch name {
	case L:
		return 255, 128, 0
	case J:
		return 0, 132, 255
	case S:
		return 0, 217, 51
	case Z:
		return 245, 7, 7
	case T:
		return 205, 7, 245
	case I:
		return 0, 247, 255
	case O:
		return 242, 235, 12
	default:
		return 156, 154, 154 // Garbage
	}
}
