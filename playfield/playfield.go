// Package playfield implements grid storage: block placement checks,
// line clearing, and garbage injection. A Playfield never holds Ghost
// tiles — those exist only in values handed to renderers, added with
// AddBlocksBestEffort and never retained in the grid backing a lock
// stack.
package playfield

import (
	"math/rand"

	"tetrion/shapes"
)

// Variant distinguishes a rendering-only projection from a real, lock-
// stack-occupying tile.
type Variant int

const (
	Normal Variant = iota
	Ghost
)

// Tile is the contents of one cell. The zero value is an empty cell:
// no shape, not garbage.
type Tile struct {
	Shape   shapes.Name
	Garbage bool
	Variant Variant
}

// Empty reports whether a tile represents an unoccupied cell.
func (t Tile) Empty() bool {
	return !t.Garbage && t.Shape == ""
}

// Point is a playfield-absolute cell coordinate, origin bottom-left.
type Point struct {
	X, Y int
}

// Block pairs a position with the tile that should occupy it.
type Block struct {
	Pos  Point
	Tile Tile
}

// Playfield is a total_rows x cols grid of optional tiles, indexed
// [y][x] with y=0 the bottom row.
type Playfield struct {
	Cols        int
	VisibleRows int
	TotalRows   int
	grid        [][]Tile
}

// Empty builds a playfield with the given column/visible-row counts and
// a vanish zone of at least max(rows, 20) rows above them.
func Empty(cols, rows int) Playfield {
	vanish := rows
	if vanish < 20 {
		vanish = 20
	}
	total := rows + vanish
	return Playfield{
		Cols:        cols,
		VisibleRows: rows,
		TotalRows:   total,
		grid:        newGrid(total, cols),
	}
}

// FromRows builds a playfield directly from the text format described
// in the spec (".", a shape letter, or "G"), given top-to-bottom (high-y
// to low-y). The resulting playfield has no distinct vanish zone:
// VisibleRows and TotalRows both equal len(rows). Intended for tests that want a
// small, fully concrete grid rather than a full guideline-sized field.
func FromRows(cols int, rows []string) Playfield {
	total := len(rows)
	p := Playfield{Cols: cols, VisibleRows: total, TotalRows: total, grid: newGrid(total, cols)}
	for i, row := range rows {
		y := total - 1 - i
		for x, c := range row {
			if x >= cols {
				break
			}
			switch c {
			case '.':
			case 'G':
				p.grid[y][x] = Tile{Garbage: true}
			default:
				p.grid[y][x] = Tile{Shape: shapes.Name(string(c))}
			}
		}
	}
	return p
}

// Rows renders the playfield back into the spec's text format,
// top-to-bottom (high-y to low-y). Garbage is written as 'G'; a Ghost
// tile is written as its shape letter, the same as a Normal one.
func (p Playfield) Rows() []string {
	out := make([]string, p.TotalRows)
	for i := range out {
		y := p.TotalRows - 1 - i
		row := make([]byte, p.Cols)
		for x := range p.Cols {
			t := p.grid[y][x]
			switch {
			case t.Garbage:
				row[x] = 'G'
			case t.Shape != "":
				row[x] = t.Shape[0]
			default:
				row[x] = '.'
			}
		}
		out[i] = string(row)
	}
	return out
}

func newGrid(totalRows, cols int) [][]Tile {
	grid := make([][]Tile, totalRows)
	for i := range grid {
		grid[i] = make([]Tile, cols)
	}
	return grid
}

// Clone returns a deep, independent copy.
func (p Playfield) Clone() Playfield {
	out := p
	out.grid = newGrid(p.TotalRows, p.Cols)
	for y := range p.grid {
		copy(out.grid[y], p.grid[y])
	}
	return out
}

func (p Playfield) inBounds(pt Point) bool {
	return pt.X >= 0 && pt.X < p.Cols && pt.Y >= 0 && pt.Y < p.TotalRows
}

// CanPlace reports whether every block sits in range over an empty
// cell. Ghost blocks are never occupying and are not consulted by
// anything that calls CanPlace on real placements; callers that build
// ghost overlays use AddBlocksBestEffort instead.
func (p Playfield) CanPlace(blocks []Block) bool {
	for _, b := range blocks {
		if !p.inBounds(b.Pos) {
			return false
		}
		if !p.grid[b.Pos.Y][b.Pos.X].Empty() {
			return false
		}
	}
	return true
}

// ErrInvalidPlacement is returned by AddBlock/AddBlocks when the
// placement is out of range or overlaps an occupied cell.
type ErrInvalidPlacement struct{}

func (ErrInvalidPlacement) Error() string { return "playfield: invalid placement" }

// AddBlock writes a single block, failing if it cannot be placed.
func (p *Playfield) AddBlock(b Block) error {
	return p.AddBlocks([]Block{b})
}

// AddBlocks writes every block or none: if any one of them cannot be
// placed, the playfield is left unmodified.
func (p *Playfield) AddBlocks(blocks []Block) error {
	if !p.CanPlace(blocks) {
		return ErrInvalidPlacement{}
	}
	for _, b := range blocks {
		p.grid[b.Pos.Y][b.Pos.X] = b.Tile
	}
	return nil
}

// AddBlocksBestEffort writes every block that fits and silently skips
// the rest. Used only to overlay the ghost piece onto a snapshot.
func (p *Playfield) AddBlocksBestEffort(blocks []Block) {
	for _, b := range blocks {
		if p.inBounds(b.Pos) && p.grid[b.Pos.Y][b.Pos.X].Empty() {
			p.grid[b.Pos.Y][b.Pos.X] = b.Tile
		}
	}
}

// GarbageHolePolicy decides which column a garbage row's single gap
// falls in.
type GarbageHolePolicy interface {
	Hole(rng *rand.Rand, cols int) int
}

// RandomPerRow draws an independent, uniformly random hole column for
// every garbage row. This is the spec's recommended default resolution
// of its garbage-hole Open Question.
type RandomPerRow struct{}

func (RandomPerRow) Hole(rng *rand.Rand, cols int) int { return rng.Intn(cols) }

// FixedColumn always puts the hole in the same column, matching one of
// the two strategies found in the reference source.
type FixedColumn int

func (f FixedColumn) Hole(*rand.Rand, int) int { return int(f) }

// AddGarbage prepends n garbage rows at the bottom, shifting existing
// rows up and discarding whatever would overflow past TotalRows.
func (p *Playfield) AddGarbage(n int, policy GarbageHolePolicy, rng *rand.Rand) {
	if n <= 0 {
		return
	}
	fresh := make([][]Tile, n)
	for i := range fresh {
		row := make([]Tile, p.Cols)
		hole := policy.Hole(rng, p.Cols)
		for x := range row {
			if x != hole {
				row[x] = Tile{Garbage: true}
			}
		}
		fresh[i] = row
	}
	merged := append(fresh, p.grid...)
	if len(merged) > p.TotalRows {
		merged = merged[:p.TotalRows]
	}
	p.grid = merged
}

// ClearLines removes every row all of whose cells are occupied, keeps
// the relative order of survivors, and prepends empty rows on top to
// preserve TotalRows. It returns the number of rows removed.
func (p *Playfield) ClearLines() int {
	survivors := make([][]Tile, 0, p.TotalRows)
	cleared := 0
	for _, row := range p.grid {
		if rowFull(row) {
			cleared++
			continue
		}
		survivors = append(survivors, row)
	}
	if cleared == 0 {
		return 0
	}
	fresh := make([][]Tile, cleared)
	for i := range fresh {
		fresh[i] = make([]Tile, p.Cols)
	}
	p.grid = append(survivors, fresh...)
	return cleared
}

func rowFull(row []Tile) bool {
	for _, t := range row {
		if t.Empty() {
			return false
		}
	}
	return true
}

// Blocks enumerates every occupied cell.
func (p Playfield) Blocks() []Block {
	var out []Block
	for y, row := range p.grid {
		for x, t := range row {
			if !t.Empty() {
				out = append(out, Block{Pos: Point{X: x, Y: y}, Tile: t})
			}
		}
	}
	return out
}

// BlockMatrix returns a renderer-facing copy of the backing grid,
// indexed [y][x].
func (p Playfield) BlockMatrix() [][]Tile {
	out := make([][]Tile, p.TotalRows)
	for y := range out {
		out[y] = make([]Tile, p.Cols)
		copy(out[y], p.grid[y])
	}
	return out
}

// At returns the tile at a position and whether that position is in
// bounds.
func (p Playfield) At(pt Point) (Tile, bool) {
	if !p.inBounds(pt) {
		return Tile{}, false
	}
	return p.grid[pt.Y][pt.X], true
}
