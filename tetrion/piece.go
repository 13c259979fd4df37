package tetrion

import (
	"tetrion/playfield"
	"tetrion/shapes"
)

// Piece is the active tetromino: a shape, a rotation state, and the
// offset applied to the shape's template to place it on the field.
type Piece struct {
	Shape    shapes.Name
	Rotation shapes.Rotation
	X, Y     int
}

// blocks returns the piece's cells as playfield Blocks at its current
// position, tagged Normal.
func (p Piece) blocks() []playfield.Block {
	return blocksAt(p, playfield.Normal)
}

func blocksAt(p Piece, variant playfield.Variant) []playfield.Block {
	tmpl := shapes.Blocks(p.Shape, p.Rotation)
	out := make([]playfield.Block, len(tmpl))
	for i, pt := range tmpl {
		out[i] = playfield.Block{
			Pos:  playfield.Point{X: p.X + pt.X, Y: p.Y + pt.Y},
			Tile: playfield.Tile{Shape: p.Shape, Variant: variant},
		}
	}
	return out
}
