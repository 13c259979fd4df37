package playfield

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tetrion/shapes"
)

func TestEmptyShapeInvariants(t *testing.T) {
	p := Empty(10, 20)
	assert.Equal(t, 20, p.VisibleRows)
	assert.GreaterOrEqual(t, p.TotalRows, 40)
	matrix := p.BlockMatrix()
	require.Len(t, matrix, p.TotalRows)
	for _, row := range matrix {
		require.Len(t, row, p.Cols)
	}
	assert.Empty(t, p.Blocks())
}

func TestCanPlaceMatchesAddBlock(t *testing.T) {
	p := Empty(10, 20)
	blocks := []Block{{Pos: Point{3, 0}, Tile: Tile{Shape: shapes.J}}}

	assert.True(t, p.CanPlace(blocks))
	require.NoError(t, p.AddBlock(blocks[0]))
	assert.False(t, p.CanPlace(blocks), "cell is now occupied")
	assert.Error(t, p.AddBlock(blocks[0]))
}

func TestAddBlocksIsAllOrNothing(t *testing.T) {
	p := Empty(4, 2)
	require.NoError(t, p.AddBlock(Block{Pos: Point{0, 0}, Tile: Tile{Shape: shapes.O}}))

	err := p.AddBlocks([]Block{
		{Pos: Point{1, 0}, Tile: Tile{Shape: shapes.O}},
		{Pos: Point{0, 0}, Tile: Tile{Shape: shapes.O}}, // occupied
	})
	assert.Error(t, err)
	tile, ok := p.At(Point{1, 0})
	require.True(t, ok)
	assert.True(t, tile.Empty(), "partial write must not have happened")
}

func TestAddGarbageRandomPerRowLeavesOneHolePerRow(t *testing.T) {
	p := Empty(10, 20)
	rng := rand.New(rand.NewSource(1))
	p.AddGarbage(3, RandomPerRow{}, rng)

	matrix := p.BlockMatrix()
	for y := range 3 {
		holes := 0
		for x := range p.Cols {
			if matrix[y][x].Empty() {
				holes++
			}
		}
		assert.Equal(t, 1, holes, "row %d should have exactly one hole", y)
	}
}

func TestAddGarbageFixedColumn(t *testing.T) {
	p := Empty(10, 20)
	p.AddGarbage(2, FixedColumn(5), rand.New(rand.NewSource(1)))
	matrix := p.BlockMatrix()
	for y := range 2 {
		tile, _ := p.At(Point{5, y})
		assert.True(t, tile.Empty())
		for x := range p.Cols {
			if x == 5 {
				continue
			}
			assert.True(t, matrix[y][x].Garbage)
		}
	}
}

func TestClearLinesScenario(t *testing.T) {
	// Scenario 4 from the spec.
	p := FromRows(2, []string{
		".S",
		"..",
		"II",
		"J.",
		"LL",
	})
	cleared := p.ClearLines()
	assert.Equal(t, 2, cleared)
	assert.Equal(t, []string{"..", "..", ".S", "..", "J."}, p.Rows())
}

func TestClearLinesPreservesTotalRows(t *testing.T) {
	p := Empty(10, 20)
	for x := range 10 {
		require.NoError(t, p.AddBlock(Block{Pos: Point{x, 0}, Tile: Tile{Shape: shapes.I}}))
	}
	before := p.TotalRows
	cleared := p.ClearLines()
	assert.Equal(t, 1, cleared)
	assert.Equal(t, before, p.TotalRows)
	for _, row := range p.BlockMatrix() {
		require.Len(t, row, p.Cols)
	}
}

func TestTextFormatRoundTrips(t *testing.T) {
	rows := []string{
		".S",
		"..",
		"II",
		"J.",
		"LL",
	}
	p := FromRows(2, rows)
	assert.Equal(t, rows, p.Rows())
}
