package shapes

import "testing"

func TestBlocksHaveFourCells(t *testing.T) {
	for _, name := range All() {
		for r := Rotation(0); r < 4; r++ {
			blocks := Blocks(name, r)
			if len(blocks) != 4 {
				t.Errorf("%s rotation %d: wanted 4 cells, got %d", name, r, len(blocks))
			}
		}
	}
}

func TestLSpawnTemplate(t *testing.T) {
	// The template behind scenario 1 from the spec: L at rotation 0 is a
	// bottom row of three plus one cell above the rightmost column.
	// Centering it on a field is checked in package tetrion.
	blocks := Blocks(L, Spawn)
	want := map[Point]bool{
		{0, 0}: true,
		{1, 0}: true,
		{2, 0}: true,
		{2, 1}: true,
	}
	if len(blocks) != len(want) {
		t.Fatalf("wanted %d blocks, got %d: %v", len(want), len(blocks), blocks)
	}
	for _, b := range blocks {
		if !want[b] {
			t.Errorf("unexpected block %v in L spawn template", b)
		}
	}
}

func TestFourRotationsReturnToStart(t *testing.T) {
	for _, name := range All() {
		start := Blocks(name, Spawn)
		g := spawnGrids[name]
		for range 4 {
			g = rotateCW(g)
		}
		got := trim(g)
		if !sameSet(start, got) {
			t.Errorf("%s: four quarter turns did not return to the spawn set: %v vs %v", name, start, got)
		}
	}
}

func TestORotationIsVisuallyIdentity(t *testing.T) {
	base := Blocks(O, Spawn)
	for r := Rotation(1); r < 4; r++ {
		if !sameSet(base, Blocks(O, r)) {
			t.Errorf("O rotation %d changed the block set: %v vs %v", r, base, Blocks(O, r))
		}
	}
}

func TestColorContract(t *testing.T) {
	tests := []struct {
		name    Name
		r, g, b byte
	}{
		{L, 255, 128, 0},
		{J, 0, 132, 255},
		{S, 0, 217, 51},
		{Z, 245, 7, 7},
		{T, 205, 7, 245},
		{I, 0, 247, 255},
		{O, 242, 235, 12},
	}
	for _, tt := range tests {
		r, g, b := Color(tt.name)
		if r != tt.r || g != tt.g || b != tt.b {
			t.Errorf("%s: wanted (%d,%d,%d), got (%d,%d,%d)", tt.name, tt.r, tt.g, tt.b, r, g, b)
		}
	}
}

func sameSet(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	am := map[Point]int{}
	for _, p := range a {
		am[p]++
	}
	for _, p := range b {
		am[p]--
	}
	for _, v := range am {
		if v != 0 {
			return false
		}
	}
	return true
}
