// Package tetrion implements the discrete Tetris state machine: active
// piece, lock stack, preview queue, hold slot, SRS rotation, and line
// clearing. It knows nothing about wall-clock time; the driver package
// layers DAS/ARR/gravity/lock-delay on top of it.
package tetrion

import (
	"log/slog"

	"tetrion/bag"
	"tetrion/playfield"
	"tetrion/shapes"
)

// Tetrion is a Tetris machine. The zero value is not usable; construct
// with New. Every exported method either commits its effect atomically
// or leaves the receiver unchanged and returns an error — there is no
// partially-applied state a caller can observe.
type Tetrion struct {
	piece *Piece

	locked        playfield.Playfield
	bag           *bag.Bag
	queue         []shapes.Name
	hold          *shapes.Name
	canHold       bool
	cleared       uint64
	garbagePolicy playfield.GarbageHolePolicy

	log *slog.Logger
}

// New builds a Tetrion: an empty locked field (plus any configured
// initial garbage), a freshly seeded bag, and a preview queue already
// filled to size. No piece is active until the first Spawn.
func New(cfg Config) *Tetrion {
	cfg = cfg.withDefaults()
	b := bag.New(cfg.Seed)

	queue := make([]shapes.Name, cfg.PreviewSize)
	for i := range queue {
		queue[i] = b.Draw()
	}

	t := &Tetrion{
		locked:        playfield.Empty(cfg.Cols, cfg.Rows),
		bag:           b,
		queue:         queue,
		canHold:       true,
		garbagePolicy: cfg.GarbageHolePolicy,
		log:           cfg.Logger,
	}
	if cfg.InitialGarbageRows > 0 {
		t.locked.AddGarbage(cfg.InitialGarbageRows, t.garbagePolicy, t.bag.Rand())
	}
	return t
}

// SpawnShape creates the active piece at its default centered spawn
// position and spawn rotation, without touching the queue or hold
// gate. It's the primitive Spawn and Hold build on.
func (t *Tetrion) SpawnShape(name shapes.Name) error {
	return t.spawnShapeAt(name, shapes.Spawn, nil, nil)
}

// SpawnShapeAt is SpawnShape with an explicit position and rotation,
// for tests and hosts that want to place a piece precisely.
func (t *Tetrion) SpawnShapeAt(name shapes.Name, rotation shapes.Rotation, x, y int) error {
	return t.spawnShapeAt(name, rotation, &x, &y)
}

func (t *Tetrion) spawnShapeAt(name shapes.Name, rotation shapes.Rotation, x, y *int) error {
	minX, maxX, minY, _ := shapes.Bounds(name, rotation)
	width := maxX - minX + 1

	px := 0
	if x != nil {
		px = *x
	} else {
		leftmost := (t.locked.Cols - width) / 2
		px = leftmost - minX
	}
	py := 0
	if y != nil {
		py = *y
	} else {
		py = t.locked.VisibleRows - minY
	}

	candidate := Piece{Shape: name, Rotation: rotation, X: px, Y: py}
	if !t.locked.CanPlace(candidate.blocks()) {
		t.log.Debug("spawn blocked", slog.String("shape", string(name)))
		return ErrBlockOut
	}
	t.piece = &candidate
	return nil
}

// Spawn pops the queue head, refills the queue from the bag, spawns
// that shape at its default position, and re-opens the hold gate.
func (t *Tetrion) Spawn() error {
	name := t.queue[0]
	if err := t.SpawnShape(name); err != nil {
		return err
	}
	t.queue = append(append([]shapes.Name(nil), t.queue[1:]...), t.bag.Draw())
	t.canHold = true
	return nil
}

// Move shifts the active piece by (dx, dy), failing with CannotMove if
// there is no active piece or the new position would overlap the lock
// stack or leave the field.
func (t *Tetrion) Move(dx, dy int) error {
	if t.piece == nil {
		return ErrCannotMove
	}
	candidate := *t.piece
	candidate.X += dx
	candidate.Y += dy
	if !t.locked.CanPlace(candidate.blocks()) {
		return ErrCannotMove
	}
	t.piece = &candidate
	return nil
}

// Left, Right, and Drop are sugar for Move in the three single-cell
// directions the rules actually use.
func (t *Tetrion) Left() error  { return t.Move(-1, 0) }
func (t *Tetrion) Right() error { return t.Move(1, 0) }
func (t *Tetrion) Drop() error  { return t.Move(0, -1) }

// HardDrop drops the piece until it is grounded. It never fails: a
// piece with no legal drop simply doesn't move.
func (t *Tetrion) HardDrop() {
	for t.Drop() == nil {
	}
}

// CanDrop reports, without moving anything, whether the active piece
// could move one row down right now.
func (t *Tetrion) CanDrop() bool {
	if t.piece == nil {
		return false
	}
	candidate := *t.piece
	candidate.Y--
	return t.locked.CanPlace(candidate.blocks())
}

// Rotate attempts a single 90-degree rotation, clockwise if cw is
// true, trying each SRS kick candidate in order.
func (t *Tetrion) Rotate(cw bool) error {
	if t.piece == nil {
		return ErrCannotRotate
	}
	from := t.piece.Rotation
	to := shapes.Rotation((int(from) + 1) % 4)
	if !cw {
		to = shapes.Rotation((int(from) + 3) % 4)
	}
	candidate, ok := t.rotateCandidate(*t.piece, from, to)
	if !ok {
		return ErrCannotRotate
	}
	t.piece = &candidate
	return nil
}

// Rotate180 attempts the two non-SRS fallback strategies described in
// the rules: an untranslated flip, then two chained quarter-rotations.
func (t *Tetrion) Rotate180() error {
	if t.piece == nil {
		return ErrCannotRotate
	}
	from := t.piece.Rotation
	to := shapes.Rotation((int(from) + 2) % 4)

	identity := *t.piece
	identity.Rotation = to
	if t.locked.CanPlace(identity.blocks()) {
		t.piece = &identity
		return nil
	}

	mid := shapes.Rotation((int(from) + 1) % 4)
	if step1, ok := t.rotateCandidate(*t.piece, from, mid); ok {
		if step2, ok := t.rotateCandidate(step1, mid, to); ok {
			t.piece = &step2
			return nil
		}
	}
	return ErrCannotRotate
}

// rotateCandidate tries every kick offset for a single from->to step
// and returns the first piece value that fits, without touching t.piece.
func (t *Tetrion) rotateCandidate(p Piece, from, to shapes.Rotation) (Piece, bool) {
	for _, off := range shapes.KickOffsets(p.Shape, from, to) {
		candidate := p
		candidate.Rotation = to
		candidate.X += off.X
		candidate.Y += off.Y
		if t.locked.CanPlace(candidate.blocks()) {
			return candidate, true
		}
	}
	return Piece{}, false
}

// Lock commits the active piece into the lock stack, clears any full
// lines, and clears the active piece. It fails with LockOut if every
// one of the piece's cells sits at or above the visible ceiling.
func (t *Tetrion) Lock() error {
	if t.piece == nil {
		return nil
	}
	blocks := t.piece.blocks()
	minY := blocks[0].Pos.Y
	for _, b := range blocks {
		if b.Pos.Y < minY {
			minY = b.Pos.Y
		}
	}
	if minY >= t.locked.VisibleRows {
		return ErrLockOut
	}
	if err := t.locked.AddBlocks(blocks); err != nil {
		// Active pieces never overlap the lock stack by construction;
		// reaching here means an invariant elsewhere broke.
		t.log.Error("lock: active piece overlapped locked stack", slog.Any("err", err))
	}
	t.cleared += uint64(t.locked.ClearLines())
	t.piece = nil
	return nil
}

// Hold swaps the active piece with the hold slot, or, if the slot is
// empty, parks the active piece there and spawns the next queued
// shape. Fails with CannotHold if the gate is already closed.
func (t *Tetrion) Hold() error {
	if !t.canHold || t.piece == nil {
		return ErrCannotHold
	}
	current := t.piece.Shape

	if t.hold == nil {
		if err := t.Spawn(); err != nil {
			return err
		}
		held := current
		t.hold = &held
		t.canHold = false
		return nil
	}

	swappedIn := *t.hold
	if err := t.SpawnShape(swappedIn); err != nil {
		return err
	}
	t.hold = &current
	t.canHold = false
	return nil
}

// AddGarbage prepends n garbage rows to the lock stack, each with a
// single hole column chosen by the configured GarbageHolePolicy, drawn
// from the Tetrion's own seeded PRNG stream.
func (t *Tetrion) AddGarbage(n int) {
	t.locked.AddGarbage(n, t.garbagePolicy, t.bag.Rand())
}

// ghostDrop computes, without mutating any state, the piece position
// the active piece would come to rest at after a hard drop.
func (t *Tetrion) ghostDrop() Piece {
	p := *t.piece
	for {
		candidate := p
		candidate.Y--
		if !t.locked.CanPlace(candidate.blocks()) {
			return p
		}
		p = candidate
	}
}

// Playfield returns a snapshot of the lock stack with the active piece
// overlaid, and, if includeGhost is set, the hard-drop landing position
// overlaid as Ghost-variant tiles that never displace real blocks.
func (t *Tetrion) Playfield(includeGhost bool) playfield.Playfield {
	snap := t.locked.Clone()
	if t.piece == nil {
		return snap
	}
	if err := snap.AddBlocks(t.piece.blocks()); err != nil {
		t.log.Error("snapshot: active piece overlapped locked stack", slog.Any("err", err))
	}
	if includeGhost {
		ghost := t.ghostDrop()
		snap.AddBlocksBestEffort(blocksAt(ghost, playfield.Ghost))
	}
	return snap
}

// Queue returns a copy of the upcoming shapes, head first.
func (t *Tetrion) Queue() []shapes.Name {
	out := make([]shapes.Name, len(t.queue))
	copy(out, t.queue)
	return out
}

// HoldShape returns the held shape and whether the hold slot is
// occupied.
func (t *Tetrion) HoldShape() (shapes.Name, bool) {
	if t.hold == nil {
		return "", false
	}
	return *t.hold, true
}

// CanHold reports whether the hold gate is currently open.
func (t *Tetrion) CanHold() bool { return t.canHold }

// Cleared returns the cumulative number of lines cleared since
// construction.
func (t *Tetrion) Cleared() uint64 { return t.cleared }

// HasPiece reports whether a piece is currently active.
func (t *Tetrion) HasPiece() bool { return t.piece != nil }
