// Package driver layers wall-clock time onto a tetrion.Tetrion: DAS/ARR
// auto-shift, gravity and soft drop, and lock delay. The Tetrion itself
// never sees a timestamp; everything here translates timed events into
// the Tetrion's discrete, instantaneous operations.
package driver

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"tetrion/playfield"
	"tetrion/shapes"
	"tetrion/tetrion"
)

const fpsRingSize = 30

type keyState struct {
	pressed      bool
	lastPressMs  int64
	lastChangeMs int64
}

// Driver is a timed Tetris match. Every event method takes the
// monotonic millisecond timestamp it occurred at; the caller owns
// serializing calls onto a single goroutine.
type Driver struct {
	tet *tetrion.Tetrion
	cfg Config

	left, right, down keyState

	tDropMs      int64
	tAutoshiftMs int64
	tLockMs      int64
	lastTickMs   int64

	ticks    [fpsRingSize]int64
	tickHead int
	tickN    int

	gameOver bool
	matchID  uuid.UUID
	log      *slog.Logger
}

// New constructs a Driver and spawns its first piece. If the very
// first spawn is already a BlockOut (a pathological config with no
// room to spawn), the driver starts already game-over.
func New(startMs int64, cfg Config) *Driver {
	cfg = cfg.withDefaults()
	matchID := uuid.New()
	log := cfg.Config.Logger.With(slog.String("match_id", matchID.String()))
	cfg.Config.Logger = log

	d := &Driver{
		tet:          tetrion.New(cfg.Config),
		cfg:          cfg,
		tDropMs:      startMs,
		tAutoshiftMs: startMs,
		tLockMs:      startMs,
		lastTickMs:   startMs,
		matchID:      matchID,
		log:          log,
	}
	if err := d.tet.Spawn(); err != nil {
		d.triggerGameOver(err)
	}
	return d
}

// Restart rebuilds the driver's Tetrion and timers in place, without
// discarding the host process. It carries no replay persistence: it is
// equivalent to constructing a fresh Driver, except the caller keeps
// the same *Driver value.
func (d *Driver) Restart(startMs int64, cfg Config) {
	fresh := New(startMs, cfg)
	*d = *fresh
}

func (d *Driver) triggerGameOver(err error) {
	d.gameOver = true
	d.log.Info("game over", slog.Any("cause", err))
}

// GameOver reports whether the match has ended.
func (d *Driver) GameOver() bool { return d.gameOver }

// LeftPressed records the key and attempts an immediate single-cell
// move, swallowing failure.
func (d *Driver) LeftPressed(ms int64) {
	if d.gameOver {
		return
	}
	d.left = keyState{pressed: true, lastPressMs: ms, lastChangeMs: ms}
	if err := d.tet.Left(); err == nil {
		d.tLockMs = ms
	}
}

// LeftReleased records the key release only.
func (d *Driver) LeftReleased(ms int64) {
	if d.gameOver {
		return
	}
	d.left.pressed = false
	d.left.lastChangeMs = ms
}

// RightPressed mirrors LeftPressed for the right key.
func (d *Driver) RightPressed(ms int64) {
	if d.gameOver {
		return
	}
	d.right = keyState{pressed: true, lastPressMs: ms, lastChangeMs: ms}
	if err := d.tet.Right(); err == nil {
		d.tLockMs = ms
	}
}

// RightReleased mirrors LeftReleased for the right key.
func (d *Driver) RightReleased(ms int64) {
	if d.gameOver {
		return
	}
	d.right.pressed = false
	d.right.lastChangeMs = ms
}

// SoftDropPressed records the key and backdates t_drop_ms so the very
// next tick drops exactly one row before the soft-drop cadence takes
// over.
func (d *Driver) SoftDropPressed(ms int64) {
	if d.gameOver {
		return
	}
	d.down = keyState{pressed: true, lastPressMs: ms, lastChangeMs: ms}
	d.tDropMs = ms - d.cfg.MsPerSoftDropStep
}

// SoftDropReleased records the release; subsequent ticks revert to
// gravity cadence.
func (d *Driver) SoftDropReleased(ms int64) {
	if d.gameOver {
		return
	}
	d.down.pressed = false
	d.down.lastChangeMs = ms
}

// RotateCW attempts a clockwise quarter rotation, swallowing failure.
func (d *Driver) RotateCW(ms int64) {
	if d.gameOver {
		return
	}
	if err := d.tet.Rotate(true); err == nil {
		d.tLockMs = ms
	}
}

// RotateCCW attempts a counter-clockwise quarter rotation, swallowing
// failure.
func (d *Driver) RotateCCW(ms int64) {
	if d.gameOver {
		return
	}
	if err := d.tet.Rotate(false); err == nil {
		d.tLockMs = ms
	}
}

// Rotate180 attempts a 180-degree rotation, swallowing failure.
func (d *Driver) Rotate180(ms int64) {
	if d.gameOver {
		return
	}
	if err := d.tet.Rotate180(); err == nil {
		d.tLockMs = ms
	}
}

// HardDrop drops the piece to the floor, locks it, and spawns the
// next. A lock or spawn failure ends the match.
func (d *Driver) HardDrop(ms int64) {
	if d.gameOver {
		return
	}
	d.tet.HardDrop()
	if err := d.tet.Lock(); err != nil {
		d.triggerGameOver(err)
		return
	}
	if err := d.tet.Spawn(); err != nil {
		d.triggerGameOver(err)
		return
	}
	d.tDropMs = ms
	d.tLockMs = ms
}

// Hold swaps the active piece with the hold slot. CannotHold is
// swallowed; a BlockOut from the induced spawn ends the match.
func (d *Driver) Hold(ms int64) {
	if d.gameOver {
		return
	}
	err := d.tet.Hold()
	switch {
	case err == nil:
		d.tLockMs = ms
	case errors.Is(err, tetrion.ErrCannotHold):
		// no-op, per spec.
	case tetrion.IsGameOver(err):
		d.triggerGameOver(err)
	}
}

// Tick advances gravity/soft-drop, lock delay, and auto-shift by one
// step at time ms. It records the tick for the FPS estimate, then
// applies gravity/soft-drop and lock delay, then auto-shift.
//
// A tick arriving with ms < last_ms (clock skew, reordered delivery) is
// clamped to last_ms rather than rejected, so a single out-of-order tick
// degrades to a harmless no-op step instead of aborting the match.
func (d *Driver) Tick(ms int64) {
	if d.gameOver {
		return
	}
	if ms < d.lastTickMs {
		ms = d.lastTickMs
	}
	d.lastTickMs = ms
	d.recordTick(ms)
	d.stepGravity(ms)
	if d.gameOver {
		return
	}
	d.stepAutoshift(ms)
}

func (d *Driver) recordTick(ms int64) {
	d.ticks[d.tickHead%fpsRingSize] = ms
	d.tickHead++
	if d.tickN < fpsRingSize {
		d.tickN++
	}
}

func (d *Driver) stepGravity(ms int64) {
	rate := d.cfg.MsPerGravityDrop
	if d.down.pressed {
		rate = d.cfg.MsPerSoftDropStep
	}
	n := (ms - d.tDropMs) / rate
	d.tDropMs += n * rate
	for i := int64(0); i < n; i++ {
		if err := d.tet.Drop(); err != nil {
			break
		}
		d.tLockMs = ms
	}
	if !d.tet.HasPiece() || d.tet.CanDrop() {
		return
	}
	if ms-d.tLockMs <= d.cfg.LockDelayMs {
		return
	}
	if err := d.tet.Lock(); err != nil {
		d.triggerGameOver(err)
		return
	}
	if err := d.tet.Spawn(); err != nil {
		d.triggerGameOver(err)
		return
	}
	d.tDropMs = ms
	d.tLockMs = ms
}

func (d *Driver) stepAutoshift(ms int64) {
	var dir int
	var lastPress int64
	switch {
	case d.left.pressed && d.right.pressed:
		if d.left.lastPressMs >= d.right.lastPressMs {
			dir, lastPress = -1, d.left.lastPressMs
		} else {
			dir, lastPress = 1, d.right.lastPressMs
		}
	case d.left.pressed:
		dir, lastPress = -1, d.left.lastPressMs
	case d.right.pressed:
		dir, lastPress = 1, d.right.lastPressMs
	default:
		return
	}

	if ms-lastPress <= d.cfg.AutoshiftDelayMs {
		return
	}
	base := d.tAutoshiftMs
	if gate := lastPress + d.cfg.AutoshiftDelayMs; gate > base {
		base = gate
	}
	k := (ms - base) / d.cfg.MsPerAutoshift
	d.tAutoshiftMs = base + k*d.cfg.MsPerAutoshift

	for i := int64(0); i < k; i++ {
		var err error
		if dir < 0 {
			err = d.tet.Left()
		} else {
			err = d.tet.Right()
		}
		if err != nil {
			break
		}
		d.tLockMs = ms
	}
}

// Playfield returns the current snapshot, ghost overlay optional.
func (d *Driver) Playfield(includeGhost bool) playfield.Playfield {
	return d.tet.Playfield(includeGhost)
}

// Queue returns the upcoming shapes, head first.
func (d *Driver) Queue() []shapes.Name { return d.tet.Queue() }

// Hold_ returns the held shape and whether the slot is occupied. The
// trailing underscore avoids colliding with the Hold event method.
func (d *Driver) Hold_() (shapes.Name, bool) { return d.tet.HoldShape() }

// Cleared returns the cumulative cleared-line count.
func (d *Driver) Cleared() uint64 { return d.tet.Cleared() }

// FPSEstimate returns an estimate of ticks per second over the last 30
// recorded ticks, or 0 with fewer than two samples.
func (d *Driver) FPSEstimate() float64 {
	if d.tickN < 2 {
		return 0
	}
	oldestIdx := ((d.tickHead-d.tickN)%fpsRingSize + fpsRingSize) % fpsRingSize
	newestIdx := ((d.tickHead-1)%fpsRingSize + fpsRingSize) % fpsRingSize
	oldest, newest := d.ticks[oldestIdx], d.ticks[newestIdx]
	if newest == oldest {
		return 0
	}
	return float64(d.tickN-1) * 1000 / float64(newest-oldest)
}
