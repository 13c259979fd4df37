package main

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tetrion/driver"
	"tetrion/playfield"
	"tetrion/shapes"
)

//go:embed layout.tmpl
var layoutSrc string

const (
	hideCursor = "\033[2J\033[?25l"
	showCursor = "\033[?25h"
	resetPos   = "\033[H"

	// holdTimeout bridges the gap between a raw terminal's repeated
	// key-press events and an actual key-up: as long as presses keep
	// arriving faster than this, the direction reads as held.
	holdTimeout = 120 * time.Millisecond
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in a raw terminal, ANSI truecolor blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := driverConfigFromFlags(cmd)
			if err != nil {
				return err
			}
			return runClassic(cfg)
		},
	}
}

func runClassic(cfg driver.Config) error {
	restore, err := startRawConsole()
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer restore()

	tpl, err := loadLayout()
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	keysCh, err := keyboard.GetKeys(20)
	if err != nil {
		return fmt.Errorf("open keyboard: %w", err)
	}
	defer keyboard.Close()

	start := time.Now()
	ms := func() int64 { return time.Since(start).Milliseconds() }

	d := driver.New(ms(), cfg)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	left, right, down := newHoldTimer(), newHoldTimer(), newHoldTimer()

	fmt.Print(hideCursor)
	defer fmt.Print(showCursor)

	for {
		select {
		case <-left.timer.C:
			d.LeftReleased(ms())
			left.held = false
		case <-right.timer.C:
			d.RightReleased(ms())
			right.held = false
		case <-down.timer.C:
			d.SoftDropReleased(ms())
			down.held = false

		case event, ok := <-keysCh:
			if !ok {
				return nil
			}
			if event.Err != nil {
				log.Printf("keyboard error: %v", event.Err)
				return nil
			}
			now := ms()
			switch {
			case event.Key == keyboard.KeyCtrlC || event.Rune == 'q':
				return nil
			case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
				if !left.held {
					d.LeftPressed(now)
					left.held = true
				}
				left.arm()
			case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
				if !right.held {
					d.RightPressed(now)
					right.held = true
				}
				right.arm()
			case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
				if !down.held {
					d.SoftDropPressed(now)
					down.held = true
				}
				down.arm()
			case event.Key == keyboard.KeyArrowUp || event.Rune == 'e':
				d.RotateCW(now)
			case event.Rune == 'w':
				d.RotateCCW(now)
			case event.Rune == 'r':
				d.Rotate180(now)
			case event.Key == keyboard.KeySpace:
				d.HardDrop(now)
			case event.Rune == 'c':
				d.Hold(now)
			}

		case <-ticker.C:
			d.Tick(ms())
			render(tpl, d)
			if d.GameOver() {
				fmt.Print("\r\n  Game over.\r\n")
				return nil
			}
		}
	}
}

// holdTimer bridges repeated raw-terminal key-press events into a
// press/release pair, see holdTimeout.
type holdTimer struct {
	timer *time.Timer
	held  bool
}

func newHoldTimer() *holdTimer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return &holdTimer{timer: t}
}

func (h *holdTimer) arm() {
	h.timer.Stop()
	h.timer.Reset(holdTimeout)
}

func startRawConsole() (func(), error) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("set terminal to raw mode: %w", err)
	}
	return func() {
		if err := term.Restore(int(os.Stdin.Fd()), oldState); err != nil {
			log.Printf("unable to restore terminal state: %v", err)
		}
	}, nil
}

func loadLayout() (*template.Template, error) {
	src := strings.ReplaceAll(layoutSrc, "\n", "\r\n")
	return template.New("layout").Parse(src)
}

type view struct {
	Rows    []string
	Hold    string
	Queue   string
	Cleared uint64
	FPS     float64
}

func render(tpl *template.Template, d *driver.Driver) {
	fmt.Print(resetPos)
	v := buildView(d)
	if err := tpl.Execute(os.Stdout, v); err != nil {
		log.Printf("render: %v", err)
	}
}

func buildView(d *driver.Driver) view {
	pf := d.Playfield(true)
	matrix := pf.BlockMatrix()
	rows := make([]string, pf.VisibleRows)
	for y := 0; y < pf.VisibleRows; y++ {
		var b strings.Builder
		for x := 0; x < pf.Cols; x++ {
			b.WriteString(cellANSI(matrix[y][x]))
		}
		rows[pf.VisibleRows-1-y] = b.String()
	}

	holdName := "-"
	if h, ok := d.Hold_(); ok {
		holdName = string(h)
	}
	var queue strings.Builder
	for i, n := range d.Queue() {
		if i > 0 {
			queue.WriteString(" ")
		}
		queue.WriteString(string(n))
	}

	return view{
		Rows:    rows,
		Hold:    holdName,
		Queue:   queue.String(),
		Cleared: d.Cleared(),
		FPS:     d.FPSEstimate(),
	}
}

func cellANSI(t playfield.Tile) string {
	if t.Empty() {
		return "  "
	}
	var name shapes.Name
	if !t.Garbage {
		name = t.Shape
	}
	r, g, b := shapes.Color(name)
	if t.Variant == playfield.Ghost {
		return fmt.Sprintf("\x1b[2m\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", r, g, b)
}
