// Package animation holds immutable clip data, the shared clip library, the
// playback cursor and the frame event binder.
package animation

import (
	"math"

	"github.com/automoto/fightcore/action"
)

// Anchor is the corner of the frame the renderer aligns to the actor's transform.
type Anchor uint8

const (
	TopLeft Anchor = iota
	TopRight
	BottomLeft
	BottomRight
)

// Rect is a box relative to the actor origin, authored facing right.
type Rect struct {
	X, Y, W, H float64
}

// Mirror flips r around the vertical axis through the origin.
func (r Rect) Mirror() Rect {
	return Rect{X: -(r.X + r.W), Y: r.Y, W: r.W, H: r.H}
}

// Facing mirrors r when the actor faces left.
func (r Rect) Facing(right bool) Rect {
	if right {
		return r
	}
	return r.Mirror()
}

func (r Rect) Offset(x, y float64) Rect {
	return Rect{X: r.X + x, Y: r.Y + y, W: r.W, H: r.H}
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Overlaps reports a strict intersection; touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// EventKind says what an event spawns while its window is open.
type EventKind uint8

const (
	Hitbox EventKind = iota
	Throwbox
)

func (k EventKind) String() string {
	if k == Throwbox {
		return "throwbox"
	}
	return "hitbox"
}

// Event is an authored window [Start, Start+Duration) on a clip.
type Event struct {
	Name     string
	Kind     EventKind
	Start    int
	Duration int
	// Boxes holds one box per window frame; a short list repeats its last box.
	Boxes []Rect
	Hit   action.HitData
}

// End is the exclusive end frame, where the window closes.
func (e Event) End() int { return e.Start + e.Duration }

// Box returns the geometry for window frame i (0 at the trigger frame).
func (e Event) Box(i int) Rect {
	if len(e.Boxes) == 0 {
		return Rect{}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(e.Boxes) {
		i = len(e.Boxes) - 1
	}
	return e.Boxes[i]
}

// Clip is a named animation shared read-only by every actor that plays it.
type Clip struct {
	Name string
	// Frames is the number of logical game frames the clip plays for.
	Frames int
	// SheetStart and SheetFrames locate the clip on its sprite sheet.
	SheetStart  int
	SheetFrames int
	Anchor      Anchor
	Events      []Event
}

// GameFrames converts a clip authored at authoredFPS into frames at gameFPS.
func GameFrames(sheetFrames int, gameFPS, authoredFPS float64) int {
	if sheetFrames <= 0 {
		return 0
	}
	return int(math.Ceil(float64(sheetFrames) * gameFPS / authoredFPS))
}

// NewClip builds a clip that plays sheetFrames sheet cells over frames game frames.
func NewClip(name string, sheetStart, sheetFrames, frames int, anchor Anchor) *Clip {
	if frames < 1 {
		frames = 1
	}
	return &Clip{
		Name:        name,
		Frames:      frames,
		SheetStart:  sheetStart,
		SheetFrames: sheetFrames,
		Anchor:      anchor,
	}
}

// SheetFrame maps logical frame i onto the sprite sheet, stretching evenly.
func (c *Clip) SheetFrame(i int) int {
	if c.SheetFrames <= 0 {
		return c.SheetStart
	}
	if i < 0 {
		i = 0
	}
	if i >= c.Frames {
		i = c.Frames - 1
	}
	return c.SheetStart + i*c.SheetFrames/c.Frames
}

// AddEvent appends e; events starting on the same frame keep registration order.
func (c *Clip) AddEvent(e Event) {
	if e.Duration < 1 {
		e.Duration = 1
	}
	if len(e.Boxes) > e.Duration {
		e.Boxes = e.Boxes[:e.Duration]
	}
	for len(e.Boxes) > 0 && len(e.Boxes) < e.Duration {
		e.Boxes = append(e.Boxes, e.Boxes[len(e.Boxes)-1])
	}
	c.Events = append(c.Events, e)
}
