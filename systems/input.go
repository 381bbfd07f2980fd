package systems

import (
	"math"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/yohamta/donburi"
)

// captureInput records this frame's input state into every fighter's buffer.
func (c *Context) captureInput(f engine.Frame, e *donburi.Entry) {
	slot := components.Fighter.Get(e).Slot
	state := c.source(slot).Poll(f.Index)
	components.Input.Get(e).Buffer.Push(state)
}

// updateFacing points every fighter at its nearest opponent.
func (c *Context) updateFacing(_ engine.Frame, entries []*donburi.Entry) {
	for _, e := range entries {
		pos := components.Transform.Get(e).Position
		best := math.Inf(1)
		var target float64
		found := false
		for _, other := range entries {
			if other.Entity() == e.Entity() {
				continue
			}
			op := components.Transform.Get(other).Position
			if d := math.Abs(op.X - pos.X); d < best {
				best, target, found = d, op.X, true
			}
		}
		if !found || target == pos.X {
			continue
		}
		components.State.Get(e).OnLeftSide = pos.X < target
	}
}
