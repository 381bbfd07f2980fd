package systems

import (
	"math"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// contactEpsilon is how close two edges must be to count as touching.
const contactEpsilon = 0.001

type body struct {
	entry  *donburi.Entry
	obj    *resolv.Object
	startX float64
	startY float64
}

// integrate moves every body by its velocity, horizontal first, stopping at
// solids. Fighters whose pushboxes overlap afterwards are separated, and the
// sides each body ends up touching are recorded for the next tick.
func (c *Context) integrate(f engine.Frame, entries []*donburi.Entry) {
	if f.DT <= 0 {
		for _, e := range entries {
			components.Rigidbody.Get(e).Effective.X = 0
			components.Rigidbody.Get(e).Effective.Y = 0
		}
		return
	}

	bodies := make([]body, 0, len(entries))
	for _, e := range entries {
		obj := components.Object.Get(e).Object
		if obj == nil {
			continue
		}
		bodies = append(bodies, body{entry: e, obj: obj, startX: obj.X, startY: obj.Y})

		rb := components.Rigidbody.Get(e)
		if rb.UseGravity {
			rb.Velocity.Y = math.Min(rb.Velocity.Y+config.Physics.Gravity*f.DT, config.Physics.MaxFallSpeed)
		}
		c.sweepX(rb, obj, rb.Velocity.X*f.DT)
		c.sweepY(rb, obj, rb.Velocity.Y*f.DT)
	}

	c.separate(bodies)

	for _, b := range bodies {
		rb := components.Rigidbody.Get(b.entry)
		tr := components.Transform.Get(b.entry)
		dx, dy := b.obj.X-b.startX, b.obj.Y-b.startY
		tr.Position.X += dx
		tr.Position.Y += dy
		rb.Effective.X = dx / f.DT
		rb.Effective.Y = dy / f.DT

		rb.Collision = contacts(b.obj)
		rb.Grounded = rb.Collision.Has(components.SideDown)
		if rb.Grounded && rb.Velocity.Y > 0 {
			rb.Velocity.Y = 0
		}
		if c.has(b.entry, components.State) {
			components.State.Get(b.entry).Collision = rb.Collision
		}
		b.obj.Update()
	}
}

func (c *Context) sweepX(rb *components.RigidbodyData, obj *resolv.Object, dx float64) {
	if dx == 0 {
		return
	}
	moved, blocked := limitX(obj, dx)
	obj.X += moved
	if !blocked {
		return
	}
	if rb.Elastic {
		rb.Velocity.X = -rb.Velocity.X * config.Physics.Restitution
	} else {
		rb.Velocity.X = 0
	}
}

func (c *Context) sweepY(rb *components.RigidbodyData, obj *resolv.Object, dy float64) {
	if dy == 0 {
		return
	}
	moved, blocked := limitY(obj, dy)
	obj.Y += moved
	if blocked {
		rb.Velocity.Y = 0
	}
}

// limitX clamps a horizontal move against the solids in its path.
func limitX(obj *resolv.Object, dx float64) (float64, bool) {
	check := obj.Check(dx, 0, tags.ResolvSolid)
	if check == nil {
		return dx, false
	}
	blocked := false
	for _, s := range check.ObjectsByTags(tags.ResolvSolid) {
		if !spans(obj.Y, obj.H, s.Y, s.H) {
			continue
		}
		switch {
		case dx > 0 && obj.X+obj.W <= s.X+contactEpsilon:
			if gap := s.X - (obj.X + obj.W); gap < dx {
				dx, blocked = math.Max(gap, 0), true
			}
		case dx < 0 && obj.X >= s.X+s.W-contactEpsilon:
			if gap := s.X + s.W - obj.X; gap > dx {
				dx, blocked = math.Min(gap, 0), true
			}
		}
	}
	return dx, blocked
}

func limitY(obj *resolv.Object, dy float64) (float64, bool) {
	check := obj.Check(0, dy, tags.ResolvSolid)
	if check == nil {
		return dy, false
	}
	blocked := false
	for _, s := range check.ObjectsByTags(tags.ResolvSolid) {
		if !spans(obj.X, obj.W, s.X, s.W) {
			continue
		}
		switch {
		case dy > 0 && obj.Y+obj.H <= s.Y+contactEpsilon:
			if gap := s.Y - (obj.Y + obj.H); gap < dy {
				dy, blocked = math.Max(gap, 0), true
			}
		case dy < 0 && obj.Y >= s.Y+s.H-contactEpsilon:
			if gap := s.Y + s.H - obj.Y; gap > dy {
				dy, blocked = math.Min(gap, 0), true
			}
		}
	}
	return dy, blocked
}

// spans reports whether two intervals overlap by more than a touch.
func spans(a, alen, b, blen float64) bool {
	return a+alen > b+contactEpsilon && b+blen > a+contactEpsilon
}

// contacts tests one pixel out from every side for a touching solid.
func contacts(obj *resolv.Object) components.CollisionSide {
	var sides components.CollisionSide
	if _, blocked := limitX(obj, -1); blocked {
		sides |= components.SideLeft
	}
	if _, blocked := limitX(obj, 1); blocked {
		sides |= components.SideRight
	}
	if _, blocked := limitY(obj, -1); blocked {
		sides |= components.SideUp
	}
	if _, blocked := limitY(obj, 1); blocked {
		sides |= components.SideDown
	}
	return sides
}

// separate pushes overlapping pushboxes apart, half each. A fighter pinned
// against a wall passes its share to the other one.
func (c *Context) separate(bodies []body) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i].obj, bodies[j].obj
			if !spans(a.Y, a.H, b.Y, b.H) {
				continue
			}
			overlap := math.Min(a.X+a.W, b.X+b.W) - math.Max(a.X, b.X)
			if overlap <= 0 {
				continue
			}
			left, right := a, b
			if a.X+a.W/2 > b.X+b.W/2 {
				left, right = b, a
			}
			l, _ := limitX(left, -overlap/2)
			left.X += l
			r, _ := limitX(right, overlap+l)
			right.X += r
			if rest := overlap - r + l; rest > contactEpsilon {
				l, _ = limitX(left, -rest)
				left.X += l
			}
		}
	}
}

// pushFromWall slides an attacker back after it hit a cornered defender.
func (c *Context) pushFromWall(f engine.Frame, e *donburi.Entry) {
	wp := components.WallPush.Get(e)
	if f.DT > 0 && wp.Frames > 0 {
		dx := wp.Velocity * f.DT
		if obj := components.Object.Get(e).Object; obj != nil {
			dx, _ = limitX(obj, dx)
			obj.X += dx
			obj.Update()
		}
		components.Transform.Get(e).Position.X += dx
		wp.Frames--
	}
	if wp.Frames <= 0 {
		c.Store.Detach(e.Entity(), components.WallPush)
	}
}
