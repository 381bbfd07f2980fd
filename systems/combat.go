package systems

import (
	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/tags"
	"github.com/yohamta/donburi"
)

// resolveHits tests every live hitbox against every other fighter's hurtbox.
// Flags from the previous tick are cleared first, even while frozen. When one
// hurtbox takes several boxes in a tick the last box iterated wins, boxes being
// iterated in creation order.
func (c *Context) resolveHits(f engine.Frame, set engine.PairSet) {
	for _, e := range set.Main {
		st := components.State.Get(e)
		st.HitThisFrame = false
		st.ThrownThisFrame = false
		st.HitOnLeftSide = false
		st.Hitting = false
		st.ThrowSuccess = false
	}
	if f.DT <= 0 {
		return
	}

	for _, p := range set.Pairs {
		defender, box := p.Main, p.Sub
		hb := components.Hitbox.Get(box)
		if hb.Consumed || hb.Owner == defender.Entity() || !c.has(defender, components.Hittable) {
			continue
		}
		if components.State.Get(defender).Invulnerable {
			continue
		}
		hurt := components.Hurtbox.Get(defender)
		if !broadphase(hurt, hb) || !hb.Box.Overlaps(hurt.World) {
			continue
		}
		if hb.Kind == animation.Throwbox && !c.throwable(defender) {
			continue
		}
		c.land(f, defender, hb)
	}
}

func broadphase(hurt *components.HurtboxData, hb *components.HitboxData) bool {
	if hurt.Object == nil || hb.Object == nil {
		return true
	}
	check := hurt.Object.Check(0, 0, tags.ResolvHitbox)
	if check == nil {
		return false
	}
	for _, o := range check.Objects {
		if o == hb.Object {
			return true
		}
	}
	return false
}

// throwable excludes airborne, stunned and downed fighters from grabs.
func (c *Context) throwable(e *donburi.Entry) bool {
	if c.has(e, components.Airborne) {
		return false
	}
	return !components.Action.Get(e).Kind.Stun()
}

func (c *Context) land(f engine.Frame, defender *donburi.Entry, hb *components.HitboxData) {
	hb.Consumed = true
	hit := hb.Hit
	hurt := components.Hurtbox.Get(defender)
	hx, _ := hb.Box.Center()
	dx, _ := hurt.World.Center()
	fromLeft := hx < dx
	if hx == dx && c.Store.Has(hb.Owner, components.Transform) {
		fromLeft = components.Transform.Get(c.Store.Entry(hb.Owner)).Position.X < components.Transform.Get(defender).Position.X
	}
	if !fromLeft {
		hit.Knockback.X = -hit.Knockback.X
	}

	st := components.State.Get(defender)
	st.Hit = hit
	st.HitOnLeftSide = fromLeft
	throw := hb.Kind == animation.Throwbox
	if throw {
		st.ThrownThisFrame = true
	} else {
		st.HitThisFrame = true
	}

	attack := ""
	if c.Store.Valid(hb.Owner) {
		owner := c.Store.Entry(hb.Owner)
		if c.has(owner, components.State) {
			ost := components.State.Get(owner)
			if throw {
				ost.ThrowSuccess = true
			} else {
				ost.Hitting = true
			}
		}
		if c.has(owner, components.AttackState) {
			as := components.AttackState.Get(owner)
			as.Connected = true
			attack = as.Attack
		}
	}

	c.Logger.Debug("hit", "attacker", hb.Owner, "defender", defender.Entity(), "attack", attack, "frame", f.Index)
	HitLandedEvent.Publish(c.World(), HitLanded{
		Attacker: hb.Owner,
		Defender: defender.Entity(),
		Attack:   attack,
		Throw:    throw,
		Damage:   hit.Damage,
		Frame:    f.Index,
	})
	if hit.Hitstop > 0 {
		HitstopRequestedEvent.Publish(c.World(), HitstopRequested{Frames: hit.Hitstop, Frame: f.Index})
	}
}
