package systems

import (
	"math"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/yohamta/donburi"
)

// commit drains the transition queue. It runs once, at the end of the tick.
func (c *Context) commit(f engine.Frame) {
	c.Queue.Drain(func(r action.Request) {
		c.Apply(f, r)
	})
}

// Apply performs one transition: reset the transient set, record the new
// action, then attach what the new kind needs. Component pointers are fetched
// again after every structural change since attaching moves storage.
func (c *Context) Apply(f engine.Frame, r action.Request) {
	s := c.Store
	id := r.Entity
	if !s.Valid(id) || !s.Has(id, components.Action) || !s.Has(id, components.State) {
		return
	}
	e := s.Entry(id)
	reg := s.Registry()
	s.Strip(id, reg.Transient()|reg.Abilities())

	kind := r.Kind
	p := r.Payload
	// a hit that empties the health bar always knocks down
	if kind == action.HitStun && components.State.Get(e).HP-p.Hit.Damage <= 0 {
		kind = action.KnockdownAirborne
	}

	state := components.State.Get(e)
	*components.Action.Get(e) = components.ActionData{
		Kind:        kind,
		Attack:      p.Attack,
		Strength:    p.Strength,
		Forward:     p.Forward,
		Direction:   p.Direction,
		FacingRight: state.OnLeftSide,
		Entered:     f.Index,
	}
	state.ActionState = kind.ActionState(p.Strength)
	state.Invulnerable = false
	components.Rigidbody.Get(e).Elastic = false

	switch kind {
	case action.Neutral:
		c.enterNeutral(e, p)
	case action.Moving:
		c.enterMoving(e, p)
	case action.Crouching:
		c.enterCrouching(e)
	case action.Jumping:
		c.enterJumping(e, p)
	case action.Dashing:
		c.enterDashing(e, p)
	case action.Attacking:
		c.enterAttacking(e, p)
	case action.HitStun:
		c.enterHitStun(f, e, p)
	case action.BlockStun:
		c.enterBlockStun(e, p)
	case action.KnockdownAirborne:
		c.enterKnockdownAirborne(f, e, p)
	case action.KnockdownGroundOTG:
		c.enterKnockdownOTG(e)
	case action.KnockdownGroundInvincible:
		c.enterKnockdownInvincible(e)
	case action.Grappled:
		c.enterGrappled(e, p)
	}

	act := components.Action.Get(e)
	c.Logger.Debug("transition", "entity", id, "kind", act.Kind, "attack", act.Attack, "frame", f.Index)
	StateEnteredEvent.Publish(c.World(), StateEntered{Entity: id, Kind: act.Kind, Attack: act.Attack, Frame: f.Index})
}

func (c *Context) enableAbilities(id donburi.Entity, cts ...donburi.IComponentType) {
	for _, ct := range cts {
		c.Store.Attach(id, ct)
	}
}

func (c *Context) setHittable(id donburi.Entity, canBlock, inKnockdown bool) {
	engine.Add(c.Store, id, components.Hittable, &components.HittableData{
		CanBlock:    canBlock,
		InKnockdown: inKnockdown,
	})
}

func (c *Context) setTimed(id donburi.Entity, frames int) {
	engine.Add(c.Store, id, components.Timed, &components.TimedData{Total: max(1, frames)})
}

func (c *Context) setStance(e *donburi.Entry, stance action.Stance) {
	components.State.Get(e).Stance = stance
}

// play starts clip on the fighter's animator. An unknown clip leaves the
// current playback alone and flags the action complete so the transition
// systems can recover.
func (c *Context) play(e *donburi.Entry, clip string, looping bool, speed float64, restart bool) {
	lib := components.Fighter.Get(e).Library
	if _, err := lib.Get(clip); err != nil {
		c.Logger.Warn("animation fallback", "entity", e.Entity(), "err", err)
		components.Action.Get(e).Complete = true
		return
	}
	anim := components.Animator.Get(e)
	if !restart && anim.Clip == clip && anim.Playing {
		return
	}
	anim.Play(clip, looping, speed)
	anim.Steps = 0
}

// enterNeutral picks the crouch or idle loop from the Crouching marker the
// previous action left behind.
func (c *Context) enterNeutral(e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	c.enableAbilities(id,
		components.AbleToAttack,
		components.AbleToSpecialAttack,
		components.AbleToDash,
		components.AbleToJump,
		components.AbleToWalk,
		components.AbleToCrouch,
	)
	c.setHittable(id, true, false)
	c.Store.Detach(id, components.Airborne)
	crouching := (p.Crouching || c.Store.Has(id, components.Crouching)) && !p.StandUp
	if crouching {
		c.Store.Attach(id, components.Crouching)
		c.Store.Attach(id, components.AbleToReturnToNeutral)
	} else {
		c.Store.Detach(id, components.Crouching)
	}

	components.Rigidbody.Get(e).Velocity.X = 0
	state := components.State.Get(e)
	state.ComboCounter = 0
	if crouching {
		state.Stance = action.CrouchingStance
		c.play(e, "Crouch", true, 1, false)
		return
	}
	state.Stance = action.Standing
	c.play(e, "Idle", true, 1, false)
}

func (c *Context) enterMoving(e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	c.enableAbilities(id,
		components.AbleToAttack,
		components.AbleToSpecialAttack,
		components.AbleToDash,
		components.AbleToJump,
		components.AbleToWalk,
		components.AbleToCrouch,
		components.AbleToReturnToNeutral,
	)
	c.setHittable(id, true, false)
	c.Store.Detach(id, components.Crouching)

	walk := components.Fighter.Get(e).Character.WalkSpeed
	components.Rigidbody.Get(e).Velocity.X = float64(p.Direction) * walk
	c.setStance(e, action.Standing)
	clip := "WalkB"
	if p.Forward {
		clip = "WalkF"
	}
	c.play(e, clip, true, 1, true)
}

func (c *Context) enterCrouching(e *donburi.Entry) {
	id := e.Entity()
	c.Store.Attach(id, components.Crouching)
	c.Store.Attach(id, components.ToCrouching)
	c.Store.Attach(id, components.WaitForAnimation)
	c.enableAbilities(id, components.AbleToAttack)
	c.setHittable(id, true, false)

	components.Rigidbody.Get(e).Velocity.X = 0
	c.setStance(e, action.CrouchingStance)
	c.play(e, "Crouching", false, 1, true)
}

func (c *Context) enterJumping(e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	c.Store.Attach(id, components.Airborne)
	c.Store.Attach(id, components.WaitingForAirborne)
	c.Store.Detach(id, components.Crouching)
	c.enableAbilities(id, components.AbleToAttack)
	c.setHittable(id, false, false)

	c.setStance(e, action.JumpingStance)
	rb := components.Rigidbody.Get(e)
	if !rb.Grounded {
		c.play(e, "Falling", false, 1, true)
		return
	}
	char := components.Fighter.Get(e).Character
	rb.Velocity.X = float64(p.Direction) * char.WalkSpeed
	rb.Velocity.Y = -char.JumpSpeed
	rb.Grounded = false
	c.play(e, "Jumping", false, 1, true)
}

func (c *Context) enterDashing(e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	walk := components.Fighter.Get(e).Character.WalkSpeed
	sign := facingSign(components.State.Get(e).OnLeftSide)
	if !p.Forward {
		sign = -sign
	}
	speed := walk * config.Action.DashSpeedScale * sign
	frames := config.Action.DashFrames

	engine.Add(c.Store, id, components.Dashing, &components.DashingData{Speed: speed})
	c.setTimed(id, frames)
	c.Store.Attach(id, components.ToNeutral)
	c.setHittable(id, false, false)
	c.Store.Detach(id, components.Crouching)

	components.Rigidbody.Get(e).Velocity.X = speed
	c.setStance(e, action.Standing)
	clip := "BackDash"
	if p.Forward {
		clip = "ForwardDash"
	}
	playSpeed := 1.0
	if data, err := components.Fighter.Get(e).Library.Get(clip); err == nil {
		playSpeed = float64(data.Frames) / float64(frames)
	}
	c.play(e, clip, false, playSpeed, true)
}

func (c *Context) enterAttacking(e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	fighter := components.Fighter.Get(e)
	def, ok := fighter.Character.Attack(p.Attack)
	if !ok {
		c.Logger.Warn("unknown attack", "entity", id, "attack", p.Attack)
		c.Store.Attach(id, components.ToNeutral)
		components.Action.Get(e).Complete = true
		return
	}
	events := 0
	if clip, err := fighter.Library.Get(def.Name); err == nil {
		events = len(clip.Events)
	}
	airborne := c.Store.Has(id, components.Airborne)
	strength := def.ActionState()

	c.setTimed(id, def.Total())
	engine.Add(c.Store, id, components.AttackState, &components.AttackStateData{
		Attack: def.Name,
		Cursor: animation.NewCursor(),
		Boxes:  make([]donburi.Entity, events),
	})
	c.Store.Attach(id, components.ToNeutral)
	c.setHittable(id, false, false)
	switch {
	case def.Throw:
		c.Store.Attach(id, components.Grappling)
	case airborne:
		c.Store.Attach(id, components.CancelOnHitGround)
	case strength != action.StateSpecial:
		c.Store.Attach(id, components.CancelOnSpecial)
		c.Store.Attach(id, components.CancelOnNormal)
	}
	stance := action.Standing
	switch {
	case airborne:
		stance = action.JumpingStance
	case def.Stance == "crouching":
		stance = action.CrouchingStance
		c.Store.Attach(id, components.Crouching)
	default:
		c.Store.Detach(id, components.Crouching)
	}

	act := components.Action.Get(e)
	act.Strength = strength
	state := components.State.Get(e)
	state.ActionState = action.Attacking.ActionState(strength)
	state.Stance = stance
	state.TriedToThrow = def.Throw
	if rb := components.Rigidbody.Get(e); rb.Grounded {
		rb.Velocity.X = 0
	}
	c.play(e, def.Name, false, 1, true)
}

// hitstunClip picks the reaction animation from the stun length.
func hitstunClip(frames int, crouching bool) string {
	switch {
	case crouching && frames < config.Action.CrouchHitstun:
		return "CrouchingHitstun"
	case frames > config.Action.HitstunHeavy:
		return "HeavyHitstun"
	case frames > config.Action.HitstunMedium:
		return "MedHitstun"
	}
	return "LightHitstun"
}

func (c *Context) enterHitStun(f engine.Frame, e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	hit := p.Hit
	c.setTimed(id, hit.Hitstun)
	c.Store.Attach(id, components.ToNeutral)
	c.setHittable(id, false, false)
	crouching := c.Store.Has(id, components.Crouching)
	c.wallPush(e, hit)

	c.damage(f, e, hit)
	rb := components.Rigidbody.Get(e)
	rb.Velocity = hit.Knockback
	rb.Elastic = true
	c.play(e, hitstunClip(hit.Hitstun, crouching), false, 1, true)
}

func (c *Context) enterBlockStun(e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	hit := p.Hit
	c.setTimed(id, hit.Blockstun)
	c.Store.Attach(id, components.ToNeutral)
	c.setHittable(id, true, false)
	crouching := c.Store.Has(id, components.Crouching)
	c.wallPush(e, hit)

	if rb := components.Rigidbody.Get(e); rb.Grounded {
		rb.Velocity.X = 0
	}
	clip := "BlockMid"
	if crouching {
		clip = "BlockLow"
	}
	c.play(e, clip, false, 1, true)
}

func (c *Context) enterKnockdownAirborne(f engine.Frame, e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	hit := p.Hit
	c.Store.Attach(id, components.ToKnockdownGroundOTG)
	c.setHittable(id, false, true)
	c.Store.Detach(id, components.Crouching)
	c.Store.Detach(id, components.Airborne)
	c.wallPush(e, hit)

	c.damage(f, e, hit)
	components.State.Get(e).Stance = action.KnockdownStance
	rb := components.Rigidbody.Get(e)
	rb.Velocity = hit.Knockback
	rb.Elastic = true
	rb.Grounded = false
	c.play(e, "Knockdown_Air", false, 1, true)
}

func (c *Context) enterKnockdownOTG(e *donburi.Entry) {
	id := e.Entity()
	c.Store.Attach(id, components.ToKnockdownGround)
	c.Store.Attach(id, components.WaitForAnimation)
	c.setHittable(id, false, true)

	components.State.Get(e).Stance = action.KnockdownStance
	components.Rigidbody.Get(e).Velocity.X = 0
	c.play(e, "Knockdown_HitGround", false, 1, true)
}

func (c *Context) enterKnockdownInvincible(e *donburi.Entry) {
	id := e.Entity()
	ko := components.State.Get(e).HP <= 0
	if !ko {
		c.Store.Attach(id, components.WaitForAnimation)
		c.Store.Attach(id, components.ToNeutral)
	}

	state := components.State.Get(e)
	state.Stance = action.KnockdownStance
	state.Invulnerable = true
	components.Rigidbody.Get(e).Velocity.X = 0
	if ko {
		c.play(e, "KO", false, 1, true)
		return
	}
	c.play(e, "Knockdown_OnGround", false, 1, true)
}

func (c *Context) enterGrappled(e *donburi.Entry, p action.Payload) {
	id := e.Entity()
	engine.Add(c.Store, id, components.ReceivedGrapple, &components.ReceivedGrappleData{Hit: p.Hit})
	c.setTimed(id, p.Hit.Active)
	c.Store.Detach(id, components.Crouching)

	components.State.Get(e).Stance = action.Standing
	components.Rigidbody.Get(e).Velocity.X = 0
	c.play(e, "HeavyHitstun", false, 1, true)
}

// damage applies a hit to the defender's health and combo count and reports a KO.
func (c *Context) damage(f engine.Frame, e *donburi.Entry, hit action.HitData) {
	state := components.State.Get(e)
	if hit.Damage <= 0 {
		return
	}
	wasAlive := state.HP > 0
	state.HP -= hit.Damage
	state.ComboCounter++
	if wasAlive && state.HP <= 0 {
		c.Logger.Info("knockout", "entity", e.Entity(), "frame", f.Index)
		KnockedOutEvent.Publish(c.World(), KnockedOut{Entity: e.Entity(), Frame: f.Index})
	}
}

// wallPush makes a cornered defender push its attacker away instead of
// absorbing the knockback itself.
func (c *Context) wallPush(e *donburi.Entry, hit action.HitData) {
	kb := hit.Knockback.X
	if kb == 0 || !c.Store.Valid(hit.Source) || !c.Store.Has(hit.Source, components.Rigidbody) {
		return
	}
	side := components.Rigidbody.Get(e).Collision
	cornered := (kb > 0 && side.Has(components.SideRight)) || (kb < 0 && side.Has(components.SideLeft))
	if !cornered {
		return
	}
	frames := config.Combat.WallPushFrames
	distance := math.Abs(kb) * config.Combat.WallPushScale
	speed := distance / (float64(frames) * config.Frame.SecPerFrame)
	if kb > 0 {
		speed = -speed
	}
	engine.Add(c.Store, hit.Source, components.WallPush, &components.WallPushData{
		Velocity: speed,
		Frames:   frames,
	})
}
