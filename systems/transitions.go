package systems

import (
	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/input"
	"github.com/yohamta/donburi"
)

func (c *Context) has(e *donburi.Entry, ct donburi.IComponentType) bool {
	return c.Store.Has(e.Entity(), ct)
}

func (c *Context) decided(e *donburi.Entry) bool {
	return c.Queue.Decided(e.Entity())
}

func held(e *donburi.Entry) input.State {
	return components.Input.Get(e).Buffer.Latest()
}

// walkDirection is the world x direction held, -1, 0 or 1.
func walkDirection(s input.State) int {
	switch {
	case s.Any(input.Right) && !s.Any(input.Left):
		return 1
	case s.Any(input.Left) && !s.Any(input.Right):
		return -1
	}
	return 0
}

func facingSign(right bool) float64 {
	if right {
		return 1
	}
	return -1
}

// countdownTimed ticks the frame counter of timed actions and flags them
// complete when it runs out. Frozen ticks do not count.
func (c *Context) countdownTimed(f engine.Frame, e *donburi.Entry) {
	if f.DT <= 0 {
		return
	}
	t := components.Timed.Get(e)
	if t.Elapsed < t.Total {
		t.Elapsed++
	}
	if t.Elapsed >= t.Total {
		components.Action.Get(e).Complete = true
	}
}

// checkForFalling sends fighters that walked off a ledge into the air, and
// switches a rising jump to its falling clip at the apex.
func (c *Context) checkForFalling(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) {
		return
	}
	rb := components.Rigidbody.Get(e)
	if rb.Grounded {
		return
	}
	act := components.Action.Get(e)
	if act.Kind == action.Jumping {
		anim := components.Animator.Get(e)
		if rb.Velocity.Y >= 0 && anim.Clip == "Jumping" {
			c.play(e, "Falling", false, 1, true)
		}
		return
	}
	c.request(e.Entity(), action.Jumping, action.Payload{})
}

func (c *Context) checkForJump(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) || !components.Rigidbody.Get(e).Grounded {
		return
	}
	s := held(e)
	if !s.Any(input.Up) || s.Any(input.Down) {
		return
	}
	c.request(e.Entity(), action.Jumping, action.Payload{Direction: walkDirection(s)})
}

func (c *Context) checkForBeginCrouching(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) || c.has(e, components.Crouching) || !components.Rigidbody.Get(e).Grounded {
		return
	}
	if held(e).Any(input.Down) {
		c.request(e.Entity(), action.Crouching, action.Payload{Crouching: true})
	}
}

// checkCrouchingFollowUp settles into the crouch loop once the crouch-down clip ends.
func (c *Context) checkCrouchingFollowUp(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) || !components.Action.Get(e).Complete {
		return
	}
	c.request(e.Entity(), action.Neutral, action.Payload{})
}

// listenForAirborne arms the landing cancel once a jump has left the ground.
func (c *Context) listenForAirborne(_ engine.Frame, e *donburi.Entry) {
	if components.Rigidbody.Get(e).Grounded {
		return
	}
	c.Store.Detach(e.Entity(), components.WaitingForAirborne)
	c.Store.Attach(e.Entity(), components.CancelOnHitGround)
}

func (c *Context) hitGroundCancel(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) {
		return
	}
	rb := components.Rigidbody.Get(e)
	if !rb.Grounded || rb.Velocity.Y < 0 {
		return
	}
	c.request(e.Entity(), action.Neutral, action.Payload{})
}

// specialMoveCancel lets a normal that connected be cancelled into a special.
func (c *Context) specialMoveCancel(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) || !components.AttackState.Get(e).Connected {
		return
	}
	if name, ok := c.matchSpecial(e); ok {
		c.requestAttack(e, name)
	}
}

// targetComboCancel chains a connected normal into its authored follow-up.
func (c *Context) targetComboCancel(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) {
		return
	}
	as := components.AttackState.Get(e)
	if !as.Connected {
		return
	}
	btn, ok := components.Input.Get(e).Buffer.PressedButton()
	if !ok {
		return
	}
	char := components.Fighter.Get(e).Character
	for _, tc := range char.TargetCombos {
		if tc.From != as.Attack {
			continue
		}
		if b, err := input.Parse(tc.Button); err == nil && b == btn {
			c.requestAttack(e, tc.To)
			return
		}
	}
}

// grappleCancelOnHit voids a grab whose thrower was struck: the grabbed
// fighter is let go and the thrower falls through to its hit reaction.
func (c *Context) grappleCancelOnHit(_ engine.Frame, set engine.PairSet) {
	for _, p := range set.Pairs {
		thrower := components.State.Get(p.Main)
		if !thrower.HitThisFrame {
			continue
		}
		grab := components.ReceivedGrapple.Get(p.Sub)
		if grab.Hit.Source != p.Main.Entity() {
			continue
		}
		thrower.ThrowSuccess = false
		if c.decided(p.Sub) {
			continue
		}
		c.request(p.Sub.Entity(), action.Neutral, action.Payload{})
	}
}

// checkHitThisFrame turns last tick's hit results into a reaction.
func (c *Context) checkHitThisFrame(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) {
		return
	}
	state := components.State.Get(e)
	hit := state.Hit

	if state.ThrownThisFrame {
		// a thrower struck in the same instant loses the grab
		if src := hit.Source; c.Store.Valid(src) && c.Store.Has(src, components.State) {
			if components.State.Get(c.Store.Entry(src)).HitThisFrame {
				state.ThrownThisFrame = false
				return
			}
		}
		c.request(e.Entity(), action.Grappled, action.Payload{Hit: hit})
		return
	}
	if !state.HitThisFrame {
		return
	}

	canBlock := false
	if c.has(e, components.Hittable) {
		canBlock = components.Hittable.Get(e).CanBlock
	}
	away := input.Left
	if state.HitOnLeftSide {
		away = input.Right
	}
	crouching := c.has(e, components.Crouching)
	if canBlock && !hit.Throw && held(e).Any(away) {
		c.request(e.Entity(), action.BlockStun, action.Payload{Hit: hit, Crouching: crouching})
		return
	}

	kind := components.Action.Get(e).Kind
	if hit.Knockdown || kind.Knockdown() || c.has(e, components.Airborne) || state.HP-hit.Damage <= 0 {
		c.request(e.Entity(), action.KnockdownAirborne, action.Payload{Hit: hit})
		return
	}
	c.request(e.Entity(), action.HitStun, action.Payload{Hit: hit, Crouching: crouching})
}

// The offense checks submit even when a reaction was decided earlier in the
// tick. The queue keeps the first request and counts the rest as rejected.
func (c *Context) checkSpecialAttack(_ engine.Frame, e *donburi.Entry) {
	if !components.Rigidbody.Get(e).Grounded {
		return
	}
	if name, ok := c.matchSpecial(e); ok {
		c.requestAttack(e, name)
	}
}

func (c *Context) checkAttack(_ engine.Frame, e *donburi.Entry) {
	btn, ok := components.Input.Get(e).Buffer.PressedButton()
	if !ok {
		return
	}
	stance := "standing"
	switch {
	case c.has(e, components.Airborne):
		stance = "jumping"
	case c.has(e, components.Crouching) || held(e).Any(input.Down):
		stance = "crouching"
	}
	char := components.Fighter.Get(e).Character
	def, ok := findAttack(char, stance, btn, held(e), components.State.Get(e).OnLeftSide)
	if !ok {
		return
	}
	c.requestAttack(e, def.Name)
}

func (c *Context) checkDash(_ engine.Frame, e *donburi.Entry) {
	if !components.Rigidbody.Get(e).Grounded {
		return
	}
	right := components.State.Get(e).OnLeftSide
	buf := &components.Input.Get(e).Buffer
	switch {
	case buf.DoubleTap(input.Forward(right), config.Action.DoubleTapWindow):
		c.request(e.Entity(), action.Dashing, action.Payload{Forward: true})
	case buf.DoubleTap(input.Back(right), config.Action.DoubleTapWindow):
		c.request(e.Entity(), action.Dashing, action.Payload{Forward: false})
	}
}

// checkReturnToNeutral stops a walk with no direction held and stands up a
// crouch once down is released.
func (c *Context) checkReturnToNeutral(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) {
		return
	}
	s := held(e)
	act := components.Action.Get(e)
	switch {
	case act.Kind == action.Moving && walkDirection(s) == 0:
		c.request(e.Entity(), action.Neutral, action.Payload{Crouching: s.Any(input.Down)})
	case act.Kind == action.Neutral && c.has(e, components.Crouching) && !s.Any(input.Down):
		c.request(e.Entity(), action.Neutral, action.Payload{StandUp: true})
	}
}

func (c *Context) checkMoveLeft(f engine.Frame, e *donburi.Entry) {
	c.checkMove(f, e, -1)
}

func (c *Context) checkMoveRight(f engine.Frame, e *donburi.Entry) {
	c.checkMove(f, e, 1)
}

func (c *Context) checkMove(_ engine.Frame, e *donburi.Entry, dir int) {
	if c.decided(e) || !components.Rigidbody.Get(e).Grounded {
		return
	}
	s := held(e)
	if s.Any(input.Down) || walkDirection(s) != dir {
		return
	}
	right := components.State.Get(e).OnLeftSide
	forward := (dir > 0) == right
	act := components.Action.Get(e)
	if act.Kind == action.Moving && act.Direction == dir && act.Forward == forward {
		return
	}
	c.request(e.Entity(), action.Moving, action.Payload{Direction: dir, Forward: forward})
}

func (c *Context) transitionToNeutral(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) || !components.Action.Get(e).Complete {
		return
	}
	c.request(e.Entity(), action.Neutral, action.Payload{})
}

func (c *Context) checkKnockdownComplete(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) || !components.Action.Get(e).Complete {
		return
	}
	c.request(e.Entity(), action.KnockdownGroundInvincible, action.Payload{})
}

// checkKnockdownOTG lands an airborne knockdown. The first tick after entry is
// skipped so a fighter knocked down on the ground still gets airborne time.
func (c *Context) checkKnockdownOTG(f engine.Frame, e *donburi.Entry) {
	if c.decided(e) {
		return
	}
	rb := components.Rigidbody.Get(e)
	act := components.Action.Get(e)
	if !rb.Grounded || rb.Velocity.Y < 0 || f.Index <= act.Entered+1 {
		return
	}
	c.request(e.Entity(), action.KnockdownGroundOTG, action.Payload{})
}

func (c *Context) grappledRelease(_ engine.Frame, e *donburi.Entry) {
	if c.decided(e) || !components.Action.Get(e).Complete {
		return
	}
	hit := components.ReceivedGrapple.Get(e).Hit
	c.request(e.Entity(), action.KnockdownAirborne, action.Payload{Hit: hit})
}

// dashUpdate holds dash speed against anything that touched velocity.
func (c *Context) dashUpdate(_ engine.Frame, e *donburi.Entry) {
	components.Rigidbody.Get(e).Velocity.X = components.Dashing.Get(e).Speed
}

func (c *Context) requestAttack(e *donburi.Entry, name string) {
	char := components.Fighter.Get(e).Character
	def, ok := char.Attack(name)
	if !ok {
		c.Logger.Warn("unknown attack", "entity", e.Entity(), "attack", name)
		return
	}
	c.request(e.Entity(), action.Attacking, action.Payload{
		Attack:    def.Name,
		Strength:  def.ActionState(),
		Forward:   def.Direction == "forward",
		Crouching: def.Stance == "crouching",
	})
}

func (c *Context) matchSpecial(e *donburi.Entry) (string, bool) {
	char := components.Fighter.Get(e).Character
	buf := &components.Input.Get(e).Buffer
	right := components.State.Get(e).OnLeftSide
	for _, sp := range char.Specials {
		m, err := sp.Matcher()
		if err != nil {
			continue
		}
		if buf.Matches(m, right) {
			return sp.Attack, true
		}
	}
	return "", false
}

// findAttack picks the move for a button press: an exact direction match
// first, then a move with no direction, then any move on that button.
func findAttack(char *config.Character, stance string, btn, s input.State, facingRight bool) (config.AttackDef, bool) {
	var first, neutral *config.AttackDef
	for i := range char.Attacks {
		a := &char.Attacks[i]
		if a.Stance != stance {
			continue
		}
		if b, err := input.Parse(a.Button); err != nil || b != btn {
			continue
		}
		if first == nil {
			first = a
		}
		switch a.Direction {
		case "":
			if neutral == nil {
				neutral = a
			}
		case "forward":
			if s.Any(input.Forward(facingRight)) {
				return *a, true
			}
		case "back":
			if s.Any(input.Back(facingRight)) {
				return *a, true
			}
		}
	}
	if neutral != nil {
		return *neutral, true
	}
	if first != nil {
		return *first, true
	}
	return config.AttackDef{}, false
}
