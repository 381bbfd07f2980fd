package systems_test

import (
	"testing"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/systems"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

// StandingLight: startup 4, active 3, recovery 7, hit advantage 3, damage 10.
func jab(t *testing.T) input.Source {
	return script(t, input.Step{Frames: 1, Hold: "btn1"})
}

func TestHitIsReadOnTheNextTick(t *testing.T) {
	a := newArena(t, 300, 350, jab(t))

	a.run(1)
	require.Equal(t, action.Attacking, a.kind(a.p1))
	assert.Equal(t, "StandingLight", components.Action.Get(a.entry(a.p1)).Attack)

	a.run(3)
	assert.Zero(t, a.hitboxes(), "no box before startup")
	assert.False(t, a.state(a.p2).HitThisFrame)

	a.run(1)
	assert.Equal(t, 1, a.hitboxes())
	def := a.state(a.p2)
	assert.True(t, def.HitThisFrame)
	assert.True(t, def.HitOnLeftSide)
	assert.Equal(t, 10, def.Hit.Damage)
	assert.Equal(t, a.p1, def.Hit.Source)
	assert.Equal(t, action.Neutral, a.kind(a.p2), "reaction waits for the next tick")
	assert.True(t, a.state(a.p1).Hitting)
	assert.True(t, components.AttackState.Get(a.entry(a.p1)).Connected)

	a.run(1)
	require.Equal(t, action.HitStun, a.kind(a.p2))
	def = a.state(a.p2)
	assert.False(t, def.HitThisFrame)
	assert.Equal(t, 90, def.HP)
	assert.Equal(t, 1, def.ComboCounter)
	assert.Equal(t, action.StateHitstun, def.ActionState)

	timed := components.Timed.Get(a.entry(a.p2))
	assert.Equal(t, 13, timed.Total)
	assert.Zero(t, timed.Elapsed)

	rb := components.Rigidbody.Get(a.entry(a.p2))
	assert.Equal(t, 120.0, rb.Velocity.X)
	assert.Equal(t, -100.0, rb.Velocity.Y)
	assert.True(t, rb.Elastic)
	assert.Equal(t, "MedHitstun", components.Animator.Get(a.entry(a.p2)).Clip)
}

func TestKnockbackMirrorsWhenStruckFromTheRight(t *testing.T) {
	a := newArena(t, 350, 300, jab(t))

	a.run(6)
	require.Equal(t, action.HitStun, a.kind(a.p2))
	assert.False(t, a.state(a.p2).HitOnLeftSide)
	assert.Equal(t, -120.0, components.Rigidbody.Get(a.entry(a.p2)).Velocity.X)
}

func TestFrameSkipReplaysEveryWindow(t *testing.T) {
	tests := []struct {
		name  string
		skip  int
		boxes int
	}{
		{name: "into the window", skip: 5, boxes: 1},
		{name: "past the window", skip: 8, boxes: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(t, 300, 600, jab(t))
			a.run(1)
			require.Equal(t, action.Attacking, a.kind(a.p1))

			a.sched.Step(float64(tt.skip) * config.Frame.SecPerFrame)
			assert.Equal(t, tt.skip, components.Animator.Get(a.entry(a.p1)).Frame)
			assert.Equal(t, tt.boxes, a.hitboxes())
			if tt.boxes == 0 {
				for _, box := range components.AttackState.Get(a.entry(a.p1)).Boxes {
					assert.Zero(t, box, "closed window keeps no box")
				}
			}

			a.run(1)
			assert.Equal(t, tt.boxes, a.hitboxes())
		})
	}
}

func TestHitboxStrikesOnce(t *testing.T) {
	a := newArena(t, 300, 350, jab(t))

	a.run(7)
	assert.Equal(t, 1, a.hitboxes(), "window still open")
	assert.Equal(t, 90, a.state(a.p2).HP)

	a.run(1)
	assert.Zero(t, a.hitboxes(), "closed after the active frames")
	assert.Equal(t, 90, a.state(a.p2).HP)
	assert.Equal(t, 1, a.state(a.p2).ComboCounter)
}

func TestHitBeatsWalk(t *testing.T) {
	walker := script(t,
		input.Step{Frames: 5, Hold: "-"},
		input.Step{Frames: 10, Hold: "left"},
	)
	a := newArena(t, 300, 350, jab(t), walker)

	a.run(6)
	assert.Equal(t, action.HitStun, a.kind(a.p2))
}

func TestBlockHoldingAway(t *testing.T) {
	a := newArena(t, 300, 350, jab(t), script(t, input.Step{Frames: 20, Hold: "right"}))

	a.run(1)
	require.Equal(t, action.Moving, a.kind(a.p2))
	assert.False(t, components.Action.Get(a.entry(a.p2)).Forward)

	a.run(5)
	require.Equal(t, action.BlockStun, a.kind(a.p2))
	assert.Equal(t, 100, a.state(a.p2).HP)
	assert.Equal(t, 8, components.Timed.Get(a.entry(a.p2)).Total)
	assert.Equal(t, "BlockMid", components.Animator.Get(a.entry(a.p2)).Clip)
}

// Both lights last 14 frames; the crouching one starts a tick later.
func TestAttackRecoversToNeutral(t *testing.T) {
	crouchJab := []input.Step{{Frames: 1, Hold: "down"}, {Frames: 1, Hold: "down+btn1"}}
	tests := []struct {
		name     string
		steps    []input.Step
		recover  int
		attack   string
		clip     string
		crouch   bool
		then     action.Kind
		thenClip string
	}{
		{
			name:     "standing released",
			steps:    []input.Step{{Frames: 1, Hold: "btn1"}, {Frames: 30, Hold: "-"}},
			recover:  15,
			attack:   "StandingLight",
			clip:     "Idle",
			then:     action.Neutral,
			thenClip: "Idle",
		},
		{
			name:     "standing with down held",
			steps:    []input.Step{{Frames: 1, Hold: "btn1"}, {Frames: 30, Hold: "down"}},
			recover:  15,
			attack:   "StandingLight",
			clip:     "Idle",
			then:     action.Crouching,
			thenClip: "Crouching",
		},
		{
			name:     "crouching with down held",
			steps:    append(crouchJab, input.Step{Frames: 30, Hold: "down"}),
			recover:  16,
			attack:   "CrouchingLight",
			clip:     "Crouch",
			crouch:   true,
			then:     action.Neutral,
			thenClip: "Crouch",
		},
		{
			name:     "crouching released",
			steps:    append(crouchJab, input.Step{Frames: 30, Hold: "-"}),
			recover:  16,
			attack:   "CrouchingLight",
			clip:     "Crouch",
			crouch:   true,
			then:     action.Neutral,
			thenClip: "Idle",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena(t, 300, 500, script(t, tt.steps...))

			a.run(tt.recover - 1)
			require.Equal(t, action.Attacking, a.kind(a.p1))
			assert.Equal(t, tt.attack, components.Action.Get(a.entry(a.p1)).Attack)
			assert.Equal(t, 13, components.Timed.Get(a.entry(a.p1)).Elapsed)

			a.run(1)
			require.Equal(t, action.Neutral, a.kind(a.p1))
			assert.Equal(t, tt.clip, components.Animator.Get(a.entry(a.p1)).Clip)
			assert.Equal(t, tt.crouch, a.store.Has(a.p1, components.Crouching))
			assert.False(t, a.store.Has(a.p1, components.AttackState))
			assert.True(t, a.store.Has(a.p1, components.AbleToAttack))

			a.run(1)
			assert.Equal(t, tt.then, a.kind(a.p1))
			assert.Equal(t, tt.thenClip, components.Animator.Get(a.entry(a.p1)).Clip)
		})
	}
}

func TestFrameAdvantage(t *testing.T) {
	a := newArena(t, 300, 350, jab(t))

	a.run(6)
	assert.Equal(t, -9, components.AttackState.Get(a.entry(a.p1)).FrameAdvantage)

	a.run(1)
	assert.Equal(t, 4, components.AttackState.Get(a.entry(a.p1)).FrameAdvantage)
}

func TestKnockdownChain(t *testing.T) {
	p1 := script(t,
		input.Step{Frames: 1, Hold: "down"},
		input.Step{Frames: 1, Hold: "down+btn3"},
		input.Step{Frames: 60, Hold: "down"},
	)
	a := newArena(t, 300, 350, p1)

	var kinds []action.Kind
	systems.StateEnteredEvent.Subscribe(a.store.World(), func(_ donburi.World, ev systems.StateEntered) {
		if ev.Entity == a.p2 {
			kinds = append(kinds, ev.Kind)
		}
	})

	a.run(9)
	require.Equal(t, action.KnockdownAirborne, a.kind(a.p2))
	assert.False(t, components.Rigidbody.Get(a.entry(a.p2)).Grounded)
	assert.False(t, components.Hittable.Get(a.entry(a.p2)).CanBlock)
	assert.True(t, components.Hittable.Get(a.entry(a.p2)).InKnockdown)

	invulnerable := false
	for i := 0; i < 300 && a.kind(a.p2) != action.Neutral; i++ {
		a.run(1)
		if a.kind(a.p2) == action.KnockdownGroundInvincible && a.state(a.p2).Invulnerable {
			invulnerable = true
		}
	}
	a.run(1)

	assert.Equal(t, []action.Kind{
		action.Neutral,
		action.KnockdownAirborne,
		action.KnockdownGroundOTG,
		action.KnockdownGroundInvincible,
		action.Neutral,
	}, kinds)
	assert.True(t, invulnerable)
	assert.Equal(t, 90, a.state(a.p2).HP)
	assert.True(t, components.Rigidbody.Get(a.entry(a.p2)).Grounded)
}

func TestWallPush(t *testing.T) {
	a := newArena(t, 554, 604, jab(t))

	a.run(5)
	assert.True(t, a.state(a.p2).Collision.Has(components.SideRight), "defender is cornered")

	a.run(1)
	require.Equal(t, action.HitStun, a.kind(a.p2))
	require.True(t, a.store.Has(a.p1, components.WallPush))
	assert.Equal(t, -300.0, components.WallPush.Get(a.entry(a.p1)).Velocity)

	a.run(6)
	assert.False(t, a.store.Has(a.p1, components.WallPush))
	assert.InDelta(t, 524, a.x(a.p1), 1e-6)
}

func TestLastOverlappingHitboxWins(t *testing.T) {
	a := newArena(t, 300, 350)

	// both boxes sit inside p2's hurtbox at x 326..374
	box := animation.Rect{X: 340, Y: 260, W: 20, H: 20}
	var boxes []*donburi.Entry
	for _, dmg := range []int{5, 7} {
		ev := &animation.Event{
			Name:     "overlap",
			Kind:     animation.Hitbox,
			Duration: 1,
			Hit:      action.HitData{Damage: dmg, Hitstun: 10, Blockstun: 5},
		}
		boxes = append(boxes, factory.CreateHitbox(a.store, a.p1, 0, ev, box, action.StateLight))
	}

	a.run(1)
	def := a.state(a.p2)
	require.True(t, def.HitThisFrame)
	assert.Equal(t, 7, def.Hit.Damage, "later box overwrites")
	for _, b := range boxes {
		assert.True(t, components.Hitbox.Get(b).Consumed)
	}

	a.run(1)
	assert.Equal(t, action.HitStun, a.kind(a.p2))
	assert.Equal(t, 93, a.state(a.p2).HP)
}
