package systems_test

import (
	"math/rand"
	"testing"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/systems"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestOneTransitionPerTick(t *testing.T) {
	a := newArena(t, 300, 500)

	require.True(t, a.ctx.Queue.Submit(action.Request{Entity: a.p1, Kind: action.Crouching, Payload: action.Payload{Crouching: true}}))
	assert.False(t, a.ctx.Queue.Submit(action.Request{Entity: a.p1, Kind: action.Dashing}))
	assert.True(t, a.ctx.Queue.Submit(action.Request{Entity: a.p2, Kind: action.Crouching, Payload: action.Payload{Crouching: true}}))

	a.run(1)
	assert.Equal(t, action.Crouching, a.kind(a.p1))
	assert.Equal(t, action.Crouching, a.kind(a.p2))
	assert.Equal(t, 1, a.ctx.Queue.Rejected())
	assert.Zero(t, a.ctx.Queue.Len())
	assert.False(t, a.store.Has(a.p1, components.Dashing))
}

func TestHitPreemptsAttackPressedTheSameTick(t *testing.T) {
	p2 := script(t,
		input.Step{Frames: 5, Hold: "-"},
		input.Step{Frames: 1, Hold: "btn1"},
		input.Step{Frames: 20, Hold: "-"},
	)
	a := newArena(t, 300, 350, jab(t), p2)

	a.run(5)
	require.True(t, a.state(a.p2).HitThisFrame)
	require.Zero(t, a.ctx.Queue.Rejected())

	a.run(1)
	assert.Equal(t, action.HitStun, a.kind(a.p2))
	assert.Equal(t, 1, a.ctx.Queue.Rejected(), "attack press dropped behind the hit reaction")
	assert.False(t, a.store.Has(a.p2, components.AttackState))
	assert.Equal(t, 90, a.state(a.p2).HP)
}

func TestStateEnteredCarriesCommitFrame(t *testing.T) {
	a := newArena(t, 300, 500, script(t, input.Step{Frames: 3, Hold: "down"}))

	var entered []uint64
	systems.StateEnteredEvent.Subscribe(a.store.World(), func(_ donburi.World, ev systems.StateEntered) {
		if ev.Entity == a.p1 && ev.Kind == action.Crouching {
			entered = append(entered, ev.Frame)
		}
	})

	a.run(1)
	assert.Equal(t, action.Crouching, a.kind(a.p1))
	assert.Equal(t, []uint64{1}, entered)
	assert.Equal(t, uint64(1), components.Action.Get(a.entry(a.p1)).Entered)
}

func TestRandomInputKeepsInvariants(t *testing.T) {
	holds := []string{
		"-", "left", "right", "up", "down", "up+right", "up+left",
		"down+right", "down+left", "btn1", "btn2", "btn3", "btn4",
		"down+btn1", "down+btn3", "right+btn2", "left+btn4", "up+btn3",
	}
	states := make([]input.State, 0, len(holds))
	for _, h := range holds {
		s, err := input.Parse(h)
		require.NoError(t, err)
		states = append(states, s)
	}
	rng := rand.New(rand.NewSource(7))
	feed := func() sequence {
		seq := make(sequence, 0, 240)
		for len(seq) < cap(seq) {
			s := states[rng.Intn(len(states))]
			for n := 1 + rng.Intn(8); n > 0 && len(seq) < cap(seq); n-- {
				seq = append(seq, s)
			}
		}
		return seq
	}

	a := newArena(t, 280, 360, feed(), feed())
	lo := config.Arena.WallWidth + 20
	hi := config.Arena.Width - config.Arena.WallWidth - 20
	hp := map[donburi.Entity]int{a.p1: 100, a.p2: 100}

	for tick := 1; tick <= 600; tick++ {
		a.run(1)
		for _, e := range []donburi.Entity{a.p1, a.p2} {
			entry := a.entry(e)
			act := components.Action.Get(entry)
			st := a.state(e)

			require.Equal(t, act.Kind.ActionState(act.Strength), st.ActionState, "tick %d %s", tick, act.Kind)
			if act.Kind == action.HitStun || act.Kind == action.BlockStun || act.Kind == action.Dashing {
				require.True(t, a.store.Has(e, components.Timed), "tick %d %s without timer", tick, act.Kind)
			}
			if act.Kind == action.Attacking {
				require.True(t, a.store.Has(e, components.AttackState), "tick %d", tick)
				require.NotEmpty(t, act.Attack)
			}
			if act.Kind.Stun() {
				require.False(t, a.store.Has(e, components.AbleToAttack), "tick %d %s can attack", tick, act.Kind)
			}
			require.LessOrEqual(t, st.HP, hp[e], "tick %d health grew", tick)
			hp[e] = st.HP

			x := a.x(e)
			require.GreaterOrEqual(t, x, lo-1e-6, "tick %d", tick)
			require.LessOrEqual(t, x, hi+1e-6, "tick %d", tick)
		}
	}
}
