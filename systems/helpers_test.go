package systems_test

import (
	"testing"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/stage"
	"github.com/automoto/fightcore/systems"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/automoto/fightcore/tags"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

// arena is two fighters on the default stage, stepped at a fixed rate.
type arena struct {
	store *engine.Store
	sched *engine.Scheduler
	ctx   *systems.Context
	p1    donburi.Entity
	p2    donburi.Entity
}

func newArena(t *testing.T, x1, x2 float64, sources ...input.Source) *arena {
	t.Helper()
	char, err := config.LoadCharacter("", "")
	require.NoError(t, err)

	store := engine.NewStore(donburi.NewWorld(), components.NewRegistry())
	sched := engine.NewScheduler(store)
	ctx := systems.NewContext(store, nil, sources...)
	systems.Register(sched, ctx)
	stage.Default().Build(store)

	floor := config.Arena.FloorY
	a := &arena{store: store, sched: sched, ctx: ctx}
	a.p1 = factory.CreateFighter(store, 0, char, x1, floor, x1 < x2).Entity()
	a.p2 = factory.CreateFighter(store, 1, char, x2, floor, x2 < x1).Entity()
	for _, e := range []donburi.Entity{a.p1, a.p2} {
		ctx.Apply(engine.Frame{}, action.Request{Entity: e, Kind: action.Neutral})
	}
	return a
}

func (a *arena) run(n int) {
	for i := 0; i < n; i++ {
		a.sched.Step(config.Frame.SecPerFrame)
	}
}

func (a *arena) entry(e donburi.Entity) *donburi.Entry { return a.store.Entry(e) }

func (a *arena) kind(e donburi.Entity) action.Kind {
	return components.Action.Get(a.entry(e)).Kind
}

func (a *arena) state(e donburi.Entity) *components.StateData {
	return components.State.Get(a.entry(e))
}

func (a *arena) x(e donburi.Entity) float64 {
	return components.Transform.Get(a.entry(e)).Position.X
}

func (a *arena) hitboxes() int {
	n := 0
	tags.Hitbox.Each(a.store.World(), func(*donburi.Entry) { n++ })
	return n
}

func script(t *testing.T, steps ...input.Step) *input.Script {
	t.Helper()
	s, err := input.NewScript(t.Name(), false, steps...)
	require.NoError(t, err)
	return s
}

// sequence feeds a fixed list of states, repeating.
type sequence []input.State

func (s sequence) Poll(frame uint64) input.State {
	if len(s) == 0 || frame == 0 {
		return 0
	}
	return s[int(frame-1)%len(s)]
}
