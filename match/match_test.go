package match_test

import (
	"testing"

	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/match"
	"github.com/automoto/fightcore/stage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

// closeStage is the default arena with the spawns near enough for a jab.
func closeStage() *stage.Stage {
	st := stage.Default()
	st.Spawns[0].X = 300
	st.Spawns[1].X = 350
	return st
}

func script(t *testing.T, steps ...input.Step) *input.Script {
	t.Helper()
	s, err := input.NewScript(t.Name(), false, steps...)
	require.NoError(t, err)
	return s
}

func newMatch(t *testing.T, sources ...input.Source) *match.Match {
	t.Helper()
	m, err := match.New(match.Options{Stage: closeStage(), Sources: sources})
	require.NoError(t, err)
	return m
}

func kind(m *match.Match, slot int) action.Kind {
	return components.Action.Get(m.Fighter(slot)).Kind
}

func TestNew(t *testing.T) {
	m, err := match.New(match.Options{})
	require.NoError(t, err)

	fighters := m.Fighters()
	require.Len(t, fighters, 2)
	for slot, e := range fighters {
		assert.Equal(t, slot, components.Fighter.Get(e).Slot)
		assert.Equal(t, slot, m.Slot(e.Entity()))
		assert.Equal(t, action.Neutral, components.Action.Get(e).Kind)
		assert.Equal(t, config.Combat.StartingHP, components.State.Get(e).HP)
	}
	assert.True(t, components.State.Get(fighters[0]).OnLeftSide)
	assert.False(t, components.State.Get(fighters[1]).OnLeftSide)
	assert.Equal(t, "arena", m.Stage().Name)
	assert.Zero(t, m.Frame())
	assert.Equal(t, 1.0, m.TimeScale())
	assert.False(t, m.Over())
	assert.Equal(t, -1, m.Winner())
	assert.Nil(t, m.Fighter(2))
	assert.Equal(t, -1, m.Slot(donburi.Null))
}

func TestNewRejectsTooManyCharacters(t *testing.T) {
	char, err := config.LoadCharacter("", "")
	require.NoError(t, err)

	_, err = match.New(match.Options{Characters: []*config.Character{char, char, char}})
	assert.Error(t, err)
}

func TestNewNeedsASpawnPerSlot(t *testing.T) {
	st := stage.Default()
	st.Spawns = st.Spawns[:1]

	_, err := match.New(match.Options{Stage: st})
	assert.Error(t, err)
}

func TestHitstopFreezesTheWorld(t *testing.T) {
	m := newMatch(t, script(t, input.Step{Frames: 1, Hold: "btn1"}))

	m.Run(5)
	require.Equal(t, 10, m.Hitstop())
	require.Len(t, m.Hitboxes(), 1)

	m.Run(1)
	require.Equal(t, action.HitStun, kind(m, 1), "transitions commit during hitstop")
	x := components.Transform.Get(m.Fighter(1)).Position.X

	m.Run(9)
	assert.Zero(t, m.Hitstop())
	assert.Equal(t, x, components.Transform.Get(m.Fighter(1)).Position.X)
	assert.Zero(t, components.Timed.Get(m.Fighter(1)).Elapsed)
	assert.Equal(t, action.HitStun, kind(m, 1))
	assert.Len(t, m.Hitboxes(), 1, "the hitbox window is frozen too")

	m.Run(1)
	assert.Greater(t, components.Transform.Get(m.Fighter(1)).Position.X, x)
	assert.Equal(t, 1, components.Timed.Get(m.Fighter(1)).Elapsed)
	assert.Equal(t, uint64(16), m.Frame())
}

func TestKnockoutSlowsTime(t *testing.T) {
	m := newMatch(t, script(t, input.Step{Frames: 1, Hold: "btn1"}))
	components.State.Get(m.Fighter(1)).HP = 5

	m.Run(6)
	require.True(t, m.Over())
	assert.Equal(t, 0, m.Winner())
	assert.Equal(t, action.KnockdownAirborne, kind(m, 1))
	assert.InDelta(t, config.Combat.KOTimeScale, m.TimeScale(), 1e-9)

	m.Run(30)
	assert.Greater(t, m.TimeScale(), config.Combat.KOTimeScale)
	assert.Less(t, m.TimeScale(), 1.0)

	m.Run(config.Combat.KOSlowFrames)
	assert.Equal(t, 1.0, m.TimeScale())
	assert.True(t, m.Over())
}
