package stage_test

import (
	"os"
	"testing"
	"testing/fstest"

	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/stage"
	"github.com/automoto/fightcore/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestLoad(t *testing.T) {
	st, err := stage.Load(os.DirFS("testdata"), "dojo.tmx")
	require.NoError(t, err)

	assert.Equal(t, "dojo", st.Name)
	assert.Equal(t, 640, st.Width)
	assert.Equal(t, 384, st.Height)
	require.Len(t, st.Solids, 3)
	assert.True(t, st.Solids[0].Floor)
	assert.Equal(t, 320.0, st.Solids[0].Y)
	assert.False(t, st.Solids[1].Floor)

	require.Len(t, st.Spawns, 2)
	assert.Equal(t, 0, st.Spawns[0].Slot, "sorted by slot")
	assert.Equal(t, 240.0, st.Spawns[0].X)

	p2, ok := st.Spawn(1)
	require.True(t, ok)
	assert.False(t, st.FacingRight(p2))
	assert.True(t, st.FacingRight(st.Spawns[0]))

	_, ok = st.Spawn(5)
	assert.False(t, ok)
}

func TestLoadErrors(t *testing.T) {
	_, err := stage.Load(os.DirFS("testdata"), "missing.tmx")
	assert.Error(t, err)

	fsys := fstest.MapFS{
		"empty.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="4" tilewidth="16" tileheight="16" infinite="0">
</map>`)},
	}
	_, err = stage.Load(fsys, "empty.tmx")
	assert.Error(t, err)
}

func TestLoadAll(t *testing.T) {
	stages, names, err := stage.LoadAll(os.DirFS("."), "testdata")
	require.NoError(t, err)
	assert.Equal(t, []string{"dojo"}, names)
	assert.Contains(t, stages, "dojo")

	_, _, err = stage.LoadAll(os.DirFS("."), "nowhere")
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	st := stage.Default()
	assert.Equal(t, int(config.Arena.Width), st.Width)
	require.Len(t, st.Spawns, 2)
	assert.Less(t, st.Spawns[0].X, st.Spawns[1].X)
	assert.Equal(t, config.Arena.FloorY, st.Spawns[0].Y)
}

func TestBuild(t *testing.T) {
	s := engine.NewStore(donburi.NewWorld(), components.NewRegistry())
	space := stage.Default().Build(s)

	require.True(t, s.Valid(space.Entity()))
	walls := 0
	floors := 0
	tags.Wall.Each(s.World(), func(e *donburi.Entry) {
		walls++
		if components.Object.Get(e).HasTags(tags.ResolvFloor) {
			floors++
		}
	})
	assert.Equal(t, 3, walls)
	assert.Equal(t, 1, floors)
	assert.Len(t, components.Space.Get(space).Objects(), 3)
}
