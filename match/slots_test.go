package match_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/automoto/fightcore/input"
	"github.com/automoto/fightcore/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlots(t *testing.T) {
	slots, err := match.OpenSlots(fmt.Sprintf("fightcore-test-%d", os.Getpid()))
	if err != nil {
		t.Skipf("no data directory: %v", err)
	}
	const name = "quick"
	t.Cleanup(func() { _ = slots.Delete(name) })

	_, err = slots.Load(name)
	assert.ErrorIs(t, err, match.ErrNoSlot)
	assert.False(t, slots.Exists(name))

	m := newMatch(t, script(t, input.Step{Frames: 1, Hold: "btn1"}))
	m.Run(7)
	snap := m.Snapshot()
	require.NoError(t, slots.Save(name, snap))
	assert.True(t, slots.Exists(name))

	loaded, err := slots.Load(name)
	require.NoError(t, err)
	want, err := snap.Encode()
	require.NoError(t, err)
	got, err := loaded.Encode()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, slots.Delete(name))
	assert.False(t, slots.Exists(name))
}
