package animation_test

import (
	"testing"

	"github.com/automoto/fightcore/animation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replayAll(events []animation.Event, frames int, steps []int) []animation.Dispatch {
	cur := animation.NewCursor()
	var all []animation.Dispatch
	for _, f := range steps {
		var out []animation.Dispatch
		cur, out = animation.Replay(cur, f, frames, events)
		all = append(all, out...)
	}
	return all
}

func TestReplayLaw(t *testing.T) {
	for _, tc := range []struct{ start, duration int }{{0, 1}, {2, 3}, {4, 6}, {1, 10}} {
		events := []animation.Event{{Name: "hit", Start: tc.start, Duration: tc.duration}}
		last := tc.start + tc.duration
		frames := last + 3

		var single []int
		for f := 0; f <= last; f++ {
			single = append(single, f)
		}
		bursts := [][]int{
			single,
			{last},
			{0, last},
			{tc.start, last},
		}
		if last >= 3 {
			bursts = append(bursts, []int{1, last - 1, last})
		}

		for _, steps := range bursts {
			got := replayAll(events, frames, steps)

			var triggers, ends int
			updates := []int{}
			for _, d := range got {
				switch d.Phase {
				case animation.Trigger:
					triggers++
					assert.Equal(t, tc.start, d.Frame)
				case animation.Update:
					updates = append(updates, d.Index)
				case animation.End:
					ends++
					assert.Equal(t, last, d.Frame)
				}
			}

			want := []int{}
			for i := 0; i < tc.duration-1; i++ {
				want = append(want, i)
			}
			assert.Equal(t, 1, triggers, "steps %v", steps)
			assert.Equal(t, 1, ends, "steps %v", steps)
			assert.Equal(t, want, updates, "steps %v", steps)
		}
	}
}

func TestReplayOverlappingWindows(t *testing.T) {
	events := []animation.Event{
		{Name: "a", Start: 2, Duration: 3},
		{Name: "b", Start: 2, Duration: 5},
		{Name: "c", Start: 5, Duration: 2},
	}
	cur := animation.NewCursor()

	cur, out := animation.Replay(cur, 2, 10, events)
	require.Len(t, out, 2)
	assert.Equal(t, animation.Dispatch{Event: 0, Phase: animation.Trigger, Frame: 2}, out[0])
	assert.Equal(t, animation.Dispatch{Event: 1, Phase: animation.Trigger, Frame: 2}, out[1])

	cur, out = animation.Replay(cur, 5, 10, events)
	assert.Equal(t, []animation.Dispatch{
		{Event: 0, Phase: animation.Update, Index: 0, Frame: 3},
		{Event: 1, Phase: animation.Update, Index: 0, Frame: 3},
		{Event: 0, Phase: animation.Update, Index: 1, Frame: 4},
		{Event: 1, Phase: animation.Update, Index: 1, Frame: 4},
		{Event: 0, Phase: animation.End, Frame: 5},
		{Event: 1, Phase: animation.Update, Index: 2, Frame: 5},
		{Event: 2, Phase: animation.Trigger, Frame: 5},
	}, out)
	assert.False(t, cur.IsOpen(0))
	assert.True(t, cur.IsOpen(1))
	assert.True(t, cur.IsOpen(2))

	cur, out = animation.Replay(cur, 7, 10, events)
	assert.Equal(t, []animation.Dispatch{
		{Event: 1, Phase: animation.Update, Index: 3, Frame: 6},
		{Event: 2, Phase: animation.Update, Index: 0, Frame: 6},
		{Event: 1, Phase: animation.End, Frame: 7},
		{Event: 2, Phase: animation.End, Frame: 7},
	}, out)
	assert.Zero(t, cur.Open)
}

func TestReplaySameFrameIsIdempotent(t *testing.T) {
	events := []animation.Event{{Start: 0, Duration: 2}}
	cur, out := animation.Replay(animation.NewCursor(), 0, 4, events)
	assert.Len(t, out, 1)

	_, out = animation.Replay(cur, 0, 4, events)
	assert.Empty(t, out)
}

func TestReplayWraps(t *testing.T) {
	events := []animation.Event{{Start: 1, Duration: 1}}
	cur := animation.Cursor{Last: 2}

	cur, out := animation.Replay(cur, 1, 4, events)
	assert.Equal(t, []animation.Dispatch{{Event: 0, Phase: animation.Trigger, Frame: 1}}, out)
	assert.Equal(t, 1, cur.Last)
}
