package action_test

import (
	"testing"

	"github.com/automoto/fightcore/action"
	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
)

func TestQueueOneTransitionPerTick(t *testing.T) {
	q := action.NewQueue()
	e := donburi.Entity(7)

	assert.True(t, q.Submit(action.Request{Entity: e, Kind: action.HitStun}))
	assert.False(t, q.Submit(action.Request{Entity: e, Kind: action.Moving}))
	assert.True(t, q.Decided(e))
	assert.Equal(t, 1, q.Rejected())

	var applied []action.Request
	q.Drain(func(r action.Request) { applied = append(applied, r) })

	assert.Len(t, applied, 1)
	assert.Equal(t, action.HitStun, applied[0].Kind, "first request wins")
	assert.False(t, q.Decided(e))
	assert.Zero(t, q.Len())

	assert.True(t, q.Submit(action.Request{Entity: e, Kind: action.Neutral}), "guard resets after the commit")
}

func TestQueueKeepsSubmissionOrder(t *testing.T) {
	q := action.NewQueue()
	q.Submit(action.Request{Entity: 3, Kind: action.Dashing})
	q.Submit(action.Request{Entity: 1, Kind: action.Attacking, Payload: action.Payload{Attack: "StandingLight"}})

	r, ok := q.Pending(1)
	assert.True(t, ok)
	assert.Equal(t, "StandingLight", r.Payload.Attack)

	var order []donburi.Entity
	q.Drain(func(r action.Request) { order = append(order, r.Entity) })
	assert.Equal(t, []donburi.Entity{3, 1}, order)
}

func TestActionStateDerivation(t *testing.T) {
	tests := []struct {
		kind     action.Kind
		strength action.ActionState
		want     action.ActionState
	}{
		{action.HitStun, action.StateNone, action.StateHitstun},
		{action.KnockdownAirborne, action.StateNone, action.StateHitstun},
		{action.KnockdownGroundOTG, action.StateNone, action.StateHitstun},
		{action.KnockdownGroundInvincible, action.StateNone, action.StateNone},
		{action.BlockStun, action.StateNone, action.StateBlockstun},
		{action.Attacking, action.StateHeavy, action.StateHeavy},
		{action.Grappled, action.StateNone, action.StateNone},
		{action.Neutral, action.StateHeavy, action.StateNone},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.ActionState(tt.strength))
		})
	}
}

func TestParse(t *testing.T) {
	k, ok := action.ParseKind("BlockStun")
	assert.True(t, ok)
	assert.Equal(t, action.BlockStun, k)

	s, ok := action.ParseActionState("heavy")
	assert.True(t, ok)
	assert.Equal(t, action.StateHeavy, s)

	_, ok = action.ParseActionState("sideways")
	assert.False(t, ok)
}
