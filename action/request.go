package action

import (
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// HitData is the frame-data payload a strike carries into its defender.
type HitData struct {
	Damage    int
	Knockback dmath.Vec2
	Hitstun   int
	Blockstun int
	Hitstop   int
	Active    int
	Knockdown bool
	Throw     bool
	// Source is the striking entity.
	Source donburi.Entity
}

// Payload is the snapshot a transition carries from the tick it was decided on.
type Payload struct {
	Attack    string
	Strength  ActionState
	Forward   bool
	Crouching bool
	// StandUp makes Neutral drop a crouch the fighter is already in.
	StandUp bool
	// Direction is -1, 0 or 1 along x for jumps.
	Direction int
	Hit       HitData
}

// Request asks for e to enter Kind at the end of the current tick.
type Request struct {
	Entity  donburi.Entity
	Kind    Kind
	Payload Payload
}
