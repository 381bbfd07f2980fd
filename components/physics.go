package components

import (
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// CollisionSide is a bitmask of the sides an actor touched this tick.
type CollisionSide uint8

const (
	SideUp CollisionSide = 1 << iota
	SideDown
	SideLeft
	SideRight
)

func (c CollisionSide) Has(s CollisionSide) bool { return c&s != 0 }

// TransformData places an actor by the center of its feet.
type TransformData struct {
	Position dmath.Vec2
}

var Transform = donburi.NewComponentType[TransformData]()

type RigidbodyData struct {
	Velocity   dmath.Vec2
	UseGravity bool
	// Elastic bounces off walls instead of stopping, used in hitstun.
	Elastic bool
	// Collision holds the sides touched during the last physics pass.
	Collision CollisionSide
	Grounded  bool
	// Effective is the displacement actually applied last tick divided by dt,
	// after walls and pushboxes corrected it.
	Effective dmath.Vec2
}

var Rigidbody = donburi.NewComponentType[RigidbodyData]()
