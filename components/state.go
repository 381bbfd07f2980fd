package components

import (
	"github.com/automoto/fightcore/action"
	"github.com/yohamta/donburi"
)

// StateData is the per-frame record a fighter's systems read and write. Hit
// flags are written by hit resolution and consumed by the next tick's checks.
type StateData struct {
	OnLeftSide bool
	Collision  CollisionSide

	HitThisFrame    bool
	ThrownThisFrame bool
	HitOnLeftSide   bool
	Hit             action.HitData
	ComboCounter    int

	Hitting      bool
	ThrowSuccess bool
	TriedToThrow bool

	HP           int
	Invulnerable bool
	ActionState  action.ActionState
	Stance       action.Stance
}

var State = donburi.NewComponentType[StateData]()

// ActionData is the exclusive activity of a fighter.
type ActionData struct {
	Kind        action.Kind
	Attack      string
	Strength    action.ActionState
	Forward     bool
	Direction   int
	FacingRight bool
	// Complete is raised by a timer or animation end and read by the
	// transition systems on the following tick.
	Complete bool
	Entered  uint64
}

var Action = donburi.NewComponentType[ActionData]()

// TimedData counts frames while the action it belongs to is attached.
type TimedData struct {
	Total   int
	Elapsed int
}

func (t *TimedData) Remaining() int { return max(0, t.Total-t.Elapsed) }

var Timed = donburi.NewComponentType[TimedData]()

type DashingData struct {
	Speed float64
}

var Dashing = donburi.NewComponentType[DashingData]()

// HittableData lets hit resolution strike the actor.
type HittableData struct {
	CanBlock    bool
	InKnockdown bool
}

var Hittable = donburi.NewComponentType[HittableData]()

type ReceivedGrappleData struct {
	Hit action.HitData
}

var ReceivedGrapple = donburi.NewComponentType[ReceivedGrappleData]()

// WallPushData moves an attacker away from a cornered defender.
type WallPushData struct {
	Velocity float64
	Frames   int
}

var WallPush = donburi.NewComponentType[WallPushData]()

type WaitForAnimationTag struct{}
type ToNeutralTag struct{}
type ToCrouchingTag struct{}
type ToKnockdownGroundTag struct{}
type ToKnockdownGroundOTGTag struct{}
type CancelOnHitGroundTag struct{}
type CancelOnSpecialTag struct{}
type CancelOnNormalTag struct{}
type WaitingForAirborneTag struct{}
type GrapplingTag struct{}

// Transition markers, stripped by every commit.
var (
	WaitForAnimation     = donburi.NewComponentType[WaitForAnimationTag]()
	ToNeutral            = donburi.NewComponentType[ToNeutralTag]()
	ToCrouching          = donburi.NewComponentType[ToCrouchingTag]()
	ToKnockdownGround    = donburi.NewComponentType[ToKnockdownGroundTag]()
	ToKnockdownGroundOTG = donburi.NewComponentType[ToKnockdownGroundOTGTag]()
	CancelOnHitGround    = donburi.NewComponentType[CancelOnHitGroundTag]()
	CancelOnSpecial      = donburi.NewComponentType[CancelOnSpecialTag]()
	CancelOnNormal       = donburi.NewComponentType[CancelOnNormalTag]()
	WaitingForAirborne   = donburi.NewComponentType[WaitingForAirborneTag]()
	Grappling            = donburi.NewComponentType[GrapplingTag]()
)

type AbleToAttackTag struct{}
type AbleToSpecialAttackTag struct{}
type AbleToDashTag struct{}
type AbleToJumpTag struct{}
type AbleToWalkTag struct{}
type AbleToCrouchTag struct{}
type AbleToReturnToNeutralTag struct{}

// Abilities gate the input-driven checks.
var (
	AbleToAttack          = donburi.NewComponentType[AbleToAttackTag]()
	AbleToSpecialAttack   = donburi.NewComponentType[AbleToSpecialAttackTag]()
	AbleToDash            = donburi.NewComponentType[AbleToDashTag]()
	AbleToJump            = donburi.NewComponentType[AbleToJumpTag]()
	AbleToWalk            = donburi.NewComponentType[AbleToWalkTag]()
	AbleToCrouch          = donburi.NewComponentType[AbleToCrouchTag]()
	AbleToReturnToNeutral = donburi.NewComponentType[AbleToReturnToNeutralTag]()
)

type CrouchingTag struct{}
type AirborneTag struct{}

// Posture markers survive commits; the commit for each kind sets them.
var (
	Crouching = donburi.NewComponentType[CrouchingTag]()
	Airborne  = donburi.NewComponentType[AirborneTag]()
)
