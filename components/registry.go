package components

import (
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/tags"
	"github.com/yohamta/donburi"
)

// Transient lists the capabilities every transition strips before attaching
// the next action's set.
var Transient = []donburi.IComponentType{
	WaitForAnimation,
	ToNeutral,
	ToCrouching,
	ToKnockdownGround,
	ToKnockdownGroundOTG,
	CancelOnHitGround,
	CancelOnSpecial,
	CancelOnNormal,
	WaitingForAirborne,
	Grappling,
	Timed,
	Dashing,
	Hittable,
	ReceivedGrapple,
	AttackState,
}

// Abilities lists the input abilities disabled on every transition.
var Abilities = []donburi.IComponentType{
	AbleToAttack,
	AbleToSpecialAttack,
	AbleToDash,
	AbleToJump,
	AbleToWalk,
	AbleToCrouch,
	AbleToReturnToNeutral,
}

// NewRegistry registers every component type with its policy and hooks.
func NewRegistry() *engine.Registry {
	r := engine.NewRegistry()
	r.Register(tags.Fighter, engine.Named("FighterTag"))
	r.Register(tags.Hitbox, engine.Named("HitboxTag"))
	r.Register(tags.Wall, engine.Named("WallTag"))
	r.Register(Transform, engine.Named("Transform"))
	r.Register(Rigidbody, engine.Named("Rigidbody"))
	r.Register(Object, engine.Named("Object"), engine.OnRemove(func(s *engine.Store, e *donburi.Entry) {
		RemoveFromSpace(s.World(), Object.Get(e).Object)
	}))
	r.Register(Hurtbox, engine.Named("Hurtbox"), engine.OnRemove(func(s *engine.Store, e *donburi.Entry) {
		RemoveFromSpace(s.World(), Hurtbox.Get(e).Object)
	}))
	r.Register(Hitbox, engine.Named("Hitbox"), engine.OnRemove(func(s *engine.Store, e *donburi.Entry) {
		RemoveFromSpace(s.World(), Hitbox.Get(e).Object)
	}))
	r.Register(State, engine.Named("State"))
	r.Register(Action, engine.Named("Action"))
	r.Register(Animator, engine.Named("Animator"))
	r.Register(Fighter, engine.Named("Fighter"))
	r.Register(Input, engine.Named("Input"))
	r.Register(InputListener, engine.Named("InputListener"))
	r.Register(Space, engine.Named("Space"))
	r.Register(WallPush, engine.Named("WallPush"))
	r.Register(Crouching, engine.Named("Crouching"))
	r.Register(Airborne, engine.Named("Airborne"))

	// closing an attack early takes its live hitboxes with it
	r.Register(AttackState, engine.OnRemove(func(s *engine.Store, e *donburi.Entry) {
		for _, box := range AttackState.Get(e).Boxes {
			if box != 0 {
				s.Destroy(box)
			}
		}
	}))
	for _, ct := range Transient {
		r.Register(ct, engine.Transient(), engine.Named(ct.Name()))
	}
	for _, ct := range Abilities {
		r.Register(ct, engine.Ability(), engine.Named(ct.Name()))
	}
	return r
}
