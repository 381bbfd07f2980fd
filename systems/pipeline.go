package systems

import (
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type ct = donburi.IComponentType

// Register installs every gameplay system on sched in pipeline order.
// PreUpdate order is priority order: the first check that decides an
// entity's transition wins the tick.
func Register(sched *engine.Scheduler, c *Context) {
	sched.Add(engine.OnFrameBegin, engine.System{
		Name:    "Input",
		Require: []ct{components.Input, components.Fighter},
		Each:    c.captureInput,
	})
	sched.Add(engine.OnFrameBegin, engine.System{
		Name:    "Facing",
		Require: []ct{components.Fighter, components.Transform, components.State},
		All:     c.updateFacing,
	})

	sched.Add(engine.PreUpdate, engine.System{
		Name:    "Timed",
		Require: []ct{components.Timed, components.Action},
		Each:    c.countdownTimed,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckForFalling",
		Require: []ct{components.InputListener, components.AbleToJump, components.Rigidbody, components.Action, components.Animator},
		Each:    c.checkForFalling,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckForJump",
		Require: []ct{components.InputListener, components.AbleToJump, components.Rigidbody, components.Input},
		Each:    c.checkForJump,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckForBeginCrouching",
		Require: []ct{components.InputListener, components.AbleToCrouch, components.Rigidbody, components.Input},
		Each:    c.checkForBeginCrouching,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckCrouchingFollowUp",
		Require: []ct{components.ToCrouching, components.Action, components.Input},
		Each:    c.checkCrouchingFollowUp,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "ListenForAirborne",
		Require: []ct{components.WaitingForAirborne, components.Rigidbody},
		Each:    c.listenForAirborne,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "HitGroundCancel",
		Require: []ct{components.CancelOnHitGround, components.Rigidbody, components.Input},
		Each:    c.hitGroundCancel,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "SpecialMoveCancel",
		Require: []ct{components.CancelOnSpecial, components.AttackState, components.Input, components.Fighter, components.State},
		Each:    c.specialMoveCancel,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "TargetComboCancel",
		Require: []ct{components.CancelOnNormal, components.AttackState, components.Input, components.Fighter},
		Each:    c.targetComboCancel,
	})
	sched.AddMulti(engine.PreUpdate, engine.MultiSystem{
		Name: "GrappleCancelOnHit",
		Main: []ct{components.Grappling, components.State},
		Sub:  []ct{components.ReceivedGrapple, components.State},
		Run:  c.grappleCancelOnHit,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckHitThisFrame",
		Require: []ct{components.InputListener, components.State, components.Action, components.Input},
		Each:    c.checkHitThisFrame,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckSpecialAttack",
		Require: []ct{components.AbleToSpecialAttack, components.Rigidbody, components.Input, components.Fighter, components.State},
		Each:    c.checkSpecialAttack,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckAttack",
		Require: []ct{components.AbleToAttack, components.Input, components.Fighter, components.State},
		Each:    c.checkAttack,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckDash",
		Require: []ct{components.AbleToDash, components.Rigidbody, components.Input, components.State},
		Each:    c.checkDash,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckReturnToNeutral",
		Require: []ct{components.AbleToReturnToNeutral, components.Action, components.Input},
		Each:    c.checkReturnToNeutral,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckMoveLeft",
		Require: []ct{components.AbleToWalk, components.Rigidbody, components.Action, components.Input, components.State},
		Each:    c.checkMoveLeft,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckMoveRight",
		Require: []ct{components.AbleToWalk, components.Rigidbody, components.Action, components.Input, components.State},
		Each:    c.checkMoveRight,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "TransitionToNeutral",
		Require: []ct{components.ToNeutral, components.Action, components.Input},
		Each:    c.transitionToNeutral,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckKnockdownComplete",
		Require: []ct{components.ToKnockdownGround, components.Action},
		Each:    c.checkKnockdownComplete,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "CheckKnockdownOTG",
		Require: []ct{components.ToKnockdownGroundOTG, components.Rigidbody, components.Action},
		Each:    c.checkKnockdownOTG,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "GrappledRelease",
		Require: []ct{components.ReceivedGrapple, components.Action},
		Each:    c.grappledRelease,
	})
	sched.Add(engine.PreUpdate, engine.System{
		Name:    "DashUpdate",
		Require: []ct{components.Dashing, components.Rigidbody},
		Each:    c.dashUpdate,
	})

	sched.Add(engine.Update, engine.System{
		Name:    "Animation",
		Require: []ct{components.Animator, components.Fighter, components.Action},
		Each:    c.animate,
	})
	sched.Add(engine.Update, engine.System{
		Name:    "AttackBinder",
		Require: []ct{components.AttackState, components.Animator, components.Fighter, components.Transform, components.Action},
		Each:    c.bindAttack,
	})
	sched.Add(engine.Update, engine.System{
		Name:    "HurtboxSync",
		Require: []ct{components.Hurtbox, components.Transform, components.Action},
		Each:    c.syncHurtbox,
	})

	sched.AddMulti(engine.PostUpdate, engine.MultiSystem{
		Name: "HitResolution",
		Main: []ct{components.Hurtbox, components.State},
		Sub:  []ct{components.Hitbox},
		Run:  c.resolveHits,
	})
	sched.Add(engine.PostUpdate, engine.System{
		Name:    "Physics",
		Require: []ct{components.Transform, components.Rigidbody, components.Object},
		All:     c.integrate,
	})
	sched.Add(engine.PostUpdate, engine.System{
		Name:    "WallPush",
		Require: []ct{components.WallPush, components.Transform, components.Object},
		Each:    c.pushFromWall,
	})
	sched.Add(engine.PostUpdate, engine.System{
		Name:    "FrameAdvantage",
		Require: []ct{components.Timed, components.Action},
		All:     c.frameAdvantage,
	})

	sched.AddTask(engine.OnFrameEnd, "Commit", c.commit)
	sched.AddTask(engine.OnFrameEnd, "Notify", func(engine.Frame) {
		events.ProcessAllEvents(c.World())
	})
}
