package factory

import (
	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/archetypes"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// CreateFighter spawns a fighter standing at (x, y), the center of its feet.
// It carries no action yet; the caller commits the first Neutral transition.
func CreateFighter(s *engine.Store, slot int, char *config.Character, x, y float64, facingRight bool) *donburi.Entry {
	fighter := archetypes.Fighter.Spawn(s)

	components.Fighter.SetValue(fighter, components.FighterData{
		Slot:      slot,
		Character: char,
		Library:   char.Library(),
	})
	components.Transform.SetValue(fighter, components.TransformData{
		Position: dmath.Vec2{X: x, Y: y},
	})
	components.Rigidbody.SetValue(fighter, components.RigidbodyData{
		UseGravity: true,
		Grounded:   true,
	})

	pb := char.Pushbox
	obj := resolv.NewObject(x+pb.X, y+pb.Y, pb.W, pb.H, tags.ResolvPushbox)
	obj.SetShape(resolv.NewRectangle(0, 0, pb.W, pb.H))
	obj.Data = fighter
	components.Object.SetValue(fighter, components.ObjectData{Object: obj})
	components.AddToSpace(s.World(), obj)

	hurt := char.Hurtbox.Rect()
	crouch := char.CrouchHurtbox.Rect()
	if crouch.Empty() {
		crouch = hurt
	}
	world := hurt.Offset(x, y)
	hobj := resolv.NewObject(world.X, world.Y, world.W, world.H, tags.ResolvHurtbox)
	hobj.SetShape(resolv.NewRectangle(0, 0, world.W, world.H))
	hobj.Data = fighter
	components.Hurtbox.SetValue(fighter, components.HurtboxData{
		Box:    hurt,
		Crouch: crouch,
		World:  world,
		Object: hobj,
	})
	components.AddToSpace(s.World(), hobj)

	components.State.SetValue(fighter, components.StateData{
		OnLeftSide: facingRight,
		HP:         char.HP,
		Stance:     action.Standing,
	})
	components.Action.SetValue(fighter, components.ActionData{
		Kind:        action.Neutral,
		FacingRight: facingRight,
	})
	anim := components.AnimatorData{}
	anim.Play("Idle", true, 1)
	components.Animator.SetValue(fighter, anim)

	return fighter
}
