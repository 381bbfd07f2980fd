package components

import (
	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/animation"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type HitboxData struct {
	Owner    donburi.Entity // The fighter whose attack spawned this box
	Event    int            // Index of the clip event that owns the box
	Kind     animation.EventKind
	Box      animation.Rect // World space
	Hit      action.HitData
	Strength action.ActionState
	Consumed bool // Set once the box has landed; a consumed box never hits again
	Object   *resolv.Object
}

var Hitbox = donburi.NewComponentType[HitboxData]()

// HurtboxData is where the fighter can be struck. Box and Crouch are local to
// the feet; World is the last synced world rectangle.
type HurtboxData struct {
	Box    animation.Rect
	Crouch animation.Rect
	World  animation.Rect
	Object *resolv.Object
}

var Hurtbox = donburi.NewComponentType[HurtboxData]()
