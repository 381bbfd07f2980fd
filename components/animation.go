package components

import (
	"github.com/automoto/fightcore/animation"
	"github.com/yohamta/donburi"
)

type AnimatorData struct {
	animation.Playback
	// Steps counts frames advanced by the last animation pass.
	Steps int
}

var Animator = donburi.NewComponentType[AnimatorData]()

// AttackStateData follows one attack clip. Cursor is the binder position and
// Boxes holds the live hitbox entity of each event, zero when closed.
type AttackStateData struct {
	Attack         string
	Cursor         animation.Cursor
	Boxes          []donburi.Entity
	Connected      bool
	FrameAdvantage int
}

var AttackState = donburi.NewComponentType[AttackStateData]()
