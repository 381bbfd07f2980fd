package systems

import (
	"github.com/automoto/fightcore/action"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type StateEntered struct {
	Entity donburi.Entity
	Kind   action.Kind
	Attack string
	Frame  uint64
}

type HitLanded struct {
	Attacker donburi.Entity
	Defender donburi.Entity
	Attack   string
	Throw    bool
	Damage   int
	Frame    uint64
}

type HitstopRequested struct {
	Frames int
	Frame  uint64
}

type AnimationCompleted struct {
	Entity donburi.Entity
	Clip   string
}

type KnockedOut struct {
	Entity donburi.Entity
	Frame  uint64
}

// Notifications for renderers, audio and the match. They are delivered at
// the end of the tick, after the commit.
var (
	StateEnteredEvent       = events.NewEventType[StateEntered]()
	HitLandedEvent          = events.NewEventType[HitLanded]()
	HitstopRequestedEvent   = events.NewEventType[HitstopRequested]()
	AnimationCompletedEvent = events.NewEventType[AnimationCompleted]()
	KnockedOutEvent         = events.NewEventType[KnockedOut]()
)
