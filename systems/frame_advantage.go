package systems

import (
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/yohamta/donburi"
)

// frameAdvantage scores every running attack against everyone else's timer:
// the frames the others stay locked minus the frames the attacker still needs.
// Positive means the attacker recovers first.
func (c *Context) frameAdvantage(_ engine.Frame, entries []*donburi.Entry) {
	for _, e := range entries {
		if !c.has(e, components.AttackState) {
			continue
		}
		adv := -components.Timed.Get(e).Remaining()
		for _, other := range entries {
			if other.Entity() == e.Entity() {
				continue
			}
			kind := components.Action.Get(other).Kind
			if kind.Stun() || c.has(other, components.AttackState) {
				adv += components.Timed.Get(other).Remaining()
			}
		}
		components.AttackState.Get(e).FrameAdvantage = adv
	}
}
