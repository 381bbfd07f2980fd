package systems

import (
	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/config"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/systems/factory"
	"github.com/yohamta/donburi"
)

func (c *Context) animate(f engine.Frame, e *donburi.Entry) {
	anim := components.Animator.Get(e)
	clip, err := components.Fighter.Get(e).Library.Get(anim.Clip)
	if err != nil {
		c.Logger.Warn("animation fallback", "entity", e.Entity(), "err", err)
		components.Action.Get(e).Complete = true
		return
	}
	anim.Steps = anim.Advance(clip.Frames, f.DT, config.Frame.SecPerFrame)
	if !c.has(e, components.WaitForAnimation) || !anim.Done(clip.Frames) {
		return
	}
	act := components.Action.Get(e)
	if act.Complete {
		return
	}
	act.Complete = true
	AnimationCompletedEvent.Publish(c.World(), AnimationCompleted{Entity: e.Entity(), Clip: clip.Name})
}

// bindAttack replays the attack clip's event windows over every frame the
// animator crossed and keeps the hitbox entities in step with them.
func (c *Context) bindAttack(_ engine.Frame, e *donburi.Entry) {
	fighter := components.Fighter.Get(e)
	as := components.AttackState.Get(e)
	clip, err := fighter.Library.Get(as.Attack)
	if err != nil {
		return
	}
	anim := components.Animator.Get(e)
	if anim.Clip != clip.Name {
		return
	}
	act := components.Action.Get(e)
	right := act.FacingRight
	pos := components.Transform.Get(e).Position
	place := func(ev *animation.Event, i int) animation.Rect {
		return ev.Box(i).Facing(right).Offset(pos.X, pos.Y)
	}

	cursor, dispatches := animation.Replay(as.Cursor, anim.Frame, clip.Frames, clip.Events)
	as.Cursor = cursor
	strength := act.Strength
	owner := e.Entity()

	for _, d := range dispatches {
		ev := &clip.Events[d.Event]
		switch d.Phase {
		case animation.Trigger:
			hb := factory.CreateHitbox(c.Store, owner, d.Event, ev, place(ev, 0), strength)
			// spawning moves storage, so the attack state is fetched again
			as = components.AttackState.Get(e)
			as.Boxes[d.Event] = hb.Entity()
		case animation.Update:
			if box := as.Boxes[d.Event]; box != 0 && c.Store.Valid(box) {
				factory.MoveHitbox(c.Store.Entry(box), place(ev, d.Index+1))
			}
		case animation.End:
			if box := as.Boxes[d.Event]; box != 0 {
				as.Boxes[d.Event] = 0
				c.Store.Destroy(box)
			}
		}
	}

	// an open window follows the fighter even on ticks the clip did not step
	as = components.AttackState.Get(e)
	for i, box := range as.Boxes {
		if box == 0 || !c.Store.Valid(box) {
			continue
		}
		ev := &clip.Events[i]
		factory.MoveHitbox(c.Store.Entry(box), place(ev, anim.Frame-ev.Start))
	}
}

func (c *Context) syncHurtbox(_ engine.Frame, e *donburi.Entry) {
	hurt := components.Hurtbox.Get(e)
	pos := components.Transform.Get(e).Position
	right := components.Action.Get(e).FacingRight
	box := hurt.Box
	if c.has(e, components.Crouching) {
		box = hurt.Crouch
	}
	hurt.World = box.Facing(right).Offset(pos.X, pos.Y)
	factory.PlaceObject(hurt.Object, hurt.World)
}
