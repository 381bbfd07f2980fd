package factory

import (
	"github.com/automoto/fightcore/action"
	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/archetypes"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateHitbox spawns the striking box of one event window at world rect box.
func CreateHitbox(s *engine.Store, owner donburi.Entity, event int, ev *animation.Event, box animation.Rect, strength action.ActionState) *donburi.Entry {
	hitbox := archetypes.Hitbox.Spawn(s)

	obj := resolv.NewObject(box.X, box.Y, box.W, box.H, tags.ResolvHitbox)
	obj.SetShape(resolv.NewRectangle(0, 0, box.W, box.H))
	obj.Data = hitbox

	hit := ev.Hit
	hit.Source = owner
	components.Hitbox.SetValue(hitbox, components.HitboxData{
		Owner:    owner,
		Event:    event,
		Kind:     ev.Kind,
		Box:      box,
		Hit:      hit,
		Strength: strength,
		Object:   obj,
	})
	components.AddToSpace(s.World(), obj)

	return hitbox
}

// MoveHitbox places an existing hitbox at box.
func MoveHitbox(entry *donburi.Entry, box animation.Rect) {
	hb := components.Hitbox.Get(entry)
	hb.Box = box
	PlaceObject(hb.Object, box)
}

// PlaceObject moves and resizes obj to cover r and refreshes its cells.
func PlaceObject(obj *resolv.Object, r animation.Rect) {
	if obj == nil {
		return
	}
	if obj.W != r.W || obj.H != r.H {
		obj.W, obj.H = r.W, r.H
		obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	}
	obj.X, obj.Y = r.X, r.Y
	obj.Update()
}
