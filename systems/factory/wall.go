package factory

import (
	"github.com/automoto/fightcore/archetypes"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateWall adds a static solid. Floors carry the extra floor tag.
func CreateWall(s *engine.Store, x, y, w, h float64, extra ...string) *donburi.Entry {
	wall := archetypes.Wall.Spawn(s)

	obj := resolv.NewObject(x, y, w, h, append([]string{tags.ResolvSolid}, extra...)...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = wall // Link for O(1) lookup

	components.Object.SetValue(wall, components.ObjectData{Object: obj})
	components.AddToSpace(s.World(), obj)

	return wall
}
