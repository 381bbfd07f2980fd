package archetypes

import (
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/automoto/fightcore/tags"
	"github.com/yohamta/donburi"
)

var (
	Fighter = newArchetype(
		tags.Fighter,
		components.Fighter,
		components.Transform,
		components.Rigidbody,
		components.Object,
		components.Hurtbox,
		components.State,
		components.Action,
		components.Animator,
		components.Input,
		components.InputListener,
	)
	Hitbox = newArchetype(
		tags.Hitbox,
		components.Hitbox,
	)
	Space = newArchetype(
		components.Space,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(s *engine.Store, cs ...donburi.IComponentType) *donburi.Entry {
	all := append(append([]donburi.IComponentType(nil), a.components...), cs...)
	return s.Entry(s.Create(all...))
}
