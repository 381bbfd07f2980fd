package factory

import (
	"github.com/automoto/fightcore/archetypes"
	"github.com/automoto/fightcore/components"
	"github.com/automoto/fightcore/engine"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateSpace spawns the match's collision space covering width x height
// pixels in square cells. Every box created afterwards joins it.
func CreateSpace(s *engine.Store, width, height, cell int) *donburi.Entry {
	cell = max(cell, 1)
	space := archetypes.Space.Spawn(s)
	components.Space.Set(space, resolv.NewSpace(max(width, cell), max(height, cell), cell, cell))
	return space
}
