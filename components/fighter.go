package components

import (
	"github.com/automoto/fightcore/animation"
	"github.com/automoto/fightcore/config"
	"github.com/yohamta/donburi"
)

type FighterData struct {
	Slot      int
	Character *config.Character
	Library   *animation.Library
}

var Fighter = donburi.NewComponentType[FighterData]()
