package components

import (
	"github.com/automoto/fightcore/input"
	"github.com/yohamta/donburi"
)

// InputData keeps the recent input history of one fighter.
type InputData struct {
	Buffer input.Buffer
}

var Input = donburi.NewComponentType[InputData]()

type InputListenerTag struct{}

// InputListener marks fighters the transition systems evaluate.
var InputListener = donburi.NewComponentType[InputListenerTag]()
