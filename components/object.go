package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Space is the single resolv space of a match.
var Space = donburi.NewComponentType[resolv.Space]()

// RemoveFromSpace takes obj out of the match space if both exist.
func RemoveFromSpace(w donburi.World, obj *resolv.Object) {
	if obj == nil {
		return
	}
	if e, ok := Space.First(w); ok {
		Space.Get(e).Remove(obj)
	}
}

// AddToSpace registers obj with the match space, if there is one.
func AddToSpace(w donburi.World, obj *resolv.Object) {
	if obj == nil {
		return
	}
	if e, ok := Space.First(w); ok {
		Space.Get(e).Add(obj)
	}
}
