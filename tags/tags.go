package tags

import "github.com/yohamta/donburi"

var (
	Fighter = donburi.NewTag().SetName("Fighter")
	Hitbox  = donburi.NewTag().SetName("Hitbox")
	Wall    = donburi.NewTag().SetName("Wall")
)

// Resolv tags for physics collision
const (
	ResolvSolid   = "solid"
	ResolvPushbox = "pushbox"
	ResolvHurtbox = "hurtbox"
	ResolvHitbox  = "hitbox"
	ResolvFloor   = "floor"
)
