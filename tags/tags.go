package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Level  = donburi.NewTag().SetName("Level")
)

// Resolv tags for map objects and bounding boxes
const (
	ResolvPlayer    = "Player"
	ResolvCollision = "collision"
	ResolvPortal    = "portal"
)
