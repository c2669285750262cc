package components

import (
	"image"

	"github.com/automoto/bludbourne/controller"
	"github.com/automoto/bludbourne/entity"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Entity     *entity.Entity
	Controller *controller.PlayerController

	// GPU copies of animation frames, keyed by the decoded frame
	Frames map[image.Image]*ebiten.Image
}

var Player = donburi.NewComponentType[PlayerData]()
