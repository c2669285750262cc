package systems

import (
	"github.com/automoto/bludbourne/components"
	"github.com/automoto/bludbourne/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	drawOp = &ebiten.DrawImageOptions{}
)

// DrawPlayer renders each player's current animation frame.
func DrawPlayer(ecs *ecs.ECS, screen *ebiten.Image) {
	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return // No camera yet
	}
	camera := components.Camera.Get(cameraEntry)

	levelEntry, ok := components.Level.First(ecs.World)
	if !ok {
		return
	}
	current, err := components.Level.Get(levelEntry).Maps.CurrentMap()
	if err != nil {
		return
	}

	tags.Player.Each(ecs.World, func(e *donburi.Entry) {
		player := components.Player.Get(e)
		img := frameImage(player)
		if img == nil {
			return
		}

		x, y := spriteOrigin(current, player.Entity)

		drawOp.GeoM.Reset()
		drawOp.GeoM.Translate(x, y)
		applyCamera(&drawOp.GeoM, camera, screen)
		screen.DrawImage(img, drawOp)
	})
}

// frameImage uploads the entity's current frame on first use.
func frameImage(player *components.PlayerData) *ebiten.Image {
	frame := player.Entity.CurrentFrame()
	if frame == nil {
		return nil
	}
	if img, ok := player.Frames[frame]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(frame)
	player.Frames[frame] = img
	return img
}
