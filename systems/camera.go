package systems

import (
	"math"

	"github.com/automoto/bludbourne/components"
	"github.com/automoto/bludbourne/config"
	"github.com/automoto/bludbourne/entity"
	"github.com/automoto/bludbourne/maps"
	"github.com/automoto/bludbourne/tags"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera centres the view on the player, keeping it inside the map
// where the map is larger than the view.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	playerEntry, ok := tags.Player.First(e.World)
	if !ok {
		return
	}
	ent := components.Player.Get(playerEntry).Entity

	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	current, err := components.Level.Get(levelEntry).Maps.CurrentMap()
	if err != nil {
		return
	}

	x, y := spriteOrigin(current, ent)
	w, h := ent.FrameSize()
	targetX := x + float64(w)/2
	targetY := y + float64(h)/2

	zoom := zoomOf(camera)
	viewW := float64(config.Window.Width) / zoom
	viewH := float64(config.Window.Height) / zoom

	camera.Position.X = clampAxis(targetX, viewW, current.Width)
	camera.Position.Y = clampAxis(targetY, viewH, current.Height)
}

func clampAxis(target, view, size float64) float64 {
	if size <= view {
		return size / 2
	}
	return math.Max(view/2, math.Min(size-view/2, target))
}

func zoomOf(camera *components.CameraData) float64 {
	if camera.Zoom <= 0 {
		return 1.0
	}
	return camera.Zoom
}

// spriteOrigin returns the top-left corner of the player's frame in map
// pixels with Y down, the space the map background is drawn in.
func spriteOrigin(m *maps.Map, ent *entity.Entity) (float64, float64) {
	pos := ent.CurrentPosition()
	_, h := ent.FrameSize()
	x := pos.X / config.UnitScale
	y := m.Height - pos.Y/config.UnitScale - float64(h)
	return x, y
}
