package systems

import (
	"fmt"

	"github.com/automoto/bludbourne/components"
	"github.com/automoto/bludbourne/config"
	"github.com/automoto/bludbourne/logger"
	"github.com/automoto/bludbourne/maps"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lafriks/go-tiled/render"
	"github.com/yohamta/donburi/ecs"
)

// UpdateLevel runs the fade-in that follows a map transition.
func UpdateLevel(e *ecs.ECS) {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)
	if level.Fade == nil {
		return
	}

	alpha, finished := level.Fade.Update(float32(tickDelta()))
	level.FadeAlpha = alpha
	if finished {
		level.Fade = nil
		level.FadeAlpha = 0
	}
}

func DrawLevel(ecs *ecs.ECS, screen *ebiten.Image) {
	cameraEntry, ok := components.Camera.First(ecs.World)
	if !ok {
		return // No camera yet
	}
	camera := components.Camera.Get(cameraEntry)

	levelEntry, ok := components.Level.First(ecs.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)

	current, err := level.Maps.CurrentMap()
	if err != nil {
		return
	}
	if level.Background == nil || level.BackgroundOf != current.ID {
		if err := rebuildBackground(level, current); err != nil {
			logger.WithTag("level").WithError(err).Error("Failed to render map")
			return
		}
	}

	opts := &ebiten.DrawImageOptions{}
	applyCamera(&opts.GeoM, camera, screen)
	screen.DrawImage(level.Background, opts)
}

// DrawFade darkens the screen while a transition fade is running.
func DrawFade(ecs *ecs.ECS, screen *ebiten.Image) {
	levelEntry, ok := components.Level.First(ecs.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)
	if level.FadeAlpha <= 0 {
		return
	}

	c := config.Black
	c.A = uint8(float32(c.A) * level.FadeAlpha)
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, float32(w), float32(h), c, false)
}

// rebuildBackground renders the visible tile layers of m once and caches
// the result until the map changes.
func rebuildBackground(level *components.LevelData, m *maps.Map) error {
	if level.Background != nil {
		level.Background.Deallocate()
		level.Background = nil
	}

	renderer, err := render.NewRendererWithFileSystem(m.Tiled, level.FS)
	if err != nil {
		return fmt.Errorf("create renderer for %s: %w", m.ID, err)
	}
	if err := renderer.RenderVisibleLayers(); err != nil {
		return fmt.Errorf("render %s: %w", m.ID, err)
	}

	level.Background = ebiten.NewImageFromImage(renderer.Result)
	level.BackgroundOf = m.ID
	renderer.Clear()
	return nil
}

// applyCamera maps map pixels to screen pixels:
// translate to camera-relative position, scale by zoom, centre on screen.
func applyCamera(geoM *ebiten.GeoM, camera *components.CameraData, screen *ebiten.Image) {
	zoom := zoomOf(camera)
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	geoM.Translate(-camera.Position.X, -camera.Position.Y)
	geoM.Scale(zoom, zoom)
	geoM.Translate(float64(width)/2, float64(height)/2)
}
