package scenes

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/automoto/bludbourne/archetypes"
	"github.com/automoto/bludbourne/assets"
	"github.com/automoto/bludbourne/components"
	"github.com/automoto/bludbourne/logger"
	"github.com/automoto/bludbourne/systems"
	factory2 "github.com/automoto/bludbourne/systems/factory"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// WorldScene walks the player across the maps.
type WorldScene struct {
	ecs    *ecs.ECS
	loader *assets.Manager
	once   sync.Once
	err    error
}

func NewWorldScene(loader *assets.Manager) *WorldScene {
	return &WorldScene{loader: loader}
}

// Update advances one tick. It returns ebiten.Termination once the player
// quits, or the error that kept the world from being built.
func (ws *WorldScene) Update() error {
	ws.once.Do(func() { ws.err = ws.configure() })
	if ws.err != nil {
		return ws.err
	}

	ws.ecs.Update()

	if systems.QuitRequested(ws.ecs) {
		logger.WithTag("world").Info("Quit requested")
		return ebiten.Termination
	}
	return nil
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ws.ecs == nil {
		return
	}
	ws.ecs.Draw(screen)
}

func (ws *WorldScene) configure() error {
	ecs := ecs.NewECS(donburi.NewWorld())

	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdatePlayer)
	ecs.AddSystem(systems.UpdateLevel)
	ecs.AddSystem(systems.UpdateCamera)

	ecs.AddRenderer(archetypes.Default, systems.DrawLevel)
	ecs.AddRenderer(archetypes.Default, systems.DrawPlayer)
	ecs.AddRenderer(archetypes.Default, systems.DrawFade)

	// Create the level entity and load the default map FIRST.
	level, err := factory2.CreateLevel(ecs, ws.loader)
	if err != nil {
		return fmt.Errorf("configure world: %w", err)
	}
	levelData := components.Level.Get(level)

	factory2.CreateCamera(ecs)
	factory2.CreateInput(ecs)

	if _, err := factory2.CreatePlayer(ecs, ws.loader, levelData.Maps.PlayerStartUnitScaled()); err != nil {
		return fmt.Errorf("configure world: %w", err)
	}

	ws.ecs = ecs
	return nil
}
