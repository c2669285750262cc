package factory

import (
	"fmt"
	"image"

	"github.com/automoto/bludbourne/archetypes"
	"github.com/automoto/bludbourne/components"
	"github.com/automoto/bludbourne/controller"
	"github.com/automoto/bludbourne/entity"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

// CreatePlayer spawns the controllable character at a world-unit position.
func CreatePlayer(ecs *ecs.ECS, loader entity.ImageLoader, start math.Vec2) (*donburi.Entry, error) {
	e, err := entity.New(loader)
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	e.Init(start.X, start.Y)

	player := archetypes.Player.Spawn(ecs)
	components.Player.SetValue(player, components.PlayerData{
		Entity:     e,
		Controller: controller.New(e),
		Frames:     make(map[image.Image]*ebiten.Image),
	})

	return player, nil
}
