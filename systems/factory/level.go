package factory

import (
	"fmt"

	"github.com/automoto/bludbourne/archetypes"
	"github.com/automoto/bludbourne/assets"
	"github.com/automoto/bludbourne/components"
	"github.com/automoto/bludbourne/maps"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateLevel spawns the level entity and loads the default map.
func CreateLevel(ecs *ecs.ECS, loader *assets.Manager) (*donburi.Entry, error) {
	manager := maps.NewManager(loader)
	if _, err := manager.CurrentMap(); err != nil {
		return nil, fmt.Errorf("create level: %w", err)
	}

	level := archetypes.Level.Spawn(ecs)
	components.Level.Set(level, &components.LevelData{
		Maps: manager,
		FS:   loader.FS(),
	})

	return level, nil
}
