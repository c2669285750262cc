package systems

import (
	"github.com/automoto/bludbourne/components"
	"github.com/automoto/bludbourne/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// tickDelta is the length of one update in seconds.
func tickDelta() float64 {
	return 1 / float64(ebiten.TPS())
}

// UpdatePlayer feeds the polled intents to every player and advances it one
// tick on the current map.
func UpdatePlayer(e *ecs.ECS) {
	levelEntry, ok := components.Level.First(e.World)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)

	var input *components.InputData
	if entry, ok := components.Input.First(e.World); ok {
		input = components.Input.Get(entry)
	}

	delta := tickDelta()
	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		player := components.Player.Get(entry)
		if input != nil {
			feedController(input, player)
		}
		stepPlayer(level, player, delta)
	})
}

func stepPlayer(level *components.LevelData, player *components.PlayerData, delta float64) {
	if player.Controller.Step(level.Maps, delta) {
		startTransitionFade(level)
	}
}

// QuitRequested reports whether any player asked to leave the game.
func QuitRequested(e *ecs.ECS) bool {
	quit := false
	tags.Player.Each(e.World, func(entry *donburi.Entry) {
		if components.Player.Get(entry).Controller.QuitRequested() {
			quit = true
		}
	})
	return quit
}
