package systems

import (
	"strings"

	"github.com/automoto/bludbourne/components"
	cfg "github.com/automoto/bludbourne/config"
	"github.com/automoto/bludbourne/logger"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

// deviceBinding is an InputBinding resolved to ebiten controls.
type deviceBinding struct {
	keys    []ebiten.Key
	buttons []ebiten.MouseButton
}

// Resolved once from cfg.Input on the first poll
var bindings map[cfg.ActionID]deviceBinding

var mouseButtons = map[string]ebiten.MouseButton{
	"left":   ebiten.MouseButtonLeft,
	"right":  ebiten.MouseButtonRight,
	"middle": ebiten.MouseButtonMiddle,
}

// resolveBindings converts configured control names into ebiten keys and
// buttons. Unknown names are logged and skipped.
func resolveBindings(in cfg.InputConfig) map[cfg.ActionID]deviceBinding {
	log := logger.WithTag("input")
	resolved := make(map[cfg.ActionID]deviceBinding, len(in.Bindings))

	for action, binding := range in.Bindings {
		var db deviceBinding
		for _, name := range binding.Keys {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(name)); err != nil {
				log.WithError(err).Warnf("Unknown key %q for %s", name, action)
				continue
			}
			db.keys = append(db.keys, k)
		}
		for _, name := range binding.MouseButtons {
			b, ok := mouseButtons[strings.ToLower(name)]
			if !ok {
				log.Warnf("Unknown mouse button %q for %s", name, action)
				continue
			}
			db.buttons = append(db.buttons, b)
		}
		resolved[action] = db
	}
	return resolved
}

// UpdateInput polls raw input and updates the InputComponent.
// Must run BEFORE UpdatePlayer in the system order.
func UpdateInput(ecs *ecs.ECS) {
	if bindings == nil {
		bindings = resolveBindings(cfg.Input)
	}

	entry, ok := components.Input.First(ecs.World)
	if !ok {
		return
	}
	input := components.Input.Get(entry)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [cfg.ActionCount]bool{}

	for action, binding := range bindings {
		for _, key := range binding.keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[action] = true
			}
		}
		for _, btn := range binding.buttons {
			if ebiten.IsMouseButtonPressed(btn) {
				input.Current[action] = true
			}
		}
	}

	x, y := ebiten.CursorPosition()
	input.CursorX, input.CursorY = float64(x), float64(y)
}

// feedController hands the polled intents to a player's controller.
// Pointer intents fire once per press.
func feedController(input *components.InputData, player *components.PlayerData) {
	c := player.Controller
	for a := cfg.ActionNone + 1; a < cfg.ActionCount; a++ {
		if a.IsMouse() {
			c.SetMouse(a, input.JustPressed(a), input.CursorX, input.CursorY)
			continue
		}
		c.SetPressed(a, input.Current[a])
	}
}
