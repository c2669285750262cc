package components

import (
	"io/fs"

	"github.com/automoto/bludbourne/maps"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Maps *maps.Manager
	FS   fs.FS // Resolves tileset images of the loaded maps

	// Rendered tile layers of BackgroundOf, rebuilt when the map changes
	Background   *ebiten.Image
	BackgroundOf maps.MapID

	Fade      *gween.Tween // Active after a map transition
	FadeAlpha float32
}

var Level = donburi.NewComponentType[LevelData]()
