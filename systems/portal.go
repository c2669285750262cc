package systems

import (
	"github.com/automoto/bludbourne/components"
	cfg "github.com/automoto/bludbourne/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// startTransitionFade fades the screen in from black after a map change.
func startTransitionFade(level *components.LevelData) {
	level.Fade = gween.New(1, 0, cfg.Camera.FadeDuration, ease.OutQuad)
	level.FadeAlpha = 1
}
