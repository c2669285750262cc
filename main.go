package main

import (
	"errors"
	"flag"
	"image"
	"io/fs"
	"os"

	"github.com/automoto/bludbourne/assets"
	"github.com/automoto/bludbourne/config"
	"github.com/automoto/bludbourne/logger"
	"github.com/automoto/bludbourne/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

type Scene interface {
	Update() error
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(loader *assets.Manager) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scenes.NewWorldScene(loader),
	}
}

func (g *Game) Update() error {
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.Window.Width, config.Window.Height)
	return config.Window.Width, config.Window.Height
}

func main() {
	configPath := flag.String("config", "bludbourne.yaml", "optional YAML settings overlay")
	assetRoot := flag.String("assets", "assets", "directory holding sprites and maps")
	flag.Parse()

	logger.Init()
	log := logger.WithTag("main")

	if err := config.Load(*configPath); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.WithError(err).Fatal("Invalid configuration")
		}
		log.Debugf("No config at %s, using defaults", *configPath)
	}

	loader := assets.NewManager(os.DirFS(*assetRoot))

	ebiten.SetWindowSize(config.Window.Width, config.Window.Height)
	ebiten.SetWindowTitle(config.Window.Title)

	if err := ebiten.RunGame(NewGame(loader)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("Game stopped")
	}
}
