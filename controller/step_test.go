package controller

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/automoto/bludbourne/assets"
	"github.com/automoto/bludbourne/config"
	"github.com/automoto/bludbourne/entity"
	"github.com/automoto/bludbourne/maps"
)

// 20x20 tiles of 16 map units
const mapHeight = 320.0

func tmx(groups ...string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="20" height="20" tilewidth="16" tileheight="16" infinite="0" nextlayerid="4" nextobjectid="30">
` + strings.Join(groups, "\n") + `
</map>
`)}
}

func group(name string, objects ...string) string {
	return `<objectgroup id="1" name="` + name + `">` + "\n" + strings.Join(objects, "\n") + "\n</objectgroup>"
}

// object places a rectangle whose bottom-left corner is (x, y) in Y-up map units.
func object(name string, x, y, w, h float64) string {
	return fmt.Sprintf(`<object name="%s" x="%g" y="%g" width="%g" height="%g"/>`, name, x, mapHeight-y-h, w, h)
}

func sheet(t *testing.T) *fstest.MapFile {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return &fstest.MapFile{Data: buf.Bytes()}
}

// newWorld loads TOWN from files and places a player at (x, y) world units.
func newWorld(t *testing.T, files fstest.MapFS, x, y float64) (*maps.Manager, *entity.Entity, *PlayerController) {
	t.Helper()
	files[config.Entity.SpritePath] = sheet(t)
	loader := assets.NewManager(files)

	m := maps.NewManager(loader)
	if err := m.LoadMap(maps.Town); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}

	player, err := entity.New(loader)
	if err != nil {
		t.Fatalf("entity.New: %v", err)
	}
	player.Init(x, y)
	return m, player, New(player)
}

func townPath() string { return config.Maps.Table[config.MapTown] }

func TestStepCommitsOnTheFollowingTick(t *testing.T) {
	m, player, c := newWorld(t, fstest.MapFS{townPath(): tmx()}, 2, 2)
	c.SetPressed(config.ActionMoveRight, true)

	c.Step(m, 0.5)
	if p := player.CurrentPosition(); p.X != 2 || p.Y != 2 {
		t.Fatalf("current after first tick = %v, want (2,2)", p)
	}
	if p := player.NextPosition(); p.X != 3 || p.Y != 2 {
		t.Fatalf("next after first tick = %v, want (3,2)", p)
	}

	c.Step(m, 0.5)
	if p := player.CurrentPosition(); p.X != 3 || p.Y != 2 {
		t.Fatalf("current after second tick = %v, want (3,2)", p)
	}
}

func TestStepRejectsMoveIntoCollision(t *testing.T) {
	files := fstest.MapFS{townPath(): tmx(
		group(config.Maps.CollisionLayer, object("wall", 48, 32, 16, 16)),
	)}
	m, player, c := newWorld(t, files, 2, 2)
	c.SetPressed(config.ActionMoveRight, true)

	for i := 0; i < 3; i++ {
		c.Step(m, 0.5)
	}
	if p := player.CurrentPosition(); p.X != 2 || p.Y != 2 {
		t.Fatalf("current = %v, want (2,2) in front of the wall", p)
	}
	if player.State() != entity.Walking || player.Direction() != entity.Right {
		t.Fatalf("state/direction = %s/%s, want WALKING/RIGHT", player.State(), player.Direction())
	}
}

func TestStepFollowsPortal(t *testing.T) {
	files := fstest.MapFS{
		townPath(): tmx(
			group(config.Maps.PortalLayer, object("top_world", 16, 16, 16, 16)),
			group(config.Maps.SpawnsLayer, object("PLAYER_START", 16, 16, 16, 16)),
		),
		config.Maps.Table[config.MapTopWorld]: tmx(
			group(config.Maps.SpawnsLayer, object("PLAYER_START", 0, 0, 16, 16)),
		),
	}
	m, player, c := newWorld(t, files, 1, 1)

	if !c.Step(m, 0.1) {
		t.Fatal("Step should report the map change")
	}
	if m.CurrentMapName() != maps.TopWorld {
		t.Fatalf("current map = %s, want TOP_WORLD", m.CurrentMapName())
	}
	if p := player.CurrentPosition(); p.X != 0 || p.Y != 0 {
		t.Fatalf("player = %v, want TOP_WORLD start (0,0)", p)
	}
	if p, _ := m.StartLocation(maps.Town); p.X != 16 || p.Y != 16 {
		t.Fatalf("remembered TOWN start = %v, want (16,16)", p)
	}

	if c.Step(m, 0.1) {
		t.Fatal("no portal under the player, no map change expected")
	}
}

func TestStepFailedPortalPlacesPlayerOnFallbackMap(t *testing.T) {
	// CASTLE_OF_DOOM is registered but its file is absent
	files := fstest.MapFS{
		townPath(): tmx(
			group(config.Maps.PortalLayer, object("CASTLE_OF_DOOM", 16, 16, 16, 16)),
			group(config.Maps.SpawnsLayer, object("PLAYER_START", 64, 64, 16, 16)),
		),
	}
	m, player, c := newWorld(t, files, 1, 1)

	if !c.Step(m, 0.1) {
		t.Fatal("player should be placed on the fallback map")
	}
	if !m.Loaded() || m.CurrentMapName() != maps.Town {
		t.Fatalf("current map = %s (loaded %v), want TOWN", m.CurrentMapName(), m.Loaded())
	}
	start := m.PlayerStartUnitScaled()
	if p := player.CurrentPosition(); p != start {
		t.Fatalf("player = %v, want fallback start %v", p, start)
	}
	if p := player.CurrentPosition(); p.X == 1 && p.Y == 1 {
		t.Fatal("player kept coordinates from before the failed transition")
	}
}
