package config

import (
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

// UnitScale converts map units into world units (one world unit per tile).
const UnitScale = 1.0 / 16.0

// Map identifiers known to the game.
const (
	MapTopWorld     = "TOP_WORLD"
	MapTown         = "TOWN"
	MapCastleOfDoom = "CASTLE_OF_DOOM"
)

// EntityConfig contains the controllable character settings
type EntityConfig struct {
	SpritePath string `yaml:"sprite_path"`

	// Dimensions of one cell in the sprite sheet, in map units
	FrameWidth  int `yaml:"frame_width"`
	FrameHeight int `yaml:"frame_height"`

	// Sheet grid: one row per direction, FramesPerRow columns
	SheetRows    int `yaml:"sheet_rows"`
	FramesPerRow int `yaml:"frames_per_row"`

	// Movement in world units per second
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`

	// Animation timing in seconds
	FrameDuration  float64 `yaml:"frame_duration"`
	FrameClockWrap float64 `yaml:"frame_clock_wrap"`

	// Fraction removed from the frame size when deriving the bounding box
	BoxWidthReduction  float64 `yaml:"box_width_reduction"`
	BoxHeightReduction float64 `yaml:"box_height_reduction"`
}

// MapsConfig describes the map table and the layer naming convention
type MapsConfig struct {
	Table      map[string]string `yaml:"table"`
	DefaultMap string            `yaml:"default_map"`

	CollisionLayer string `yaml:"collision_layer"`
	PortalLayer    string `yaml:"portal_layer"`
	SpawnsLayer    string `yaml:"spawns_layer"`

	// Object name marking a valid player entry point (case-insensitive)
	PlayerStart string `yaml:"player_start"`
}

// WindowConfig holds general window configuration
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// CameraConfig contains camera settings for the world scene
type CameraConfig struct {
	Zoom         float64 `yaml:"zoom"`
	FadeDuration float32 `yaml:"fade_duration"` // Seconds of fade-in after a map transition
}

// File is the on-disk shape of an optional YAML overlay
type File struct {
	Window *WindowConfig `yaml:"window"`
	Entity *EntityConfig `yaml:"entity"`
	Maps   *MapsConfig   `yaml:"maps"`
	Camera *CameraConfig `yaml:"camera"`
}

// Global configuration instances
var Window WindowConfig
var Entity EntityConfig
var Maps MapsConfig
var Camera CameraConfig

// Shared RGBA color constants
var (
	Black        = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	Window = WindowConfig{
		Width:  800,
		Height: 600,
		Title:  "BludBourne",
	}

	Entity = EntityConfig{
		SpritePath:         "sprites/characters/Warrior.png",
		FrameWidth:         16,
		FrameHeight:        16,
		SheetRows:          4,
		FramesPerRow:       4,
		VelocityX:          2,
		VelocityY:          2,
		FrameDuration:      0.25,
		FrameClockWrap:     5,
		BoxWidthReduction:  0,
		BoxHeightReduction: 0.5,
	}

	Maps = MapsConfig{
		Table: map[string]string{
			MapTopWorld:     "maps/topworld.tmx",
			MapTown:         "maps/town.tmx",
			MapCastleOfDoom: "maps/castle_of_doom.tmx",
		},
		DefaultMap:     MapTown,
		CollisionLayer: "MAP_COLLISION_LAYER",
		PortalLayer:    "MAP_PORTAL_LAYER",
		SpawnsLayer:    "MAP_SPAWNS_LAYER",
		PlayerStart:    "PLAYER_START",
	}

	Camera = CameraConfig{
		Zoom:         2,
		FadeDuration: 0.5,
	}
}

// Load reads a YAML overlay and applies every section it contains on top
// of the current values. Fields omitted inside a section keep their value.
func Load(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return Apply(data)
}

// Apply decodes a YAML overlay held in memory.
func Apply(data []byte) error {
	// Decode into copies so a malformed document leaves the globals intact
	window, entity, maps, camera := Window, Entity, Maps, Camera
	maps.Table = make(map[string]string, len(Maps.Table))
	for id, path := range Maps.Table {
		maps.Table[id] = path
	}
	f := File{Window: &window, Entity: &entity, Maps: &maps, Camera: &camera}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := validate(&entity, &maps); err != nil {
		return err
	}

	Window, Entity, Maps, Camera = window, entity, maps, camera
	return nil
}

func validate(e *EntityConfig, m *MapsConfig) error {
	if e.FrameWidth <= 0 || e.FrameHeight <= 0 {
		return fmt.Errorf("entity frame size must be positive, got %dx%d", e.FrameWidth, e.FrameHeight)
	}
	if e.SheetRows < 4 {
		return fmt.Errorf("entity sheet needs a row per direction, got %d rows", e.SheetRows)
	}
	if e.FrameDuration <= 0 {
		return fmt.Errorf("entity frame duration must be positive, got %v", e.FrameDuration)
	}
	if e.FrameClockWrap <= 0 {
		return fmt.Errorf("entity frame clock wrap must be positive, got %v", e.FrameClockWrap)
	}
	if _, ok := m.Table[m.DefaultMap]; !ok {
		return fmt.Errorf("default map %q is not in the map table", m.DefaultMap)
	}
	return nil
}
