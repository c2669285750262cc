// Package entity implements the kinematics and walking animation of a
// controllable character.
//
// Positions and velocity are in world units with Y pointing up. The bounding
// box is kept in map units so it can be tested directly against map layers.
package entity

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/automoto/bludbourne/assets"
	"github.com/automoto/bludbourne/assets/animations"
	"github.com/automoto/bludbourne/config"
	"github.com/automoto/bludbourne/logger"
	"github.com/automoto/bludbourne/tags"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/solarlune/resolv"
	math2 "github.com/yohamta/donburi/features/math"
)

// ErrInvalidSheet means the configured frame grid cannot be cut from a sheet.
var ErrInvalidSheet = errors.New("invalid sprite sheet geometry")

// ImageLoader is the part of the resource loader an Entity needs.
type ImageLoader interface {
	Load(path string) error
	Image(path string) (image.Image, error)
	Unload(path string)
}

// unit displacement per direction, scaled by velocity on each axis
var directionSteps = [directionCount]math2.Vec2{
	Up:    {X: 0, Y: 1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: -1},
	Left:  {X: -1, Y: 0},
}

type Entity struct {
	id     string
	log    *logrus.Entry
	loader ImageLoader
	cfg    config.EntityConfig

	velocity        math2.Vec2
	currentPosition math2.Vec2
	nextPosition    math2.Vec2

	direction         Direction
	previousDirection Direction
	state             State
	frameTime         float64

	walk         [directionCount]*animations.Animation
	currentFrame image.Image
	boundingBox  *resolv.Object
}

// New creates an entity from the global entity configuration.
func New(loader ImageLoader) (*Entity, error) {
	return NewWithConfig(loader, config.Entity)
}

// NewWithConfig loads the sprite sheet named by cfg and builds the four
// walking animations from it. Position is set separately with Init.
func NewWithConfig(loader ImageLoader, cfg config.EntityConfig) (*Entity, error) {
	e := &Entity{
		id:                uuid.NewString(),
		log:               logger.WithTag("entity"),
		loader:            loader,
		cfg:               cfg,
		velocity:          math2.NewVec2(cfg.VelocityX, cfg.VelocityY),
		direction:         Left,
		previousDirection: Up,
		state:             Idle,
		boundingBox:       resolv.NewObject(0, 0, 0, 0, tags.ResolvPlayer),
	}

	if err := checkSheet(cfg); err != nil {
		return nil, &assets.ResourceError{Op: "split", Path: cfg.SpritePath, Err: err}
	}

	sheet, err := e.loadSheet()
	if err != nil {
		return nil, err
	}
	if err := e.loadAnimations(sheet); err != nil {
		loader.Unload(cfg.SpritePath)
		return nil, &assets.ResourceError{Op: "split", Path: cfg.SpritePath, Err: err}
	}

	return e, nil
}

// checkSheet rejects a sheet geometry that cannot be cut into frames.
// Fewer rows than directions is allowed; the missing directions get empty
// sequences.
func checkSheet(cfg config.EntityConfig) error {
	if cfg.FrameWidth <= 0 || cfg.FrameHeight <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidSheet, cfg.FrameWidth, cfg.FrameHeight)
	}
	if cfg.SheetRows < 0 || cfg.FramesPerRow < 0 {
		return fmt.Errorf("%w: %d rows of %d frames", ErrInvalidSheet, cfg.SheetRows, cfg.FramesPerRow)
	}
	return nil
}

func (e *Entity) loadSheet() (image.Image, error) {
	path := e.cfg.SpritePath
	if err := e.loader.Load(path); err != nil {
		return nil, asResourceError("load", path, err)
	}
	sheet, err := e.loader.Image(path)
	if err != nil {
		e.loader.Unload(path)
		return nil, asResourceError("get", path, err)
	}
	return sheet, nil
}

func asResourceError(op, path string, err error) error {
	var re *assets.ResourceError
	if errors.As(err, &re) {
		return err
	}
	return &assets.ResourceError{Op: op, Path: path, Err: err}
}

func (e *Entity) loadAnimations(sheet image.Image) error {
	grid, err := splitSheet(sheet, e.cfg.FrameWidth, e.cfg.FrameHeight, e.cfg.SheetRows, e.cfg.FramesPerRow)
	if grid == nil {
		return err
	}
	if err != nil {
		e.log.WithError(err).Debug("Sprite sheet is missing animation frames")
	}

	for row, dir := range sheetRows {
		frames := make([]image.Image, 0, e.cfg.FramesPerRow)
		if row < len(grid) {
			for _, frame := range grid[row] {
				if frame != nil {
					frames = append(frames, frame)
				}
			}
		} else {
			e.log.Debugf("Sprite sheet has no row for %s", dir)
		}
		e.walk[dir] = animations.NewAnimation(e.cfg.FrameDuration, frames, animations.Loop)
	}

	// First frame of the first sheet row, nil when the sheet has none
	e.currentFrame = e.walk[sheetRows[0]].KeyFrame(0)
	return nil
}

// Init places the entity. Both the current and the tentative position are set.
func (e *Entity) Init(x, y float64) {
	e.currentPosition = math2.NewVec2(x, y)
	e.nextPosition = math2.NewVec2(x, y)
}

// Update advances the frame clock and rebuilds the bounding box from the
// tentative position.
func (e *Entity) Update(delta float64) {
	wrap := e.cfg.FrameClockWrap
	e.frameTime = math.Mod(e.frameTime+delta, wrap)
	if e.frameTime < 0 {
		e.frameTime += wrap
	}

	e.SetBoundingBoxSize(e.cfg.BoxWidthReduction, e.cfg.BoxHeightReduction)
}

// SetBoundingBoxSize derives the bounding box from the tentative position.
// A reduction in (0,1) shrinks that axis of the frame by the given fraction;
// any other value keeps the full frame dimension.
func (e *Entity) SetBoundingBoxSize(widthReduction, heightReduction float64) {
	width := float64(e.cfg.FrameWidth)
	height := float64(e.cfg.FrameHeight)

	if keep := 1 - widthReduction; keep > 0 && keep < 1 {
		width *= keep
	}
	if keep := 1 - heightReduction; keep > 0 && keep < 1 {
		height *= keep
	}

	if width == 0 || height == 0 {
		e.log.Debugf("Width and Height are 0!! %v:%v", width, height)
	}

	// Map layers are in map units
	e.boundingBox.X = e.nextPosition.X / config.UnitScale
	e.boundingBox.Y = e.nextPosition.Y / config.UnitScale
	e.boundingBox.W = width
	e.boundingBox.H = height
}

// CalculateNextPosition moves the tentative position one step from the
// current position along the axis of dir. The current position is untouched
// until the host commits with SetNextPositionToCurrent.
func (e *Entity) CalculateNextPosition(dir Direction, delta float64) {
	if !dir.Valid() {
		e.log.Debugf("Ignoring movement in direction %d", dir)
		return
	}

	step := directionSteps[dir]
	e.nextPosition = math2.NewVec2(
		e.currentPosition.X+step.X*e.velocity.X*delta,
		e.currentPosition.Y+step.Y*e.velocity.Y*delta,
	)
}

// SetDirection turns the entity and selects the frame for the new facing at
// the current frame clock.
func (e *Entity) SetDirection(dir Direction) {
	if !dir.Valid() {
		e.log.Debugf("Ignoring direction %d", dir)
		return
	}

	e.previousDirection = e.direction
	e.direction = dir

	if frame := e.walk[dir].KeyFrame(e.frameTime); frame != nil {
		e.currentFrame = frame
	} else {
		e.log.Debugf("No frames for direction %s", dir)
	}
}

func (e *Entity) SetCurrentPosition(x, y float64) {
	e.currentPosition = math2.NewVec2(x, y)
}

// SetNextPositionToCurrent commits the tentative position.
func (e *Entity) SetNextPositionToCurrent() {
	e.SetCurrentPosition(e.nextPosition.X, e.nextPosition.Y)
}

// Dispose releases the sprite sheet. Animations already built stay valid.
func (e *Entity) Dispose() {
	e.loader.Unload(e.cfg.SpritePath)
}

func (e *Entity) ID() string                   { return e.id }
func (e *Entity) CurrentPosition() math2.Vec2  { return e.currentPosition }
func (e *Entity) NextPosition() math2.Vec2     { return e.nextPosition }
func (e *Entity) Velocity() math2.Vec2         { return e.velocity }
func (e *Entity) SetVelocity(v math2.Vec2)     { e.velocity = v }
func (e *Entity) Direction() Direction         { return e.direction }
func (e *Entity) PreviousDirection() Direction { return e.previousDirection }
func (e *Entity) State() State                 { return e.state }
func (e *Entity) SetState(s State)             { e.state = s }
func (e *Entity) FrameTime() float64           { return e.frameTime }
func (e *Entity) CurrentFrame() image.Image    { return e.currentFrame }

// BoundingBox is owned by the entity; callers must not keep it in a space.
func (e *Entity) BoundingBox() *resolv.Object { return e.boundingBox }

// FrameSize is the sprite cell size in map units.
func (e *Entity) FrameSize() (int, int) { return e.cfg.FrameWidth, e.cfg.FrameHeight }

// Animation returns the walking animation for dir.
func (e *Entity) Animation(dir Direction) *animations.Animation {
	if !dir.Valid() {
		return nil
	}
	return e.walk[dir]
}
