// Package controller turns decoded input intents into movement of a player
// entity. Each controller owns its own intent state.
package controller

import (
	"github.com/automoto/bludbourne/config"
	"github.com/automoto/bludbourne/entity"
	"github.com/automoto/bludbourne/logger"
	"github.com/sirupsen/logrus"
	math2 "github.com/yohamta/donburi/features/math"
)

// Movement intents in priority order, first pressed wins.
var movement = [...]struct {
	action config.ActionID
	dir    entity.Direction
}{
	{config.ActionMoveLeft, entity.Left},
	{config.ActionMoveRight, entity.Right},
	{config.ActionMoveUp, entity.Up},
	{config.ActionMoveDown, entity.Down},
}

type PlayerController struct {
	log    *logrus.Entry
	player *entity.Entity

	pressed   [config.ActionCount]bool
	lastMouse math2.Vec2
	quit      bool
}

func New(player *entity.Entity) *PlayerController {
	return &PlayerController{
		log:    logger.WithTag("controller"),
		player: player,
	}
}

// SetPressed records the held state of a keyboard intent.
func (c *PlayerController) SetPressed(action config.ActionID, pressed bool) {
	if action <= config.ActionNone || action >= config.ActionCount {
		return
	}
	c.pressed[action] = pressed
}

// SetMouse records a pointer intent and where it happened, in screen
// coordinates.
func (c *PlayerController) SetMouse(action config.ActionID, pressed bool, x, y float64) {
	if !action.IsMouse() {
		return
	}
	c.pressed[action] = pressed
	if pressed {
		c.lastMouse = math2.NewVec2(x, y)
	}
}

func (c *PlayerController) IsPressed(action config.ActionID) bool {
	if action <= config.ActionNone || action >= config.ActionCount {
		return false
	}
	return c.pressed[action]
}

func (c *PlayerController) LastMouse() math2.Vec2 { return c.lastMouse }

// ReleaseAll clears every intent, e.g. after the window loses focus.
func (c *PlayerController) ReleaseAll() {
	c.pressed = [config.ActionCount]bool{}
}

func (c *PlayerController) QuitRequested() bool { return c.quit }

// Update applies the held intents to the player for one tick.
func (c *PlayerController) Update(delta float64) {
	c.processInput(delta)
}

func (c *PlayerController) processInput(delta float64) {
	moved := false
	for _, m := range movement {
		if !c.pressed[m.action] {
			continue
		}
		c.player.CalculateNextPosition(m.dir, delta)
		c.player.SetState(entity.Walking)
		c.player.SetDirection(m.dir)
		moved = true
		break
	}

	if !moved {
		if c.pressed[config.ActionQuit] {
			c.quit = true
		}
		c.player.SetState(entity.Idle)
	}

	if c.pressed[config.ActionSelect] {
		c.log.Debugf("Select at (%v,%v)", c.lastMouse.X, c.lastMouse.Y)
		c.pressed[config.ActionSelect] = false
	}
	if c.pressed[config.ActionAct] {
		c.log.Debugf("Act at (%v,%v)", c.lastMouse.X, c.lastMouse.Y)
		c.pressed[config.ActionAct] = false
	}
}
