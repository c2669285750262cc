package controller

import (
	"github.com/automoto/bludbourne/maps"
	"github.com/solarlune/resolv"
	math2 "github.com/yohamta/donburi/features/math"
)

// World is the part of the map manager a player tick needs.
type World interface {
	IsCollisionWithMapLayer(box *resolv.Object) bool
	PortalActivation(box *resolv.Object) (maps.MapID, bool)
	SetClosestStartPositionFromScaledUnits(position math2.Vec2)
	LoadMap(id maps.MapID) error
	CurrentMap() (*maps.Map, error)
	CurrentMapName() maps.MapID
	PlayerStartUnitScaled() math2.Vec2
}

// Step advances the player one tick on w: animate, follow a portal, commit
// the tentative move unless it collides, then read the next intent.
// It reports whether the player was placed on a newly loaded map.
func (c *PlayerController) Step(w World, delta float64) bool {
	ent := c.player

	ent.Update(delta)

	entered := c.followPortal(w)

	if !w.IsCollisionWithMapLayer(ent.BoundingBox()) {
		ent.SetNextPositionToCurrent()
	}

	c.Update(delta)
	return entered
}

// followPortal moves the player to the map named by the portal under its
// bounding box. The spawn nearest to where the player left is remembered for
// the map being left. If the destination fails to load, the player is placed
// on whatever map the manager falls back to.
func (c *PlayerController) followPortal(w World) bool {
	ent := c.player
	dest, ok := w.PortalActivation(ent.BoundingBox())
	if !ok {
		return false
	}

	from := w.CurrentMapName()
	w.SetClosestStartPositionFromScaledUnits(ent.CurrentPosition())

	if err := w.LoadMap(dest); err != nil {
		c.log.WithError(err).Errorf("Portal from %s to %s failed", from, dest)
		if _, err := w.CurrentMap(); err != nil {
			c.log.WithError(err).Error("No map to fall back to")
			return false
		}
	}

	start := w.PlayerStartUnitScaled()
	ent.Init(start.X, start.Y)
	c.log.Infof("Entered %s from %s at (%v,%v)", w.CurrentMapName(), from, start.X, start.Y)
	return true
}
