// Package maps registers the game's tile maps, keeps exactly one of them
// loaded, and resolves where a player re-enters a map.
//
// Map units are the coordinates of the tile map resource. World units are map
// units multiplied by config.UnitScale. Remembered spawn points are stored in
// map units and converted only when read.
package maps

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/automoto/bludbourne/config"
	"github.com/automoto/bludbourne/logger"
	"github.com/automoto/bludbourne/tags"
	"github.com/lafriks/go-tiled"
	"github.com/sirupsen/logrus"
	"github.com/solarlune/resolv"
	math2 "github.com/yohamta/donburi/features/math"
)

// MapID names one of the world maps.
type MapID string

const (
	TopWorld     MapID = config.MapTopWorld
	Town         MapID = config.MapTown
	CastleOfDoom MapID = config.MapCastleOfDoom
)

// ErrUnknownMap means the identifier has no entry in the map table.
var ErrUnknownMap = errors.New("unknown map")

// Loader is the part of the resource loader the manager needs.
type Loader interface {
	Load(path string) error
	IsLoaded(path string) bool
	TileMap(path string) (*tiled.Map, error)
	Unload(path string)
}

type Manager struct {
	loader Loader
	log    *logrus.Entry
	cfg    config.MapsConfig

	mapTable       map[MapID]string
	startLocations map[MapID]math2.Vec2

	playerStart    math2.Vec2
	currentMap     *Map
	currentMapName MapID

	collisionLayer *Layer
	portalLayer    *Layer
	spawnsLayer    *Layer
}

// NewManager creates a manager from the global map configuration.
func NewManager(loader Loader) *Manager {
	return NewManagerWithConfig(loader, config.Maps)
}

func NewManagerWithConfig(loader Loader, cfg config.MapsConfig) *Manager {
	m := &Manager{
		loader:         loader,
		log:            logger.WithTag("maps"),
		cfg:            cfg,
		mapTable:       make(map[MapID]string, len(cfg.Table)),
		startLocations: make(map[MapID]math2.Vec2, len(cfg.Table)),
	}
	for id, path := range cfg.Table {
		m.mapTable[MapID(id)] = path
		m.startLocations[MapID(id)] = math2.Vec2{}
	}
	return m
}

// LoadMap makes id the only loaded map and resolves its player start.
// On an unknown id nothing but the player start changes. If the resource
// fails to load, the previous map has already been released and no map is
// current.
func (m *Manager) LoadMap(id MapID) error {
	m.playerStart = math2.Vec2{}

	path := m.mapTable[id]
	if path == "" {
		m.log.Debugf("Path for map %q is invalid", id)
		return fmt.Errorf("%w: %q", ErrUnknownMap, id)
	}

	if m.currentMap != nil {
		m.disposeCurrent()
	}

	if err := m.loader.Load(path); err != nil {
		m.log.WithError(err).Debug("Map not loaded")
		return fmt.Errorf("load map %s: %w", id, err)
	}
	if !m.loader.IsLoaded(path) {
		m.log.Debug("Map not loaded")
		return fmt.Errorf("load map %s: resource %s still not loaded", id, path)
	}
	tm, err := m.loader.TileMap(path)
	if err != nil {
		m.loader.Unload(path)
		return fmt.Errorf("load map %s: %w", id, err)
	}

	m.currentMap = newMap(id, path, tm)
	m.currentMapName = id

	m.collisionLayer = m.lookupLayer(m.cfg.CollisionLayer, "No collision layer!")
	m.portalLayer = m.lookupLayer(m.cfg.PortalLayer, "No portal layer!")
	m.spawnsLayer = m.lookupLayer(m.cfg.SpawnsLayer, "No spawn layer!")

	if m.collisionLayer != nil {
		m.currentMap.addToSpace(m.collisionLayer, tags.ResolvCollision)
	}
	if m.portalLayer != nil {
		m.currentMap.addToSpace(m.portalLayer, tags.ResolvPortal)
	}

	if m.spawnsLayer != nil {
		start := m.startLocations[m.currentMapName]
		if start.X == 0 && start.Y == 0 {
			m.setClosestPlayerStartPosition(m.playerStart)
			start = m.startLocations[m.currentMapName]
		}
		m.playerStart = start
	}

	m.log.Debugf("Player Start: (%v,%v)", m.playerStart.X, m.playerStart.Y)
	return nil
}

func (m *Manager) lookupLayer(name, missing string) *Layer {
	layer, err := m.currentMap.Layer(name)
	if err != nil {
		m.log.WithError(err).Debug(missing)
		return nil
	}
	return layer
}

func (m *Manager) disposeCurrent() {
	m.loader.Unload(m.currentMap.Path)
	m.currentMap = nil
	m.collisionLayer = nil
	m.portalLayer = nil
	m.spawnsLayer = nil
}

// CurrentMap returns the loaded map, loading the default map on first use.
func (m *Manager) CurrentMap() (*Map, error) {
	if m.currentMap == nil {
		m.currentMapName = MapID(m.cfg.DefaultMap)
		if err := m.LoadMap(m.currentMapName); err != nil {
			return nil, err
		}
	}
	return m.currentMap, nil
}

func (m *Manager) CurrentMapName() MapID { return m.currentMapName }

// Loaded reports whether a map is current, without triggering a load.
func (m *Manager) Loaded() bool { return m.currentMap != nil }

func (m *Manager) CollisionLayer() *Layer { return m.collisionLayer }
func (m *Manager) PortalLayer() *Layer    { return m.portalLayer }
func (m *Manager) SpawnLayer() *Layer     { return m.spawnsLayer }

// MapPath returns the resource path registered for id.
func (m *Manager) MapPath(id MapID) (string, bool) {
	path, ok := m.mapTable[id]
	return path, ok
}

// PlayerStartUnitScaled returns the player start of the current map in
// world units.
func (m *Manager) PlayerStartUnitScaled() math2.Vec2 {
	return math2.NewVec2(m.playerStart.X*config.UnitScale, m.playerStart.Y*config.UnitScale)
}

// SetClosestStartPositionFromScaledUnits remembers, for the current map, the
// spawn point nearest to a world-unit position.
func (m *Manager) SetClosestStartPositionFromScaledUnits(position math2.Vec2) {
	converted := math2.NewVec2(position.X/config.UnitScale, position.Y/config.UnitScale)
	m.setClosestPlayerStartPosition(converted)
}

// setClosestPlayerStartPosition scans the spawn layer for player start
// markers and stores the winner for the current map. The running shortest
// distance starts at zero, so only an exact match or a distance below the
// current best replaces the stored point; with no winner the stored point is
// the origin.
func (m *Manager) setClosestPlayerStartPosition(position math2.Vec2) {
	m.log.Debugf("setClosestStartPosition INPUT: (%v,%v) %s", position.X, position.Y, m.currentMapName)

	if m.spawnsLayer == nil {
		m.log.Debugf("No spawn layer on %s; start position unchanged", m.currentMapName)
		return
	}

	var closest math2.Vec2
	shortestDistance := 0.0

	for _, o := range m.spawnsLayer.Objects {
		if !strings.EqualFold(o.Name, m.cfg.PlayerStart) {
			continue
		}

		candidate := o.Position()
		distance := math.Hypot(position.X-candidate.X, position.Y-candidate.Y)
		m.log.Debugf("distance: %v for %s", distance, m.currentMapName)

		if distance < shortestDistance || distance == 0 {
			closest = candidate
			shortestDistance = distance
			m.log.Debugf("closest START is: (%v,%v) %s", closest.X, closest.Y, m.currentMapName)
		}
	}

	m.startLocations[m.currentMapName] = closest
}

// StartLocation returns the remembered spawn point of id in map units.
func (m *Manager) StartLocation(id MapID) (math2.Vec2, bool) {
	p, ok := m.startLocations[id]
	return p, ok
}

// IsCollisionWithMapLayer reports whether a map-unit box overlaps any object
// of the collision layer. Without a collision layer nothing collides.
func (m *Manager) IsCollisionWithMapLayer(box *resolv.Object) bool {
	if m.currentMap == nil || m.collisionLayer == nil {
		return false
	}
	return len(m.currentMap.overlapping(box, tags.ResolvCollision)) > 0
}

// PortalActivation returns the destination of the first portal the box
// overlaps. A portal object is named after the map it leads to.
func (m *Manager) PortalActivation(box *resolv.Object) (MapID, bool) {
	if m.currentMap == nil || m.portalLayer == nil {
		return "", false
	}

	for _, portal := range m.currentMap.overlapping(box, tags.ResolvPortal) {
		id := MapID(strings.ToUpper(portal.Name))
		if _, ok := m.mapTable[id]; ok {
			return id, true
		}
		m.log.Debugf("Portal %q on %s leads to no known map", portal.Name, m.currentMapName)
	}
	return "", false
}
