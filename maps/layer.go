package maps

import (
	"errors"
	"fmt"

	"github.com/automoto/bludbourne/tags"
	"github.com/lafriks/go-tiled"
	"github.com/solarlune/resolv"
	math2 "github.com/yohamta/donburi/features/math"
)

// ErrMissingLayer means a loaded map has no layer with the requested name.
var ErrMissingLayer = errors.New("missing map layer")

const defaultTileSize = 16

// Object is a named rectangle on an object layer, in map units with Y up.
// X and Y are the bottom-left corner.
type Object struct {
	Name   string
	Type   string
	X, Y   float64
	Width  float64
	Height float64
}

// Position is the anchor used for spawn distance checks.
func (o *Object) Position() math2.Vec2 {
	return math2.NewVec2(o.X, o.Y)
}

type Layer struct {
	Name    string
	Objects []*Object
}

// Map is a loaded tile map with its object layers indexed by name.
type Map struct {
	ID     MapID
	Path   string
	Tiled  *tiled.Map
	Width  float64 // map units
	Height float64

	layers map[string]*Layer
	space  *resolv.Space
}

func newMap(id MapID, path string, tm *tiled.Map) *Map {
	tileW, tileH := tm.TileWidth, tm.TileHeight
	if tileW <= 0 {
		tileW = defaultTileSize
	}
	if tileH <= 0 {
		tileH = defaultTileSize
	}

	m := &Map{
		ID:     id,
		Path:   path,
		Tiled:  tm,
		Width:  float64(tm.Width * tileW),
		Height: float64(tm.Height * tileH),
		layers: make(map[string]*Layer, len(tm.ObjectGroups)),
		space:  resolv.NewSpace(tm.Width*tileW, tm.Height*tileH, tileW, tileH),
	}

	for _, og := range tm.ObjectGroups {
		layer := &Layer{Name: og.Name, Objects: make([]*Object, 0, len(og.Objects))}
		for _, o := range og.Objects {
			layer.Objects = append(layer.Objects, m.convertObject(o))
		}
		// First group wins when names repeat
		if _, ok := m.layers[og.Name]; !ok {
			m.layers[og.Name] = layer
		}
	}

	return m
}

// convertObject flips a TMX object (Y down, top-left anchor) into map units
// with Y up and a bottom-left anchor. Tile objects are already anchored at
// their bottom edge.
func (m *Map) convertObject(o *tiled.Object) *Object {
	class := o.Class
	if class == "" {
		class = o.Type //nolint:staticcheck // TMX uses type= attribute
	}

	y := m.Height - o.Y - o.Height
	if o.GID != 0 {
		y = m.Height - o.Y
	}

	return &Object{
		Name:   o.Name,
		Type:   class,
		X:      o.X,
		Y:      y,
		Width:  o.Width,
		Height: o.Height,
	}
}

// Layer returns the object layer called name.
func (m *Map) Layer(name string) (*Layer, error) {
	layer, ok := m.layers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrMissingLayer, name, m.ID)
	}
	return layer, nil
}

// addToSpace registers every object of layer for overlap queries under tag.
func (m *Map) addToSpace(layer *Layer, tag string) {
	for _, o := range layer.Objects {
		obj := resolv.NewObject(o.X, o.Y, o.Width, o.Height, tag)
		obj.Data = o
		m.space.Add(obj)
	}
}

// overlapping returns the objects tagged tag whose rectangles overlap box.
// Touching edges do not count.
func (m *Map) overlapping(box *resolv.Object, tag string) []*Object {
	query := resolv.NewObject(box.X, box.Y, box.W, box.H, tags.ResolvPlayer)
	m.space.Add(query)
	defer m.space.Remove(query)

	check := query.Check(0, 0, tag)
	if check == nil {
		return nil
	}

	var hits []*Object
	seen := make(map[*Object]bool)
	for _, other := range check.ObjectsByTags(tag) {
		if !overlaps(query, other) {
			continue
		}
		if o, ok := other.Data.(*Object); ok && !seen[o] {
			seen[o] = true
			hits = append(hits, o)
		}
	}
	return hits
}

func overlaps(a, b *resolv.Object) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}
