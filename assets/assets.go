// Package assets loads decoded images and parsed tile maps from a file system
// and keeps them until every reference has been released.
package assets

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/automoto/bludbourne/logger"
	"github.com/lafriks/go-tiled"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

type kind int

const (
	kindImage kind = iota + 1
	kindTileMap
)

var kindsByExt = map[string]kind{
	".png":  kindImage,
	".jpg":  kindImage,
	".jpeg": kindImage,
	".gif":  kindImage,
	".bmp":  kindImage,
	".webp": kindImage,
	".tmx":  kindTileMap,
}

type resource struct {
	kind    kind
	image   image.Image
	tileMap *tiled.Map
	refs    int
}

// Manager is the resource loader shared by the entity and the map manager.
// It is owned by the game loop and is not safe for concurrent use.
type Manager struct {
	fsys    fs.FS
	log     *logrus.Entry
	loaded  map[string]*resource
	queued  []string
	pending map[string]int // reference counts of queued paths
}

func NewManager(fsys fs.FS) *Manager {
	return &Manager{
		fsys:    fsys,
		log:     logger.WithTag("assets"),
		loaded:  make(map[string]*resource),
		pending: make(map[string]int),
	}
}

func kindOf(p string) (kind, bool) {
	k, ok := kindsByExt[strings.ToLower(path.Ext(p))]
	return k, ok
}

// Queue schedules p for loading by Update. Queueing a path that is already
// loaded or queued only adds a reference.
func (m *Manager) Queue(p string) error {
	if p == "" {
		return &ResourceError{Op: "queue", Path: p, Err: ErrNotFound}
	}
	if _, ok := kindOf(p); !ok {
		return &ResourceError{Op: "queue", Path: p, Err: ErrUnsupported}
	}

	if r, ok := m.loaded[p]; ok {
		r.refs++
		return nil
	}
	if _, ok := m.pending[p]; ok {
		m.pending[p]++
		return nil
	}

	if _, err := fs.Stat(m.fsys, p); err != nil {
		m.log.Debugf("Resource doesn't exist: %s", p)
		return &ResourceError{Op: "queue", Path: p, Err: ErrNotFound}
	}

	m.queued = append(m.queued, p)
	m.pending[p] = 1
	return nil
}

// Update loads the next queued resource. It reports true once the queue is
// empty.
func (m *Manager) Update() (bool, error) {
	if len(m.queued) == 0 {
		return true, nil
	}

	p := m.queued[0]
	m.queued = m.queued[1:]
	err := m.finish(p)
	return len(m.queued) == 0, err
}

// Load blocks until p is decoded and resident. Other queued resources are
// left for Update.
func (m *Manager) Load(p string) error {
	if err := m.Queue(p); err != nil {
		return err
	}
	if _, ok := m.loaded[p]; ok {
		return nil
	}

	for i, q := range m.queued {
		if q == p {
			m.queued = append(m.queued[:i], m.queued[i+1:]...)
			break
		}
	}
	return m.finish(p)
}

func (m *Manager) finish(p string) error {
	refs := m.pending[p]
	delete(m.pending, p)

	r, err := m.decode(p)
	if err != nil {
		m.log.WithError(err).Debugf("Failed to load %s", p)
		return &ResourceError{Op: "load", Path: p, Err: err}
	}
	r.refs = refs
	m.loaded[p] = r

	m.log.Debugf("Resource loaded: %s", p)
	return nil
}

func (m *Manager) decode(p string) (*resource, error) {
	k, _ := kindOf(p)
	switch k {
	case kindTileMap:
		tm, err := tiled.LoadFile(p, tiled.WithFileSystem(m.fsys))
		if err != nil {
			return nil, err
		}
		return &resource{kind: kindTileMap, tileMap: tm}, nil
	default:
		f, err := m.fsys.Open(p)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, err
		}
		return &resource{kind: kindImage, image: img}, nil
	}
}

func (m *Manager) IsLoaded(p string) bool {
	_, ok := m.loaded[p]
	return ok
}

// Image returns a loaded image resource.
func (m *Manager) Image(p string) (image.Image, error) {
	r, ok := m.loaded[p]
	if !ok || r.kind != kindImage {
		m.log.Debugf("Image is not loaded: %s", p)
		return nil, &ResourceError{Op: "get", Path: p, Err: ErrNotReady}
	}
	return r.image, nil
}

// TileMap returns a loaded tile map resource.
func (m *Manager) TileMap(p string) (*tiled.Map, error) {
	r, ok := m.loaded[p]
	if !ok || r.kind != kindTileMap {
		m.log.Debugf("Map is not loaded: %s", p)
		return nil, &ResourceError{Op: "get", Path: p, Err: ErrNotReady}
	}
	return r.tileMap, nil
}

// FS exposes the backing file system, e.g. for tileset lookups while
// rendering a map.
func (m *Manager) FS() fs.FS {
	return m.fsys
}

// Unload releases one reference to p and drops it when none remain.
func (m *Manager) Unload(p string) {
	if r, ok := m.loaded[p]; ok {
		r.refs--
		if r.refs <= 0 {
			delete(m.loaded, p)
		}
		return
	}

	if refs, ok := m.pending[p]; ok {
		if refs > 1 {
			m.pending[p] = refs - 1
			return
		}
		delete(m.pending, p)
		for i, q := range m.queued {
			if q == p {
				m.queued = append(m.queued[:i], m.queued[i+1:]...)
				break
			}
		}
		return
	}

	m.log.Debugf("Resource is not loaded; nothing to unload: %s", p)
}

// Progress returns the loaded fraction of everything loaded or queued.
func (m *Manager) Progress() float64 {
	loaded := len(m.loaded)
	total := loaded + len(m.queued)
	if total == 0 {
		return 1
	}
	return float64(loaded) / float64(total)
}

func (m *Manager) QueuedCount() int {
	return len(m.queued)
}
