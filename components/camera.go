package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// CameraData is centred on Position, in map pixels with Y down.
type CameraData struct {
	Position math.Vec2
	Zoom     float64
}

var Camera = donburi.NewComponentType[CameraData]()
