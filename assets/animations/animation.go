package animations

import (
	"image"
	"math"
)

// PlayMode selects what happens once the elapsed time passes the last frame.
type PlayMode int

const (
	Normal PlayMode = iota // hold the last frame
	Loop                   // wrap back to the first frame
)

// Animation is an ordered frame sequence where every frame is shown for the
// same duration. Frames are looked up by elapsed time, so one Animation can
// be shared by any number of entities.
type Animation struct {
	FrameDuration float64 // seconds per frame
	Mode          PlayMode
	frames        []image.Image
}

func (a *Animation) KeyFrameIndex(stateTime float64) int {
	n := len(a.frames)
	if n == 0 {
		return -1
	}
	if n == 1 || stateTime <= 0 {
		return 0
	}

	frame := a.frameCount(stateTime)
	switch a.Mode {
	case Loop:
		if math.IsInf(frame, 0) {
			return 0
		}
		return int(math.Mod(frame, float64(n)))
	default:
		if frame >= float64(n) {
			return n - 1
		}
		return int(frame)
	}
}

// frameCount is the number of whole frames elapsed at stateTime. A sequence
// without a positive frame duration never advances; NaN counts as zero.
func (a *Animation) frameCount(stateTime float64) float64 {
	if !(a.FrameDuration > 0) || !(stateTime > 0) {
		return 0
	}
	return math.Floor(stateTime / a.FrameDuration)
}

// KeyFrame returns the frame for stateTime, or nil for an empty sequence.
func (a *Animation) KeyFrame(stateTime float64) image.Image {
	i := a.KeyFrameIndex(stateTime)
	if i < 0 {
		return nil
	}
	return a.frames[i]
}

func (a *Animation) IsFinished(stateTime float64) bool {
	if a.Mode == Loop {
		return false
	}
	return a.frameCount(stateTime) >= float64(len(a.frames)-1)
}

func (a *Animation) Len() int {
	return len(a.frames)
}

// Duration is the length of one pass through the sequence.
func (a *Animation) Duration() float64 {
	return float64(len(a.frames)) * a.FrameDuration
}

func NewAnimation(frameDuration float64, frames []image.Image, mode PlayMode) *Animation {
	return &Animation{
		FrameDuration: frameDuration,
		Mode:          mode,
		frames:        append([]image.Image(nil), frames...),
	}
}
