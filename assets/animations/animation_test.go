package animations

import (
	"image"
	"math"
	"testing"
)

func frames(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = image.NewRGBA(image.Rect(0, 0, i+1, 1))
	}
	return out
}

func TestKeyFrameIndex(t *testing.T) {
	tests := []struct {
		name      string
		mode      PlayMode
		stateTime float64
		want      int
	}{
		{name: "start", mode: Loop, stateTime: 0, want: 0},
		{name: "inside first", mode: Loop, stateTime: 0.2, want: 0},
		{name: "second", mode: Loop, stateTime: 0.25, want: 1},
		{name: "last", mode: Loop, stateTime: 0.8, want: 3},
		{name: "loop wraps", mode: Loop, stateTime: 1.0, want: 0},
		{name: "loop wraps twice", mode: Loop, stateTime: 2.5, want: 2},
		{name: "normal holds last", mode: Normal, stateTime: 2.5, want: 3},
		{name: "negative time", mode: Loop, stateTime: -1, want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAnimation(0.25, frames(4), tc.mode)
			if got := a.KeyFrameIndex(tc.stateTime); got != tc.want {
				t.Fatalf("KeyFrameIndex(%v) = %d, want %d", tc.stateTime, got, tc.want)
			}
		})
	}
}

func TestKeyFrameReturnsMatchingImage(t *testing.T) {
	fs := frames(4)
	a := NewAnimation(0.25, fs, Loop)
	if got := a.KeyFrame(0.5); got != fs[2] {
		t.Fatalf("KeyFrame(0.5) returned frame with bounds %v, want %v", got.Bounds(), fs[2].Bounds())
	}
}

func TestEmptyAnimation(t *testing.T) {
	a := NewAnimation(0.25, nil, Loop)
	if got := a.KeyFrameIndex(1); got != -1 {
		t.Fatalf("KeyFrameIndex on empty = %d, want -1", got)
	}
	if a.KeyFrame(1) != nil {
		t.Fatal("KeyFrame on empty should be nil")
	}
	if a.Duration() != 0 {
		t.Fatalf("Duration on empty = %v, want 0", a.Duration())
	}
}

func TestIsFinished(t *testing.T) {
	loop := NewAnimation(0.25, frames(4), Loop)
	if loop.IsFinished(100) {
		t.Fatal("looping animation never finishes")
	}
	once := NewAnimation(0.25, frames(4), Normal)
	if once.IsFinished(0.5) {
		t.Fatal("normal animation should not be finished at 0.5s")
	}
	if !once.IsFinished(0.75) {
		t.Fatal("normal animation should be finished on its last frame")
	}
	if once.Duration() != 1.0 {
		t.Fatalf("Duration = %v, want 1.0", once.Duration())
	}
}

func TestNewAnimationCopiesFrames(t *testing.T) {
	fs := frames(2)
	a := NewAnimation(0.25, fs, Loop)
	fs[0] = nil
	if a.KeyFrame(0) == nil {
		t.Fatal("animation should not alias the caller's slice")
	}
}

func TestNonPositiveFrameDurationHoldsFirstFrame(t *testing.T) {
	for _, d := range []float64{0, -0.25, math.NaN()} {
		for _, mode := range []PlayMode{Normal, Loop} {
			a := NewAnimation(d, frames(4), mode)
			for _, stateTime := range []float64{0, 0.5, 1e9, math.Inf(1)} {
				if got := a.KeyFrameIndex(stateTime); got != 0 {
					t.Fatalf("duration %v mode %d: KeyFrameIndex(%v) = %d, want 0", d, mode, stateTime, got)
				}
			}
			if a.IsFinished(10) {
				t.Fatalf("duration %v mode %d: a sequence that never advances is not finished", d, mode)
			}
		}
	}
}

func TestLongRunningLoopStaysInRange(t *testing.T) {
	a := NewAnimation(0.25, frames(4), Loop)
	for _, stateTime := range []float64{1e18, math.Inf(1), math.NaN()} {
		if got := a.KeyFrameIndex(stateTime); got < 0 || got >= a.Len() {
			t.Fatalf("KeyFrameIndex(%v) = %d, out of range", stateTime, got)
		}
	}
}
