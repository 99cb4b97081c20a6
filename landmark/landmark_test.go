package landmark

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	a := Point{X: 0, Y: 0}
	b := Point{X: 3, Y: 4}
	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	c := Point{X: 1, Y: 2, Z: 2}
	if got := Distance(Point{}, c); got != 3 {
		t.Errorf("3D Distance = %v, want 3", got)
	}
}

func TestMagnitude(t *testing.T) {
	if got := Magnitude(Point{X: 3, Y: 4}); math.Abs(got-5) > 1e-12 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
}

func TestFrameHelpers(t *testing.T) {
	empty := Frame{Timestamp: 1}
	if !empty.Empty() {
		t.Error("frame without points should be empty")
	}

	f := Frame{
		Timestamp: 1,
		Points: map[PointID]Point{
			HandIndexTip: {X: 0.5, Y: 0.3},
			HandWrist:    {X: 0.5, Y: 0.55},
		},
	}
	if f.Empty() {
		t.Error("frame with points should not be empty")
	}
	if _, ok := f.Point(HandIndexTip); !ok {
		t.Error("tracked point should be found")
	}
	if _, ok := f.Point(HandIndexMid); ok {
		t.Error("untracked point should not be found")
	}
	if !f.Has(HandIndexTip, HandWrist) {
		t.Error("Has should confirm tracked points")
	}
	if f.Has(HandIndexTip, HandIndexMid) {
		t.Error("Has should fail on any missing point")
	}
}
