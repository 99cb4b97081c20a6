// Package landmark defines the fixed landmark topology consumed by the
// analyzers: a small set of named hand and face points delivered once per
// tracking frame by an external landmark provider.
package landmark

import "math"

// PointID names one tracked point in the fixed topology.
type PointID string

// Hand points, ordered from least to most stable joint.
const (
	HandIndexTip PointID = "hand_index_tip"
	HandIndexMid PointID = "hand_index_mid"
	HandWrist    PointID = "hand_wrist"
)

// Face points. Four points per eye (corners plus lid midpoints), mouth
// corners, one point per eyebrow, and two stable reference points.
const (
	LeftEyeOuter   PointID = "left_eye_outer"
	LeftEyeInner   PointID = "left_eye_inner"
	LeftEyeTop     PointID = "left_eye_top"
	LeftEyeBottom  PointID = "left_eye_bottom"
	RightEyeOuter  PointID = "right_eye_outer"
	RightEyeInner  PointID = "right_eye_inner"
	RightEyeTop    PointID = "right_eye_top"
	RightEyeBottom PointID = "right_eye_bottom"
	MouthLeft      PointID = "mouth_left"
	MouthRight     PointID = "mouth_right"
	LeftBrow       PointID = "left_brow"
	RightBrow      PointID = "right_brow"
	ForeheadRef    PointID = "forehead_ref"
	NoseRef        PointID = "nose_ref"
)

// Point is one tracked position in normalized image coordinates.
// Z may be zero for providers that only report 2D positions.
type Point struct {
	X float64
	Y float64
	Z float64
}

// Frame is an immutable snapshot of named points at a monotonic timestamp.
// Timestamps are seconds from an arbitrary per-stream origin. Frames are
// consumed by the analyzers and then discarded, never retained.
type Frame struct {
	// Timestamp in seconds. Must be monotonically increasing within a stream;
	// the analyzers do not defend against reordered frames.
	Timestamp float64

	Points map[PointID]Point
}

// Point returns the named point and whether it was tracked this frame.
func (f Frame) Point(id PointID) (Point, bool) {
	p, ok := f.Points[id]
	return p, ok
}

// Empty reports whether the frame carries no tracked points at all. The
// provider signals absent tracking with an empty frame, never a stale reuse.
func (f Frame) Empty() bool {
	return len(f.Points) == 0
}

// Has reports whether every listed point was tracked this frame.
func (f Frame) Has(ids ...PointID) bool {
	for _, id := range ids {
		if _, ok := f.Points[id]; !ok {
			return false
		}
	}
	return true
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Magnitude returns the distance of p from the coordinate origin. Used as the
// scalar displacement channel for spectral analysis: for small oscillations
// about a fixed position the magnitude oscillates at the motion frequency.
func Magnitude(p Point) float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}
