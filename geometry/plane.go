package geometry

import "math"

// PlaneAngle returns the signed angle at point A formed by segments A-B and
// A-C, positive counter-clockwise.
func PlaneAngle(ax, ay, bx, by, cx, cy float64) float64 {
	var (
		abx, aby = bx - ax, by - ay
		acx, acy = cx - ax, cy - ay
	)
	dot := abx*acx + aby*acy
	cross := abx*acy - aby*acx
	return math.Atan2(cross, dot)
}

// Distance2D returns the Euclidean distance between two points in the plane
func Distance2D(ax, ay, bx, by float64) float64 {
	var (
		dx, dy = bx - ax, by - ay
	)
	return math.Sqrt(dx*dx + dy*dy)
}

// MidPoint2D returns the midpoint of the segment A-B
func MidPoint2D(ax, ay, bx, by float64) (cx, cy float64) {
	cx, cy = 0.5*(ax+bx), 0.5*(ay+by)
	return
}
