package geometry

import (
	"fmt"
	"math"
)

/*
Spherical kernels for stencil construction on a geodesic mesh.

All three-point angle computations expect points on a common sphere
centered at the origin. SphereAngle additionally expects unit-sphere
coordinates since it uses dot products as arc cosines directly.
*/

// SphereAngle returns the signed spherical angle at point A formed by the
// great-circle arcs A-B and A-C, all points on the unit sphere. The sign is
// positive when B-C winds counter-clockwise as seen from outside the sphere
// at A.
func SphereAngle(ax, ay, az, bx, by, bz, cx, cy, cz float64) (angle float64) {
	var (
		a = math.Acos(clamp(bx*cx+by*cy+bz*cz, -1, 1)) // arc B-C
		b = math.Acos(clamp(ax*cx+ay*cy+az*cz, -1, 1)) // arc A-C
		c = math.Acos(clamp(ax*bx+ay*by+az*bz, -1, 1)) // arc A-B
	)
	// Chord vectors from A, their cross product orients the angle
	var (
		abx, aby, abz = bx - ax, by - ay, bz - az
		acx, acy, acz = cx - ax, cy - ay, cz - az
		dx            = aby*acz - abz*acy
		dy            = abz*acx - abx*acz
		dz            = abx*acy - aby*acx
	)
	s := 0.5 * (a + b + c)
	sinAngle := math.Sqrt(math.Min(1, math.Max(0,
		(math.Sin(s-b)*math.Sin(s-c))/(math.Sin(b)*math.Sin(c)))))
	if dx*ax+dy*ay+dz*az >= 0 {
		angle = 2 * math.Asin(clamp(sinAngle, -1, 1))
	} else {
		angle = -2 * math.Asin(clamp(sinAngle, -1, 1))
	}
	return
}

// ArcLength returns the great-circle distance between two points on a
// sphere of any radius centered at the origin.
func ArcLength(ax, ay, az, bx, by, bz float64) float64 {
	var (
		r             = math.Sqrt(ax*ax + ay*ay + az*az)
		dx, dy, dz    = bx - ax, by - ay, bz - az
		chord float64 = math.Sqrt(dx*dx + dy*dy + dz*dz)
	)
	return r * 2 * math.Asin(chord/(2*r))
}

// ArcBisect returns the midpoint of the great-circle arc between A and B,
// on the sphere of radius r. Antipodal inputs have no unique bisector and
// are a precondition violation.
func ArcBisect(ax, ay, az, bx, by, bz, r float64) (cx, cy, cz float64) {
	cx = 0.5 * (ax + bx)
	cy = 0.5 * (ay + by)
	cz = 0.5 * (az + bz)
	d := math.Sqrt(cx*cx + cy*cy + cz*cz)
	if d == 0 {
		err := fmt.Errorf("arc bisection of antipodal points (%v,%v,%v) and (%v,%v,%v)",
			ax, ay, az, bx, by, bz)
		panic(err)
	}
	cx, cy, cz = cx*r/d, cy*r/d, cz*r/d
	return
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
