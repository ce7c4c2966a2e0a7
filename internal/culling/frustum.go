package culling

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxview/internal/world"
)

// Plane is a normalised plane; Distance is positive on the inside.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Distance returns the signed distance from p to the plane.
func (p Plane) Distance(v mgl32.Vec3) float32 {
	return p.Normal.Dot(v) + p.D
}

func normalizePlane(a, b, c, d float32) Plane {
	l := float32(math.Sqrt(float64(a*a + b*b + c*c)))
	if l == 0 {
		return Plane{Normal: mgl32.Vec3{a, b, c}, D: d}
	}
	return Plane{Normal: mgl32.Vec3{a / l, b / l, c / l}, D: d / l}
}

// Frustum holds the six clip planes of a view-projection matrix.
type Frustum struct {
	planes [6]Plane
}

// Plane order in Frustum.
const (
	PlaneRight = iota
	PlaneLeft
	PlaneBottom
	PlaneTop
	PlaneFar
	PlaneNear
)

// Derive extracts the frustum planes from proj*view. mgl32 matrices are
// column-major, so row r of the matrix is m[r], m[r+4], m[r+8], m[r+12].
func Derive(vp mgl32.Mat4) Frustum {
	row := func(r int) [4]float32 {
		return [4]float32{vp[r], vp[r+4], vp[r+8], vp[r+12]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	plane := func(sign float32, r [4]float32) Plane {
		return normalizePlane(
			r3[0]+sign*r[0],
			r3[1]+sign*r[1],
			r3[2]+sign*r[2],
			r3[3]+sign*r[3],
		)
	}

	var f Frustum
	f.planes[PlaneRight] = plane(-1, r0)
	f.planes[PlaneLeft] = plane(1, r0)
	f.planes[PlaneBottom] = plane(1, r1)
	f.planes[PlaneTop] = plane(-1, r1)
	f.planes[PlaneFar] = plane(-1, r2)
	f.planes[PlaneNear] = plane(1, r2)
	return f
}

// Planes returns a copy of the planes in right, left, bottom, top, far, near order.
func (f Frustum) Planes() [6]Plane { return f.planes }

// SphereVisible rejects a sphere only when it lies entirely behind some
// plane, so it never reports a visible sphere as hidden.
func (f Frustum) SphereVisible(center mgl32.Vec3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].Distance(center) <= -radius {
			return false
		}
	}
	return true
}

// AABBVisible tests a box using the positive vertex of each plane.
func (f Frustum) AABBVisible(min, max mgl32.Vec3) bool {
	for i := range f.planes {
		p := f.planes[i]
		px := max.X()
		if p.Normal.X() < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.Normal.Y() < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.Normal.Z() < 0 {
			pz = min.Z()
		}
		if p.Distance(mgl32.Vec3{px, py, pz}) < 0 {
			return false
		}
	}
	return true
}

// SectorRadius is the radius of the sphere enclosing a whole sector: half
// its space diagonal.
func SectorRadius(size int) float32 {
	return float32(size) / 2 * float32(math.Sqrt(3))
}

// SectorVisible tests a sector's bounding sphere against the frustum.
func (f Frustum) SectorVisible(c world.SectorCoord, size int) bool {
	return f.SphereVisible(c.Center(size), SectorRadius(size))
}
