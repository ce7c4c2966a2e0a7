package culling

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxview/internal/world"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1.5, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return Derive(proj.Mul4(view))
}

func TestPlanesNormalized(t *testing.T) {
	for i, p := range testFrustum().Planes() {
		l := p.Normal.Len()
		if math.Abs(float64(l-1)) > 1e-4 {
			t.Errorf("plane %d normal length %v", i, l)
		}
	}
}

func TestSphereVisibility(t *testing.T) {
	f := testFrustum()
	cases := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"ahead", mgl32.Vec3{0, 0, -10}, 0.5, true},
		{"behind", mgl32.Vec3{0, 0, 10}, 0.5, false},
		{"beyond far", mgl32.Vec3{0, 0, -500}, 1, false},
		{"far side", mgl32.Vec3{500, 0, -10}, 1, false},
		{"straddling near", mgl32.Vec3{0, 0, 1}, 2, true},
		{"straddling far", mgl32.Vec3{0, 0, -101}, 2, true},
	}
	for _, c := range cases {
		if got := f.SphereVisible(c.center, c.radius); got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestNearPlaneFacesForward(t *testing.T) {
	near := testFrustum().Planes()[PlaneNear]
	if near.Normal.Z() > -0.99 {
		t.Errorf("near plane should face -Z, got %v", near.Normal)
	}
	if d := near.Distance(mgl32.Vec3{0, 0, -0.1}); math.Abs(float64(d)) > 1e-3 {
		t.Errorf("point on near plane has distance %v", d)
	}
}

func TestAABBVisibility(t *testing.T) {
	f := testFrustum()
	if !f.AABBVisible(mgl32.Vec3{-1, -1, -6}, mgl32.Vec3{1, 1, -4}) {
		t.Error("box ahead should be visible")
	}
	if f.AABBVisible(mgl32.Vec3{-1, -1, 4}, mgl32.Vec3{1, 1, 6}) {
		t.Error("box behind should be hidden")
	}
}

func TestSectorVisible(t *testing.T) {
	f := testFrustum()
	size := 16
	if !f.SectorVisible(world.SectorCoord{X: 0, Y: 0, Z: -2}, size) {
		t.Error("sector straight ahead should be visible")
	}
	// sector containing the camera is always drawn
	if !f.SectorVisible(world.SectorCoord{}, size) {
		t.Error("camera sector should be visible")
	}
	if f.SectorVisible(world.SectorCoord{X: 0, Y: 0, Z: 4}, size) {
		t.Error("sector well behind should be hidden")
	}
}

func BenchmarkSectorVisible(b *testing.B) {
	f := testFrustum()
	for i := 0; i < b.N; i++ {
		_ = f.SectorVisible(world.SectorCoord{X: i % 9, Y: 0, Z: -(i % 7)}, 32)
	}
}
