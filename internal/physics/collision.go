package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SolidQuery answers whether the block at world coordinates blocks movement.
type SolidQuery interface {
	SolidAt(x, y, z int) bool
}

// Resolver keeps a point out of solid blocks, one axis at a time. It is a
// per-frame check, not a swept one: displacement per frame is assumed to be
// well under one block.
type Resolver struct {
	query  SolidQuery
	margin float32
}

// NewResolver returns a resolver over q. margin must be in [0, 0.5) so a
// clamped point stays in its own block cell.
func NewResolver(q SolidQuery, margin float32) *Resolver {
	return &Resolver{query: q, margin: margin}
}

type probe struct {
	axis int
	step int
}

// back, front, left, right, below, above
var probes = [6]probe{
	{axis: 2, step: -1},
	{axis: 2, step: 1},
	{axis: 0, step: -1},
	{axis: 0, step: 1},
	{axis: 1, step: -1},
	{axis: 1, step: 1},
}

// Collide nudges t away from any solid block directly next to its cell so
// that it stays at least 1+margin from that block's centre along the axis.
// It reports whether any component was changed.
func (r *Resolver) Collide(t *mgl32.Vec3) bool {
	cell := [3]int{round(t[0]), round(t[1]), round(t[2])}
	moved := false
	for _, p := range probes {
		n := cell
		n[p.axis] += p.step
		if !r.query.SolidAt(n[0], n[1], n[2]) {
			continue
		}
		face := float32(n[p.axis])
		if p.step > 0 {
			if limit := face - (1 + r.margin); t[p.axis] > limit {
				t[p.axis] = limit
				moved = true
			}
		} else {
			if limit := face + (1 + r.margin); t[p.axis] < limit {
				t[p.axis] = limit
				moved = true
			}
		}
	}
	return moved
}

// GroundLevel finds the top surface of the first solid block at or below
// fromY in column (x, z), scanning no lower than minY.
func GroundLevel(q SolidQuery, x, z float32, fromY, minY int) (float32, bool) {
	bx, bz := round(x), round(z)
	for by := fromY; by >= minY; by-- {
		if q.SolidAt(bx, by, bz) {
			return float32(by) + 0.5, true
		}
	}
	return 0, false
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}
