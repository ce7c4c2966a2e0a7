package terrain

import (
	"sort"

	"voxview/internal/world"
)

// axisOrder lists offsets 0, -1, 1, -2, 2, ... up to radius.
func axisOrder(radius int) []int {
	out := make([]int, 0, 2*radius+1)
	out = append(out, 0)
	for r := 1; r <= radius; r++ {
		out = append(out, -r, r)
	}
	return out
}

// VisitOrder returns the sector offsets to request around the camera,
// nearest first. Offsets lie in a horizontal disc of the given radius,
// vertical slab of the given height, and never beyond retention, so nothing
// requested is evicted on arrival.
func VisitOrder(horizontal, vertical, retention int) []world.SectorCoord {
	hs, vs := axisOrder(horizontal), axisOrder(vertical)
	out := make([]world.SectorCoord, 0, len(hs)*len(hs)*len(vs))
	var origin world.SectorCoord
	for _, dz := range hs {
		for _, dx := range hs {
			if dx*dx+dz*dz > horizontal*horizontal {
				continue
			}
			for _, dy := range vs {
				c := world.SectorCoord{X: dx, Y: dy, Z: dz}
				if c.DistSq(origin) > retention*retention {
					continue
				}
				out = append(out, c)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistSq(origin) < out[j].DistSq(origin)
	})
	return out
}
