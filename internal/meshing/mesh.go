package meshing

import (
	"voxview/internal/world"
)

// AdjacentSectors gives read access to the six neighbours of the sector
// being meshed. A nil field means the neighbour is absent and faces towards
// it are emitted. Values are built per call and never retained.
type AdjacentSectors struct {
	Back, Front, Top, Bottom, Left, Right world.BlockSource
}

// Get returns the neighbour across face f.
func (a AdjacentSectors) Get(f world.Face) world.BlockSource {
	switch f {
	case world.Back:
		return a.Back
	case world.Front:
		return a.Front
	case world.Top:
		return a.Top
	case world.Bottom:
		return a.Bottom
	case world.Left:
		return a.Left
	default:
		return a.Right
	}
}

// PaddingNeighbors builds neighbours out of the list's own padding ring.
func PaddingNeighbors(l *world.BlockList) AdjacentSectors {
	return AdjacentSectors{
		Back:   world.PaddingSource(l, world.Back),
		Front:  world.PaddingSource(l, world.Front),
		Top:    world.PaddingSource(l, world.Top),
		Bottom: world.PaddingSource(l, world.Bottom),
		Left:   world.PaddingSource(l, world.Left),
		Right:  world.PaddingSource(l, world.Right),
	}
}

// Unit cube corners.
var cubeCorners = [8][3]float32{
	{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0},
	{1, 0, 1}, {1, 1, 1}, {0, 1, 1}, {0, 0, 1},
}

// Corner indices of each face, wound so the face is drawn as (0,1,2) (0,2,3).
var faceCorners = [6][4]int{
	world.Back:   {0, 1, 2, 3},
	world.Front:  {4, 5, 6, 7},
	world.Top:    {5, 2, 1, 6},
	world.Bottom: {3, 4, 7, 0},
	world.Left:   {7, 6, 1, 0},
	world.Right:  {3, 2, 5, 4},
}

var quadOrder = [6]int{0, 1, 2, 0, 2, 3}

// Generate emits two triangles for every visible face of every non-air
// block. A face is visible when the block across it is air, or lies in an
// absent neighbour sector. The result is nil for an all-air list.
func Generate(blocks *world.BlockList, adj AdjacentSectors, atlas AtlasInfo) []Vertex {
	if !blocks.NeedsRendering() {
		return nil
	}

	vertices := make([]Vertex, 0, 1024)
	blocks.Each(func(c world.SectorSpaceCoords, b world.Block) bool {
		if !b.NeedsRendering() {
			return true
		}
		var uv [4][2]float32
		uvReady := false
		for _, f := range world.Faces {
			if !faceVisible(blocks, adj, c, f) {
				continue
			}
			if !uvReady {
				uv = atlas.UV(b)
				uvReady = true
			}
			vertices = appendFace(vertices, c, f, &uv)
		}
		return true
	})
	return vertices
}

func faceVisible(blocks *world.BlockList, adj AdjacentSectors, c world.SectorSpaceCoords, f world.Face) bool {
	if n, ok := c.Neighbor(f); ok {
		return !blocks.Get(n).NeedsRendering()
	}
	src := adj.Get(f)
	if src == nil {
		return true
	}
	return !src.Block(c.Across(f)).NeedsRendering()
}

func appendFace(out []Vertex, c world.SectorSpaceCoords, f world.Face, uv *[4][2]float32) []Vertex {
	// shift by -0.5 so block centres land on integer coordinates
	ox := float32(c.X()) - 0.5
	oy := float32(c.Y()) - 0.5
	oz := float32(c.Z()) - 0.5
	corners := faceCorners[f]
	for _, k := range quadOrder {
		p := cubeCorners[corners[k]]
		out = append(out, Vertex{
			Position: [3]float32{p[0] + ox, p[1] + oy, p[2] + oz},
			UV:       uv[k],
			Face:     f,
		})
	}
	return out
}
