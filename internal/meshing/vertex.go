package meshing

import "voxview/internal/world"

// VertexStride is number of float32 per flattened vertex (pos.xyz + uv + face)
const VertexStride = 6

// Vertex is one corner of an emitted triangle. Positions are local to the
// sector with block centres on integer coordinates.
type Vertex struct {
	Position [3]float32
	UV       [2]float32
	Face     world.Face
}

// Flatten interleaves vertices for upload, VertexStride floats each.
func Flatten(vs []Vertex) []float32 {
	out := make([]float32, 0, len(vs)*VertexStride)
	for _, v := range vs {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.UV[0], v.UV[1],
			float32(v.Face),
		)
	}
	return out
}

// AtlasInfo describes the terrain atlas: a single row of square tiles.
type AtlasInfo struct {
	Width    int
	Height   int
	TileSize int
}

// UV returns the texture coordinates of the four face corners for block b,
// in the same order as the face corner table.
func (a AtlasInfo) UV(b world.Block) [4][2]float32 {
	ru := float32(a.TileSize) / float32(a.Width)
	rv := float32(a.TileSize) / float32(a.Height)
	n := float32(b.AtlasIndex())
	return [4][2]float32{
		{ru * (n + 1), rv},
		{ru * (n + 1), 0},
		{ru * n, 0},
		{ru * n, rv},
	}
}
