package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Block is the material stored in one voxel.
type Block uint8

const (
	Air Block = iota
	Limestone
	Loam
	Grass
	Tree
	Leaves

	numBlocks
)

var blockNames = [numBlocks]string{"Air", "Limestone", "Loam", "Grass", "Tree", "Leaves"}

func (b Block) String() string {
	if b < numBlocks {
		return blockNames[b]
	}
	return "Block(?)"
}

// IsAir reports whether the block is empty space.
func (b Block) IsAir() bool { return b == Air }

// IsSolid reports whether the player collides with the block.
func (b Block) IsSolid() bool { return b != Air }

// NeedsRendering reports whether the block produces geometry.
func (b Block) NeedsRendering() bool { return b != Air }

// AtlasIndex returns the tile of the terrain atlas used by the block.
// Tiles are laid out left to right starting with Limestone.
func (b Block) AtlasIndex() int {
	if b == Air {
		return -1
	}
	return int(b) - 1
}

// Face identifies one of the six faces of a block or sector.
type Face uint8

const (
	Back   Face = iota // -Z
	Front              // +Z
	Top                // +Y
	Bottom             // -Y
	Left               // -X
	Right              // +X
)

// Faces lists every face in mesh emission order.
var Faces = [6]Face{Back, Front, Top, Bottom, Left, Right}

var faceOffsets = [6][3]int{
	Back:   {0, 0, -1},
	Front:  {0, 0, 1},
	Top:    {0, 1, 0},
	Bottom: {0, -1, 0},
	Left:   {-1, 0, 0},
	Right:  {1, 0, 0},
}

var faceNames = [6]string{"Back", "Front", "Top", "Bottom", "Left", "Right"}

func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return "Face(?)"
}

// Offset returns the unit step towards the neighbour across the face.
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// Opposite returns the face pointing the other way.
func (f Face) Opposite() Face {
	switch f {
	case Back:
		return Front
	case Front:
		return Back
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return Left
	}
}
