package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SectorCoord addresses a sector on the integer sector lattice.
type SectorCoord struct {
	X, Y, Z int
}

func (c SectorCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add offsets the coordinate by whole sectors.
func (c SectorCoord) Add(dx, dy, dz int) SectorCoord {
	return SectorCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Neighbor returns the sector across the given face.
func (c SectorCoord) Neighbor(f Face) SectorCoord {
	dx, dy, dz := f.Offset()
	return c.Add(dx, dy, dz)
}

// DistSq is the squared lattice distance between two sectors.
func (c SectorCoord) DistSq(o SectorCoord) int {
	dx, dy, dz := c.X-o.X, c.Y-o.Y, c.Z-o.Z
	return dx*dx + dy*dy + dz*dz
}

// Origin returns the world block coordinates of the sector's interior (0,0,0).
func (c SectorCoord) Origin(size int) (x, y, z int) {
	return c.X * size, c.Y * size, c.Z * size
}

// Translation is the model translation of the sector's mesh.
func (c SectorCoord) Translation(size int) mgl32.Vec3 {
	x, y, z := c.Origin(size)
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// Center returns the world-space centre of the sector. Blocks are centred
// on integer coordinates, so the sector spans origin-0.5 .. origin+size-0.5.
func (c SectorCoord) Center(size int) mgl32.Vec3 {
	half := float32(size-1) / 2
	return c.Translation(size).Add(mgl32.Vec3{half, half, half})
}

// SectorAt returns the sector containing a world position.
func SectorAt(pos mgl32.Vec3, size int) SectorCoord {
	return SectorCoord{
		X: floorDiv(roundToInt(pos.X()), size),
		Y: floorDiv(roundToInt(pos.Y()), size),
		Z: floorDiv(roundToInt(pos.Z()), size),
	}
}

// SplitBlock maps world block coordinates to their sector and the local
// interior coordinates inside it.
func SplitBlock(g Geometry, x, y, z int) (SectorCoord, SectorSpaceCoords) {
	s := g.Size
	sc := SectorCoord{X: floorDiv(x, s), Y: floorDiv(y, s), Z: floorDiv(z, s)}
	return sc, SectorSpaceCoords{x: mod(x, s), y: mod(y, s), z: mod(z, s), size: s}
}

func roundToInt(v float32) int {
	return int(math.Round(float64(v)))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// Geometry is the fixed shape of every sector's block storage.
type Geometry struct {
	Size    int // interior edge length
	Padding int // ring width stored on each side
}

// Padded is the storage edge length including padding on both sides.
func (g Geometry) Padded() int { return g.Padding + g.Size + g.Padding }

// Len is the number of blocks in a padded list.
func (g Geometry) Len() int {
	p := g.Padded()
	return p * p * p
}

// Coords is shorthand for NewSectorSpaceCoords.
func (g Geometry) Coords(x, y, z int) SectorSpaceCoords {
	return NewSectorSpaceCoords(g, x, y, z)
}

// SectorSpaceCoords is a position inside a sector's interior. Values are
// only built through NewSectorSpaceCoords or the neighbour queries, so every
// component is known to lie in [0, Size).
type SectorSpaceCoords struct {
	x, y, z int
	size    int
}

// NewSectorSpaceCoords panics if any component is outside [0, g.Size).
func NewSectorSpaceCoords(g Geometry, x, y, z int) SectorSpaceCoords {
	s := g.Size
	if x < 0 || x >= s || y < 0 || y >= s || z < 0 || z >= s {
		panic(fmt.Sprintf("world: sector coords (%d,%d,%d) outside [0,%d)", x, y, z, s))
	}
	return SectorSpaceCoords{x: x, y: y, z: z, size: s}
}

func (c SectorSpaceCoords) X() int { return c.x }
func (c SectorSpaceCoords) Y() int { return c.y }
func (c SectorSpaceCoords) Z() int { return c.z }

func (c SectorSpaceCoords) String() string {
	return fmt.Sprintf("[%d,%d,%d]", c.x, c.y, c.z)
}

// Back returns the neighbour at z-1, or false on the sector boundary.
func (c SectorSpaceCoords) Back() (SectorSpaceCoords, bool) {
	if c.z == 0 {
		return c, false
	}
	c.z--
	return c, true
}

// Front returns the neighbour at z+1, or false on the sector boundary.
func (c SectorSpaceCoords) Front() (SectorSpaceCoords, bool) {
	if c.z == c.size-1 {
		return c, false
	}
	c.z++
	return c, true
}

// Top returns the neighbour at y+1, or false on the sector boundary.
func (c SectorSpaceCoords) Top() (SectorSpaceCoords, bool) {
	if c.y == c.size-1 {
		return c, false
	}
	c.y++
	return c, true
}

// Bottom returns the neighbour at y-1, or false on the sector boundary.
func (c SectorSpaceCoords) Bottom() (SectorSpaceCoords, bool) {
	if c.y == 0 {
		return c, false
	}
	c.y--
	return c, true
}

// Left returns the neighbour at x-1, or false on the sector boundary.
func (c SectorSpaceCoords) Left() (SectorSpaceCoords, bool) {
	if c.x == 0 {
		return c, false
	}
	c.x--
	return c, true
}

// Right returns the neighbour at x+1, or false on the sector boundary.
func (c SectorSpaceCoords) Right() (SectorSpaceCoords, bool) {
	if c.x == c.size-1 {
		return c, false
	}
	c.x++
	return c, true
}

// Neighbor dispatches to the face-specific query.
func (c SectorSpaceCoords) Neighbor(f Face) (SectorSpaceCoords, bool) {
	switch f {
	case Back:
		return c.Back()
	case Front:
		return c.Front()
	case Top:
		return c.Top()
	case Bottom:
		return c.Bottom()
	case Left:
		return c.Left()
	default:
		return c.Right()
	}
}

// Across returns the cell of the adjacent sector that touches c through
// face f. Only meaningful when c lies on that boundary.
func (c SectorSpaceCoords) Across(f Face) SectorSpaceCoords {
	last := c.size - 1
	switch f {
	case Back:
		c.z = last
	case Front:
		c.z = 0
	case Top:
		c.y = 0
	case Bottom:
		c.y = last
	case Left:
		c.x = last
	default:
		c.x = 0
	}
	return c
}
