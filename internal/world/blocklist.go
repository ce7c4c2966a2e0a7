package world

import "fmt"

// BlockSource is read access to a sector's interior.
type BlockSource interface {
	Block(c SectorSpaceCoords) Block
}

// BlockList is the flat storage of one sector, padding ring included.
// Index layout is x + y*P + z*P*P in padded space, P = Geometry.Padded().
// A list is written only by the generator; once handed off it is read-only
// and may be shared between goroutines.
type BlockList struct {
	geom   Geometry
	blocks []Block
}

// NewAirList returns a list with every block set to Air.
func NewAirList(g Geometry) *BlockList {
	return &BlockList{geom: g, blocks: make([]Block, g.Len())}
}

// NewFilledList returns a list with every block, padding included, set to b.
func NewFilledList(g Geometry, b Block) *BlockList {
	l := NewAirList(g)
	if b != Air {
		for i := range l.blocks {
			l.blocks[i] = b
		}
	}
	return l
}

// Geometry returns the shape of the list.
func (l *BlockList) Geometry() Geometry { return l.geom }

// Len is the number of stored blocks.
func (l *BlockList) Len() int { return len(l.blocks) }

// PaddedIndex maps padded coordinates to the flat index. Panics when any
// component is outside [0, Padded()).
func (l *BlockList) PaddedIndex(x, y, z int) int {
	p := l.geom.Padded()
	if x < 0 || x >= p || y < 0 || y >= p || z < 0 || z >= p {
		panic(fmt.Sprintf("world: padded coords (%d,%d,%d) outside [0,%d)", x, y, z, p))
	}
	return x + y*p + z*p*p
}

// PaddedCoords is the inverse of PaddedIndex.
func (l *BlockList) PaddedCoords(i int) (x, y, z int) {
	if i < 0 || i >= len(l.blocks) {
		panic(fmt.Sprintf("world: block index %d outside [0,%d)", i, len(l.blocks)))
	}
	p := l.geom.Padded()
	layer := p * p
	z = i / layer
	rem := i % layer
	y = rem / p
	x = rem % p
	return x, y, z
}

// GetPadded reads a block by padded coordinates.
func (l *BlockList) GetPadded(x, y, z int) Block {
	return l.blocks[l.PaddedIndex(x, y, z)]
}

// SetPadded writes a block by padded coordinates.
func (l *BlockList) SetPadded(x, y, z int, b Block) {
	l.blocks[l.PaddedIndex(x, y, z)] = b
}

// Block implements BlockSource for the interior.
func (l *BlockList) Block(c SectorSpaceCoords) Block {
	return l.Get(c)
}

// Get reads an interior block.
func (l *BlockList) Get(c SectorSpaceCoords) Block {
	p := l.geom.Padding
	return l.GetPadded(c.x+p, c.y+p, c.z+p)
}

// Set writes an interior block.
func (l *BlockList) Set(c SectorSpaceCoords, b Block) {
	p := l.geom.Padding
	l.SetPadded(c.x+p, c.y+p, c.z+p, b)
}

// IsAllAir reports whether every interior block is Air.
func (l *BlockList) IsAllAir() bool {
	empty := true
	l.Each(func(_ SectorSpaceCoords, b Block) bool {
		if !b.IsAir() {
			empty = false
			return false
		}
		return true
	})
	return empty
}

// NeedsRendering reports whether any interior block produces geometry.
func (l *BlockList) NeedsRendering() bool {
	needs := false
	l.Each(func(_ SectorSpaceCoords, b Block) bool {
		if b.NeedsRendering() {
			needs = true
			return false
		}
		return true
	})
	return needs
}

// Each visits the interior in storage order until fn returns false.
func (l *BlockList) Each(fn func(c SectorSpaceCoords, b Block) bool) {
	s, p := l.geom.Size, l.geom.Padding
	for z := 0; z < s; z++ {
		for y := 0; y < s; y++ {
			for x := 0; x < s; x++ {
				c := SectorSpaceCoords{x: x, y: y, z: z, size: s}
				if !fn(c, l.blocks[l.PaddedIndex(x+p, y+p, z+p)]) {
					return
				}
			}
		}
	}
}

// Equal compares geometry and contents.
func (l *BlockList) Equal(o *BlockList) bool {
	if l.geom != o.geom || len(l.blocks) != len(o.blocks) {
		return false
	}
	for i := range l.blocks {
		if l.blocks[i] != o.blocks[i] {
			return false
		}
	}
	return true
}

// Bytes returns a copy of the raw storage, one byte per block.
func (l *BlockList) Bytes() []byte {
	out := make([]byte, len(l.blocks))
	for i, b := range l.blocks {
		out[i] = byte(b)
	}
	return out
}
