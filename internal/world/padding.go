package world

// PaddingSource exposes the part of l's padding ring that mirrors the
// neighbour across face f. Coordinates passed to it are in the neighbour's
// own sector space. Returns nil when the list carries no padding.
func PaddingSource(l *BlockList, f Face) BlockSource {
	if l.geom.Padding == 0 {
		return nil
	}
	return ringView{list: l, face: f}
}

type ringView struct {
	list *BlockList
	face Face
}

func (r ringView) Block(c SectorSpaceCoords) Block {
	p, s := r.list.geom.Padding, r.list.geom.Size
	dx, dy, dz := r.face.Offset()
	x := c.x + p + dx*s
	y := c.y + p + dy*s
	z := c.z + p + dz*s
	// only the first ring layer is stored; deeper cells read as air
	pad := r.list.geom.Padded()
	if x < 0 || x >= pad || y < 0 || y >= pad || z < 0 || z >= pad {
		return Air
	}
	return r.list.GetPadded(x, y, z)
}
