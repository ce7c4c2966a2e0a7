package world

import (
	"math"

	"voxview/internal/config"
)

// TerrainGenerator produces the block content of a sector. Implementations
// must be deterministic and safe for concurrent use.
type TerrainGenerator interface {
	Generate(coord SectorCoord) *BlockList
	Geometry() Geometry
}

// Generator is the noise-driven terrain generator. Only sectors on the band
// layer sample noise; everything below is solid Limestone and everything
// above is Air.
type Generator struct {
	geom Geometry
	cfg  config.WorldGen

	compression noiseField
	regional    noiseField
	base        noiseField
	treeCoarse  noiseField
	treeFine    noiseField
}

// NewGenerator builds the noise fields for cfg.Seed.
func NewGenerator(g Geometry, cfg config.WorldGen) *Generator {
	return &Generator{
		geom:        g,
		cfg:         cfg,
		compression: newNoiseField(cfg.Seed, saltCompression, cfg.CompressionFrequency),
		regional:    newNoiseField(cfg.Seed, saltRegional, cfg.RegionalFrequency),
		base:        newNoiseField(cfg.Seed, saltBase, cfg.BaseFrequency),
		treeCoarse:  newNoiseField(cfg.Seed, saltTreeCoarse, cfg.TreeCoarseFrequency),
		treeFine:    newNoiseField(cfg.Seed, saltTreeFine, cfg.TreeFineFrequency),
	}
}

// Geometry returns the sector shape the generator fills.
func (g *Generator) Geometry() Geometry { return g.geom }

// ColumnHeight returns how many blocks of the band sector's column at world
// (x, z) are solid, in [0, Size].
func (g *Generator) ColumnHeight(x, z int) int {
	comp := g.cfg.CompressionFloor + (1-g.cfg.CompressionFloor)*g.compression.unit(x, z)
	elevation := float64(g.geom.Size)/2 +
		g.regional.at(x, z)*g.cfg.RegionalAmplitude +
		g.base.at(x, z)*comp*g.cfg.BaseAmplitude
	return clampI(int(math.Round(elevation)), 0, g.geom.Size)
}

// SurfaceY returns the world Y of the topmost solid block of column (x, z),
// or the Y just below the band when the column is empty there.
func (g *Generator) SurfaceY(x, z int) int {
	return g.cfg.BandSector*g.geom.Size + g.ColumnHeight(x, z) - 1
}

// Generate fills the sector at coord, padding ring included.
func (g *Generator) Generate(coord SectorCoord) *BlockList {
	switch {
	case coord.Y > g.cfg.BandSector:
		return NewAirList(g.geom)
	case coord.Y < g.cfg.BandSector:
		l := NewFilledList(g.geom, Limestone)
		if coord.Y == g.cfg.BandSector-1 {
			g.fillTopRing(l, coord)
		}
		return l
	}

	l := NewAirList(g.geom)
	p, pad := g.geom.Padding, g.geom.Padded()
	ox, _, oz := coord.Origin(g.geom.Size)
	for pz := 0; pz < pad; pz++ {
		for px := 0; px < pad; px++ {
			h := g.ColumnHeight(ox+px-p, oz+pz-p)
			for py := 0; py < pad; py++ {
				l.SetPadded(px, py, pz, g.layerBlock(py-p, h))
			}
		}
	}
	g.plantTrees(l, coord)
	return l
}

// layerBlock picks the material at local band height y of a column with h
// solid blocks. Heights below the band are Limestone, above it Air.
func (g *Generator) layerBlock(y, h int) Block {
	if y < 0 {
		return Limestone
	}
	if y >= h {
		return Air
	}
	depth := h - 1 - y
	switch {
	case depth < g.cfg.LoamDepth:
		return Grass
	case depth < g.cfg.LimestoneDepth:
		return Loam
	default:
		return Limestone
	}
}

// fillTopRing mirrors the band layer's bottom blocks into the top padding of
// the sector just beneath it, so its top faces are culled correctly.
func (g *Generator) fillTopRing(l *BlockList, coord SectorCoord) {
	p, pad := g.geom.Padding, g.geom.Padded()
	if p == 0 {
		return
	}
	ox, _, oz := coord.Origin(g.geom.Size)
	for pz := 0; pz < pad; pz++ {
		for px := 0; px < pad; px++ {
			h := g.ColumnHeight(ox+px-p, oz+pz-p)
			for py := p + g.geom.Size; py < pad; py++ {
				l.SetPadded(px, py, pz, g.layerBlock(py-p-g.geom.Size, h))
			}
		}
	}
}

// plantTrees stamps trunks and canopies on grass columns that pass both the
// coarse and the fine gate. Stamps never leave the interior.
func (g *Generator) plantTrees(l *BlockList, coord SectorCoord) {
	s, m := g.geom.Size, g.cfg.TreeEdgeMargin
	ox, _, oz := coord.Origin(s)
	for z := m; z < s-m; z++ {
		for x := m; x < s-m; x++ {
			wx, wz := ox+x, oz+z
			if g.treeCoarse.at(wx, wz) <= g.cfg.TreeCoarseThreshold {
				continue
			}
			if g.treeFine.at(wx, wz) <= g.cfg.TreeFineThreshold {
				continue
			}
			top := g.ColumnHeight(wx, wz) - 1
			if top < 0 || top >= s-1 || l.Get(g.geom.Coords(x, top, z)) != Grass {
				continue
			}
			g.stampTree(l, x, top, z)
		}
	}
}

func (g *Generator) stampTree(l *BlockList, x, ground, z int) {
	s := g.geom.Size
	trunkTop := ground
	for i := 1; i <= g.cfg.TrunkHeight && ground+i < s; i++ {
		trunkTop = ground + i
		l.Set(g.geom.Coords(x, trunkTop, z), Tree)
	}
	if trunkTop == ground {
		return
	}

	r := g.cfg.CanopyRadius
	for dz := -r; dz <= r; dz++ {
		for dy := -1; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy+dz*dz > r*r+1 {
					continue
				}
				cx, cy, cz := x+dx, trunkTop+dy, z+dz
				if cx < 0 || cx >= s || cy < 0 || cy >= s || cz < 0 || cz >= s {
					continue
				}
				c := g.geom.Coords(cx, cy, cz)
				if l.Get(c).IsAir() {
					l.Set(c, Leaves)
				}
			}
		}
	}
}

// FlatGenerator fills every column up to a fixed world height. It is used
// for spawn tests and benchmarks where noise would get in the way.
type FlatGenerator struct {
	geom   Geometry
	height int
}

// NewFlatGenerator makes columns solid for world y < height.
func NewFlatGenerator(g Geometry, height int) *FlatGenerator {
	return &FlatGenerator{geom: g, height: height}
}

func (f *FlatGenerator) Geometry() Geometry { return f.geom }

// HeightAt returns the number of solid blocks above y = 0 in every column.
func (f *FlatGenerator) HeightAt(x, z int) int { return f.height }

func (f *FlatGenerator) Generate(coord SectorCoord) *BlockList {
	l := NewAirList(f.geom)
	p, pad := f.geom.Padding, f.geom.Padded()
	_, oy, _ := coord.Origin(f.geom.Size)
	for py := 0; py < pad; py++ {
		wy := oy + py - p
		var b Block
		switch {
		case wy == f.height-1:
			b = Grass
		case wy < f.height-1:
			b = Loam
		default:
			continue
		}
		for pz := 0; pz < pad; pz++ {
			for px := 0; px < pad; px++ {
				l.SetPadded(px, py, pz, b)
			}
		}
	}
	return l
}
