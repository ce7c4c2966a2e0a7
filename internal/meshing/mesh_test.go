package meshing

import (
	"testing"

	"voxview/internal/config"
	"voxview/internal/world"
)

var (
	geom  = world.Geometry{Size: 8, Padding: 1}
	atlas = AtlasInfo{Width: 96, Height: 16, TileSize: 16}
)

func TestSingleBlockMesh(t *testing.T) {
	l := world.NewAirList(geom)
	l.Set(geom.Coords(3, 3, 3), world.Grass)
	verts := Generate(l, AdjacentSectors{}, atlas)
	if len(verts) != 36 {
		t.Fatalf("single block: got %d vertices, want 36", len(verts))
	}
	// centred on (3,3,3)
	for _, v := range verts {
		for i := 0; i < 3; i++ {
			if v.Position[i] != 2.5 && v.Position[i] != 3.5 {
				t.Fatalf("vertex %v outside block bounds", v.Position)
			}
		}
	}
}

func TestTwoBlocksTouching(t *testing.T) {
	l := world.NewAirList(geom)
	l.Set(geom.Coords(0, 0, 0), world.Grass)
	l.Set(geom.Coords(1, 0, 0), world.Grass)
	verts := Generate(l, AdjacentSectors{}, atlas)
	// 10 faces: the shared pair is hidden
	if len(verts) != 60 {
		t.Fatalf("two touching blocks: got %d vertices, want 60", len(verts))
	}
}

func TestAllAirIsEmpty(t *testing.T) {
	if verts := Generate(world.NewAirList(geom), AdjacentSectors{}, atlas); len(verts) != 0 {
		t.Fatalf("all air: got %d vertices, want 0", len(verts))
	}
}

func TestFullSectorOnlyBoundaryFaces(t *testing.T) {
	l := world.NewFilledList(geom, world.Limestone)
	verts := Generate(l, AdjacentSectors{}, atlas)
	s := geom.Size
	if want := 6 * s * s * 6; len(verts) != want {
		t.Fatalf("full sector: got %d vertices, want %d", len(verts), want)
	}
	lo, hi := float32(-0.5), float32(s)-0.5
	for _, v := range verts {
		p := v.Position
		onBoundary := false
		for i := 0; i < 3; i++ {
			if p[i] == lo || p[i] == hi {
				onBoundary = true
			}
		}
		if !onBoundary {
			t.Fatalf("internal face vertex at %v", p)
		}
	}
}

func TestFullSectorSurroundedIsEmpty(t *testing.T) {
	l := world.NewFilledList(geom, world.Limestone)
	solid := world.NewFilledList(geom, world.Loam)
	adj := AdjacentSectors{solid, solid, solid, solid, solid, solid}
	if verts := Generate(l, adj, atlas); len(verts) != 0 {
		t.Fatalf("enclosed sector: got %d vertices, want 0", len(verts))
	}
}

func TestCrossSectorFaceCulling(t *testing.T) {
	last := geom.Size - 1
	a := world.NewAirList(geom)
	a.Set(geom.Coords(last, 0, 0), world.Grass)
	b := world.NewAirList(geom)
	b.Set(geom.Coords(0, 0, 0), world.Grass)

	// One face hidden due to neighbour => 5 faces = 30 vertices, both ways
	if got := len(Generate(a, AdjacentSectors{Right: b}, atlas)); got != 30 {
		t.Errorf("a towards b: got %d vertices, want 30", got)
	}
	if got := len(Generate(b, AdjacentSectors{Left: a}, atlas)); got != 30 {
		t.Errorf("b towards a: got %d vertices, want 30", got)
	}
	// present but empty neighbour keeps the face
	if got := len(Generate(a, AdjacentSectors{Right: world.NewAirList(geom)}, atlas)); got != 36 {
		t.Errorf("air neighbour: got %d vertices, want 36", got)
	}
}

func TestVerticalNeighbourCulling(t *testing.T) {
	last := geom.Size - 1
	lower := world.NewAirList(geom)
	lower.Set(geom.Coords(2, last, 2), world.Loam)
	upper := world.NewAirList(geom)
	upper.Set(geom.Coords(2, 0, 2), world.Grass)

	verts := Generate(lower, AdjacentSectors{Top: upper}, atlas)
	if len(verts) != 30 {
		t.Fatalf("got %d vertices, want 30", len(verts))
	}
	for _, v := range verts {
		if v.Face == world.Top {
			t.Fatal("top face should be culled by the sector above")
		}
	}
}

func TestFaceUVs(t *testing.T) {
	l := world.NewAirList(geom)
	l.Set(geom.Coords(0, 0, 0), world.Loam) // atlas tile 1
	verts := Generate(l, AdjacentSectors{}, atlas)

	ru := float32(16) / 96
	for _, v := range verts {
		u := v.UV[0]
		if u != ru && u != 2*ru {
			t.Fatalf("u %v outside Loam tile", u)
		}
		if v.UV[1] != 0 && v.UV[1] != 1 {
			t.Fatalf("v %v outside tile row", v.UV[1])
		}
	}
}

func TestFlattenStride(t *testing.T) {
	l := world.NewAirList(geom)
	l.Set(geom.Coords(1, 1, 1), world.Leaves)
	verts := Generate(l, AdjacentSectors{}, atlas)
	flat := Flatten(verts)
	if len(flat) != len(verts)*VertexStride {
		t.Fatalf("got %d floats, want %d", len(flat), len(verts)*VertexStride)
	}
	if flat[5] != float32(verts[0].Face) {
		t.Errorf("face tag not carried: %v", flat[5])
	}
}

// Meshing against the padding ring must match meshing against the real
// neighbour sectors.
// realNeighbours generates the six sectors around here.
func realNeighbours(gen *world.Generator, here world.SectorCoord) AdjacentSectors {
	return AdjacentSectors{
		Back:   gen.Generate(here.Neighbor(world.Back)),
		Front:  gen.Generate(here.Neighbor(world.Front)),
		Top:    gen.Generate(here.Neighbor(world.Top)),
		Bottom: gen.Generate(here.Neighbor(world.Bottom)),
		Left:   gen.Generate(here.Neighbor(world.Left)),
		Right:  gen.Generate(here.Neighbor(world.Right)),
	}
}

func TestPaddingNeighborsMatchGeneratedNeighbours(t *testing.T) {
	g16 := world.Geometry{Size: 16, Padding: 1}
	cfg := config.DefaultWorldGen()
	cfg.TreeCoarseThreshold = 2 // no trees
	gen := world.NewGenerator(g16, cfg)

	here := world.SectorCoord{X: 2, Y: 0, Z: -1}
	l := gen.Generate(here)

	a := AtlasInfo{Width: 96, Height: 16, TileSize: 16}
	want := len(Generate(l, realNeighbours(gen, here), a))
	got := len(Generate(l, PaddingNeighbors(l), a))
	if got != want {
		t.Fatalf("padding mesh: got %d vertices, want %d", got, want)
	}
}

// With every column planting a tree, the padding ring must still agree with
// the real neighbours: canopies never reach a boundary cell.
func TestPaddingNeighborsMatchWithTrees(t *testing.T) {
	full := config.Default()
	full.WorldGen.TreeCoarseThreshold = -2
	full.WorldGen.TreeFineThreshold = -2
	full.WorldGen.TreeEdgeMargin = full.WorldGen.CanopyRadius + 1
	if err := full.Validate(); err != nil {
		t.Fatalf("config rejected: %v", err)
	}
	g := world.Geometry{Size: full.Sector.Size, Padding: full.Sector.Padding}
	gen := world.NewGenerator(g, full.WorldGen)
	a := AtlasInfo{Width: 96, Height: 16, TileSize: 16}

	for x := -2; x <= 2; x++ {
		here := world.SectorCoord{X: x}
		l := gen.Generate(here)
		want := len(Generate(l, realNeighbours(gen, here), a))
		got := len(Generate(l, PaddingNeighbors(l), a))
		if got != want {
			t.Errorf("sector %v: padding mesh %d vertices, real-neighbour mesh %d", here, got, want)
		}
	}
}

func BenchmarkGenerateFullSurface(b *testing.B) {
	l := world.NewAirList(geom)
	for x := 0; x < geom.Size; x++ {
		for z := 0; z < geom.Size; z++ {
			l.Set(geom.Coords(x, geom.Size-1, z), world.Grass)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Generate(l, AdjacentSectors{}, atlas)
	}
}
